package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TrainingRun is one row of the run history.
type TrainingRun struct {
	ID        uint      `gorm:"primaryKey"`
	RunID     string    `gorm:"size:36;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"index"`
	Program   string    `gorm:"size:32"`
	Pipeline  string    `gorm:"type:text"`
	Features  string    `gorm:"type:text"`
	Records   int

	TruePositives  int
	FalsePositives int
	FalseNegatives int
	TrueNegatives  int

	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	F2        float64
	ScoreErr  string `gorm:"type:text"`

	TrainMillis   int64
	PredictMillis int64
}

func (TrainingRun) TableName() string { return "training_runs" }

// SetFeatures stores the feature list as a comma-joined string.
func (r *TrainingRun) SetFeatures(list []string) { r.Features = strings.Join(list, ",") }

// FeatureList splits Features back into names.
func (r TrainingRun) FeatureList() []string {
	if r.Features == "" {
		return nil
	}
	return strings.Split(r.Features, ",")
}

// Store records training runs in a SQLite database.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite file at path (":memory:" for a throwaway
// database) and migrates the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store: empty database path")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&TrainingRun{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts run.
func (s *Store) Record(run *TrainingRun) error {
	if run.RunID == "" {
		return errors.New("store: run has no id")
	}
	if err := s.db.Create(run).Error; err != nil {
		return fmt.Errorf("store: record %s: %w", run.RunID, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]TrainingRun, error) {
	var runs []TrainingRun
	err := s.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("store: recent: %w", err)
	}
	return runs, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
