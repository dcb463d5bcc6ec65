package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/config"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/data"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/experiment"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/logging"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/report"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/store"
)

//
// Trains the person-of-interest classifier and writes the artifact the
// tester program validates. The dataset may be the distributed pickle
// (.pkl), a JSON export of the same dictionary, or a wide CSV with a name
// column.
//
// Example:
//   go run ./cmd/poi_id -data datasets/final_project_dataset.pkl -out my_classifier.gob
//   go run ./cmd/poi_id -config run.yaml -classifier dtc -plot interactions.png
//

func main() {
	cfg, err := config.Parse("poi_id", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Error reading configuration: %v", err)
	}
	if err := logging.Init(cfg.Log); err != nil {
		log.Fatalf("Error configuring logging: %v", err)
	}

	ds, err := data.LoadFile(cfg.DataPath)
	if err != nil {
		log.Fatalf("Error loading dataset: %v", err)
	}
	slog.Info("dataset loaded", "path", cfg.DataPath, "people", len(ds))

	prep, err := experiment.Prepare(ds, cfg)
	if err != nil {
		log.Fatalf("Error preparing features: %v", err)
	}
	if cfg.Describe {
		fmt.Println(prep.Dataset.Describe(cfg.Features.Inputs()))
	}
	if cfg.PlotPath != "" {
		if err := report.PlotInteractions(prep.Dataset, cfg.PlotPath); err != nil {
			slog.Warn("interaction plot skipped", "error", err)
		} else {
			fmt.Printf("Saved interaction plot to %s\n", cfg.PlotPath)
		}
	}

	res, err := experiment.Train(prep, cfg)
	if err != nil {
		log.Fatalf("Error training classifier: %v", err)
	}
	rep := res.Report()
	if err := rep.Write(os.Stdout); err != nil {
		log.Fatalf("Error writing report: %v", err)
	}
	if rep.ScoreErr != nil {
		slog.Warn("scores undefined", "pipeline", rep.Pipeline, "error", rep.ScoreErr)
	}
	if pca := res.Pipeline.PCA(); pca != nil {
		if err := report.ExplainedVariance(os.Stdout, pca); err != nil {
			slog.Warn("explained variance chart skipped", "error", err)
		}
	}

	if err := res.Artifact(prep, cfg).Save(cfg.OutPath); err != nil {
		log.Fatalf("Error saving classifier: %v", err)
	}
	slog.Info("artifact saved", "path", cfg.OutPath, "run_id", res.RunID)

	if cfg.RunsDB != "" {
		recordRun(cfg, experiment.Run(res.RunID, "poi_id", cfg.Features, len(prep.X), rep))
	}
}

// recordRun appends the run to the history database. Failures are logged,
// the artifact is already on disk.
func recordRun(cfg config.Config, run *store.TrainingRun) {
	s, err := store.Open(cfg.RunsDB)
	if err != nil {
		slog.Error("run history unavailable", "error", err)
		return
	}
	defer s.Close()
	if err := s.Record(run); err != nil {
		slog.Error("run not recorded", "error", err)
		return
	}
	slog.Info("run recorded", "db", cfg.RunsDB, "run_id", run.RunID)
}
