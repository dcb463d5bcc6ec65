package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/config"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/experiment"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/logging"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/persist"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/report"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/store"
)

//
// Validates a trained artifact with stratified shuffle-split cross
// validation and prints the pooled metrics. Each fold holds out 10% of
// every class unless -test-size says otherwise.
//
// Example:
//   go run ./cmd/tester -artifact my_classifier.gob -folds 1000
//   go run ./cmd/tester -config run.yaml -detailed
//

func main() {
	cfg, err := config.ParseValidation("tester", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Error reading configuration: %v", err)
	}
	if err := logging.Init(cfg.Log); err != nil {
		log.Fatalf("Error configuring logging: %v", err)
	}

	a, err := persist.Load(cfg.OutPath)
	if err != nil {
		log.Fatalf("Error loading artifact: %v", err)
	}
	slog.Info("artifact loaded", "path", cfg.OutPath, "run_id", a.RunID, "created_at", a.CreatedAt)

	v := cfg.Validation
	c, err := experiment.Validate(a, v.Folds, v.TestSize, cfg.Seed)
	if err != nil {
		log.Fatalf("Error validating classifier: %v", err)
	}
	rep := report.New(a.Pipeline.String(), c)
	rep.Detailed = v.Detailed
	if err := rep.Write(os.Stdout); err != nil {
		log.Fatalf("Error writing report: %v", err)
	}

	if cfg.RunsDB == "" {
		return
	}
	s, err := store.Open(cfg.RunsDB)
	if err != nil {
		log.Fatalf("Error opening run history: %v", err)
	}
	defer s.Close()
	run := experiment.Run(uuid.New(), "tester", a.Features, c.Total(), rep)
	if err := s.Record(run); err != nil {
		slog.Error("run not recorded", "error", err)
	}
}
