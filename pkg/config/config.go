package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roboGOD/Enron-Fraud-Detection/pkg/dataprep"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/features"
	"github.com/roboGOD/Enron-Fraud-Detection/pkg/logging"
)

// Classifier names accepted by the classifier setting.
const (
	GaussianNB   = "gnb"
	DecisionTree = "dtc"
	RandomForest = "rfc"
)

var ErrInvalid = errors.New("config: invalid")

// Config holds every tunable of a training or validation run.
type Config struct {
	DataPath   string         `yaml:"data_path"`
	OutPath    string         `yaml:"out_path"`
	RunsDB     string         `yaml:"runs_db"`
	PlotPath   string         `yaml:"plot_path"`
	Describe   bool           `yaml:"describe"`
	Outliers   []string       `yaml:"outliers"`
	Features   features.List  `yaml:"features"`
	Extraction Extraction     `yaml:"extraction"`
	Components int            `yaml:"n_components"`
	Classifier string         `yaml:"classifier"`
	TestSize   float64        `yaml:"test_size"`
	Seed       int64          `yaml:"random_state"`
	Validation Validation     `yaml:"validation"`
	Log        logging.Config `yaml:"log"`
}

// Validation configures the cross-validation program.
type Validation struct {
	Folds    int     `yaml:"folds"`
	TestSize float64 `yaml:"test_size"`
	Detailed bool    `yaml:"detailed"`
}

// Extraction mirrors features.Options for the config file.
type Extraction struct {
	RemoveAllZeroes bool `yaml:"remove_all_zeroes"`
	RemoveAnyZeroes bool `yaml:"remove_any_zeroes"`
}

func (e Extraction) Options() features.Options {
	opts := features.DefaultOptions()
	opts.RemoveAllZeroes = e.RemoveAllZeroes
	opts.RemoveAnyZeroes = e.RemoveAnyZeroes
	return opts
}

// Default returns the settings of the reference run.
func Default() Config {
	return Config{
		DataPath:   "datasets/final_project_dataset.json",
		OutPath:    "my_classifier.gob",
		Outliers:   append([]string(nil), dataprep.DefaultOutliers...),
		Features:   features.DefaultList.Clone(),
		Extraction: Extraction{RemoveAllZeroes: true},
		Components: 7,
		Classifier: GaussianNB,
		TestSize:   0.3,
		Seed:       42,
		Validation: Validation{Folds: 1000, TestSize: 0.1},
		Log:        logging.Config{Level: "info", Format: "text"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// BindFlags registers command-line overrides for cfg on fs. Flag defaults
// are the current values of cfg, so parse after Load.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DataPath, "data", c.DataPath, "Path to the dataset (.json or .csv)")
	fs.StringVar(&c.OutPath, "out", c.OutPath, "Path of the trained artifact")
	fs.StringVar(&c.RunsDB, "runs-db", c.RunsDB, "SQLite file recording run history (empty to disable)")
	fs.StringVar(&c.PlotPath, "plot", c.PlotPath, "Write an interaction scatter plot PNG to this path")
	fs.BoolVar(&c.Describe, "describe", c.Describe, "Print summary statistics of the selected features")
	fs.StringVar(&c.Classifier, "classifier", c.Classifier, "Classifier: gnb, dtc or rfc")
	fs.IntVar(&c.Components, "components", c.Components, "Number of principal components")
	fs.Float64Var(&c.TestSize, "test-size", c.TestSize, "Share of records held out for testing")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed for splits and ensembles")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "Log level: debug, info, warn, error")
	fs.StringVar(&c.Log.Format, "log-format", c.Log.Format, "Log format: text or json")
}

// Parse resolves the configuration of a program run: defaults, then the
// YAML file named by -config, then any other flags in args.
func Parse(name string, args []string) (Config, error) {
	return parse(name, args, (*Config).BindFlags)
}

// ParseValidation is Parse for the validation program's flags.
func ParseValidation(name string, args []string) (Config, error) {
	return parse(name, args, (*Config).BindValidationFlags)
}

func parse(name string, args []string, bind func(*Config, *flag.FlagSet)) (Config, error) {
	var path string
	scratch := Default()
	pre := flag.NewFlagSet(name, flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	pre.StringVar(&path, "config", "", "")
	bind(&scratch, pre)
	// errors surface in the second pass, which prints usage
	_ = pre.Parse(args)

	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", path, "YAML config file; other flags override its values")
	bind(&cfg, fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// BindValidationFlags registers the validation program's overrides on fs.
// The artifact path is the training output path.
func (c *Config) BindValidationFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.OutPath, "artifact", c.OutPath, "Path of the artifact written by poi_id")
	fs.StringVar(&c.RunsDB, "runs-db", c.RunsDB, "SQLite file recording run history (empty to disable)")
	fs.IntVar(&c.Validation.Folds, "folds", c.Validation.Folds, "Number of stratified shuffle-split folds")
	fs.Float64Var(&c.Validation.TestSize, "test-size", c.Validation.TestSize, "Share of each class held out per fold")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed for the folds")
	fs.BoolVar(&c.Validation.Detailed, "detailed", c.Validation.Detailed, "Print golearn's per-class summary")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "Log level: debug, info, warn, error")
	fs.StringVar(&c.Log.Format, "log-format", c.Log.Format, "Log format: text or json")
}

// Validate rejects settings no run could use.
func (c Config) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("%w: data_path is empty", ErrInvalid)
	}
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return fmt.Errorf("%w: test_size %v must be in (0, 1)", ErrInvalid, c.TestSize)
	}
	if c.Components < 1 {
		return fmt.Errorf("%w: n_components %d must be positive", ErrInvalid, c.Components)
	}
	if c.Validation.Folds < 1 {
		return fmt.Errorf("%w: validation folds %d must be positive", ErrInvalid, c.Validation.Folds)
	}
	if c.Validation.TestSize <= 0 || c.Validation.TestSize >= 1 {
		return fmt.Errorf("%w: validation test_size %v must be in (0, 1)", ErrInvalid, c.Validation.TestSize)
	}
	switch c.Classifier {
	case GaussianNB, DecisionTree, RandomForest:
	default:
		return fmt.Errorf("%w: unknown classifier %q", ErrInvalid, c.Classifier)
	}
	if err := c.Features.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
