package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Config holds everything a simulation run needs.
type Config struct {
	// Jobs is the size of a generated batch. Ignored when BatchCSV is set.
	Jobs int `yaml:"jobs"`
	// MaxTime bounds generated requested times to [1, MaxTime].
	MaxTime int `yaml:"max_time"`
	// Seed makes generated batches reproducible. 0 means seed from the clock.
	Seed int64 `yaml:"seed"`
	// Quanta are the round-robin time slices to sweep, in order.
	Quanta []int `yaml:"quanta"`
	// BatchCSV loads a fixed batch (local path or gs:// URL) instead of generating one.
	BatchCSV string `yaml:"batch_csv"`
	// ResultsDir receives summary and per-job CSVs.
	ResultsDir string `yaml:"results_dir"`
	// MetricsAddr, when set, exposes Prometheus metrics on host:port.
	MetricsAddr string `yaml:"metrics_addr"`
	// StorePath, when set, appends every result to a SQLite run history.
	StorePath string `yaml:"store_path"`

	Manifest ManifestConfig `yaml:"manifest"`
}

// ManifestConfig controls Kubernetes Job export of the simulated batch.
type ManifestConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Policy         string `yaml:"policy"`
	Image          string `yaml:"image"`
	Namespace      string `yaml:"namespace"`
	SecondsPerUnit int    `yaml:"seconds_per_unit"`
}

// Default is the classic comparison: 100 jobs sized 1..100, round robin at 20, 15, 10 and 5.
func Default() *Config {
	return &Config{
		Jobs:       100,
		MaxTime:    100,
		Quanta:     []int{20, 15, 10, 5},
		ResultsDir: "results",
		Manifest: ManifestConfig{
			Policy:         "SJF",
			SecondsPerUnit: 1,
		},
	}
}

// Load reads a YAML config file from the given path on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs field.ErrorList

	if c.BatchCSV == "" {
		if c.Jobs < 1 {
			errs = append(errs, field.Invalid(field.NewPath("jobs"), c.Jobs, "must be at least 1"))
		}
		if c.MaxTime < 1 {
			errs = append(errs, field.Invalid(field.NewPath("max_time"), c.MaxTime, "must be at least 1"))
		}
	}

	quanta := field.NewPath("quanta")
	for i, q := range c.Quanta {
		if q < 1 {
			errs = append(errs, field.Invalid(quanta.Index(i), q, "time quantum must be at least 1"))
		}
	}

	if c.ResultsDir == "" {
		errs = append(errs, field.Required(field.NewPath("results_dir"), ""))
	}

	m := field.NewPath("manifest")
	if c.Manifest.Enabled {
		switch c.Manifest.Policy {
		case "FIFO", "SJF", "RR":
		default:
			errs = append(errs, field.NotSupported(m.Child("policy"), c.Manifest.Policy, []string{"FIFO", "SJF", "RR"}))
		}
		if c.Manifest.Policy == "RR" && len(c.Quanta) == 0 {
			errs = append(errs, field.Required(quanta, "RR manifest export needs at least one quantum"))
		}
		if c.Manifest.SecondsPerUnit < 1 {
			errs = append(errs, field.Invalid(m.Child("seconds_per_unit"), c.Manifest.SecondsPerUnit, "must be at least 1"))
		}
	}

	return errs.ToAggregate()
}
