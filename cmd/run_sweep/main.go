package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/g-uva/job-scheduling-sim/benchmark"
	"github.com/g-uva/job-scheduling-sim/config"
	"github.com/g-uva/job-scheduling-sim/pkg/core"
	"github.com/g-uva/job-scheduling-sim/pkg/generator"
	"github.com/g-uva/job-scheduling-sim/pkg/loader"
	"github.com/g-uva/job-scheduling-sim/pkg/manifest"
	"github.com/g-uva/job-scheduling-sim/pkg/metrics"
	"github.com/g-uva/job-scheduling-sim/pkg/store"
)

// parseIntSlice converts a comma-separated list of ints into a slice
func parseIntSlice(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid int in slice %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func main() {
	var configPath, batchCSV, quantaFlag, metricsAddr string
	var jobs int
	var seed int64
	flag.StringVar(&configPath, "config", "", "path to YAML config (defaults if empty)")
	flag.StringVar(&batchCSV, "batch-csv", "", "load batch from CSV or gs:// URL (auto-generate if empty)")
	flag.StringVar(&quantaFlag, "quanta", "", "comma-separated round-robin quanta")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flag.IntVar(&jobs, "jobs", 0, "number of generated jobs")
	flag.Int64Var(&seed, "seed", 0, "random seed for generated batches")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	// Flags override the file
	if batchCSV != "" {
		cfg.BatchCSV = batchCSV
	}
	if quantaFlag != "" {
		q, err := parseIntSlice(quantaFlag)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Quanta = q
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}
	if jobs != 0 {
		cfg.Jobs = jobs
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	batch, err := loadBatch(ctx, cfg, log)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	adapter := benchmark.BenchmarkAdapter{
		Batch:      batch,
		Strategies: core.DefaultStrategies(cfg.Quanta...),
		Log:        log,
		Observers: []benchmark.Observer{
			func(_ string, res core.Result) error {
				recorder.Observe(res)
				return nil
			},
		},
	}

	if cfg.StorePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o755); err != nil {
			return fmt.Errorf("creating store dir: %w", err)
		}
		db, err := store.New(cfg.StorePath)
		if err != nil {
			return fmt.Errorf("opening run store: %w", err)
		}
		defer db.Close()
		if err := db.InitSchema(); err != nil {
			return fmt.Errorf("initializing run store: %w", err)
		}
		adapter.Observers = append(adapter.Observers, db.InsertResult)
	}

	adapter.RunBenchmark()
	for _, r := range adapter.Results {
		if r.Err != nil {
			recorder.ObserveFailure(r.Strategy)
		}
	}

	if err := adapter.WriteReports(os.Stdout); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if _, err := adapter.ExportToCSV(cfg.ResultsDir); err != nil {
		return fmt.Errorf("exporting summary: %w", err)
	}
	if _, err := adapter.ExportJobsCSV(cfg.ResultsDir); err != nil {
		return fmt.Errorf("exporting job log: %w", err)
	}

	if cfg.Manifest.Enabled {
		if err := exportManifest(cfg, &adapter, log); err != nil {
			return err
		}
	}

	if cfg.MetricsAddr != "" {
		log.Info("Sweep complete; serving metrics until interrupted")
		return recorder.Serve(ctx, cfg.MetricsAddr, log)
	}
	log.Infof("Sweep complete; results in %s", cfg.ResultsDir)
	return nil
}

func loadBatch(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (core.Batch, error) {
	if cfg.BatchCSV != "" {
		b, err := loader.LoadBatchFromCSV(ctx, cfg.BatchCSV)
		if err != nil {
			return nil, fmt.Errorf("loading batch: %w", err)
		}
		log.Infof("Loaded %d jobs from %s", len(b), cfg.BatchCSV)
		return b, nil
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	b, err := generator.GenerateBatch(generator.NewSource(seed), cfg.Jobs, cfg.MaxTime)
	if err != nil {
		return nil, fmt.Errorf("generating batch: %w", err)
	}

	path := filepath.Join(cfg.ResultsDir, fmt.Sprintf("batch_%d.csv", seed))
	if err := generator.WriteBatchCSV(path, b); err != nil {
		return nil, fmt.Errorf("writing batch: %w", err)
	}
	log.WithField("seed", seed).Infof("Generated %d jobs into %s", len(b), path)
	return b, nil
}

func exportManifest(cfg *config.Config, ba *benchmark.BenchmarkAdapter, log logrus.FieldLogger) error {
	var picked *core.Result
	for _, res := range ba.Succeeded() {
		if res.Policy != cfg.Manifest.Policy {
			continue
		}
		if res.Policy == core.PolicyRoundRobin && res.Quantum != cfg.Quanta[0] {
			continue
		}
		res := res
		picked = &res
		break
	}
	if picked == nil {
		return fmt.Errorf("no %s result to export", cfg.Manifest.Policy)
	}

	jobs, err := manifest.Render(ba.Batch, *picked, manifest.Options{
		BatchName:      "sim-" + ba.RunID[:8],
		Namespace:      cfg.Manifest.Namespace,
		Image:          cfg.Manifest.Image,
		SecondsPerUnit: cfg.Manifest.SecondsPerUnit,
	})
	if err != nil {
		return fmt.Errorf("rendering manifest: %w", err)
	}

	path := filepath.Join(cfg.ResultsDir, fmt.Sprintf("%s_jobs.json", ba.RunID[:8]))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := manifest.WriteList(f, jobs); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	log.Infof("[Manifest] Wrote %d jobs to %s", len(jobs), path)
	return nil
}
