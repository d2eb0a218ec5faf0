package main

import (
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/g-uva/job-scheduling-sim/benchmark"
	"github.com/g-uva/job-scheduling-sim/pkg/core"
	"github.com/g-uva/job-scheduling-sim/pkg/generator"
)

func main() {
	var (
		jobs, maxTime int
		seed          int64
		verbose       bool
	)
	flag.IntVar(&jobs, "jobs", 100, "number of random jobs")
	flag.IntVar(&maxTime, "max-time", 100, "largest requested time of a generated job")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 = clock)")
	flag.BoolVar(&verbose, "v", false, "log every strategy run")
	flag.Parse()

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.InfoLevel)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	batch, err := generator.GenerateBatch(generator.NewSource(seed), jobs, maxTime)
	if err != nil {
		log.Fatalf("generating batch: %v", err)
	}
	log.WithField("seed", seed).Infof("Generated %d jobs", len(batch))

	adapter := benchmark.BenchmarkAdapter{
		Batch:      batch,
		Strategies: core.DefaultStrategies(20, 15, 10, 5),
		Log:        log,
	}
	adapter.RunBenchmark()

	if err := adapter.WriteReports(os.Stdout); err != nil {
		log.Fatalf("writing report: %v", err)
	}
}
