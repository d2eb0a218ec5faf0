package generator

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/g-uva/job-scheduling-sim/pkg/core"
)

// Source is the randomness a batch is drawn from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// GenerateBatch draws n jobs with requested times uniform in [1, maxTime].
func GenerateBatch(src Source, n, maxTime int) (core.Batch, error) {
	if n < 1 {
		return nil, fmt.Errorf("generating batch: %w", core.ErrEmptyBatch)
	}
	if maxTime < 1 {
		return nil, fmt.Errorf("generating batch: max time %d: %w", maxTime, core.ErrInvalidJobDuration)
	}
	times := make([]int, n)
	for i := range times {
		times[i] = src.Intn(maxTime) + 1
	}
	return core.NewBatch(times...)
}

// WriteBatchCSV writes a CSV of {id,requested_time}
func WriteBatchCSV(path string, b core.Batch) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating dirs for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s): %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "requested_time"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, j := range b {
		if err := w.Write([]string{strconv.Itoa(j.ID), strconv.Itoa(j.Requested)}); err != nil {
			return fmt.Errorf("writing job %d: %w", j.ID, err)
		}
	}
	w.Flush()
	return w.Error()
}
