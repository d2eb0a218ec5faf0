package benchmark

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ExportToCSV writes one summary row per strategy into dir and returns the file path.
func (ba *BenchmarkAdapter) ExportToCSV(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating results dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, ba.filename("summary"))

	err := writeCSV(path, []string{
		"run_id", "timestamp", "strategy", "policy", "quantum", "jobs", "total_time", "avg_turnaround", "error",
	}, func(w *csv.Writer) error {
		for _, r := range ba.Results {
			errMsg := ""
			if r.Err != nil {
				errMsg = r.Err.Error()
			}
			if err := w.Write([]string{
				r.RunID,
				r.Timestamp.Format(time.RFC3339),
				r.Strategy,
				r.Result.Policy,
				strconv.Itoa(r.Result.Quantum),
				strconv.Itoa(r.Result.Jobs),
				strconv.FormatInt(r.Result.TotalTime, 10),
				strconv.FormatInt(r.Result.AvgTurnaround, 10),
				errMsg,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	ba.logger().Infof("[Benchmark] Exported summary to CSV: %s", path)
	return path, nil
}

// ExportJobsCSV writes the per-job completion log of every successful strategy.
func (ba *BenchmarkAdapter) ExportJobsCSV(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating results dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, ba.filename("jobs"))

	err := writeCSV(path, []string{
		"run_id", "strategy", "job_id", "requested_time", "completion_order", "turnaround",
	}, func(w *csv.Writer) error {
		for _, r := range ba.Results {
			if r.Err != nil {
				continue
			}
			for _, e := range r.Result.Log {
				if err := w.Write([]string{
					r.RunID,
					r.Strategy,
					strconv.Itoa(e.JobID),
					strconv.Itoa(e.Requested),
					strconv.Itoa(e.Order),
					strconv.FormatInt(e.Turnaround, 10),
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	ba.logger().Infof("[Benchmark] Exported job log to CSV: %s", path)
	return path, nil
}

func (ba *BenchmarkAdapter) filename(kind string) string {
	id := ba.RunID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s_%s_%s.csv", id, time.Now().Format("20060102-150405"), kind)
}

func writeCSV(path string, header []string, rows func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := rows(w); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	w.Flush()
	return w.Error()
}
