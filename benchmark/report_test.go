package benchmark

import (
	"bytes"
	"strings"
	"testing"

	"github.com/g-uva/job-scheduling-sim/pkg/core"
)

func TestWriteReport(t *testing.T) {
	b, _ := core.NewBatch(5, 3, 8)

	tests := []struct {
		name     string
		strategy core.Strategy
		want     string
	}{
		{
			name:     "fifo",
			strategy: core.FCFS{},
			want: "\nFIFO:\nProcessing 3 random jobs (time slice irrelevant)...done.\n" +
				"Total processing time for the batch was 16 units.\n" +
				"Avg turnaround time for each job was 9 units.\n",
		},
		{
			name:     "round robin",
			strategy: core.RR{Quantum: 2},
			want: "\nRR:\nProcessing 3 random jobs with a time slice of 2 units...done.\n" +
				"Total processing time for the batch was 16 units.\n" +
				"Avg turnaround time for each job was 12 units.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.strategy.Schedule(b)
			if err != nil {
				t.Fatalf("Schedule: %v", err)
			}
			var buf bytes.Buffer
			if err := WriteReport(&buf, res); err != nil {
				t.Fatalf("WriteReport: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteReports_SkipsFailures(t *testing.T) {
	ba, _ := newAdapter(t, core.SJF{}, core.RR{Quantum: 0})
	ba.RunBenchmark()

	var buf bytes.Buffer
	if err := ba.WriteReports(&buf); err != nil {
		t.Fatalf("WriteReports: %v", err)
	}
	if got := strings.Count(buf.String(), "Processing"); got != 1 {
		t.Errorf("expected one report, got %d:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "\nSJF:\n") {
		t.Errorf("expected SJF heading, got %q", buf.String())
	}
}
