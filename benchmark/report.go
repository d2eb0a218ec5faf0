package benchmark

import (
	"fmt"
	"io"

	"github.com/g-uva/job-scheduling-sim/pkg/core"
)

// WriteReport prints one result in the classic console form.
func WriteReport(w io.Writer, res core.Result) error {
	var head string
	if res.Policy == core.PolicyRoundRobin {
		head = fmt.Sprintf("\nRR:\nProcessing %d random jobs with a time slice of %d units...", res.Jobs, res.Quantum)
	} else {
		head = fmt.Sprintf("\n%s:\nProcessing %d random jobs (time slice irrelevant)...", res.Policy, res.Jobs)
	}
	_, err := fmt.Fprintf(w, "%sdone.\nTotal processing time for the batch was %d units.\nAvg turnaround time for each job was %d units.\n",
		head, res.TotalTime, res.AvgTurnaround)
	return err
}

// WriteReports prints every successful record in run order.
func (ba *BenchmarkAdapter) WriteReports(w io.Writer) error {
	for _, res := range ba.Succeeded() {
		if err := WriteReport(w, res); err != nil {
			return err
		}
	}
	return nil
}
