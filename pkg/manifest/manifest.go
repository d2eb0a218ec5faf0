// Package manifest renders a simulated batch as Kubernetes batch/v1 Jobs so
// the same workload can be replayed on a real cluster. Each job sleeps for
// its requested time scaled by SecondsPerUnit and requests one CPU.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/g-uva/job-scheduling-sim/pkg/core"
)

const (
	LabelBatch         = "jobsched.g-uva.io/batch"
	LabelPolicy        = "jobsched.g-uva.io/policy"
	AnnotationRequest  = "jobsched.g-uva.io/requested-time"
	AnnotationPosition = "jobsched.g-uva.io/service-order"
)

// Options controls how jobs are rendered.
type Options struct {
	BatchName      string
	Namespace      string
	Image          string
	SecondsPerUnit int
}

func (o Options) withDefaults() Options {
	if o.BatchName == "" {
		o.BatchName = "batch"
	}
	if o.Namespace == "" {
		o.Namespace = metav1.NamespaceDefault
	}
	if o.Image == "" {
		o.Image = "busybox:1.36"
	}
	if o.SecondsPerUnit < 1 {
		o.SecondsPerUnit = 1
	}
	return o
}

// Render builds one Job per log entry of res, in completion order, so the
// manifest list mirrors the policy's service order.
func Render(b core.Batch, res core.Result, opts Options) ([]batchv1.Job, error) {
	if len(b) == 0 {
		return nil, core.ErrEmptyBatch
	}
	opts = opts.withDefaults()

	byID := make(map[int]core.Job, len(b))
	for _, j := range b {
		byID[j.ID] = j
	}

	jobs := make([]batchv1.Job, 0, len(res.Log))
	for _, e := range res.Log {
		j, ok := byID[e.JobID]
		if !ok {
			return nil, fmt.Errorf("result references unknown job %d", e.JobID)
		}
		jobs = append(jobs, buildJob(j, e.Order, res.Policy, opts))
	}
	return jobs, nil
}

func buildJob(j core.Job, order int, policy string, opts Options) batchv1.Job {
	seconds := int64(j.Requested * opts.SecondsPerUnit)
	deadline := seconds * 2
	backoff := int32(0)

	return batchv1.Job{
		TypeMeta: metav1.TypeMeta{APIVersion: "batch/v1", Kind: "Job"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      fmt.Sprintf("%s-job-%d", opts.BatchName, j.ID),
			Namespace: opts.Namespace,
			Labels: map[string]string{
				LabelBatch:  opts.BatchName,
				LabelPolicy: policy,
			},
			Annotations: map[string]string{
				AnnotationRequest:  strconv.Itoa(j.Requested),
				AnnotationPosition: strconv.Itoa(order),
			},
		},
		Spec: batchv1.JobSpec{
			BackoffLimit:          &backoff,
			ActiveDeadlineSeconds: &deadline,
			Template: corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{
					RestartPolicy: corev1.RestartPolicyNever,
					Containers: []corev1.Container{{
						Name:    "work",
						Image:   opts.Image,
						Command: []string{"sleep", strconv.FormatInt(seconds, 10)},
						Resources: corev1.ResourceRequirements{
							Requests: corev1.ResourceList{
								corev1.ResourceCPU: resource.MustParse("1"),
							},
							Limits: corev1.ResourceList{
								corev1.ResourceCPU: resource.MustParse("1"),
							},
						},
					}},
				},
			},
		},
	}
}

// WriteList encodes jobs as a single v1 List document that kubectl apply accepts.
func WriteList(w io.Writer, jobs []batchv1.Job) error {
	list := metav1.List{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "List"},
		Items:    make([]runtime.RawExtension, 0, len(jobs)),
	}
	for i := range jobs {
		raw, err := json.Marshal(&jobs[i])
		if err != nil {
			return fmt.Errorf("encode job %s: %w", jobs[i].Name, err)
		}
		list.Items = append(list.Items, runtime.RawExtension{Raw: raw})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&list)
}
