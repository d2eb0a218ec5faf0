package loader

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/g-uva/job-scheduling-sim/pkg/core"
)

const gcsScheme = "gs://"

// LoadBatchFromCSV reads a batch from a local file or a gs://bucket/object
// URL. The CSV has the shape written by generator.WriteBatchCSV:
//
//	id,requested_time
//
// Rows keep their file order, which is the FIFO order of the batch.
// A .gz suffix is decompressed on the fly.
func LoadBatchFromCSV(ctx context.Context, path string) (core.Batch, error) {
	rc, err := open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("LoadBatchFromCSV %s: gzip: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	b, err := ParseBatch(r)
	if err != nil {
		return nil, fmt.Errorf("LoadBatchFromCSV %s: %w", path, err)
	}
	return b, nil
}

// ParseBatch decodes batch CSV rows. The id column is informational; jobs are
// renumbered 0..n-1 in row order.
func ParseBatch(r io.Reader) (core.Batch, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, core.ErrEmptyBatch
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := column(header, "requested_time")
	if col < 0 {
		return nil, fmt.Errorf("header %v has no requested_time column", header)
	}

	var times []int
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if col >= len(rec) {
			return nil, fmt.Errorf("line %d: missing requested_time", line)
		}
		v, err := strconv.Atoi(strings.TrimSpace(rec[col]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		times = append(times, v)
	}
	if len(times) == 0 {
		return nil, core.ErrEmptyBatch
	}
	return core.NewBatch(times...)
}

func column(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func open(ctx context.Context, path string) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, gcsScheme) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("LoadBatchFromCSV: open %s: %w", path, err)
		}
		return f, nil
	}

	bucket, object, ok := strings.Cut(strings.TrimPrefix(path, gcsScheme), "/")
	if !ok || bucket == "" || object == "" {
		return nil, fmt.Errorf("LoadBatchFromCSV: malformed GCS URL %q", path)
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to open GCS object: %w", err)
	}
	return &gcsReader{Reader: r, client: client}, nil
}

// gcsReader closes the storage client together with the object reader.
type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (g *gcsReader) Close() error {
	err := g.Reader.Close()
	if cerr := g.client.Close(); err == nil {
		err = cerr
	}
	return err
}
