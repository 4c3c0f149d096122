package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

// fakeWarehouse models the parts of BigQuery load semantics the loader relies on:
// the stream is consumed on submission, CSV rows with inconsistent column counts
// fail the job, and the default write disposition appends.
type fakeWarehouse struct {
	mu        sync.Mutex
	rows      map[string]int64 // table ID -> row count; presence means the table exists
	submitted []string
	jobs      []bqseed.JobConfiguration
	labels    []map[string]string
	submitErr map[string]error
	closeErr  error
	closed    int
}

func newFakeWarehouse() *fakeWarehouse {
	return &fakeWarehouse{
		rows:      make(map[string]int64),
		submitErr: make(map[string]error),
	}
}

func (w *fakeWarehouse) factory() bqseed.WarehouseFactory {
	return func(_ context.Context, _ bqseed.LoadConfig) (bqseed.Warehouse, error) {
		return w, nil
	}
}

func (w *fakeWarehouse) Load(_ context.Context, src bqseed.Source, dest bqseed.TableRef, job bqseed.JobConfiguration, labels map[string]string) (bqseed.Job, error) {
	if err := w.submitErr[dest.TableID]; err != nil {
		return nil, err
	}
	data, err := io.ReadAll(src.Reader)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitted = append(w.submitted, dest.TableID)
	w.jobs = append(w.jobs, job)
	w.labels = append(w.labels, labels)
	return &fakeJob{id: fmt.Sprintf("job_%d", len(w.submitted)), wh: w, table: dest.TableID, data: data, job: job}, nil
}

func (w *fakeWarehouse) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed++
	return w.closeErr
}

func (w *fakeWarehouse) tableRows(table string) (int64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, ok := w.rows[table]
	return n, ok
}

type fakeJob struct {
	id    string
	wh    *fakeWarehouse
	table string
	data  []byte
	job   bqseed.JobConfiguration
}

func (j *fakeJob) ID() string { return j.id }

func (j *fakeJob) Wait(_ context.Context) (bqseed.JobResult, error) {
	records, err := csv.NewReader(bytes.NewReader(j.data)).ReadAll()
	if err != nil {
		return bqseed.JobResult{JobID: j.id}, fmt.Errorf("Error while reading data: %w", err)
	}
	rows := int64(len(records)) - j.job.SkipLeadingRows
	if rows < 0 {
		rows = 0
	}

	j.wh.mu.Lock()
	defer j.wh.mu.Unlock()
	existing, exists := j.wh.rows[j.table]
	switch j.job.WriteDisposition {
	case bqseed.WriteTruncate:
		j.wh.rows[j.table] = rows
	case bqseed.WriteEmpty:
		if exists && existing > 0 {
			return bqseed.JobResult{JobID: j.id}, errors.New("Already Exists: table is not empty")
		}
		j.wh.rows[j.table] = rows
	default:
		j.wh.rows[j.table] = existing + rows
	}
	return bqseed.JobResult{JobID: j.id, OutputRows: rows, InputBytes: int64(len(j.data))}, nil
}

type mockApprover struct {
	approved bool
	err      error
	calls    int
	dataset  string
	tables   []string
}

func (m *mockApprover) RequestApproval(_ context.Context, dataset string, tables []string) (bool, error) {
	m.calls++
	m.dataset = dataset
	m.tables = tables
	return m.approved, m.err
}

// recordingLogger keeps Info lines for assertions.
type recordingLogger struct {
	mu   sync.Mutex
	info []string
}

func (l *recordingLogger) Verbose(string, ...interface{}) {}
func (l *recordingLogger) Error(string, ...interface{})   {}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.info...)
}

type recordingTracker struct {
	messages []string
}

func (t *recordingTracker) Track(ctx context.Context, message string, wait func(ctx context.Context) error) error {
	t.messages = append(t.messages, message)
	return wait(ctx)
}
