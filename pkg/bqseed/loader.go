package bqseed

import (
	"context"
	"io"
)

// Loader drives the ordered file-to-table loads of a run.
type Loader interface {
	// Run loads every mapping of config in order, waiting for each job to
	// finish before the next one starts. It stops at the first failure.
	Run(ctx context.Context, config LoadConfig) error
}

// Source is a named, uninterpreted byte stream handed to a load job.
type Source struct {
	// Name is the logical file name (e.g. "listings")
	Name string

	// Path is the resolved local path, used for staging object names and logs
	Path string

	Reader io.Reader
}

// JobResult is the terminal, successful outcome of a load job.
type JobResult struct {
	JobID      string
	OutputRows int64
	InputBytes int64
}

// Job is a submitted load job.
type Job interface {
	// ID returns the service-side job identifier.
	ID() string

	// Wait blocks until the job reaches a terminal state. A job that
	// terminates unsuccessfully yields an error.
	Wait(ctx context.Context) (JobResult, error)
}

// Warehouse submits load jobs against one project.
// The handle is acquired once per run and must be closed by the caller.
type Warehouse interface {
	// Load submits a load job reading src into dest with the given configuration.
	// An error means the request was rejected before a job existed.
	Load(ctx context.Context, src Source, dest TableRef, job JobConfiguration, labels map[string]string) (Job, error)

	io.Closer
}

// WarehouseFactory acquires a warehouse handle for a run.
type WarehouseFactory func(ctx context.Context, config LoadConfig) (Warehouse, error)

// FileOpener opens source files for reading and reports their metadata.
type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
	Size(path string) (int64, error)
}
