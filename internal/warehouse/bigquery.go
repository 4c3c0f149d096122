package warehouse

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

// stager uploads a source and returns the URI to load from.
type stager interface {
	Stage(ctx context.Context, localPath string, r io.Reader) (string, error)
}

// BigQuery implements bqseed.Warehouse with BigQuery load jobs.
// Not safe for concurrent Load calls; a run loads one file at a time.
type BigQuery struct {
	client  *bigquery.Client
	storage *storage.Client
	stager  stager
}

// NewBigQuery creates the clients for a run. The caller must Close the result.
func NewBigQuery(ctx context.Context, cfg bqseed.LoadConfig) (*BigQuery, error) {
	opts := ClientOptions(cfg.Client)

	client, err := bigquery.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create BigQuery client for project %s: %w: %w", cfg.ProjectID, bqseed.ErrClientFailed, err)
	}
	if cfg.Location != "" {
		client.Location = cfg.Location
	}

	wh := &BigQuery{client: client}

	if cfg.Staging.Enabled() {
		sc, err := storage.NewClient(ctx, opts...)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("create Cloud Storage client: %w: %w", bqseed.ErrClientFailed, err)
		}
		wh.storage = sc
		wh.stager = NewGCSStager(sc, cfg.Staging.Bucket, cfg.Staging.Prefix)
	}

	return wh, nil
}

// Factory adapts NewBigQuery to bqseed.WarehouseFactory.
func Factory(ctx context.Context, cfg bqseed.LoadConfig) (bqseed.Warehouse, error) {
	return NewBigQuery(ctx, cfg)
}

// Load submits a load job for src into dest. A returned error means no job
// was created: the upload to staging failed or the service rejected the request.
func (w *BigQuery) Load(
	ctx context.Context,
	src bqseed.Source,
	dest bqseed.TableRef,
	job bqseed.JobConfiguration,
	labels map[string]string,
) (bqseed.Job, error) {
	var source bigquery.LoadSource
	if w.stager != nil {
		uri, err := w.stager.Stage(ctx, src.Path, src.Reader)
		if err != nil {
			return nil, err
		}
		ref := bigquery.NewGCSReference(uri)
		applyFileConfig(&ref.FileConfig, job)
		source = ref
	} else {
		rs := bigquery.NewReaderSource(src.Reader)
		applyFileConfig(&rs.FileConfig, job)
		source = rs
	}

	loader := w.client.DatasetInProject(dest.ProjectID, dest.DatasetID).Table(dest.TableID).LoaderFrom(source)
	loader.WriteDisposition = writeDisposition(job.WriteDisposition)
	loader.JobID = newJobID(dest.TableID)
	loader.Labels = jobLabels(labels, src.Name)

	j, err := loader.Run(ctx)
	if err != nil {
		return nil, describeAPIError(err)
	}
	return &bigQueryJob{job: j}, nil
}

// Close releases the BigQuery and, if created, Cloud Storage clients.
func (w *BigQuery) Close() error {
	var errs []error
	if w.storage != nil {
		errs = append(errs, w.storage.Close())
	}
	errs = append(errs, w.client.Close())
	return errors.Join(errs...)
}

type bigQueryJob struct {
	job *bigquery.Job
}

func (j *bigQueryJob) ID() string {
	return j.job.ID()
}

// Wait blocks until the job is done and converts its status.
func (j *bigQueryJob) Wait(ctx context.Context) (bqseed.JobResult, error) {
	status, err := j.job.Wait(ctx)
	if err != nil {
		return bqseed.JobResult{JobID: j.job.ID()}, fmt.Errorf("wait for job %s: %w", j.job.ID(), describeAPIError(err))
	}
	return resultFromStatus(j.job.ID(), status)
}

// resultFromStatus extracts statistics from a terminal status, or the job's
// error together with any per-row errors the service reported.
func resultFromStatus(jobID string, status *bigquery.JobStatus) (bqseed.JobResult, error) {
	result := bqseed.JobResult{JobID: jobID}
	if status == nil {
		return result, fmt.Errorf("job %s returned no status", jobID)
	}

	if err := status.Err(); err != nil {
		return result, describeJobError(jobID, err, status.Errors)
	}

	if status.Statistics != nil {
		if ls, ok := status.Statistics.Details.(*bigquery.LoadStatistics); ok {
			result.OutputRows = ls.OutputRows
			result.InputBytes = ls.InputFileBytes
		}
	}
	return result, nil
}

// maxReportedRowErrors caps the detail lines attached to a failed job.
const maxReportedRowErrors = 5

func describeJobError(jobID string, err error, details []*bigquery.Error) error {
	var extra []error
	for i, d := range details {
		if i == maxReportedRowErrors {
			extra = append(extra, fmt.Errorf("... %d more", len(details)-maxReportedRowErrors))
			break
		}
		if d == nil || d.Error() == err.Error() {
			continue
		}
		extra = append(extra, d)
	}
	if len(extra) == 0 {
		return fmt.Errorf("job %s: %w", jobID, err)
	}
	return fmt.Errorf("job %s: %w\n%w", jobID, err, errors.Join(extra...))
}

// describeAPIError prefixes a googleapi error with its HTTP status and reason.
func describeAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if len(apiErr.Errors) > 0 && apiErr.Errors[0].Reason != "" {
		return fmt.Errorf("HTTP %d (%s): %w", apiErr.Code, apiErr.Errors[0].Reason, err)
	}
	return fmt.Errorf("HTTP %d: %w", apiErr.Code, err)
}

var (
	_ bqseed.Warehouse = (*BigQuery)(nil)
	_ bqseed.Job       = (*bigQueryJob)(nil)
)
