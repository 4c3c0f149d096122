package bqseed

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SourceFormat names the format of the source data handed to a load job.
type SourceFormat string

// SourceFormatCSV is the only format bqseed submits.
const SourceFormatCSV SourceFormat = "CSV"

// WriteDisposition controls how a load job treats existing table data.
// The zero value leaves the decision to the service, which for BigQuery load
// jobs is WRITE_APPEND.
type WriteDisposition string

const (
	WriteServiceDefault WriteDisposition = ""
	WriteAppend         WriteDisposition = "WRITE_APPEND"
	WriteTruncate       WriteDisposition = "WRITE_TRUNCATE"
	WriteEmpty          WriteDisposition = "WRITE_EMPTY"
)

// ParseWriteDisposition accepts the short flag forms (append, truncate, empty)
// as well as the service names, case-insensitively. An empty string yields
// WriteServiceDefault.
func ParseWriteDisposition(s string) (WriteDisposition, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return WriteServiceDefault, nil
	case "APPEND", string(WriteAppend):
		return WriteAppend, nil
	case "TRUNCATE", string(WriteTruncate):
		return WriteTruncate, nil
	case "EMPTY", string(WriteEmpty):
		return WriteEmpty, nil
	}
	return "", fmt.Errorf("unknown write disposition %q (expected append, truncate or empty): %w", s, ErrInvalidConfig)
}

// JobConfiguration describes how the service interprets a source file.
// It is built once per run and shared by value across every load.
type JobConfiguration struct {
	SourceFormat     SourceFormat
	SkipLeadingRows  int64
	Autodetect       bool
	WriteDisposition WriteDisposition
}

// DefaultJobConfiguration returns CSV with one header row and autodetected schema.
func DefaultJobConfiguration() JobConfiguration {
	return JobConfiguration{
		SourceFormat:    SourceFormatCSV,
		SkipLeadingRows: DefaultSkipLeadingRows,
		Autodetect:      true,
	}
}

// FileTableMapping pairs a logical file name with its destination table.
type FileTableMapping struct {
	Name  string
	Table string
}

// DefaultMappings returns the seed files in processing order.
func DefaultMappings() []FileTableMapping {
	return []FileTableMapping{
		{Name: "listings", Table: "raw_listings"},
		{Name: "reviews", Table: "raw_reviews"},
		{Name: "hosts", Table: "raw_hosts"},
	}
}

// TableRef is a fully-qualified destination table.
type TableRef struct {
	ProjectID string
	DatasetID string
	TableID   string
}

func (t TableRef) String() string {
	return t.ProjectID + "." + t.DatasetID + "." + t.TableID
}

// StagingConfig enables uploading sources to Cloud Storage before loading.
// Staging is disabled when Bucket is empty.
type StagingConfig struct {
	Bucket string
	Prefix string
}

// Enabled reports whether sources are staged through Cloud Storage.
func (s StagingConfig) Enabled() bool {
	return s.Bucket != ""
}

// ClientConfig carries the settings used to construct the warehouse client.
type ClientConfig struct {
	// CredentialsFile is a service account key file. Empty means
	// application default credentials.
	CredentialsFile string

	// Endpoint overrides the BigQuery API endpoint (emulators).
	Endpoint string
}

// LoadConfig contains all parameters needed for a load run.
type LoadConfig struct {
	// BasePath is the directory containing the resources directory
	BasePath string

	// ProjectID and DatasetID address the destination dataset
	ProjectID string
	DatasetID string

	// Location is the dataset location (e.g. "US"); empty lets the service decide
	Location string

	// Mappings are processed in order
	Mappings []FileTableMapping

	// Job is shared by every load of the run
	Job JobConfiguration

	// Staging routes sources through Cloud Storage when enabled
	Staging StagingConfig

	// Client configures warehouse client construction
	Client ClientConfig

	// Labels are attached to every load job
	Labels map[string]string

	// Timeout bounds the whole run; zero means unbounded
	Timeout time.Duration

	// Force skips the interactive prompt before truncating tables
	Force bool

	// DryRun resolves and checks sources without contacting the service
	DryRun bool

	// Verbose enables detailed logging
	Verbose bool
}

// SourcePath resolves <BasePath>/resources/<name>.csv.
func (c *LoadConfig) SourcePath(m FileTableMapping) string {
	return filepath.Join(c.BasePath, ResourcesDir, m.Name+SourceExtension)
}

// Destination returns the fully-qualified table for a mapping.
func (c *LoadConfig) Destination(m FileTableMapping) TableRef {
	return TableRef{ProjectID: c.ProjectID, DatasetID: c.DatasetID, TableID: m.Table}
}

// Tables returns the destination table IDs in processing order.
func (c *LoadConfig) Tables() []string {
	tables := make([]string, 0, len(c.Mappings))
	for _, m := range c.Mappings {
		tables = append(tables, m.Table)
	}
	return tables
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.BasePath == "" {
		errs = append(errs, fmt.Errorf("BasePath is required: %w", ErrInvalidConfig))
	}

	if c.ProjectID == "" {
		errs = append(errs, fmt.Errorf("ProjectID is required: %w", ErrInvalidConfig))
	}

	if c.DatasetID == "" {
		errs = append(errs, fmt.Errorf("DatasetID is required: %w", ErrInvalidConfig))
	}

	if len(c.Mappings) == 0 {
		errs = append(errs, fmt.Errorf("at least one file-to-table mapping is required: %w", ErrInvalidConfig))
	}

	names := make(map[string]bool, len(c.Mappings))
	tables := make(map[string]bool, len(c.Mappings))
	for i, m := range c.Mappings {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("mapping %d has an empty file name: %w", i, ErrInvalidConfig))
		} else if names[m.Name] {
			errs = append(errs, fmt.Errorf("file %q is mapped more than once: %w", m.Name, ErrInvalidConfig))
		}
		if m.Table == "" {
			errs = append(errs, fmt.Errorf("mapping %d has an empty table name: %w", i, ErrInvalidConfig))
		} else if tables[m.Table] {
			errs = append(errs, fmt.Errorf("table %q is the target of more than one file: %w", m.Table, ErrInvalidConfig))
		}
		names[m.Name] = true
		tables[m.Table] = true
	}

	if c.Job.SourceFormat != SourceFormatCSV {
		errs = append(errs, fmt.Errorf("unsupported source format %q: %w", c.Job.SourceFormat, ErrInvalidConfig))
	}

	if c.Job.SkipLeadingRows < 0 {
		errs = append(errs, fmt.Errorf("skip leading rows cannot be negative: %w", ErrInvalidConfig))
	}

	switch c.Job.WriteDisposition {
	case WriteServiceDefault, WriteAppend, WriteTruncate, WriteEmpty:
	default:
		errs = append(errs, fmt.Errorf("unknown write disposition %q: %w", c.Job.WriteDisposition, ErrInvalidConfig))
	}

	if c.Staging.Prefix != "" && !c.Staging.Enabled() {
		errs = append(errs, fmt.Errorf("staging prefix requires a staging bucket: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
