package bqseed_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

func validConfig() bqseed.LoadConfig {
	return bqseed.LoadConfig{
		BasePath:  "/data",
		ProjectID: "proj",
		DatasetID: "ds",
		Mappings:  bqseed.DefaultMappings(),
		Job:       bqseed.DefaultJobConfiguration(),
	}
}

func TestLoadConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *bqseed.LoadConfig)
		wantError bool
	}{
		{name: "valid config", mutate: func(c *bqseed.LoadConfig) {}},
		{
			name:   "valid with staging",
			mutate: func(c *bqseed.LoadConfig) { c.Staging = bqseed.StagingConfig{Bucket: "b", Prefix: "seeds"} },
		},
		{name: "missing base path", mutate: func(c *bqseed.LoadConfig) { c.BasePath = "" }, wantError: true},
		{name: "missing project", mutate: func(c *bqseed.LoadConfig) { c.ProjectID = "" }, wantError: true},
		{name: "missing dataset", mutate: func(c *bqseed.LoadConfig) { c.DatasetID = "" }, wantError: true},
		{name: "no mappings", mutate: func(c *bqseed.LoadConfig) { c.Mappings = nil }, wantError: true},
		{
			name: "duplicate table",
			mutate: func(c *bqseed.LoadConfig) {
				c.Mappings = []bqseed.FileTableMapping{{Name: "a", Table: "t"}, {Name: "b", Table: "t"}}
			},
			wantError: true,
		},
		{
			name: "duplicate file",
			mutate: func(c *bqseed.LoadConfig) {
				c.Mappings = []bqseed.FileTableMapping{{Name: "a", Table: "t1"}, {Name: "a", Table: "t2"}}
			},
			wantError: true,
		},
		{
			name:      "empty table name",
			mutate:    func(c *bqseed.LoadConfig) { c.Mappings = []bqseed.FileTableMapping{{Name: "a"}} },
			wantError: true,
		},
		{name: "negative skip rows", mutate: func(c *bqseed.LoadConfig) { c.Job.SkipLeadingRows = -1 }, wantError: true},
		{name: "unknown format", mutate: func(c *bqseed.LoadConfig) { c.Job.SourceFormat = "AVRO" }, wantError: true},
		{name: "unknown disposition", mutate: func(c *bqseed.LoadConfig) { c.Job.WriteDisposition = "WRITE_SOMETIMES" }, wantError: true},
		{name: "prefix without bucket", mutate: func(c *bqseed.LoadConfig) { c.Staging.Prefix = "x" }, wantError: true},
		{name: "negative timeout", mutate: func(c *bqseed.LoadConfig) { c.Timeout = -time.Second }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantError {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				if !errors.Is(err, bqseed.ErrInvalidConfig) {
					t.Errorf("Validate() error should wrap ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfig_Validate_ReportsAllFailures(t *testing.T) {
	cfg := bqseed.LoadConfig{Job: bqseed.DefaultJobConfiguration()}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"BasePath", "ProjectID", "DatasetID", "mapping"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestDefaultMappings_Order(t *testing.T) {
	got := bqseed.DefaultMappings()
	want := []bqseed.FileTableMapping{
		{Name: "listings", Table: "raw_listings"},
		{Name: "reviews", Table: "raw_reviews"},
		{Name: "hosts", Table: "raw_hosts"},
	}
	if len(got) != len(want) {
		t.Fatalf("DefaultMappings() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DefaultMappings()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDefaultJobConfiguration(t *testing.T) {
	job := bqseed.DefaultJobConfiguration()
	if job.SourceFormat != bqseed.SourceFormatCSV {
		t.Errorf("SourceFormat = %q, want CSV", job.SourceFormat)
	}
	if job.SkipLeadingRows != 1 {
		t.Errorf("SkipLeadingRows = %d, want 1", job.SkipLeadingRows)
	}
	if !job.Autodetect {
		t.Error("Autodetect should be enabled")
	}
	// Re-running appends: BigQuery's load default is WRITE_APPEND and the
	// default configuration must not override it.
	if job.WriteDisposition != bqseed.WriteServiceDefault {
		t.Errorf("WriteDisposition = %q, want service default", job.WriteDisposition)
	}
}

func TestLoadConfig_SourcePathAndDestination(t *testing.T) {
	cfg := validConfig()
	m := bqseed.FileTableMapping{Name: "reviews", Table: "raw_reviews"}

	wantPath := filepath.Join("/data", "resources", "reviews.csv")
	if got := cfg.SourcePath(m); got != wantPath {
		t.Errorf("SourcePath() = %q, want %q", got, wantPath)
	}
	if got := cfg.Destination(m).String(); got != "proj.ds.raw_reviews" {
		t.Errorf("Destination() = %q, want proj.ds.raw_reviews", got)
	}
}

func TestParseWriteDisposition(t *testing.T) {
	tests := []struct {
		in      string
		want    bqseed.WriteDisposition
		wantErr bool
	}{
		{"", bqseed.WriteServiceDefault, false},
		{"append", bqseed.WriteAppend, false},
		{"Truncate", bqseed.WriteTruncate, false},
		{"WRITE_EMPTY", bqseed.WriteEmpty, false},
		{"replace", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := bqseed.ParseWriteDisposition(tt.in)
			if tt.wantErr {
				if !errors.Is(err, bqseed.ErrInvalidConfig) {
					t.Errorf("ParseWriteDisposition(%q) error = %v, want ErrInvalidConfig", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseWriteDisposition(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}
