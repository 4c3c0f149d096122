package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type TableConfig struct {
	File  string `yaml:"file"`
	Table string `yaml:"table"`
}

type JobConfig struct {
	SkipLeadingRows  *int64 `yaml:"skip_leading_rows,omitempty"`
	Autodetect       *bool  `yaml:"autodetect,omitempty"`
	WriteDisposition string `yaml:"write_disposition,omitempty"`
}

type StagingConfig struct {
	Bucket string `yaml:"bucket,omitempty"`
	Prefix string `yaml:"prefix,omitempty"`
}

type ProjectConfig struct {
	Project         string            `yaml:"project"`
	Dataset         string            `yaml:"dataset"`
	Location        string            `yaml:"location,omitempty"`
	CredentialsFile string            `yaml:"credentials_file,omitempty"`
	Endpoint        string            `yaml:"endpoint,omitempty"`
	Tables          []TableConfig     `yaml:"tables,omitempty"`
	Job             JobConfig         `yaml:"job,omitempty"`
	Staging         StagingConfig     `yaml:"staging,omitempty"`
	Labels          map[string]string `yaml:"labels,omitempty"`
	Timeout         string            `yaml:"timeout,omitempty"`
}

const ConfigFileName = "bqseed.yaml"

// FileReader reads whole files. filesystem.FileSystemProvider satisfies it.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// Load reads bqseed.yaml from basePath.
func Load(files FileReader, basePath string) (*ProjectConfig, error) {
	return LoadFile(files, filepath.Join(basePath, ConfigFileName))
}

// LoadFile reads a project config from an explicit path.
func LoadFile(files FileReader, configPath string) (*ProjectConfig, error) {
	data, err := files.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	return &cfg, nil
}

// Mappings returns the configured tables in file order, or nil when none are set.
func (c *ProjectConfig) Mappings() []bqseed.FileTableMapping {
	if len(c.Tables) == 0 {
		return nil
	}
	mappings := make([]bqseed.FileTableMapping, 0, len(c.Tables))
	for _, t := range c.Tables {
		mappings = append(mappings, bqseed.FileTableMapping{Name: t.File, Table: t.Table})
	}
	return mappings
}

// ApplyJob overlays the job settings present in the file onto job.
func (c *ProjectConfig) ApplyJob(job bqseed.JobConfiguration) (bqseed.JobConfiguration, error) {
	if c.Job.SkipLeadingRows != nil {
		job.SkipLeadingRows = *c.Job.SkipLeadingRows
	}
	if c.Job.Autodetect != nil {
		job.Autodetect = *c.Job.Autodetect
	}
	if c.Job.WriteDisposition != "" {
		wd, err := bqseed.ParseWriteDisposition(c.Job.WriteDisposition)
		if err != nil {
			return job, fmt.Errorf("invalid job.write_disposition in %s: %w", ConfigFileName, err)
		}
		job.WriteDisposition = wd
	}
	return job, nil
}
