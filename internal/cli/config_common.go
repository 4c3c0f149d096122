package cli

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/henri-ngl/learning-dbt/internal/config"
	"github.com/henri-ngl/learning-dbt/internal/params"
	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

// Environment variables consulted between flags and bqseed.yaml.
const (
	EnvProject       = "BQSEED_PROJECT"
	EnvDataset       = "BQSEED_DATASET"
	EnvLocation      = "BQSEED_LOCATION"
	EnvStagingBucket = "BQSEED_STAGING_BUCKET"
	EnvEmulatorHost  = "BIGQUERY_EMULATOR_HOST"
)

// loadFlagValues holds the flag values of the load command.
type loadFlagValues struct {
	project          string
	dataset          string
	location         string
	tables           []string
	writeDisposition string
	force            bool
	labels           []string
	stagingBucket    string
	stagingPrefix    string
	credentialsFile  string
	endpoint         string
	timeout          time.Duration
	dryRun           bool
}

// resolveSetting applies the precedence flag > environment > bqseed.yaml > fallback.
// Empty values are treated as unset at every level.
func resolveSetting(flagValue, envKey, fileValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if envKey != "" {
		if v := os.Getenv(envKey); v != "" {
			return v
		}
	}
	if fileValue != "" {
		return fileValue
	}
	return fallback
}

// normalizeEndpoint turns a bare host:port (the emulator convention) into an HTTP URL.
func normalizeEndpoint(endpoint string) string {
	if endpoint == "" || strings.Contains(endpoint, "://") {
		return endpoint
	}
	return "http://" + endpoint
}

// loadProjectConfig loads godotenv and project configuration.
// Returns an empty config if bqseed.yaml does not exist.
func loadProjectConfig(files config.FileReader, basePath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(files, basePath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return &config.ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, bqseed.ErrInvalidConfig, err)
	}
	return projectCfg, nil
}

// buildLoadConfig resolves a LoadConfig from flags, environment and bqseed.yaml.
// bqseed.yaml is read through files. timeoutChanged reports whether --timeout
// was given explicitly.
func buildLoadConfig(
	files config.FileReader,
	basePath string,
	flags loadFlagValues,
	timeoutChanged bool,
	logger bqseed.Logger,
) (bqseed.LoadConfig, error) {
	projectCfg, err := loadProjectConfig(files, basePath)
	if err != nil {
		return bqseed.LoadConfig{}, err
	}

	mappings, err := resolveMappings(projectCfg, flags.tables)
	if err != nil {
		return bqseed.LoadConfig{}, err
	}

	job, err := resolveJob(projectCfg, flags.writeDisposition)
	if err != nil {
		return bqseed.LoadConfig{}, err
	}

	labels, err := resolveLabels(projectCfg, flags.labels)
	if err != nil {
		return bqseed.LoadConfig{}, err
	}

	timeout, err := resolveEffectiveTimeout(projectCfg, flags.timeout, timeoutChanged)
	if err != nil {
		return bqseed.LoadConfig{}, err
	}

	cfg := bqseed.LoadConfig{
		BasePath:  basePath,
		ProjectID: resolveSetting(flags.project, EnvProject, projectCfg.Project, bqseed.DefaultProjectID),
		DatasetID: resolveSetting(flags.dataset, EnvDataset, projectCfg.Dataset, bqseed.DefaultDatasetID),
		Location:  resolveSetting(flags.location, EnvLocation, projectCfg.Location, ""),
		Mappings:  mappings,
		Job:       job,
		Staging: bqseed.StagingConfig{
			Bucket: resolveSetting(flags.stagingBucket, EnvStagingBucket, projectCfg.Staging.Bucket, ""),
			Prefix: resolveSetting(flags.stagingPrefix, "", projectCfg.Staging.Prefix, ""),
		},
		Client: bqseed.ClientConfig{
			CredentialsFile: resolveSetting(flags.credentialsFile, "", projectCfg.CredentialsFile, ""),
			Endpoint:        normalizeEndpoint(resolveSetting(flags.endpoint, EnvEmulatorHost, projectCfg.Endpoint, "")),
		},
		Labels:  labels,
		Timeout: timeout,
		Force:   flags.force,
		DryRun:  flags.dryRun,
	}

	logResolvedConfig(logger, cfg)
	return cfg, nil
}

// resolveMappings prefers --table pairs, then bqseed.yaml tables, then the defaults.
func resolveMappings(projectCfg *config.ProjectConfig, tablePairs []string) ([]bqseed.FileTableMapping, error) {
	if len(tablePairs) > 0 {
		return params.ParseMappings(tablePairs)
	}
	if m := projectCfg.Mappings(); m != nil {
		return m, nil
	}
	return bqseed.DefaultMappings(), nil
}

// resolveJob overlays bqseed.yaml job settings and the --write-disposition flag
// onto the default job configuration.
func resolveJob(projectCfg *config.ProjectConfig, writeDisposition string) (bqseed.JobConfiguration, error) {
	job, err := projectCfg.ApplyJob(bqseed.DefaultJobConfiguration())
	if err != nil {
		return job, err
	}
	if writeDisposition != "" {
		wd, err := bqseed.ParseWriteDisposition(writeDisposition)
		if err != nil {
			return job, fmt.Errorf("invalid --write-disposition: %w", err)
		}
		job.WriteDisposition = wd
	}
	return job, nil
}

// resolveLabels merges bqseed.yaml labels with --label pairs; CLI values win.
func resolveLabels(projectCfg *config.ProjectConfig, labelPairs []string) (map[string]string, error) {
	labels := make(map[string]string)
	maps.Copy(labels, projectCfg.Labels)

	cliLabels, err := params.ParseKeyValuePairs(labelPairs)
	if err != nil {
		return nil, err
	}
	maps.Copy(labels, cliLabels)

	if err := params.ValidateLabels(labels); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, nil
	}
	return labels, nil
}

// resolveEffectiveTimeout returns the effective timeout, preferring bqseed.yaml if the flag wasn't set.
func resolveEffectiveTimeout(projectCfg *config.ProjectConfig, flagTimeout time.Duration, flagChanged bool) (time.Duration, error) {
	if projectCfg.Timeout != "" && !flagChanged {
		parsed, err := time.ParseDuration(projectCfg.Timeout)
		if err != nil {
			return 0, fmt.Errorf("invalid timeout in %s: %w: %w", config.ConfigFileName, bqseed.ErrInvalidConfig, err)
		}
		return parsed, nil
	}
	return flagTimeout, nil
}

func logResolvedConfig(logger bqseed.Logger, cfg bqseed.LoadConfig) {
	logger.Verbose("Configuration resolved:")
	logger.Verbose("  Project: %s", cfg.ProjectID)
	logger.Verbose("  Dataset: %s", cfg.DatasetID)
	if cfg.Location != "" {
		logger.Verbose("  Location: %s", cfg.Location)
	}
	if cfg.Client.Endpoint != "" {
		logger.Verbose("  Endpoint: %s", cfg.Client.Endpoint)
	}
	if cfg.Staging.Enabled() {
		logger.Verbose("  Staging: gs://%s/%s", cfg.Staging.Bucket, cfg.Staging.Prefix)
	}
	wd := string(cfg.Job.WriteDisposition)
	if wd == "" {
		wd = "service default"
	}
	logger.Verbose("  Write disposition: %s", wd)
	if cfg.Timeout > 0 {
		logger.Verbose("  Timeout: %s", cfg.Timeout)
	}
}
