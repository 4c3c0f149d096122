package testinfra

import (
	"context"
	"fmt"

	tcbigquery "github.com/testcontainers/testcontainers-go/modules/gcloud/bigquery"
)

const (
	BigQueryEmulatorImage = "ghcr.io/goccy/bigquery-emulator:0.6.1"
	EmulatorProjectID     = "bqseed-test"
)

// EmulatorContainer is a running BigQuery emulator.
type EmulatorContainer struct {
	*tcbigquery.Container
	Endpoint  string
	ProjectID string
}

// StartBigQueryEmulator starts the emulator with projectID pre-created.
// Endpoint is an http URL suitable for option.WithEndpoint.
func StartBigQueryEmulator(ctx context.Context, projectID string) (*EmulatorContainer, error) {
	ctr, err := tcbigquery.Run(ctx,
		BigQueryEmulatorImage,
		tcbigquery.WithProjectID(projectID),
	)
	if err != nil {
		return nil, fmt.Errorf("start bigquery emulator: %w", err)
	}

	return &EmulatorContainer{
		Container: ctr,
		Endpoint:  ctr.URI(),
		ProjectID: ctr.ProjectID(),
	}, nil
}
