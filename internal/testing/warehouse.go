package testing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/henri-ngl/learning-dbt/internal/logging"
	"github.com/henri-ngl/learning-dbt/internal/services"
	"github.com/henri-ngl/learning-dbt/internal/testinfra"
	"github.com/henri-ngl/learning-dbt/internal/warehouse"
	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

const (
	// EnvTestEndpoint points integration tests at an already running emulator.
	EnvTestEndpoint = "BQSEED_TEST_ENDPOINT"
	// EnvTestProject overrides the project used with EnvTestEndpoint.
	EnvTestProject = "BQSEED_TEST_PROJECT"
	// EnvTestEmulator=1 lets integration tests start the emulator container.
	EnvTestEmulator = "BQSEED_TEST_EMULATOR"
)

var (
	emulatorOnce     sync.Once
	emulatorEndpoint string
	emulatorErr      error
)

func getOrStartEmulator() (string, error) {
	emulatorOnce.Do(func() {
		ctr, err := testinfra.StartBigQueryEmulator(context.Background(), testinfra.EmulatorProjectID)
		if err != nil {
			emulatorErr = err
			return
		}
		emulatorEndpoint = ctr.Endpoint
	})
	return emulatorEndpoint, emulatorErr
}

// TestWarehouse addresses the emulator used by integration tests.
type TestWarehouse struct {
	Endpoint  string
	ProjectID string
}

// ClientConfig returns the client settings that target the emulator.
func (w TestWarehouse) ClientConfig() bqseed.ClientConfig {
	return bqseed.ClientConfig{Endpoint: w.Endpoint}
}

// GetTestWarehouse returns the emulator to test against.
// Priority: BQSEED_TEST_ENDPOINT > container when BQSEED_TEST_EMULATOR=1 > skip test.
func GetTestWarehouse(t *testing.T) TestWarehouse {
	t.Helper()

	project := os.Getenv(EnvTestProject)
	if project == "" {
		project = testinfra.EmulatorProjectID
	}

	if endpoint := os.Getenv(EnvTestEndpoint); endpoint != "" {
		return TestWarehouse{Endpoint: endpoint, ProjectID: project}
	}

	if os.Getenv(EnvTestEmulator) != "1" {
		t.Skipf("%s not set and %s!=1", EnvTestEndpoint, EnvTestEmulator)
	}

	endpoint, err := getOrStartEmulator()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", EnvTestEndpoint, err)
	}
	return TestWarehouse{Endpoint: endpoint, ProjectID: testinfra.EmulatorProjectID}
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireWarehouse combines SkipIfShort and GetTestWarehouse for convenience.
func RequireWarehouse(t *testing.T) TestWarehouse {
	t.Helper()

	SkipIfShort(t)
	return GetTestWarehouse(t)
}

// NewClient opens a BigQuery client against the emulator, closed on cleanup.
func (w TestWarehouse) NewClient(t *testing.T) *bigquery.Client {
	t.Helper()

	client, err := bigquery.NewClient(context.Background(), w.ProjectID, warehouse.ClientOptions(w.ClientConfig())...)
	if err != nil {
		t.Fatalf("Failed to create emulator client: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

// CreateTestDataset creates datasetID and deletes it with its tables on cleanup.
func (w TestWarehouse) CreateTestDataset(t *testing.T, datasetID string) {
	t.Helper()

	client := w.NewClient(t)
	ds := client.Dataset(datasetID)
	if err := ds.Create(context.Background(), nil); err != nil {
		t.Fatalf("Failed to create test dataset %s: %v", datasetID, err)
	}
	t.Logf("✓ Created test dataset %s", datasetID)

	t.Cleanup(func() {
		if err := ds.DeleteWithContents(context.Background()); err != nil {
			t.Logf("Warning: Failed to delete dataset %s: %v", datasetID, err)
		}
	})
}

// CountRows returns the number of rows in datasetID.tableID.
func (w TestWarehouse) CountRows(t *testing.T, datasetID, tableID string) int64 {
	t.Helper()

	client := w.NewClient(t)
	q := client.Query(fmt.Sprintf("SELECT COUNT(*) FROM `%s.%s.%s`", w.ProjectID, datasetID, tableID))
	it, err := q.Read(context.Background())
	if err != nil {
		t.Fatalf("Failed to count rows in %s.%s: %v", datasetID, tableID, err)
	}

	var row []bigquery.Value
	if err := it.Next(&row); err != nil {
		if errors.Is(err, iterator.Done) {
			t.Fatalf("COUNT(*) on %s.%s returned no rows", datasetID, tableID)
		}
		t.Fatalf("Failed to read row count: %v", err)
	}
	count, ok := row[0].(int64)
	if !ok {
		t.Fatalf("unexpected COUNT(*) type %T", row[0])
	}
	return count
}

// TableExists reports whether datasetID.tableID exists.
func (w TestWarehouse) TableExists(t *testing.T, datasetID, tableID string) bool {
	t.Helper()

	client := w.NewClient(t)
	_, err := client.Dataset(datasetID).Table(tableID).Metadata(context.Background())
	return err == nil
}

// testLogWriter forwards log output to t.Log.
type testLogWriter struct {
	t *testing.T
}

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// NewTestLoader creates a LoadService wired to the real warehouse factory,
// a force-approving approver and a logger writing to the test log.
func NewTestLoader(t *testing.T, files bqseed.FileOpener) *services.LoadService {
	t.Helper()

	logger := logging.NewWriterLogger(testLogWriter{t: t}, testing.Verbose())
	return services.NewLoadService(warehouse.Factory, files, &ForceApprover{}, logger)
}

// ForceApprover is a test approver that always approves truncation.
type ForceApprover struct{}

// RequestApproval always returns true.
func (a *ForceApprover) RequestApproval(ctx context.Context, dataset string, tables []string) (bool, error) {
	return true, nil
}
