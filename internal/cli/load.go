package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/henri-ngl/learning-dbt/internal/files/filesystem"
	"github.com/henri-ngl/learning-dbt/internal/files/scanner"
	"github.com/henri-ngl/learning-dbt/internal/logging"
	"github.com/henri-ngl/learning-dbt/internal/services"
	"github.com/henri-ngl/learning-dbt/internal/tui"
	"github.com/henri-ngl/learning-dbt/internal/ui"
	"github.com/henri-ngl/learning-dbt/internal/warehouse"
	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

var loadCmd = &cobra.Command{
	Use:   "load [base_path]",
	Short: "Load the seed CSV files into BigQuery",
	Long: `Load submits one BigQuery load job per CSV file and waits for each job
before starting the next.

For every table mapping, in order:
1. Opens <base_path>/resources/<name>.csv (base_path defaults to ".")
2. Submits a CSV load job into <project>.<dataset>.<table>
   (header row skipped, schema autodetected)
3. Waits until the job finishes; the first failure stops the run

Default mappings:
  listings -> raw_listings
  reviews  -> raw_reviews
  hosts    -> raw_hosts

Settings precedence: flag > environment > bqseed.yaml > defaults.
  --project           $BQSEED_PROJECT
  --dataset           $BQSEED_DATASET
  --location          $BQSEED_LOCATION
  --staging-bucket    $BQSEED_STAGING_BUCKET
  --endpoint          $BIGQUERY_EMULATOR_HOST

Credentials come from Application Default Credentials unless
--credentials-file names a service account key.

Examples:
  # Load the default seeds from the current directory
  bqseed load

  # Replace the table contents (asks to type the dataset name)
  bqseed load ./seeds --write-disposition truncate

  # Custom mapping, staged through Cloud Storage
  bqseed load ./seeds --table listings=raw_listings \
    --staging-bucket my-bucket --staging-prefix seeds

  # Show what would be loaded
  bqseed load ./seeds --dry-run`,
	Args:              OptionalBasePath,
	ValidArgsFunction: completeDirectories,
	RunE:              runLoad,
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadFlags.project, "project", "",
		"BigQuery project ID\n"+
			"Precedence: --project > $BQSEED_PROJECT > bqseed.yaml > "+bqseed.DefaultProjectID)
	loadCmd.Flags().StringVar(&loadFlags.dataset, "dataset", "",
		"Destination dataset\n"+
			"Precedence: --dataset > $BQSEED_DATASET > bqseed.yaml > "+bqseed.DefaultDatasetID)
	loadCmd.Flags().StringVar(&loadFlags.location, "location", "",
		"Dataset location for the load jobs (e.g. US, EU)")

	loadCmd.Flags().StringArrayVar(&loadFlags.tables, "table", nil,
		"File to table mapping as name=table (repeatable, loaded in the order given)\n"+
			"Replaces the default and bqseed.yaml mappings\n"+
			"Example: --table listings=raw_listings --table hosts=raw_hosts")
	loadCmd.Flags().StringVar(&loadFlags.writeDisposition, "write-disposition", "",
		"What to do with existing table data: append|truncate|empty\n"+
			"(default: BigQuery's default, which appends)\n"+
			"truncate requires confirmation unless --force is used")
	loadCmd.Flags().BoolVar(&loadFlags.force, "force", false,
		"Skip the interactive confirmation before truncating tables")

	loadCmd.Flags().StringArrayVar(&loadFlags.labels, "label", nil,
		"Job label as key=value (repeatable)\n"+
			"Lowercase letters, digits, '_' and '-'; keys start with a letter")

	loadCmd.Flags().StringVar(&loadFlags.stagingBucket, "staging-bucket", "",
		"Upload each file to this Cloud Storage bucket and load from there")
	loadCmd.Flags().StringVar(&loadFlags.stagingPrefix, "staging-prefix", "",
		"Object name prefix inside the staging bucket")

	loadCmd.Flags().StringVar(&loadFlags.credentialsFile, "credentials-file", "",
		"Service account key file (default: Application Default Credentials)")
	loadCmd.Flags().StringVar(&loadFlags.endpoint, "endpoint", "",
		"BigQuery API endpoint override, e.g. a local emulator\n"+
			"Authentication is disabled when set")

	loadCmd.Flags().DurationVar(&loadFlags.timeout, "timeout", 0,
		"Upper bound for the whole run (default: no limit)\n"+
			"Examples: 30s, 5m, 1h30m")
	loadCmd.Flags().BoolVar(&loadFlags.dryRun, "dry-run", false,
		"Check the source files and print the plan without contacting BigQuery")

	_ = loadCmd.RegisterFlagCompletionFunc("write-disposition", completeWriteDispositions)
	_ = loadCmd.RegisterFlagCompletionFunc("credentials-file", completeCredentialFiles)
}

func runLoad(cmd *cobra.Command, args []string) error {
	basePath := basePathFromArgs(args)
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	files := filesystem.NewOSFileSystem()
	cfg, err := buildLoadConfig(files, basePath, loadFlags, cmd.Flags().Changed("timeout"), logger)
	if err != nil {
		return err
	}
	cfg.Verbose = verbose

	var approver bqseed.Approver
	if cfg.Force {
		approver = ui.NewForcedApprover(verbose)
	} else {
		approver = ui.NewInteractiveApprover(verbose)
	}

	loader := services.NewLoadService(
		warehouse.Factory,
		files,
		approver,
		logger,
	).WithTracker(tui.NewSpinnerTracker()).WithInventory(scanner.NewScanner(files))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	if err := loader.Run(ctx, cfg); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	return nil
}
