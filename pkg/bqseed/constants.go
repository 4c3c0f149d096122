package bqseed

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // All loads completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration or labels
	ExitClientError      = 11 // Failed to create the warehouse client
	ExitApprovalDenied   = 12 // User denied table truncation
	ExitJobFailed        = 13 // Load job reached a failed terminal state
	ExitFileAccess       = 14 // Source CSV missing or unreadable
	ExitSubmissionFailed = 15 // Load request rejected by the service
)

const (
	// DefaultProjectID is the BigQuery project used when none is configured.
	DefaultProjectID = "bigquerylearning-388012"

	// DefaultDatasetID is the BigQuery dataset used when none is configured.
	DefaultDatasetID = "dbtlearn"

	// DefaultBasePath is the directory that contains the resources directory.
	DefaultBasePath = "."

	// ResourcesDir is the directory under the base path holding the CSV files.
	ResourcesDir = "resources"

	// SourceExtension is appended to each logical file name.
	SourceExtension = ".csv"

	// DefaultSkipLeadingRows skips the single CSV header row.
	DefaultSkipLeadingRows = 1

	// JobIDPrefix prefixes every load job ID submitted by bqseed.
	JobIDPrefix = "bqseed_"

	// FileLabelKey is the job label carrying the logical file name.
	FileLabelKey = "bqseed-file"

	// DefaultForceApprovalCountdown is the countdown before a forced truncation proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second
)
