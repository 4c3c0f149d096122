package bqseed

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := loader.Run(ctx, config)
//	if errors.Is(err, bqseed.ErrJobFailed) {
//	    // The service accepted the job but the load failed
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFileAccess indicates a source file is missing or unreadable.
	ErrFileAccess = errors.New("file access failed")

	// ErrSubmission indicates the service rejected the load request.
	ErrSubmission = errors.New("load submission rejected")

	// ErrJobFailed indicates the job was accepted but terminated unsuccessfully.
	ErrJobFailed = errors.New("load job failed")

	// ErrClientFailed indicates the warehouse client could not be created.
	ErrClientFailed = errors.New("warehouse client failed")

	// ErrApprovalDenied indicates the user denied approval for truncating tables.
	ErrApprovalDenied = errors.New("approval denied")
)

// LoadError describes the failure of one file-to-table load.
// It unwraps to both its Kind sentinel and the underlying cause.
type LoadError struct {
	Name  string // logical file name
	Table string // fully-qualified destination table
	Path  string // resolved source path
	Kind  error  // ErrFileAccess, ErrSubmission or ErrJobFailed
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %v", e.Kind, e.Path, e.Table, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// usagePatterns are message fragments produced by cobra for CLI misuse.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts at most",
	"accepts 1 arg(s)",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrFileAccess):
		return ExitFileAccess
	case errors.Is(err, ErrSubmission):
		return ExitSubmissionFailed
	case errors.Is(err, ErrJobFailed):
		return ExitJobFailed
	case errors.Is(err, ErrClientFailed):
		return ExitClientError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	}

	errStr := err.Error()
	for _, p := range usagePatterns {
		if strings.Contains(errStr, p) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
