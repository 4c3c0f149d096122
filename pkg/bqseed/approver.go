package bqseed

import "context"

// Approver handles user interaction before destructive operations,
// namely loading with WRITE_TRUNCATE which replaces existing table data.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the dataset name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before truncating the
	// destination tables of the given dataset.
	RequestApproval(ctx context.Context, dataset string, tables []string) (bool, error)
}
