package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the dataset name
// to confirm truncating the destination tables.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading stdin and writing stderr.
func NewInteractiveApprover(verbose bool) bqseed.Approver {
	return &InteractiveApprover{verbose: verbose, input: os.Stdin, output: os.Stderr}
}

// RequestApproval prompts the user to type the dataset name to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, dataset string, tables []string) (bool, error) {
	fmt.Fprintf(a.output, "\nWARNING: You are about to TRUNCATE %d table(s) in dataset '%s':\n", len(tables), dataset)
	for _, t := range tables {
		fmt.Fprintf(a.output, "  - %s\n", t)
	}
	fmt.Fprintln(a.output, "Existing rows will be replaced; this will permanently delete the current table data!")
	fmt.Fprintf(a.output, "\nTo confirm, type the dataset name '%s' and press Enter: ", dataset)

	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == dataset {
			fmt.Fprintln(a.output, "Confirmed. Proceeding with truncating load...")
			return true, nil
		}
		fmt.Fprintf(a.output, "Input '%s' does not match dataset name '%s'. Operation cancelled.\n", input, dataset)
		return false, nil
	}
}

var _ bqseed.Approver = (*InteractiveApprover)(nil)
