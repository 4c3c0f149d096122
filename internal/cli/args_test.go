package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

func TestOptionalBasePath(t *testing.T) {
	cmd := &cobra.Command{
		Use: "load [base_path]",
	}

	t.Run("accepts no args", func(t *testing.T) {
		if err := OptionalBasePath(cmd, []string{}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("accepts one arg", func(t *testing.T) {
		if err := OptionalBasePath(cmd, []string{"./seeds"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("rejects two args as usage error", func(t *testing.T) {
		err := OptionalBasePath(cmd, []string{"a", "b"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts at most 1 arg") {
			t.Errorf("expected error to contain 'accepts at most 1 arg', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
		if code := bqseed.ExitCodeForError(err); code != bqseed.ExitUsageError {
			t.Errorf("expected exit code %d, got %d", bqseed.ExitUsageError, code)
		}
	})
}

func TestBasePathFromArgs(t *testing.T) {
	if got := basePathFromArgs(nil); got != bqseed.DefaultBasePath {
		t.Errorf("basePathFromArgs(nil) = %q, want %q", got, bqseed.DefaultBasePath)
	}
	if got := basePathFromArgs([]string{""}); got != bqseed.DefaultBasePath {
		t.Errorf("basePathFromArgs(\"\") = %q, want %q", got, bqseed.DefaultBasePath)
	}
	if got := basePathFromArgs([]string{"/data/seeds"}); got != "/data/seeds" {
		t.Errorf("basePathFromArgs() = %q, want /data/seeds", got)
	}
}
