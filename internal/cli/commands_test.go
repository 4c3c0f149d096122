package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

func resetLoadFlags() {
	loadFlags = loadFlagValues{}
}

func writeSeed(t *testing.T, base, name, content string) {
	t.Helper()
	dir := filepath.Join(base, bqseed.ResourcesDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+bqseed.SourceExtension), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestLoadCmd_ArgsValidation_TooMany(t *testing.T) {
	err := loadCmd.Args(loadCmd, []string{"a", "b"})
	if err == nil {
		t.Fatal("Expected error for too many args")
	}
	if code := bqseed.ExitCodeForError(err); code != bqseed.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", bqseed.ExitUsageError, code, err)
	}
}

func TestLoadCmd_ArgsValidation_Optional(t *testing.T) {
	if err := loadCmd.Args(loadCmd, []string{}); err != nil {
		t.Errorf("Expected base path to be optional, got: %v", err)
	}
}

func TestLoadCmd_DryRunSucceeds(t *testing.T) {
	resetLoadFlags()
	clearLoadEnv(t)
	base := t.TempDir()
	writeSeed(t, base, "listings", "id,name\n1,a\n")
	writeSeed(t, base, "reviews", "listing_id,date\n1,2020-01-01\n")
	writeSeed(t, base, "hosts", "id,name\n1,h\n")
	loadFlags.dryRun = true

	if err := runLoad(loadCmd, []string{base}); err != nil {
		t.Fatalf("Expected dry run to succeed, got: %v", err)
	}
}

func TestLoadCmd_DryRunMissingFile(t *testing.T) {
	resetLoadFlags()
	clearLoadEnv(t)
	base := t.TempDir()
	writeSeed(t, base, "listings", "id,name\n1,a\n")
	loadFlags.dryRun = true

	err := runLoad(loadCmd, []string{base})
	if err == nil {
		t.Fatal("Expected error for missing seed files")
	}
	if !errors.Is(err, bqseed.ErrFileAccess) {
		t.Errorf("Expected ErrFileAccess, got: %v", err)
	}
	if code := bqseed.ExitCodeForError(err); code != bqseed.ExitFileAccess {
		t.Errorf("Expected exit code %d, got %d", bqseed.ExitFileAccess, code)
	}
}

func TestLoadCmd_InvalidLabel(t *testing.T) {
	resetLoadFlags()
	clearLoadEnv(t)
	loadFlags.labels = []string{"bad label=x"}
	loadFlags.dryRun = true

	err := runLoad(loadCmd, []string{t.TempDir()})
	if code := bqseed.ExitCodeForError(err); code != bqseed.ExitConfigError {
		t.Errorf("Expected exit code %d, got %d for: %v", bqseed.ExitConfigError, code, err)
	}
}

func TestLoadCmd_DuplicateTable(t *testing.T) {
	resetLoadFlags()
	clearLoadEnv(t)
	loadFlags.tables = []string{"listings=raw", "hosts=raw"}
	loadFlags.dryRun = true

	err := runLoad(loadCmd, []string{t.TempDir()})
	if !errors.Is(err, bqseed.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for duplicate destination, got: %v", err)
	}
}

func TestRootCmd_HasCommands(t *testing.T) {
	want := map[string]bool{"load": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command is missing %q", name)
		}
	}
}
