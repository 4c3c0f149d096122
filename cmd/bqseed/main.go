package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/henri-ngl/learning-dbt/internal/cli"
	"github.com/henri-ngl/learning-dbt/pkg/bqseed"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(bqseed.ExitPanic)
		}
	}()

	if os.Getenv("BQSEED_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(bqseed.ExitCodeForError(err))
	}
}
