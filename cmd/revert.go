package cmd

import (
	"flag"
	"fmt"
	"os"

	"perfbot/internal/backup"
	"perfbot/internal/format"
)

// RunRevert handles the revert subcommand: permanently restore a file's
// pre-optimization content from its backup.
func RunRevert(args []string) {
	fs := flag.NewFlagSet("perfbot revert", flag.ExitOnError)
	fs.Parse(args)

	file := fs.Arg(0)
	if file == "" {
		fmt.Fprintln(os.Stderr, "Usage: perfbot revert <file>")
		os.Exit(1)
	}

	paths := mustPaths()
	abs := paths.Resolve(file)

	store := backup.NewStore()
	if !store.Track(abs) {
		fatalf("no backup found for %s", file)
	}

	// The displaced optimized content is intentionally dropped: revert is
	// permanent, not a temporary swap.
	if _, err := store.RestoreOriginal(abs); err != nil {
		fatalf("revert failed: %v", err)
	}

	fmt.Printf("%sReverted.%s %s now holds its pre-optimization content.\n",
		format.Green, format.Reset, file)
}
