package main

import (
	"log/slog"
	"os"

	"github.com/cruciblehq/chef/internal"
	"github.com/cruciblehq/chef/internal/cli"
)

// Builds and publishes chef packages from a recipe manifest.
//
// Initializes logging, parses flags, and dispatches the selected
// subcommand. A context derived from process signals is threaded
// through every subcommand so a step in progress can leave scratch
// and checkpoint state well-formed on Ctrl-C.
func main() {
	slog.SetDefault(cli.NewLogger())

	slog.Debug("build", "version", internal.VersionString())
	slog.Debug("chef invoked", "pid", os.Getpid(), "cwd", cwd(), "args", os.Args)

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	dir, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return dir
}
