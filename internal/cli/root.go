package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/cruciblehq/chef/internal"
)

var logLevel = new(slog.LevelVar)

// RootCmd is the root command for the chef CLI.
var RootCmd struct {
	Quiet   bool       `short:"q" help:"Suppress informational output."`
	Verbose bool       `short:"v" help:"Enable verbose output."`
	Debug   bool       `short:"d" help:"Enable debug output."`

	Build   BuildCmd   `cmd:"" help:"Run a recipe's build steps."`
	Publish PublishCmd `cmd:"" help:"Push a built output tree to a registry."`
	Clean   CleanCmd   `cmd:"" help:"Remove .oven and .fridge state under the current directory."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Execute parses arguments, configures logging, and runs the selected
// subcommand. The context bound for subcommands is cancelled on
// SIGINT/SIGTERM so a step in progress can leave scratch/checkpoint
// state well-formed.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Reproducible package-building toolchain.\n\nRuns a recipe's configure/build/script steps inside a per-recipe sandbox."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// configureLogger reconfigures the global logger's level based on CLI
// flags (falling back to build-time linker-flag defaults).
func configureLogger() {
	debug := RootCmd.Debug || internal.IsDebug()
	quiet := RootCmd.Quiet || internal.IsQuiet()

	switch {
	case debug:
		logLevel.Set(slog.LevelDebug)
	case quiet:
		logLevel.Set(slog.LevelWarn)
	default:
		logLevel.Set(slog.LevelInfo)
	}
}

// NewLogger builds the process's default logger, seeded from
// build-time linker-flag defaults. Flags parsed by Execute adjust its
// level in place via the shared LevelVar.
func NewLogger() *slog.Logger {
	if internal.IsDebug() {
		logLevel.Set(slog.LevelDebug)
	} else if internal.IsQuiet() {
		logLevel.Set(slog.LevelWarn)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler).With("cmd", internal.Name)
}
