package cli

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/cruciblehq/chef/internal/fridge"
	"github.com/cruciblehq/chef/internal/oven"
)

// CleanCmd represents the 'chef clean' command.
type CleanCmd struct{}

// Run discards every scratch tree and checkpoint under .oven, and
// purges the fridge's unpacked prep tree.
func (c *CleanCmd) Run(ctx context.Context) error {
	driver := oven.NewContext()
	if err := driver.Initialize(oven.Params{
		TargetPlatform:     runtime.GOOS,
		TargetArchitecture: runtime.GOARCH,
	}); err != nil {
		return err
	}
	defer driver.Cleanup()

	if err := driver.Clean(); err != nil {
		return err
	}
	slog.Info("cleaned .oven")

	fr, err := fridge.Initialize(fridge.Options{Platform: runtime.GOOS, Architecture: runtime.GOARCH})
	if err != nil {
		return err
	}
	defer fr.Cleanup()

	if err := fr.Purge(); err != nil {
		return err
	}
	slog.Info("purged .fridge prep tree")

	return nil
}
