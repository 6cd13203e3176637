package fridge

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cruciblehq/chef/internal/archive"
	"github.com/cruciblehq/chef/internal/fsutil"
)

// unpack extracts a into a temp directory beside dest and renames it
// into place once complete, so an interrupted unpack never leaves dest
// half-extracted while still claiming Unpacked in the inventory (the
// inventory flag is only set after this returns successfully).
func (f *Fridge) unpack(ctx context.Context, a *archive.Archive, dest, label string) error {
	tmp := dest + ".tmp-" + uuid.NewString()
	if err := fsutil.MkdirAll(tmp); err != nil {
		return err
	}

	err := a.Unpack(ctx, tmp, func(p archive.Progress) {
		renderProgress(os.Stderr, label, p)
	})
	if err != nil {
		os.RemoveAll(tmp)
		return err
	}
	fmt.Fprintln(os.Stderr)

	if err := os.RemoveAll(dest); err != nil {
		os.RemoveAll(tmp)
		return err
	}
	if err := fsutil.MkdirAll(filepath.Dir(dest)); err != nil {
		os.RemoveAll(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.RemoveAll(tmp)
		return err
	}
	return nil
}

// renderProgress draws a 20-column progress bar in place, clipping the
// label to 15 characters, redrawn via carriage-return and erase-line.
func renderProgress(w io.Writer, label string, p archive.Progress) {
	total := p.Total.Files + p.Total.Directories + p.Total.Symlinks
	done := p.Done.Files + p.Done.Directories + p.Done.Symlinks

	percent := 0
	if total > 0 {
		percent = done * 100 / total
	}

	filled := percent / 5
	if filled > 20 {
		filled = 20
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(" ", 20-filled)

	name := label
	if len(name) > 15 {
		name = name[:15]
	}

	fmt.Fprintf(w, "\r\x1b[2K%-15s [%s] | %3d%%", name, bar, percent)
}
