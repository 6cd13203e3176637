package archive

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Counts tallies the entries in an archive by kind.
type Counts struct {
	Files       int
	Directories int
	Symlinks    int
}

// Progress reports unpack advancement: entries completed so far versus
// the archive's total entry counts.
type Progress struct {
	Done  Counts
	Total Counts
}

// ProgressFunc is called after each entry is unpacked.
type ProgressFunc func(Progress)

// Archive is an opened, tar+zstd-compressed content archive. Opening
// scans the archive once to establish entry counts; Unpack re-reads it
// from the start to extract.
type Archive struct {
	path   string
	counts Counts
}

// Open scans path and returns an [Archive] describing its contents.
// The archive is not held open between calls; Open only validates that
// path can be read as a tar+zstd stream and records its entry counts.
func Open(path string) (*Archive, error) {
	counts, err := scan(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}
	return &Archive{path: path, counts: counts}, nil
}

// Counts returns the archive's file/directory/symlink counts.
func (a *Archive) Counts() Counts {
	return a.counts
}

// Close releases any resources held by the archive. Archive does not
// keep file handles open between calls, so Close is currently a no-op,
// but callers should still call it to pair with Open per the archive
// interface contract.
func (a *Archive) Close() error {
	return nil
}

// Unpack extracts every entry into dest, creating directories as
// needed, and invokes progress after each entry if non-nil.
func (a *Archive) Unpack(ctx context.Context, dest string, progress ProgressFunc) error {
	f, err := os.Open(a.path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnpack, err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnpack, err)
	}
	defer zr.Close()

	tr := tar.NewReader(zr)
	var done Counts

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnpack, err)
		}

		target := filepath.Join(dest, hdr.Name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("%w: %v", ErrUnpack, err)
			}
			done.Directories++
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("%w: %v", ErrUnpack, err)
			}
			_ = os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return fmt.Errorf("%w: %v", ErrUnpack, err)
			}
			done.Symlinks++
		default:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("%w: %v", ErrUnpack, err)
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
			if err != nil {
				return fmt.Errorf("%w: %v", ErrUnpack, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return fmt.Errorf("%w: %v", ErrUnpack, err)
			}
			out.Close()
			done.Files++
		}

		if progress != nil {
			progress(Progress{Done: done, Total: a.counts})
		}
	}

	return nil
}

// Create walks srcDir and writes a tar+zstd archive of its contents to
// destPath, for staging a built output tree ahead of a registry push.
// Entry names are relative to srcDir and use forward slashes
// regardless of host OS, matching the layout [Archive.Unpack] expects.
func Create(ctx context.Context, srcDir, destPath string) error {
	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPack, err)
	}
	defer out.Close()

	zw, err := zstd.NewWriter(out)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPack, err)
	}
	tw := tar.NewWriter(zw)

	walkErr := filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		if info.Mode()&os.ModeSymlink != 0 {
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			hdr := &tar.Header{Name: name, Typeflag: tar.TypeSymlink, Linkname: link, Mode: 0777}
			return tw.WriteHeader(hdr)
		}

		if info.IsDir() {
			hdr := &tar.Header{Name: name + "/", Typeflag: tar.TypeDir, Mode: int64(info.Mode().Perm())}
			return tw.WriteHeader(hdr)
		}

		hdr := &tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: int64(info.Mode().Perm()), Size: info.Size()}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})

	if tarErr := tw.Close(); walkErr == nil {
		walkErr = tarErr
	}
	if zstdErr := zw.Close(); walkErr == nil {
		walkErr = zstdErr
	}
	if walkErr != nil {
		return fmt.Errorf("%w: %v", ErrPack, walkErr)
	}
	return nil
}

// scan reads through the archive once, tallying entry counts without
// writing anything to disk.
func scan(path string) (Counts, error) {
	f, err := os.Open(path)
	if err != nil {
		return Counts{}, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return Counts{}, err
	}
	defer zr.Close()

	tr := tar.NewReader(zr)
	var c Counts

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Counts{}, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			c.Directories++
		case tar.TypeSymlink:
			c.Symlinks++
		default:
			c.Files++
		}
	}

	return c, nil
}
