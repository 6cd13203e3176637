package registry

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cruciblehq/chef/internal/fridge"
	"github.com/cruciblehq/chef/internal/fsutil"
	digest "github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Fetch implements fridge.Registry. It downloads pack's single archive
// layer by digest and writes it to destPath, verifying content against
// the digest as it streams.
func (c *Client) Fetch(ctx context.Context, pack fridge.ResolvedPack, destPath string) error {
	repo, err := c.repository(pack.Identity.Publisher, pack.Identity.Package)
	if err != nil {
		return err
	}

	d, err := digest.Parse(pack.Digest)
	if err != nil {
		return fmt.Errorf("%w: malformed digest %q: %v", ErrValidation, pack.Digest, err)
	}

	desc := ocispec.Descriptor{
		MediaType: archiveMediaType,
		Digest:    d,
		Size:      pack.Version.Size,
	}

	rc, err := repo.Blobs().Fetch(ctx, desc)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, pack.Identity, err)
	}
	defer rc.Close()

	if err := fsutil.MkdirAll(filepath.Dir(destPath)); err != nil {
		return err
	}

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrValidation, destPath, err)
	}
	defer out.Close()

	verifier := d.Verifier()
	if _, err := io.Copy(out, io.TeeReader(rc, verifier)); err != nil {
		return fmt.Errorf("%w: download %s: %v", ErrValidation, pack.Identity, err)
	}
	if !verifier.Verified() {
		return fmt.Errorf("%w: %s: digest mismatch after download", ErrValidation, pack.Identity)
	}
	return nil
}
