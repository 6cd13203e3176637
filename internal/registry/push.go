package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cruciblehq/chef/internal/manifest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
)

// PublishOptions configures [Client.Publish].
type PublishOptions struct {
	ArchivePath  string
	Platform     string
	Architecture string
	Channel      string
	Package      manifest.Package
	Version      manifest.Version
	Consumer     *manifest.ConsumerOptions
}

// PublishResult is the outcome of a successful publish.
type PublishResult struct {
	Digest     string
	Repository string
	Tags       []string
}

// Publish pushes opts.ArchivePath as the single layer of an OCI 1.1
// artifact, tagging it both on the channel's moving tag and, since
// Version is always concrete at publish time, on an immutable
// per-version tag.
//
// This is the in-scope half of the original "order publish" command;
// account login and package-account lifecycle are not reproduced
// here; pushes use whatever Docker credentials are already stored (spec.md places those behind the registry HTTP
// client boundary).
func (c *Client) Publish(ctx context.Context, opts PublishOptions) (PublishResult, error) {
	repository := opts.Package.Publisher + "/" + opts.Package.Package

	movingTag := tagFor(opts.Platform, opts.Architecture, opts.Channel, nil)
	pinnedTag := tagFor(opts.Platform, opts.Architecture, opts.Channel, &opts.Version)
	for _, tag := range []string{movingTag, pinnedTag} {
		if err := validateReference(c.host, repository, tag); err != nil {
			return PublishResult{}, err
		}
	}

	storeDir, err := os.MkdirTemp("", "chef-publish-*")
	if err != nil {
		return PublishResult{}, fmt.Errorf("%w: %v", ErrPush, err)
	}
	defer os.RemoveAll(storeDir)

	fs, err := file.New(storeDir)
	if err != nil {
		return PublishResult{}, fmt.Errorf("%w: %v", ErrPush, err)
	}
	defer fs.Close()

	layerDesc, err := fs.Add(ctx, filepath.Base(opts.ArchivePath), archiveMediaType, opts.ArchivePath)
	if err != nil {
		return PublishResult{}, fmt.Errorf("%w: stage archive: %v", ErrPush, err)
	}

	annotations := annotationsFor(opts.Package, opts.Version)
	for k, v := range consumerAnnotationsFor(opts.Consumer) {
		annotations[k] = v
	}

	manifestDesc, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ocispec.Descriptor{layerDesc},
		ManifestAnnotations: annotations,
	})
	if err != nil {
		return PublishResult{}, fmt.Errorf("%w: pack manifest: %v", ErrPush, err)
	}

	if err := fs.Tag(ctx, manifestDesc, movingTag); err != nil {
		return PublishResult{}, fmt.Errorf("%w: tag %s: %v", ErrPush, movingTag, err)
	}

	repo, err := c.repository(opts.Package.Publisher, opts.Package.Package)
	if err != nil {
		return PublishResult{}, err
	}

	if _, err := oras.Copy(ctx, fs, movingTag, repo, movingTag, oras.DefaultCopyOptions); err != nil {
		return PublishResult{}, fmt.Errorf("%w: push %s: %v", ErrPush, movingTag, err)
	}
	if err := repo.Tag(ctx, manifestDesc, pinnedTag); err != nil {
		return PublishResult{}, fmt.Errorf("%w: tag %s: %v", ErrPush, pinnedTag, err)
	}

	return PublishResult{
		Digest:     manifestDesc.Digest.String(),
		Repository: repository,
		Tags:       []string{movingTag, pinnedTag},
	}, nil
}
