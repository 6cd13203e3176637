package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cruciblehq/chef/internal/fridge"
	"github.com/cruciblehq/chef/internal/manifest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2/content"
)

// Resolve implements fridge.Registry. It resolves the tag for the
// requested tuple against the remote repository, fetches the manifest
// (not its archive layer), and reconstructs a fridge.ResolvedPack from
// the manifest's single layer descriptor and annotations.
func (c *Client) Resolve(ctx context.Context, identity manifest.Identity, platform, architecture, channel string, version *manifest.Version) (fridge.ResolvedPack, error) {
	repo, err := c.repository(identity.Publisher, identity.Package)
	if err != nil {
		return fridge.ResolvedPack{}, err
	}

	tag := tagFor(platform, architecture, channel, version)
	if err := validateReference(c.host, identity.Publisher+"/"+identity.Package, tag); err != nil {
		return fridge.ResolvedPack{}, err
	}

	desc, err := repo.Resolve(ctx, tag)
	if err != nil {
		return fridge.ResolvedPack{}, fmt.Errorf("%w: %s tag %s: %v", ErrNotFound, identity, tag, err)
	}

	manifestBytes, err := content.FetchAll(ctx, repo, desc)
	if err != nil {
		return fridge.ResolvedPack{}, fmt.Errorf("%w: fetch manifest: %v", ErrValidation, err)
	}

	var m ocispec.Manifest
	if err := json.Unmarshal(manifestBytes, &m); err != nil {
		return fridge.ResolvedPack{}, fmt.Errorf("%w: decode manifest: %v", ErrValidation, err)
	}
	if len(m.Layers) != 1 {
		return fridge.ResolvedPack{}, fmt.Errorf("%w: %s/%s %s: expected exactly one layer, got %d", ErrValidation, identity.Publisher, identity.Package, tag, len(m.Layers))
	}
	layer := m.Layers[0]

	resolvedVersion, err := resolveVersion(m.Annotations, layer, version)
	if err != nil {
		return fridge.ResolvedPack{}, err
	}

	return fridge.ResolvedPack{
		Identity:     identity,
		Platform:     platform,
		Architecture: architecture,
		Channel:      channel,
		Version:      resolvedVersion,
		Type:         parsePackageType(m.Annotations[annotationPackageType]),
		Digest:       layer.Digest.String(),
		Consumer:     parseConsumerAnnotations(m.Annotations),
	}, nil
}

// resolveVersion fills in the version the registry actually resolved
// to. A pinned request echoes the requested version back (the tag is
// immutable so it cannot have drifted); a channel request derives the
// version from the manifest's own annotations.
func resolveVersion(annotations map[string]string, layer ocispec.Descriptor, requested *manifest.Version) (manifest.Version, error) {
	if requested != nil {
		v := *requested
		v.Size = layer.Size
		return v, nil
	}

	raw := annotations[annotationVersion]
	v, err := manifest.ParseVersion(raw)
	if err != nil {
		return manifest.Version{}, fmt.Errorf("%w: channel manifest carries no valid version annotation %q: %v", ErrValidation, raw, err)
	}
	if rev, err := strconv.Atoi(annotations[annotationRevision]); err == nil {
		v.Revision = rev
	}
	v.Size = layer.Size
	return v, nil
}
