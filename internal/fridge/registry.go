package fridge

import (
	"context"

	"github.com/cruciblehq/chef/internal/manifest"
)

// ResolvedPack is the registry's answer to a resolve request: the
// concrete tuple an [IngredientRef] resolved to, plus a content digest
// used for storage addressing when available.
type ResolvedPack struct {
	Identity     manifest.Identity
	Platform     string
	Architecture string
	Channel      string
	Version      manifest.Version
	Type         manifest.PackageType
	Digest       string
	Consumer     *manifest.ConsumerOptions
}

// Registry is the external collaborator that resolves an ingredient
// reference to a concrete pack and fetches its raw archive. Per
// spec.md §1 this is deliberately out of scope here; production use
// wires in internal/registry's ORAS-based client.
type Registry interface {
	// Resolve looks up the concrete pack an ingredient reference
	// points to: version, if non-nil, pins an exact match; otherwise
	// the registry resolves to the latest revision on channel.
	Resolve(ctx context.Context, identity manifest.Identity, platform, architecture, channel string, version *manifest.Version) (ResolvedPack, error)

	// Fetch downloads the raw archive for a resolved pack to destPath.
	Fetch(ctx context.Context, pack ResolvedPack, destPath string) error
}
