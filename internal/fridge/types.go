package fridge

import "github.com/cruciblehq/chef/internal/manifest"

// InventoryPack is a cached archive's record: identity, platform
// tuple, the resolved version, where the raw archive lives on disk,
// and whether it has been unpacked.
type InventoryPack struct {
	Identity     manifest.Identity         `json:"identity"`
	Platform     string                    `json:"platform"`
	Architecture string                    `json:"architecture"`
	Channel      string                    `json:"channel"`
	Version      manifest.Version          `json:"version"`
	Type         manifest.PackageType      `json:"type"`
	Path         string                    `json:"path"`
	Unpacked     bool                      `json:"unpacked"`
	Consumer     *manifest.ConsumerOptions `json:"consumer,omitempty"`
}

// IngredientRef is a recipe's reference to an ingredient: identity, a
// channel, and an optional exact version. A nil Version means "any
// revision on the channel" (see SPEC_FULL.md's Open Question
// resolution).
type IngredientRef struct {
	Identity manifest.Identity
	Channel  string
	Version  *manifest.Version
}

// NewIngredientRef builds an [IngredientRef] from a recipe manifest
// ingredient entry.
func NewIngredientRef(ri manifest.RecipeIngredient) (IngredientRef, error) {
	id, err := ri.Identity()
	if err != nil {
		return IngredientRef{}, err
	}

	ref := IngredientRef{Identity: id, Channel: ri.Channel}

	v, ok, err := ri.ParsedVersion()
	if err != nil {
		return IngredientRef{}, err
	}
	if ok {
		ref.Version = &v
	}

	return ref, nil
}
