package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// StepType names which oven operation a step is dispatched to.
type StepType string

const (
	StepConfigure StepType = "configure"
	StepBuild     StepType = "build"
	StepScript    StepType = "script"
)

// RecipeIngredient is the manifest-level reference to an ingredient: a
// package identity, a channel, and an optional exact version. An empty
// Version means "any revision on the channel", resolved at fridge
// lookup time (see internal/fridge).
type RecipeIngredient struct {
	Name    string `toml:"name"`
	Channel string `toml:"channel"`
	Version string `toml:"version"`
}

// Identity parses the ingredient's "publisher/package" name.
func (r RecipeIngredient) Identity() (Identity, error) {
	return ParseIdentity(r.Name)
}

// ParsedVersion parses the optional exact version. ok is false when no
// version was given, in which case the caller should resolve "any
// revision on the channel".
func (r RecipeIngredient) ParsedVersion() (v Version, ok bool, err error) {
	if r.Version == "" {
		return Version{}, false, nil
	}
	v, err = ParseVersion(r.Version)
	return v, err == nil, err
}

// Project describes the recipe's identity and build mode.
type Project struct {
	Name      string `toml:"name"`
	Toolchain string `toml:"toolchain"`
	Confined  bool   `toml:"confined"`

	// Filters excludes glob patterns from the final include-filters
	// copy out of the project directory into the install root, run
	// once after all steps complete. Empty means the copy is skipped
	// entirely, since most recipes install everything via their
	// backend's own install step and need nothing extra staged.
	Filters []string `toml:"filters"`
}

// Step is a single named operation in a recipe: a configure/build/script
// dispatch. Workdir is parsed but not used by the build, and a step
// with an empty Type has no modifier role: the build command skips
// unnamed steps and rejects a named step whose Type is not one of
// configure, build or script.
type Step struct {
	Name      string            `toml:"name"`
	Type      StepType          `toml:"type"`
	System    string            `toml:"system"`
	Arguments string            `toml:"arguments"`
	Script    string            `toml:"script"`
	Workdir   string            `toml:"workdir"`
	Env       map[string]string `toml:"env"`
}

// Recipe is the parsed contents of a recipe.toml.
type Recipe struct {
	Project     Project            `toml:"project"`
	Ingredients []RecipeIngredient `toml:"ingredients"`
	Imports     []string           `toml:"imports"`
	Steps       []Step             `toml:"steps"`
}

// Loads and parses a recipe manifest from disk.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}
	return Parse(data)
}

// Parses recipe TOML bytes and validates required fields.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if _, err := toml.Decode(string(data), &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Recipe) validate() error {
	if r.Project.Name == "" {
		return fmt.Errorf("%w: project.name is required", ErrInvalidRecipe)
	}
	for _, ing := range r.Ingredients {
		if _, err := ing.Identity(); err != nil {
			return fmt.Errorf("%w: ingredient %q: %v", ErrInvalidRecipe, ing.Name, err)
		}
	}
	seen := make(map[string]bool, len(r.Steps))
	for _, s := range r.Steps {
		if s.Name == "" {
			continue // unnamed steps are not checked for duplicates
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate step name %q", ErrInvalidRecipe, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
