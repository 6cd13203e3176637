package oven

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/cruciblehq/chef/internal/fsutil"
	"github.com/cruciblehq/chef/internal/scratch"
)

type state int

const (
	stateUninitialized state = iota
	stateReady
	stateRecipeActive
)

// Params configures [Context.Initialize].
type Params struct {
	TargetPlatform     string
	TargetArchitecture string

	// Env is the process environment read by $[ NAME ] substitution.
	// Nil means os.Environ().
	Env []string
}

type variables struct {
	targetPlatform     string
	targetArchitecture string
	cwd                string
}

type recipeState struct {
	name         string
	relativePath string
	toolchain    string
	ingredients  []scratch.Ingredient
	scratch      *scratch.Scratch
}

// Context is the process-wide oven driver. One Context exists per
// process; it is not safe to run two recipes through it concurrently,
// matching the single-owner model a build CLI invocation assumes.
type Context struct {
	mu sync.Mutex

	state       state
	env         []string
	installRoot string
	root        string
	variables   variables
	recipe      *recipeState
}

// NewContext returns an uninitialized driver.
func NewContext() *Context {
	return &Context{}
}

// Initialize moves the driver from Uninitialized to Ready: it records
// the target platform/architecture, the process environment, and
// creates .oven and .oven/output under the current directory.
func (c *Context) Initialize(params Params) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateUninitialized {
		return fmt.Errorf("%w: oven already initialized", ErrInvalidState)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	root := filepath.Join(cwd, ".oven")
	installRoot := filepath.Join(root, "output")
	if err := fsutil.MkdirAll(root); err != nil {
		return err
	}
	if err := fsutil.MkdirAll(installRoot); err != nil {
		return err
	}

	env := params.Env
	if env == nil {
		env = os.Environ()
	}

	c.variables = variables{
		targetPlatform:     params.TargetPlatform,
		targetArchitecture: params.TargetArchitecture,
		cwd:                cwd,
	}
	c.env = env
	c.root = root
	c.installRoot = installRoot
	c.state = stateReady
	return nil
}

// Clean deletes and recreates .oven, discarding all scratch trees and
// checkpoints. The driver must be Ready (no active recipe).
func (c *Context) Clean() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateReady {
		return fmt.Errorf("%w: clean requires no active recipe", ErrInvalidState)
	}
	if err := fsutil.RemoveAll(c.root); err != nil {
		return err
	}
	return fsutil.MkdirAll(c.root)
}

// Cleanup tears down any active recipe and returns the driver to
// Uninitialized.
func (c *Context) Cleanup() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recipe = nil
	c.state = stateUninitialized
	c.env = nil
	c.installRoot = ""
	c.root = ""
	c.variables = variables{}
	return nil
}

// RecipeOptions configures [Context.RecipeStart].
type RecipeOptions struct {
	Name         string
	RelativePath string
	Toolchain    string
	Ingredients  []scratch.Ingredient
	Imports      []string
	Confined     bool
}

// RecipeStart sets up the recipe's scratch tree and moves the driver
// to Recipe-Active. Fails if a recipe is already active.
func (c *Context) RecipeStart(ctx context.Context, opts RecipeOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateRecipeActive {
		return fmt.Errorf("%w", ErrRecipeActive)
	}
	if c.state != stateReady {
		return fmt.Errorf("%w: initialize before starting a recipe", ErrInvalidState)
	}

	s, err := scratch.Setup(ctx, scratch.Options{
		Name:             opts.Name,
		ProjectPath:      c.variables.cwd,
		InstallPath:      c.installRoot,
		HostPlatform:     hostPlatform(),
		HostArchitecture: hostArchitecture(),
		Ingredients:      opts.Ingredients,
		Imports:          opts.Imports,
		Confined:         opts.Confined,
	})
	if err != nil {
		return err
	}

	c.recipe = &recipeState{
		name:         opts.Name,
		relativePath: opts.RelativePath,
		toolchain:    opts.Toolchain,
		scratch:      s,
	}
	c.state = stateRecipeActive
	return nil
}

// RecipeEnd tears down the active recipe's in-memory state and
// returns the driver to Ready. A no-op if no recipe is active.
func (c *Context) RecipeEnd() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recipe = nil
	if c.state == stateRecipeActive {
		c.state = stateReady
	}
	return nil
}

// ClearRecipeCheckpoint removes name from the active recipe's
// checkpoint file, so its step re-runs on the next invocation.
func (c *Context) ClearRecipeCheckpoint(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recipe == nil {
		return fmt.Errorf("%w", ErrNoRecipeActive)
	}
	return removeCheckpoint(c.recipe.scratch.HostCheckpointPath, name)
}

// hostPlatform and hostArchitecture stand in for the compiled-in
// CHEF_PLATFORM_STR/CHEF_ARCHITECTURE_STR constants from the original
// driver: this binary's own OS/architecture.
func hostPlatform() string     { return runtime.GOOS }
func hostArchitecture() string { return runtime.GOARCH }
