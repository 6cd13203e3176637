package oven

import (
	"context"
	"fmt"

	"github.com/cruciblehq/chef/internal/scratch"
)

// KeyValue is an ordered environment entry; preprocessed values retain
// declaration order since some backends are sensitive to it (a later
// CFLAGS should win over an earlier one, for instance).
type KeyValue struct {
	Key   string
	Value string
}

// Paths is the path block every backend receives: the recipe's
// project root, its working root, and the install/build directories
// a generate/build step writes to.
type Paths struct {
	Root    string
	Project string
	Install string
	Build   string
}

// PlatformInfo is the platform block every backend receives.
type PlatformInfo struct {
	HostPlatform       string
	HostArchitecture   string
	TargetPlatform     string
	TargetArchitecture string
}

// BackendData is passed to every generate/build backend.
type BackendData struct {
	ProjectName        string
	ProfileName        string
	ProcessEnvironment []string
	Environment        []KeyValue
	Arguments          string
	Paths              Paths
	Platform           PlatformInfo
	Ingredients        []scratch.Ingredient
}

// generateBackend/buildBackend are the two fixed, string-keyed
// dispatch tables. Unknown names fail with ErrUnknownBackend.
type generateBackend func(ctx context.Context, data BackendData) error
type buildBackend func(ctx context.Context, data BackendData) error

var generateBackends = map[string]generateBackend{
	"configure": runConfigure,
	"cmake":     runCMake,
	"meson":     runMesonSetup,
}

var buildBackends = map[string]buildBackend{
	"make":  runMake,
	"meson": runMesonCompile,
}

// StepOptions describes a single configure/build step.
type StepOptions struct {
	Name        string
	System      string
	Profile     string
	Arguments   []string
	Environment []KeyValue
}

// ScriptOptions describes a raw script step.
type ScriptOptions struct {
	Name   string
	Script string
}

// Configure dispatches a generate-phase step (configure/cmake/meson)
// against the active recipe's scratch tree. A no-op if the step's
// checkpoint is already present.
func (c *Context) Configure(ctx context.Context, opts StepOptions) error {
	return c.runStep(ctx, opts, generateBackends[opts.System])
}

// Build dispatches a build-phase step (make/meson) against the active
// recipe's scratch tree. A no-op if the step's checkpoint is already
// present.
func (c *Context) Build(ctx context.Context, opts StepOptions) error {
	backend, ok := buildBackends[opts.System]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBackend, opts.System)
	}
	return c.runStep(ctx, opts, backend)
}

func (c *Context) runStep(ctx context.Context, opts StepOptions, backend func(context.Context, BackendData) error) error {
	c.mu.Lock()
	if c.recipe == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w", ErrNoRecipeActive)
	}
	recipe := c.recipe
	c.mu.Unlock()

	if checkpointContains(recipe.scratch.HostCheckpointPath, opts.Name) {
		fmt.Printf("nothing to be done for %s\n", opts.Name)
		return nil
	}
	if backend == nil {
		return fmt.Errorf("%w: %q", ErrUnknownBackend, opts.System)
	}
	fmt.Printf("running step %s\n", opts.Name)

	data, err := c.buildBackendData(opts.Profile, opts.Arguments, opts.Environment)
	if err != nil {
		return err
	}

	if err := scratch.Enter(recipe.scratch); err != nil {
		return err
	}
	berr := backend(ctx, data)
	if err := scratch.Leave(recipe.scratch); err != nil {
		return err
	}
	if berr != nil {
		return berr
	}
	return checkpointCreate(recipe.scratch.HostCheckpointPath, opts.Name)
}

// Script preprocesses and runs a raw script step through the host
// shell. A no-op if the step's checkpoint is already present.
func (c *Context) Script(ctx context.Context, opts ScriptOptions) error {
	c.mu.Lock()
	if c.recipe == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w", ErrNoRecipeActive)
	}
	recipe := c.recipe
	c.mu.Unlock()

	if checkpointContains(recipe.scratch.HostCheckpointPath, opts.Name) {
		fmt.Printf("nothing to be done for %s\n", opts.Name)
		return nil
	}
	fmt.Printf("running step %s\n", opts.Name)

	script, err := c.PreprocessText(opts.Script)
	if err != nil {
		return err
	}

	buildCwd := recipe.scratch.HostBuildPath
	if recipe.scratch.Confined {
		buildCwd = recipe.scratch.BuildRoot
	}

	if err := scratch.Enter(recipe.scratch); err != nil {
		return err
	}
	serr := runScript(ctx, script, buildCwd, c.env)
	if err := scratch.Leave(recipe.scratch); err != nil {
		return err
	}
	if serr != nil {
		return serr
	}
	return checkpointCreate(recipe.scratch.HostCheckpointPath, opts.Name)
}

func (c *Context) buildBackendData(profile string, arguments []string, environment []KeyValue) (BackendData, error) {
	c.mu.Lock()
	recipe := c.recipe
	root := c.variables.cwd
	env := c.env
	targetPlatform := c.variables.targetPlatform
	targetArch := c.variables.targetArchitecture
	c.mu.Unlock()

	if profile == "" {
		profile = "Release"
	}

	preEnv := make([]KeyValue, 0, len(environment))
	for _, kv := range environment {
		v, err := c.PreprocessText(kv.Value)
		if err != nil {
			return BackendData{}, err
		}
		preEnv = append(preEnv, KeyValue{Key: kv.Key, Value: v})
	}

	args, err := c.buildArgumentString(arguments)
	if err != nil {
		return BackendData{}, err
	}

	return BackendData{
		ProjectName:        recipe.name,
		ProfileName:        profile,
		ProcessEnvironment: env,
		Environment:        preEnv,
		Arguments:          args,
		Paths:              recipePaths(recipe, root),
		Platform: PlatformInfo{
			HostPlatform:       hostPlatform(),
			HostArchitecture:   hostArchitecture(),
			TargetPlatform:     targetPlatform,
			TargetArchitecture: targetArch,
		},
	}, nil
}

// recipePaths resolves the path block a backend sees: the fixed
// /chef/* aliases once chroot has actually been entered, or the real
// host-side paths when the recipe is unconfined and steps run against
// the host filesystem directly.
func recipePaths(recipe *recipeState, root string) Paths {
	if recipe.scratch.Confined {
		return Paths{
			Root:    root,
			Project: recipe.scratch.ProjectRoot,
			Install: recipe.scratch.InstallRoot,
			Build:   recipe.scratch.BuildRoot,
		}
	}
	return Paths{
		Root:    root,
		Project: recipe.scratch.HostProjectPath,
		Install: recipe.scratch.HostInstallPath,
		Build:   recipe.scratch.HostBuildPath,
	}
}

func (c *Context) buildArgumentString(arguments []string) (string, error) {
	out := ""
	for _, a := range arguments {
		v, err := c.PreprocessText(a)
		if err != nil {
			return "", err
		}
		if v == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += v
	}
	return out, nil
}
