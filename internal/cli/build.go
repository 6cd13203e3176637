package cli

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"github.com/cruciblehq/chef/internal/fridge"
	"github.com/cruciblehq/chef/internal/manifest"
	"github.com/cruciblehq/chef/internal/oven"
	"github.com/cruciblehq/chef/internal/registry"
	"github.com/cruciblehq/chef/internal/scratch"
	"github.com/cruciblehq/chef/internal/spawn"
)

// BuildCmd represents the 'chef build' command.
type BuildCmd struct {
	Recipe       string `arg:"" optional:"" default:"recipe.toml" help:"Path to the recipe manifest."`
	Platform     string `help:"Target platform. Defaults to the host platform." default:""`
	Architecture string `help:"Target architecture. Defaults to the host architecture." default:""`

	Registry    string `help:"Registry host ingredients are resolved from." default:"registry.chef.dev"`
	PlainHTTP   bool   `help:"Use plain HTTP against the registry instead of HTTPS."`
	InsecureTLS bool   `help:"Skip TLS certificate verification against the registry."`
}

// Run loads the recipe, resolves its ingredients through the fridge,
// and drives the oven through every step in order.
func (c *BuildCmd) Run(ctx context.Context) error {
	recipe, err := manifest.Load(c.Recipe)
	if err != nil {
		return err
	}

	platform := c.Platform
	if platform == "" {
		platform = runtime.GOOS
	}
	architecture := c.Architecture
	if architecture == "" {
		architecture = runtime.GOARCH
	}

	log := slog.With("recipe", recipe.Project.Name)
	log.Info("resolving ingredients", "count", len(recipe.Ingredients))

	fr, err := fridge.Initialize(fridge.Options{Platform: platform, Architecture: architecture})
	if err != nil {
		return err
	}
	defer fr.Cleanup()

	reg := registry.NewClient(registry.ClientOptions{
		Host:        c.Registry,
		PlainHTTP:   c.PlainHTTP,
		InsecureTLS: c.InsecureTLS,
	})

	ingredients := make([]scratch.Ingredient, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		ref, err := fridge.NewIngredientRef(ri)
		if err != nil {
			return err
		}

		pack, err := fr.UseIngredient(ctx, reg, ref, ri.Name)
		if err != nil {
			return fmt.Errorf("ingredient %s: %w", ri.Name, err)
		}
		log.Info("staged ingredient", "name", ri.Name, "version", pack.Version.String())

		ingredients = append(ingredients, scratch.Ingredient{
			Name:         ri.Name,
			ArchivePath:  pack.Path,
			Platform:     pack.Platform,
			Architecture: pack.Architecture,
			Version:      pack.Version,
			Publisher:    pack.Identity.Publisher,
			Consumer:     pack.Consumer,
		})
	}

	driver := oven.NewContext()
	if err := driver.Initialize(oven.Params{
		TargetPlatform:     platform,
		TargetArchitecture: architecture,
	}); err != nil {
		return err
	}
	defer driver.Cleanup()

	if err := driver.RecipeStart(ctx, oven.RecipeOptions{
		Name:        recipe.Project.Name,
		Toolchain:   recipe.Project.Toolchain,
		Ingredients: ingredients,
		Imports:     recipe.Imports,
		Confined:    recipe.Project.Confined,
	}); err != nil {
		return err
	}
	defer driver.RecipeEnd()

	for _, step := range recipe.Steps {
		if step.Name == "" {
			continue
		}

		log.Info("step", "name", step.Name, "type", string(step.Type))
		switch step.Type {
		case manifest.StepConfigure:
			err = driver.Configure(ctx, stepOptions(step))
		case manifest.StepBuild:
			err = driver.Build(ctx, stepOptions(step))
		case manifest.StepScript:
			err = driver.Script(ctx, oven.ScriptOptions{Name: step.Name, Script: step.Script})
		default:
			err = fmt.Errorf("step %s: unrecognized type %q", step.Name, step.Type)
		}
		if err != nil {
			return fmt.Errorf("step %s: %w", step.Name, err)
		}
	}

	if len(recipe.Project.Filters) > 0 {
		if err := driver.IncludeFilters(recipe.Project.Filters); err != nil {
			return err
		}
	}

	log.Info("build complete")
	return nil
}

func stepOptions(step manifest.Step) oven.StepOptions {
	keys := make([]string, 0, len(step.Env))
	for k := range step.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]oven.KeyValue, 0, len(keys))
	for _, k := range keys {
		env = append(env, oven.KeyValue{Key: k, Value: step.Env[k]})
	}

	return oven.StepOptions{
		Name:        step.Name,
		System:      step.System,
		Arguments:   spawn.SplitArguments(step.Arguments),
		Environment: env,
	}
}
