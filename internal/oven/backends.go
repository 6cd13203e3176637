package oven

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cruciblehq/chef/internal/spawn"
)

// environ flattens a BackendData's ordered key-value environment on
// top of the inherited process environment, later entries winning.
func environ(data BackendData) []string {
	env := append([]string{}, data.ProcessEnvironment...)
	for _, kv := range data.Environment {
		env = append(env, kv.Key+"="+kv.Value)
	}
	return env
}

func streamToStdio(line string, kind spawn.OutputType) {
	if kind == spawn.Stderr {
		fmt.Println("stderr:", line)
		return
	}
	fmt.Println(line)
}

// run invokes path/arguments and translates a non-zero exit status
// into ErrChildExit; spawn.Run itself only fails when the child never
// ran at all.
func run(ctx context.Context, path, arguments string, opts spawn.Options) error {
	result, err := spawn.Run(ctx, path, arguments, opts)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("%w: %s exited %d", ErrChildExit, path, result.ExitCode)
	}
	return nil
}

func runConfigure(ctx context.Context, data BackendData) error {
	return run(ctx, filepath.Join(data.Paths.Project, "configure"), data.Arguments, spawn.Options{
		Cwd:           data.Paths.Build,
		Env:           environ(data),
		OutputHandler: streamToStdio,
	})
}

func runCMake(ctx context.Context, data BackendData) error {
	args := fmt.Sprintf("-S %s -B %s %s", data.Paths.Project, data.Paths.Build, data.Arguments)
	return run(ctx, "cmake", args, spawn.Options{
		Cwd:           data.Paths.Root,
		Env:           environ(data),
		OutputHandler: streamToStdio,
	})
}

func runMesonSetup(ctx context.Context, data BackendData) error {
	args := fmt.Sprintf("setup %s %s %s", data.Paths.Build, data.Paths.Project, data.Arguments)
	return run(ctx, "meson", args, spawn.Options{
		Cwd:           data.Paths.Root,
		Env:           environ(data),
		OutputHandler: streamToStdio,
	})
}

func runMake(ctx context.Context, data BackendData) error {
	return run(ctx, "make", data.Arguments, spawn.Options{
		Cwd:           data.Paths.Build,
		Env:           environ(data),
		OutputHandler: streamToStdio,
	})
}

func runMesonCompile(ctx context.Context, data BackendData) error {
	args := fmt.Sprintf("compile -C %s %s", data.Paths.Build, data.Arguments)
	return run(ctx, "meson", args, spawn.Options{
		Cwd:           data.Paths.Root,
		Env:           environ(data),
		OutputHandler: streamToStdio,
	})
}

func runScript(ctx context.Context, script, cwd string, env []string) error {
	args := "-c " + spawn.JoinArguments([]string{script})
	return run(ctx, "/bin/sh", args, spawn.Options{
		Cwd:           cwd,
		Env:           env,
		OutputHandler: streamToStdio,
	})
}
