package spawn

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// OutputType tags a line of captured child output.
type OutputType int

const (
	Stdout OutputType = iota
	Stderr
)

// OutputHandler is called once per complete line of child output.
type OutputHandler func(line string, kind OutputType)

// Options configures a spawned process.
type Options struct {
	// Cwd changes the child's working directory. Empty means inherit.
	Cwd string
	// Argv0 overrides argv[0]; defaults to path.
	Argv0 string
	// Env sets the child's environment as "K=V" pairs. Nil inherits
	// the parent's environment.
	Env []string
	// OutputHandler, if set, receives each complete stdout/stderr line
	// as the child produces it. If nil, output is discarded.
	OutputHandler OutputHandler
}

// Result is the outcome of a completed spawn.
type Result struct {
	ExitCode int
}

// Run starts path with the given argument string and options, and
// blocks until the child exits.
//
// arguments is parsed with [SplitArguments]. A non-zero exit code is
// reported via Result, not as an error; Run only returns an error when
// the child could not be started or its output could not be read.
func Run(ctx context.Context, path, arguments string, opts Options) (Result, error) {
	argv := SplitArguments(arguments)

	cmd := exec.CommandContext(ctx, path, argv...)
	if opts.Argv0 != "" {
		cmd.Args[0] = opts.Argv0
	}
	if opts.Cwd != "" {
		cmd.Dir = opts.Cwd
	}
	if opts.Env != nil {
		cmd.Env = opts.Env
	}

	if opts.OutputHandler == nil {
		if err := cmd.Run(); err != nil {
			return exitResult(cmd, err)
		}
		return Result{ExitCode: 0}, nil
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("%w: stdout pipe: %v", ErrSpawn, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, fmt.Errorf("%w: stderr pipe: %v", ErrSpawn, err)
	}

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go report(&wg, stdout, Stdout, opts.OutputHandler)
	go report(&wg, stderr, Stderr, opts.OutputHandler)
	wg.Wait()

	return exitResult(cmd, cmd.Wait())
}

// report scans r line by line, invoking handler for each complete line.
func report(wg *sync.WaitGroup, r io.Reader, kind OutputType, handler OutputHandler) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 2048), 1<<20)
	for scanner.Scan() {
		handler(scanner.Text(), kind)
	}
}

// exitResult translates a process Wait/Run error into a Result with
// the child's exit code, or a spawn error if the process never ran.
func exitResult(cmd *exec.Cmd, err error) (Result, error) {
	if err == nil {
		return Result{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode()}, nil
	}

	return Result{}, fmt.Errorf("%w: %v", ErrSpawn, err)
}
