package trigger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"
)

// ErrBuildFailed is matched by BuildError.
var ErrBuildFailed = errors.New("build failed")

// Mode decides what a failed build means to the caller.
type Mode int

const (
	// ModeLenient logs a failed build and reports success to the caller.
	ModeLenient Mode = iota
	// ModeStrict returns a BuildError for a failed build.
	ModeStrict
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "lenient"
}

// BuildError is returned in strict mode when the build command fails.
type BuildError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build command %q failed (exit code %d): %v", e.Command, e.ExitCode, e.Err)
}

// Unwrap exposes both ErrBuildFailed and the process error.
func (e *BuildError) Unwrap() []error {
	return []error{ErrBuildFailed, e.Err}
}

// Result captures how the build command ended.
type Result struct {
	Command  string
	Args     []string
	ExitCode int // -1 if the process did not start or was killed
	Duration time.Duration
	Err      error
}

// Success reports whether the command ran and exited with status 0.
func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Option configures a Trigger.
type Option func(*Trigger)

// WithDir sets the working directory of the build command.
func WithDir(dir string) Option {
	return func(t *Trigger) {
		t.dir = dir
	}
}

// WithMode selects strict or lenient failure handling.
func WithMode(mode Mode) Option {
	return func(t *Trigger) {
		t.mode = mode
	}
}

// WithOutput redirects the command's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(t *Trigger) {
		t.stdout = stdout
		t.stderr = stderr
	}
}

// WithLogger sets the logger used for progress and lenient failures.
func WithLogger(logger *log.Logger) Option {
	return func(t *Trigger) {
		t.logger = logger
	}
}

// Trigger runs the external build command.
type Trigger struct {
	command string
	argv    []string
	dir     string
	mode    Mode
	stdout  io.Writer
	stderr  io.Writer
	logger  *log.Logger
}

// New parses command with shell word splitting and variable expansion.
func New(command string, opts ...Option) (*Trigger, error) {
	argv, err := shell.Fields(command, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("parsing build command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("build command is empty")
	}

	t := &Trigger{
		command: command,
		argv:    argv,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Args returns the parsed argv.
func (t *Trigger) Args() []string {
	return t.argv
}

// Run executes the command and blocks until it exits. In lenient mode the
// returned error is always nil; inspect the Result instead.
func (t *Trigger) Run(ctx context.Context) (Result, error) {
	cmd := exec.CommandContext(ctx, t.argv[0], t.argv[1:]...)
	cmd.Dir = t.dir
	cmd.Stdout = t.stdout
	cmd.Stderr = t.stderr

	t.logger.Debug("running build command", "command", strings.Join(t.argv, " "), "dir", t.dir, "mode", t.mode)
	start := time.Now()
	err := cmd.Run()

	res := Result{
		Command:  t.command,
		Args:     t.argv,
		Duration: time.Since(start),
		Err:      err,
	}
	if err != nil {
		res.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		}
	}

	if res.Success() {
		t.logger.Debug("build command finished", "duration", res.Duration)
		return res, nil
	}

	if t.mode == ModeStrict {
		return res, &BuildError{Command: t.command, ExitCode: res.ExitCode, Err: err}
	}

	t.logger.Warn("build command failed", "command", t.command, "exit_code", res.ExitCode, "err", err)
	return res, nil
}
