// Package submit hands a written script to the scheduler's submission
// command and extracts the job identifier it prints.
package submit

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/vk/qsubmit/internal/ctxlog"
)

// DefaultBinary is the submission command used when none is configured.
const DefaultBinary = "qsub"

var jobIDRe = regexp.MustCompile(`\d+`)

// FailedError reports a submission command that failed or printed no job
// identifier. Err is nil when the command succeeded but its output held no
// digits.
type FailedError struct {
	Binary string
	Script string
	Output string
	Err    error
}

func (e *FailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("submission of %s via %s failed: %v (output: %q)", e.Script, e.Binary, e.Err, e.Output)
	}
	return fmt.Sprintf("submission of %s via %s returned no job id (output: %q)", e.Script, e.Binary, e.Output)
}

func (e *FailedError) Unwrap() error {
	return e.Err
}

// Runner executes a command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name with args and returns stdout. Stderr of a failing
// command is folded into the returned error.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		err = fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
	}
	return out, err
}

// Client invokes a scheduler submission binary.
type Client struct {
	Binary string
	Runner Runner
}

// New returns a Client for binary, or for DefaultBinary when binary is empty.
func New(binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{Binary: binary, Runner: ExecRunner{}}
}

// Submit runs "<binary> <scriptPath>" and returns the first run of digits in
// its output. It blocks until the command exits or ctx is done and never
// retries.
func (c *Client) Submit(ctx context.Context, scriptPath string) (string, error) {
	logger := ctxlog.FromContext(ctx).With("binary", c.Binary, "script", scriptPath)
	runner := c.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	logger.Debug("Invoking scheduler submission command.")
	out, err := runner.Run(ctx, c.Binary, scriptPath)
	output := strings.TrimSpace(string(out))
	if err != nil {
		return "", &FailedError{Binary: c.Binary, Script: scriptPath, Output: output, Err: err}
	}

	id, ok := ParseJobID(output)
	if !ok {
		return "", &FailedError{Binary: c.Binary, Script: scriptPath, Output: output}
	}
	logger.Debug("Scheduler accepted job.", "job_id", id)
	return id, nil
}

// ParseJobID returns the first run of decimal digits in output, e.g. "12345"
// from "Your job 12345 (...) has been submitted" or "12345.server".
func ParseJobID(output string) (string, bool) {
	id := jobIDRe.FindString(output)
	return id, id != ""
}
