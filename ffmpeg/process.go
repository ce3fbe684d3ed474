package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/lepinkainen/videobatch/types"
)

// waitDelay bounds how long Wait blocks on pipes after the child is killed.
const waitDelay = 2 * time.Second

// RunOptions configures a single process invocation
type RunOptions struct {
	// OnProgress receives one snapshot per -progress block parsed from stderr.
	OnProgress func(Progress)
}

// Result holds the captured output of a finished process
type Result struct {
	Stdout string
	Stderr string
}

// Runner starts an external executable and waits for it
type Runner interface {
	Run(ctx context.Context, name string, args []string, opts RunOptions) (*Result, error)
}

// ExecRunner runs executables from PATH with os/exec
type ExecRunner struct {
	Logger hclog.Logger
}

// NewExecRunner returns a runner logging through logger
func NewExecRunner(logger hclog.Logger) *ExecRunner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExecRunner{Logger: logger}
}

// Run spawns name with args. Cancelling ctx kills the child.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, opts RunOptions) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.WaitDelay = waitDelay

	var progress *progressWriter
	if opts.OnProgress != nil {
		progress = newProgressWriter(opts.OnProgress)
		cmd.Stderr = io.MultiWriter(&stderr, progress)
	} else {
		cmd.Stderr = &stderr
	}

	r.Logger.Debug("starting process", "name", name, "args", args)

	if err := cmd.Start(); err != nil {
		return nil, &types.Error{
			Kind:    types.KindSpawn,
			Message: fmt.Sprintf("failed to start %s", name),
			Cause:   err,
		}
	}

	waitErr := cmd.Wait()
	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if waitErr != nil {
		cause := waitErr
		if ctxErr := ctx.Err(); ctxErr != nil {
			cause = fmt.Errorf("%w: %v", ctxErr, waitErr)
		}
		r.Logger.Debug("process failed", "name", name, "error", waitErr)
		return result, &types.Error{
			Kind:    types.KindProcessExit,
			Message: exitMessage(name, waitErr),
			Stderr:  result.Stderr,
			Cause:   cause,
		}
	}

	if progress != nil {
		progress.Flush()
	}

	r.Logger.Debug("process finished", "name", name)
	return result, nil
}

func exitMessage(name string, err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return fmt.Sprintf("%s was killed by signal %s", name, status.Signal())
		}
		return fmt.Sprintf("%s exited with code %d", name, exitErr.ExitCode())
	}
	return fmt.Sprintf("%s failed", name)
}
