package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// Process is a handle on a launched execution subprocess.
type Process interface {
	// Stderr streams the child's stderr. It reaches EOF when the child exits.
	Stderr() io.Reader
	// Wait blocks until the child exits and returns its exit error, if any.
	Wait() error
	// Poll reports whether the child has exited and, if so, its exit code.
	Poll() (done bool, exitCode int)
	// Close releases the stderr pipe. Call it after Stderr has been drained.
	Close() error
}

// Runner launches execution subprocesses.
type Runner interface {
	Start(ctx context.Context, opts Options, inv Invocation) (Process, error)
}

// ExecRunner runs the execution CLI with os/exec.
type ExecRunner struct{}

// NewExecRunner creates an ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Start builds the command line and launches the subprocess. Stdout is
// discarded; stderr is piped to the returned Process for streaming.
func (r *ExecRunner) Start(ctx context.Context, opts Options, inv Invocation) (Process, error) {
	args, err := opts.CommandLine(inv)
	if err != nil {
		return nil, fmt.Errorf("encode command line: %w", err)
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create stderr pipe: %w", err)
	}

	cmd := exec.CommandContext(ctx, opts.CLIPath, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = pw

	if err = cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return nil, fmt.Errorf("start %s: %w", opts.CLIPath, err)
	}

	// The child holds its own copy of the write end. Closing ours means the
	// reader sees EOF once the child exits.
	_ = pw.Close()

	p := &execProcess{cmd: cmd, stderr: pr, done: make(chan struct{})}
	go func() {
		p.waitErr = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

// ExitCode maps a Wait error to a process exit code. A nil error is exit 0;
// an error that is not an exec.ExitError maps to -1.
func ExitCode(waitErr error) int {
	if waitErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

type execProcess struct {
	cmd     *exec.Cmd
	stderr  *os.File
	done    chan struct{}
	waitErr error

	closeOnce sync.Once
}

func (p *execProcess) Stderr() io.Reader {
	return p.stderr
}

func (p *execProcess) Wait() error {
	<-p.done
	return p.waitErr
}

func (p *execProcess) Close() error {
	var err error
	p.closeOnce.Do(func() { err = p.stderr.Close() })
	return err
}

func (p *execProcess) Poll() (bool, int) {
	select {
	case <-p.done:
		return true, ExitCode(p.waitErr)
	default:
		return false, 0
	}
}
