// Package service contains the orchestration logic for notebook jobs:
// launching the execution subprocess, monitoring its output, and exporting
// snapshots of completed reports.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeffamaxey/notebooker/internal/core"
	"github.com/jeffamaxey/notebooker/internal/domain/model"
	"github.com/jeffamaxey/notebooker/internal/executor"
)

// RerunTitlePrefix marks a report title as belonging to a rerun job.
const RerunTitlePrefix = "Rerun of "

// DefaultGracePeriod is how long an asynchronous submit watches the
// subprocess before reporting the job as launched.
const DefaultGracePeriod = time.Second

// ExecutionFailureError reports a subprocess that exited nonzero.
type ExecutionFailureError struct {
	JobID    string
	ExitCode int
}

func (e *ExecutionFailureError) Error() string {
	return fmt.Sprintf("job %s failed with exit code %d", e.JobID, e.ExitCode)
}

// LauncherOptions configures a Launcher.
type LauncherOptions struct {
	Store  core.ResultStore
	Runner executor.Runner
	Exec   executor.Options
	Logger *slog.Logger
	// GracePeriod overrides DefaultGracePeriod when positive.
	GracePeriod time.Duration
	// DefaultMailfrom is used when a request does not name a sender.
	DefaultMailfrom string
	// DefaultRetries is used when a request asks for zero retries.
	DefaultRetries int
}

// Launcher submits notebook jobs: it records the job stub, starts the
// execution subprocess, and supervises it until exit.
type Launcher struct {
	store           core.ResultStore
	runner          executor.Runner
	execOpts        executor.Options
	logger          *slog.Logger
	gracePeriod     time.Duration
	defaultMailfrom string
	defaultRetries  int
}

// NewLauncher creates a Launcher from the given options.
func NewLauncher(opts LauncherOptions) (*Launcher, error) {
	if opts.Store == nil {
		return nil, errors.New("launcher requires a result store")
	}
	if opts.Runner == nil {
		return nil, errors.New("launcher requires a runner")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	grace := opts.GracePeriod
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	retries := opts.DefaultRetries
	if retries <= 0 {
		retries = 3
	}
	return &Launcher{
		store:           opts.Store,
		runner:          opts.Runner,
		execOpts:        opts.Exec,
		logger:          logger.With("component", "launcher"),
		gracePeriod:     grace,
		defaultMailfrom: opts.DefaultMailfrom,
		defaultRetries:  retries,
	}, nil
}

// MustNewLauncher creates a Launcher and panics on invalid options.
func MustNewLauncher(opts LauncherOptions) *Launcher {
	l, err := NewLauncher(opts)
	if err != nil {
		panic(err)
	}
	return l
}

// Submit records a job stub and launches the execution subprocess. For a
// synchronous request it blocks until the subprocess exits; otherwise it
// watches the subprocess for a short grace period so immediate failures
// surface to the caller, then returns the job ID while supervision continues
// in the background.
func (l *Launcher) Submit(ctx context.Context, req model.SubmitRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if req.Mailfrom == "" {
		req.Mailfrom = l.defaultMailfrom
	}
	if req.NRetries == 0 {
		req.NRetries = l.defaultRetries
	}

	jobID := uuid.NewString()
	startTime := time.Now().UTC()

	// The stub must exist before the subprocess starts so the record is
	// visible the moment the job is observable.
	if err := l.store.SaveCheckStub(ctx, core.SaveStubParams{
		JobID:             jobID,
		ReportName:        req.ReportName,
		ReportTitle:       req.ReportTitle,
		Overrides:         req.Overrides,
		Mailto:            req.Mailto,
		Mailfrom:          req.Mailfrom,
		GeneratePDFOutput: req.GeneratePDFOutput,
		HideCode:          req.HideCode,
		NRetries:          req.NRetries,
		SchedulerJobID:    req.SchedulerJobID,
		JobStartTime:      startTime,
	}); err != nil {
		return "", fmt.Errorf("save job stub: %w", err)
	}

	inv := executor.Invocation{
		JobID:          jobID,
		ReportName:     req.ReportName,
		ReportTitle:    req.ReportTitle,
		Overrides:      req.Overrides,
		Mailto:         req.Mailto,
		Mailfrom:       req.Mailfrom,
		GeneratePDF:    req.GeneratePDFOutput,
		HideCode:       req.HideCode,
		NRetries:       req.NRetries,
		PrepareOnly:    req.PrepareOnly,
		SchedulerJobID: req.SchedulerJobID,
	}

	// The subprocess and its monitor must outlive the submitting request.
	runCtx := context.WithoutCancel(ctx)

	proc, err := l.runner.Start(runCtx, l.execOpts, inv)
	if err != nil {
		l.markFailed(runCtx, jobID, fmt.Sprintf("failed to start subprocess: %v", err))
		return "", fmt.Errorf("start subprocess: %w", err)
	}

	l.logger.InfoContext(ctx, "job launched",
		"job_id", jobID,
		"report_name", req.ReportName,
		"synchronous", req.RunSynchronously,
	)

	exited := make(chan int, 1)
	go l.supervise(runCtx, jobID, proc, exited)

	if req.RunSynchronously {
		code := <-exited
		if code != 0 {
			return jobID, &ExecutionFailureError{JobID: jobID, ExitCode: code}
		}
		return jobID, nil
	}

	timer := time.NewTimer(l.gracePeriod)
	defer timer.Stop()
	select {
	case code := <-exited:
		if code != 0 {
			return jobID, &ExecutionFailureError{JobID: jobID, ExitCode: code}
		}
		return jobID, nil
	case <-timer.C:
		return jobID, nil
	}
}

// supervise streams stderr to the store, waits for the subprocess to exit,
// and records a failure status on a nonzero exit code.
func (l *Launcher) supervise(ctx context.Context, jobID string, proc executor.Process, exited chan<- int) {
	monitor := NewStderrMonitor(l.store, l.logger)
	lines := monitor.Stream(ctx, jobID, proc.Stderr())

	_ = proc.Wait()
	if closeErr := proc.Close(); closeErr != nil {
		l.logger.WarnContext(ctx, "failed to close stderr pipe", "job_id", jobID, "err", closeErr)
	}

	_, code := proc.Poll()
	if code != 0 {
		info := fmt.Sprintf("subprocess exited with code %d", code)
		if tail := lastLines(lines, 5); tail != "" {
			info += "\n" + tail
		}
		l.markFailed(ctx, jobID, info)
		l.logger.ErrorContext(ctx, "job failed", "job_id", jobID, "exit_code", code)
	} else {
		l.logger.InfoContext(ctx, "job subprocess exited cleanly", "job_id", jobID)
	}
	exited <- code
}

// markFailed records an ERROR status. The store's forward-only rule keeps
// this from clobbering a terminal status the subprocess already wrote.
func (l *Launcher) markFailed(ctx context.Context, jobID, info string) {
	if err := l.store.UpdateCheckStatus(ctx, core.StatusUpdate{
		JobID:     jobID,
		Status:    model.JobStatusError,
		ErrorInfo: info,
	}); err != nil {
		l.logger.ErrorContext(ctx, "failed to record job failure", "job_id", jobID, "err", err)
	}
}

// Rerun submits a fresh job with the parameters of an existing one. The new
// title carries the rerun prefix exactly once, and any scheduler association
// is dropped so the rerun counts as a manual run.
func (l *Launcher) Rerun(ctx context.Context, jobID string) (string, error) {
	prior, err := l.store.GetCheckResult(ctx, jobID)
	if err != nil {
		return "", fmt.Errorf("load job %s: %w", jobID, err)
	}

	title := prior.ReportTitle
	if !strings.HasPrefix(title, RerunTitlePrefix) {
		title = RerunTitlePrefix + title
	}

	return l.Submit(ctx, model.SubmitRequest{
		ReportName:        prior.ReportName,
		ReportTitle:       title,
		Overrides:         prior.Overrides.Clone(),
		Mailto:            prior.Mailto,
		Mailfrom:          prior.Mailfrom,
		GeneratePDFOutput: prior.GeneratePDFOutput,
		HideCode:          prior.HideCode,
		NRetries:          prior.NRetries,
	})
}

func lastLines(lines []string, n int) string {
	if len(lines) == 0 {
		return ""
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
