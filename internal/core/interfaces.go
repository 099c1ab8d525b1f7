package core

import (
	"context"
	"time"

	"github.com/jeffamaxey/notebooker/internal/domain/model"
)

// This file contains the Result Store port (hexagonal architecture). The
// service layer depends on this interface, not on a concrete store.

// SaveStubParams groups parameters for ResultStore.SaveCheckStub.
type SaveStubParams struct {
	JobID             string
	ReportName        string
	ReportTitle       string
	Overrides         model.Overrides
	Mailto            string
	Mailfrom          string
	GeneratePDFOutput bool
	HideCode          bool
	NRetries          int
	SchedulerJobID    *string
	JobStartTime      time.Time
}

// UpdateStdoutParams groups parameters for ResultStore.UpdateStdout.
// When Replace is set the stored sequence is replaced wholesale; otherwise
// Lines are appended. Each job's stdout has a single writer.
type UpdateStdoutParams struct {
	JobID   string
	Lines   []string
	Replace bool
}

// StatusUpdate groups parameters for ResultStore.UpdateCheckStatus.
type StatusUpdate struct {
	JobID     string
	Status    model.JobStatus
	ErrorInfo string
}

// ResultStore defines the persistence contract for report execution records.
type ResultStore interface {
	// SaveCheckStub creates or overwrites the initial SUBMITTED record for a job.
	SaveCheckStub(ctx context.Context, params SaveStubParams) error

	// UpdateStdout appends diagnostic lines to a job's stdout, or replaces the
	// whole stored sequence when params.Replace is set.
	UpdateStdout(ctx context.Context, params UpdateStdoutParams) error

	// UpdateCheckStatus performs a forward-only status write with optional
	// error info. Writes against unknown jobs are logged and dropped.
	UpdateCheckStatus(ctx context.Context, update StatusUpdate) error

	// SaveCheckResult writes the terminal record including rendered HTML and resources.
	SaveCheckResult(ctx context.Context, result *model.NotebookResult) error

	// GetCheckResult returns the record for a job, or data.ErrResultNotFound.
	GetCheckResult(ctx context.Context, jobID string) (*model.NotebookResult, error)

	// GetCheckResultMeta returns the record without its rendered HTML payload.
	// Callers holding a cached render use it to skip the heavy column.
	GetCheckResultMeta(ctx context.Context, jobID string) (*model.NotebookResult, error)

	// GetLatestSuccessfulResultsAllParams returns, for one report, the newest
	// DONE record per distinct overrides parameter set. Parameter sets that
	// never reached DONE are excluded.
	GetLatestSuccessfulResultsAllParams(ctx context.Context, reportName string) ([]*model.NotebookResult, error)

	// ListResults returns recent payload-free record summaries.
	ListResults(ctx context.Context, opts model.ResultListOptions) ([]*model.ResultSummary, error)

	// Delete marks a record as deleted. The tombstone is excluded from every query.
	Delete(ctx context.Context, jobID string) error
}

// RenderCache caches rendered HTML of DONE records by job ID. DONE records are
// immutable, so cached payloads never go stale.
type RenderCache interface {
	Get(ctx context.Context, jobID string) ([]byte, error)
	Set(ctx context.Context, jobID string, html []byte) error
}
