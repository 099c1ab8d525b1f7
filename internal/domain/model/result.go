// Package model defines the core data types and structures used throughout the notebooker job system.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a report execution.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobStatus string

const (
	// JobStatusSubmitted indicates the job record was created and the subprocess is being launched.
	JobStatusSubmitted JobStatus = "SUBMITTED"
	// JobStatusRunning indicates the subprocess reported that execution started.
	JobStatusRunning JobStatus = "RUNNING"
	// JobStatusDone indicates the report rendered successfully.
	JobStatusDone JobStatus = "DONE"
	// JobStatusError indicates the report failed to render.
	JobStatusError JobStatus = "ERROR"
	// JobStatusCancelled indicates the job was cancelled out-of-band.
	JobStatusCancelled JobStatus = "CANCELLED"
	// JobStatusDeleted is a tombstone; deleted records are excluded from every query.
	JobStatusDeleted JobStatus = "DELETED"
)

// UnmarshalText implements encoding.TextUnmarshaler for JobStatus to allow env and query parsing.
func (s *JobStatus) UnmarshalText(text []byte) error {
	v := strings.ToUpper(strings.TrimSpace(string(text)))
	st := JobStatus(v)
	if st.Valid() {
		*s = st
		return nil
	}
	return fmt.Errorf("invalid JobStatus: %q", v)
}

// Valid returns true if the JobStatus is valid.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusSubmitted, JobStatusRunning, JobStatusDone,
		JobStatusError, JobStatusCancelled, JobStatusDeleted:
		return true
	default:
		return false
	}
}

// Terminal returns true if the status ends the execution lifecycle.
func (s JobStatus) Terminal() bool {
	return s == JobStatusDone || s == JobStatusError || s == JobStatusCancelled
}

// rank orders statuses along the forward-only lifecycle.
// Terminal states share a rank; the tombstone sits past them.
func (s JobStatus) rank() int {
	switch s {
	case JobStatusSubmitted:
		return 0
	case JobStatusRunning:
		return 1
	case JobStatusDone, JobStatusError, JobStatusCancelled:
		return 2
	case JobStatusDeleted:
		return 3
	default:
		return -1
	}
}

// CanTransitionTo reports whether a status write from s to target is allowed.
// Statuses only move forward; repeating the current status is a no-op and allowed.
// One terminal state never replaces another.
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	if !s.Valid() || !target.Valid() {
		return false
	}
	if s == target {
		return true
	}
	return target.rank() > s.rank()
}

// NotebookResult is one report execution attempt. DONE records with rendered
// HTML are immutable; Overrides never change after creation.
type NotebookResult struct {
	JobID             string            `json:"job_id"                     db:"job_id"`
	ReportName        string            `json:"report_name"                db:"report_name"`
	ReportTitle       string            `json:"report_title"               db:"report_title"`
	Overrides         Overrides         `json:"overrides"                  db:"overrides"`
	Status            JobStatus         `json:"status"                     db:"status"`
	JobStartTime      time.Time         `json:"job_start_time"             db:"job_start_time"`
	UpdateTime        time.Time         `json:"update_time"                db:"update_time"`
	Mailto            string            `json:"mailto,omitempty"           db:"mailto"`
	Mailfrom          string            `json:"mailfrom,omitempty"         db:"mailfrom"`
	GeneratePDFOutput bool              `json:"generate_pdf_output"        db:"generate_pdf_output"`
	HideCode          bool              `json:"hide_code"                  db:"hide_code"`
	NRetries          int               `json:"n_retries"                  db:"n_retries"`
	SchedulerJobID    *string           `json:"scheduler_job_id,omitempty" db:"scheduler_job_id"`
	Stdout            []string          `json:"stdout,omitempty"           db:"stdout"`
	RawHTML           string            `json:"raw_html,omitempty"         db:"raw_html"`
	Resources         map[string][]byte `json:"resources,omitempty"        db:"-"`
	ErrorInfo         string            `json:"error_info,omitempty"       db:"error_info"`
}

// ResultSummary is a payload-free projection of NotebookResult used by listing
// endpoints; it carries no rendered HTML, resources, or stdout.
type ResultSummary struct {
	JobID        string    `json:"job_id"`
	ReportName   string    `json:"report_name"`
	ReportTitle  string    `json:"report_title"`
	Overrides    Overrides `json:"overrides"`
	Status       JobStatus `json:"status"`
	JobStartTime time.Time `json:"job_start_time"`
	UpdateTime   time.Time `json:"update_time"`
}

// SubmitRequest represents a request to execute a report.
type SubmitRequest struct {
	ReportName        string    `json:"report_name"`
	ReportTitle       string    `json:"report_title,omitempty"`
	Overrides         Overrides `json:"overrides,omitempty"`
	Mailto            string    `json:"mailto,omitempty"`
	Mailfrom          string    `json:"mailfrom,omitempty"`
	GeneratePDFOutput bool      `json:"generate_pdf_output,omitempty"`
	HideCode          bool      `json:"hide_code,omitempty"`
	NRetries          int       `json:"n_retries,omitempty"`
	PrepareOnly       bool      `json:"prepare_only,omitempty"`
	SchedulerJobID    *string   `json:"scheduler_job_id,omitempty"`
	RunSynchronously  bool      `json:"run_synchronously,omitempty"`
}

// Validate validates the SubmitRequest fields and defaults the title to the report name.
func (r *SubmitRequest) Validate() error {
	if strings.TrimSpace(r.ReportName) == "" {
		return errors.New("report name is required")
	}
	if r.NRetries < 0 {
		return errors.New("n_retries must be >= 0")
	}
	if r.ReportTitle == "" {
		r.ReportTitle = r.ReportName
	}
	return nil
}

// ResultListOptions holds filters for listing result summaries.
type ResultListOptions struct {
	ReportName string
	Limit      int
}
