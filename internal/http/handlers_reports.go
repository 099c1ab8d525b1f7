// Package httpx provides HTTP handlers and utilities for the notebooker job system API.
package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jeffamaxey/notebooker/internal/core"
	"github.com/jeffamaxey/notebooker/internal/data"
	"github.com/jeffamaxey/notebooker/internal/domain/model"
	"github.com/jeffamaxey/notebooker/internal/service"
)

// LauncherService is the slice of the launcher the HTTP layer needs.
type LauncherService interface {
	Submit(ctx context.Context, req model.SubmitRequest) (string, error)
	Rerun(ctx context.Context, jobID string) (string, error)
}

// SnapshotService exports the latest successful results of a report to disk.
type SnapshotService interface {
	Export(ctx context.Context, reportName string) error
}

// ReportHandlers provides HTTP handlers for report and job result operations.
type ReportHandlers struct {
	Launcher LauncherService
	Snapshot SnapshotService
	Store    core.ResultStore
	Cache    core.RenderCache
	Logger   *slog.Logger
}

// runReportRequest is the JSON body accepted by RunReport.
type runReportRequest struct {
	ReportTitle       string          `json:"report_title"`
	Overrides         model.Overrides `json:"overrides"`
	Mailto            string          `json:"mailto"`
	Mailfrom          string          `json:"mailfrom"`
	GeneratePDFOutput bool            `json:"generate_pdf_output"`
	HideCode          bool            `json:"hide_code"`
	NRetries          int             `json:"n_retries"`
	PrepareOnly       bool            `json:"prepare_only"`
	SchedulerJobID    *string         `json:"scheduler_job_id"`
	RunSynchronously  bool            `json:"run_synchronously"`
}

// RunReport handles HTTP requests to execute a report.
func (h *ReportHandlers) RunReport(w http.ResponseWriter, r *http.Request) {
	reportName := r.PathValue("name")
	if reportName == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("report name is required"),
		})
		return
	}

	var req runReportRequest
	if r.ContentLength != 0 {
		if !DecodeJSON(w, r, &req) {
			return
		}
	}

	jobID, err := h.Launcher.Submit(r.Context(), model.SubmitRequest{
		ReportName:        reportName,
		ReportTitle:       req.ReportTitle,
		Overrides:         req.Overrides,
		Mailto:            req.Mailto,
		Mailfrom:          req.Mailfrom,
		GeneratePDFOutput: req.GeneratePDFOutput,
		HideCode:          req.HideCode,
		NRetries:          req.NRetries,
		PrepareOnly:       req.PrepareOnly,
		SchedulerJobID:    req.SchedulerJobID,
		RunSynchronously:  req.RunSynchronously,
	})
	if err != nil {
		h.writeSubmitError(w, jobID, err)
		return
	}

	code := http.StatusAccepted
	if req.RunSynchronously {
		code = http.StatusOK
	}
	WriteJSON(w, code, map[string]string{"job_id": jobID})
}

// RerunReport handles HTTP requests to rerun an existing job.
func (h *ReportHandlers) RerunReport(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")

	newID, err := h.Launcher.Rerun(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, data.ErrResultNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
			return
		}
		h.writeSubmitError(w, newID, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]string{"job_id": newID})
}

func (h *ReportHandlers) writeSubmitError(w http.ResponseWriter, jobID string, err error) {
	var failure *service.ExecutionFailureError
	if errors.As(err, &failure) {
		WriteJSON(w, http.StatusBadGateway, map[string]any{
			"error":     "execution_failed",
			"message":   failure.Error(),
			"job_id":    jobID,
			"exit_code": failure.ExitCode,
		})
		return
	}
	WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "submit_failed", Err: err})
}

// GetResult handles HTTP requests for a single job result. On a render cache
// hit the store is asked for the record metadata only and the cached HTML
// fills the payload; a miss loads the full record and warms the cache.
func (h *ReportHandlers) GetResult(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")
	ctx := r.Context()

	if cached := h.cachedRender(ctx, jobID); cached != nil {
		result, err := h.Store.GetCheckResultMeta(ctx, jobID)
		if err != nil {
			h.writeStoreError(w, err)
			return
		}
		if result.Status == model.JobStatusDone {
			result.RawHTML = string(cached)
			WriteJSON(w, http.StatusOK, result)
			return
		}
	}

	result, err := h.Store.GetCheckResult(ctx, jobID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	if result.Status == model.JobStatusDone && h.Cache != nil {
		if err := h.Cache.Set(ctx, result.JobID, []byte(result.RawHTML)); err != nil {
			h.logWarn(ctx, "render cache write failed", result.JobID, err)
		}
	}

	WriteJSON(w, http.StatusOK, result)
}

// cachedRender looks up the rendered HTML for a job. Cache failures are
// logged and treated as misses.
func (h *ReportHandlers) cachedRender(ctx context.Context, jobID string) []byte {
	if h.Cache == nil {
		return nil
	}
	cached, err := h.Cache.Get(ctx, jobID)
	if err != nil {
		h.logWarn(ctx, "render cache read failed", jobID, err)
		return nil
	}
	return cached
}

func (h *ReportHandlers) logWarn(ctx context.Context, msg, jobID string, err error) {
	if h.Logger != nil {
		h.Logger.WarnContext(ctx, msg, "job_id", jobID, "err", err)
	}
}

// GetStdout handles HTTP requests for a job's captured output.
func (h *ReportHandlers) GetStdout(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")

	result, err := h.Store.GetCheckResult(r.Context(), jobID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"job_id": result.JobID,
		"status": result.Status,
		"stdout": result.Stdout,
	})
}

// ListResults handles HTTP requests for recent job summaries.
func (h *ReportHandlers) ListResults(w http.ResponseWriter, r *http.Request) {
	opts := model.ResultListOptions{
		ReportName: r.URL.Query().Get("report_name"),
		Limit:      parseIntQuery(r, "limit", 0),
	}

	summaries, err := h.Store.ListResults(r.Context(), opts)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if summaries == nil {
		summaries = []*model.ResultSummary{}
	}

	WriteJSON(w, http.StatusOK, summaries)
}

// DeleteResult handles HTTP requests to remove a job result.
func (h *ReportHandlers) DeleteResult(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")

	if err := h.Store.Delete(r.Context(), jobID); err != nil {
		h.writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SnapshotReport handles HTTP requests to export the latest successful
// results of a report to the snapshot directory.
func (h *ReportHandlers) SnapshotReport(w http.ResponseWriter, r *http.Request) {
	reportName := r.PathValue("name")
	if reportName == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("report name is required"),
		})
		return
	}

	if err := h.Snapshot.Export(r.Context(), reportName); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "snapshot_failed", Err: err})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ReportHandlers) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, data.ErrResultNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
	case errors.Is(err, data.ErrStoreUnavailable):
		WriteError(w, ErrorParams{Code: http.StatusServiceUnavailable, ErrCode: "store_unavailable", Err: err})
	default:
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal_error", Err: err})
	}
}

// parseIntQuery parses an integer query parameter, returning the default when
// absent or malformed.
func parseIntQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
