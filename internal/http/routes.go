package httpx

import (
	"log/slog"
	"net/http"

	"github.com/jeffamaxey/notebooker/internal/core"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Launcher LauncherService
	Snapshot SnapshotService
	Store    core.ResultStore
	Cache    core.RenderCache
	Logger   *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	handlers := &ReportHandlers{
		Launcher: services.Launcher,
		Snapshot: services.Snapshot,
		Store:    services.Store,
		Cache:    services.Cache,
		Logger:   services.Logger,
	}

	registerReportRoutes(mux, handlers)
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerReportRoutes(mux *http.ServeMux, h *ReportHandlers) {
	// Report names may contain slashes, so they terminate their patterns.
	mux.HandleFunc("POST /api/reports/run/{name...}", h.RunReport)
	mux.HandleFunc("POST /api/reports/snapshot/{name...}", h.SnapshotReport)

	mux.HandleFunc("GET /api/jobs", h.ListResults)
	mux.HandleFunc("GET /api/jobs/{job_id}", h.GetResult)
	mux.HandleFunc("GET /api/jobs/{job_id}/stdout", h.GetStdout)
	mux.HandleFunc("POST /api/jobs/{job_id}/rerun", h.RerunReport)
	mux.HandleFunc("DELETE /api/jobs/{job_id}", h.DeleteResult)
}
