package data

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jeffamaxey/notebooker/internal/core"
	"github.com/jeffamaxey/notebooker/internal/domain/model"
)

// RepoConfig holds configuration options for the result repository.
type RepoConfig struct {
	Logger       *slog.Logger
	TimeProvider TimeProvider
}

// ResultRepo provides PostgreSQL-backed persistence for notebook results.
type ResultRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewResultRepo creates a new ResultRepo with the given database connection and configuration.
func NewResultRepo(db *sql.DB, cfg RepoConfig) *ResultRepo {
	tp := cfg.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}

	return &ResultRepo{
		DB:           db,
		timeProvider: tp,
		logger:       cfg.Logger,
	}
}

func init() {
	core.RegisterStore(core.StoreKindPostgres, func(cfg core.StoreConfig) (core.ResultStore, error) {
		if cfg.DB == nil {
			return nil, fmt.Errorf("open %s result store: database handle is required", core.StoreKindPostgres)
		}
		return NewResultRepo(cfg.DB, RepoConfig{Logger: cfg.Logger}), nil
	})
}

const resultColumns = `
  job_id,
  report_name,
  report_title,
  overrides,
  status,
  job_start_time,
  update_time,
  mailto,
  mailfrom,
  generate_pdf_output,
  hide_code,
  n_retries,
  scheduler_job_id,
  stdout,
  raw_html,
  error_info
`

// resultMetaColumns matches resultColumns but leaves the rendered HTML
// payload behind in the database.
const resultMetaColumns = `
  job_id,
  report_name,
  report_title,
  overrides,
  status,
  job_start_time,
  update_time,
  mailto,
  mailfrom,
  generate_pdf_output,
  hide_code,
  n_retries,
  scheduler_job_id,
  stdout,
  '' AS raw_html,
  error_info
`

type resultRowScanner interface {
	Scan(dest ...any) error
}

type resultRowData struct {
	overrides, stdout []byte
	schedulerJobID    sql.NullString
}

func (d *resultRowData) scanInto(scanner resultRowScanner, res *model.NotebookResult) error {
	return scanner.Scan(
		&res.JobID,
		&res.ReportName,
		&res.ReportTitle,
		&d.overrides,
		&res.Status,
		&res.JobStartTime,
		&res.UpdateTime,
		&res.Mailto,
		&res.Mailfrom,
		&res.GeneratePDFOutput,
		&res.HideCode,
		&res.NRetries,
		&d.schedulerJobID,
		&d.stdout,
		&res.RawHTML,
		&res.ErrorInfo,
	)
}

func (d *resultRowData) apply(res *model.NotebookResult) error {
	if len(d.overrides) > 0 {
		if err := json.Unmarshal(d.overrides, &res.Overrides); err != nil {
			return fmt.Errorf("decode overrides for job %s: %w", res.JobID, err)
		}
	}
	if len(d.stdout) > 0 {
		if err := json.Unmarshal(d.stdout, &res.Stdout); err != nil {
			return fmt.Errorf("decode stdout for job %s: %w", res.JobID, err)
		}
	}
	res.SchedulerJobID = cloneNullableString(d.schedulerJobID)
	res.JobStartTime = res.JobStartTime.UTC()
	res.UpdateTime = res.UpdateTime.UTC()
	return nil
}

func scanResultFromRow(scanner resultRowScanner) (*model.NotebookResult, error) {
	res := &model.NotebookResult{}
	var data resultRowData
	if err := data.scanInto(scanner, res); err != nil {
		return nil, err
	}
	if err := data.apply(res); err != nil {
		return nil, err
	}
	return res, nil
}

func cloneNullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func encodeOverrides(o model.Overrides) ([]byte, error) {
	if o == nil {
		o = model.Overrides{}
	}
	data, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("encode overrides: %w", err)
	}
	return data, nil
}

func encodeStdout(lines []string) ([]byte, error) {
	if lines == nil {
		lines = []string{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encode stdout: %w", err)
	}
	return data, nil
}

func (r *ResultRepo) now() time.Time {
	return r.timeProvider.Now().UTC()
}
