package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jeffamaxey/notebooker/internal/core"
	"github.com/jeffamaxey/notebooker/internal/data/pgxutil"
	"github.com/jeffamaxey/notebooker/internal/domain/model"
)

// SaveCheckStub creates or overwrites the initial SUBMITTED record for a job.
// Re-stubbing an existing job ID resets the whole row, including stdout.
func (r *ResultRepo) SaveCheckStub(ctx context.Context, params core.SaveStubParams) error {
	if params.JobID == "" {
		return ErrJobIDRequired
	}

	overrides, err := encodeOverrides(params.Overrides)
	if err != nil {
		return err
	}

	startTime := params.JobStartTime
	if startTime.IsZero() {
		startTime = r.now()
	}

	query := `
      INSERT INTO notebook_results (
        job_id, report_name, report_title, overrides, overrides_fingerprint,
        status, job_start_time, update_time, mailto, mailfrom,
        generate_pdf_output, hide_code, n_retries, scheduler_job_id,
        stdout, raw_html, error_info
      )
      VALUES ($1,$2,$3,$4,$5,$6,$7,$7,$8,$9,$10,$11,$12,$13,'[]','','')
      ON CONFLICT (job_id) DO UPDATE SET
        report_name = EXCLUDED.report_name,
        report_title = EXCLUDED.report_title,
        overrides = EXCLUDED.overrides,
        overrides_fingerprint = EXCLUDED.overrides_fingerprint,
        status = EXCLUDED.status,
        job_start_time = EXCLUDED.job_start_time,
        update_time = EXCLUDED.update_time,
        mailto = EXCLUDED.mailto,
        mailfrom = EXCLUDED.mailfrom,
        generate_pdf_output = EXCLUDED.generate_pdf_output,
        hide_code = EXCLUDED.hide_code,
        n_retries = EXCLUDED.n_retries,
        scheduler_job_id = EXCLUDED.scheduler_job_id,
        stdout = EXCLUDED.stdout,
        raw_html = EXCLUDED.raw_html,
        error_info = EXCLUDED.error_info
    `

	_, err = r.DB.ExecContext(ctx, query,
		params.JobID,
		params.ReportName,
		params.ReportTitle,
		overrides,
		params.Overrides.Fingerprint(),
		model.JobStatusSubmitted,
		startTime.UTC(),
		params.Mailto,
		params.Mailfrom,
		params.GeneratePDFOutput,
		params.HideCode,
		params.NRetries,
		params.SchedulerJobID,
	)
	if err != nil {
		return fmt.Errorf("save check stub: %w", classifyStoreErr(err))
	}
	return nil
}

// UpdateStdout appends lines to (or, with Replace, rewrites) a job's stdout.
func (r *ResultRepo) UpdateStdout(ctx context.Context, params core.UpdateStdoutParams) error {
	if params.JobID == "" {
		return ErrJobIDRequired
	}
	if len(params.Lines) == 0 && !params.Replace {
		return nil
	}

	lines, err := encodeStdout(params.Lines)
	if err != nil {
		return err
	}

	query := `
		UPDATE notebook_results
		SET stdout = stdout || $2::jsonb,
		    update_time = $3
		WHERE job_id = $1
	`
	if params.Replace {
		query = `
		UPDATE notebook_results
		SET stdout = $2::jsonb,
		    update_time = $3
		WHERE job_id = $1
	`
	}

	res, err := r.DB.ExecContext(ctx, query, params.JobID, lines, r.now())
	if err != nil {
		return fmt.Errorf("update stdout: %w", classifyStoreErr(err))
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update stdout rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("update stdout for job %s: %w", params.JobID, ErrResultNotFound)
	}
	return nil
}

// UpdateCheckStatus performs a forward-only status write. A write against an
// unknown job is logged at warn and dropped; a backwards transition is an error.
func (r *ResultRepo) UpdateCheckStatus(ctx context.Context, update core.StatusUpdate) error {
	if update.JobID == "" {
		return ErrJobIDRequired
	}
	if !update.Status.Valid() {
		return fmt.Errorf("invalid status: %q", update.Status)
	}

	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			var current model.JobStatus
			row := tx.QueryRow(ctx, `
				SELECT status FROM notebook_results
				WHERE job_id = $1
				FOR UPDATE
			`, update.JobID)
			if scanErr := row.Scan(&current); scanErr != nil {
				if errors.Is(scanErr, pgx.ErrNoRows) {
					return ErrResultNotFound
				}
				return fmt.Errorf("load current status: %w", scanErr)
			}

			if !current.CanTransitionTo(update.Status) {
				return fmt.Errorf("status cannot move from %s to %s", current, update.Status)
			}

			_, execErr := tx.Exec(ctx, `
				UPDATE notebook_results
				SET status = $2,
				    error_info = COALESCE(NULLIF($3, ''), error_info),
				    update_time = $4
				WHERE job_id = $1
			`, update.JobID, update.Status, update.ErrorInfo, r.now())
			if execErr != nil {
				return fmt.Errorf("update status: %w", execErr)
			}
			return nil
		},
	})
	if errors.Is(err, ErrResultNotFound) {
		if r.logger != nil {
			r.logger.WarnContext(ctx, "status update for unknown job dropped",
				"job_id", update.JobID,
				"status", update.Status,
			)
		}
		return nil
	}
	if err != nil {
		return classifyStoreErr(err)
	}
	return nil
}

// SaveCheckResult writes the terminal record: status, rendered HTML, error
// info, and binary resources, in one transaction. A record that already
// reached a terminal status is never overwritten.
func (r *ResultRepo) SaveCheckResult(ctx context.Context, result *model.NotebookResult) error {
	if result == nil {
		return errors.New("result is required")
	}
	if result.JobID == "" {
		return ErrJobIDRequired
	}
	if !result.Status.Terminal() {
		return fmt.Errorf("save check result requires a terminal status, got %s", result.Status)
	}

	err := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			res, execErr := tx.ExecContext(ctx, `
				UPDATE notebook_results
				SET status = $2,
				    raw_html = $3,
				    error_info = $4,
				    update_time = $5
				WHERE job_id = $1 AND status NOT IN ($6, $7, $8, $9)
			`, result.JobID, result.Status, result.RawHTML, result.ErrorInfo, r.now(),
				model.JobStatusDone, model.JobStatusError, model.JobStatusCancelled, model.JobStatusDeleted)
			if execErr != nil {
				return fmt.Errorf("save check result: %w", execErr)
			}
			rowsAffected, raErr := res.RowsAffected()
			if raErr != nil {
				return fmt.Errorf("save check result rows affected: %w", raErr)
			}
			if rowsAffected == 0 {
				return r.diagnoseUnsavedResult(ctx, tx, result)
			}

			if _, execErr = tx.ExecContext(ctx, `
				DELETE FROM notebook_result_resources WHERE job_id = $1
			`, result.JobID); execErr != nil {
				return fmt.Errorf("clear result resources: %w", execErr)
			}

			for relPath, payload := range result.Resources {
				if _, execErr = tx.ExecContext(ctx, `
					INSERT INTO notebook_result_resources (job_id, relative_path, payload)
					VALUES ($1, $2, $3)
				`, result.JobID, relPath, payload); execErr != nil {
					return fmt.Errorf("save result resource %s: %w", relPath, execErr)
				}
			}
			return nil
		},
	})
	if err != nil {
		return classifyStoreErr(err)
	}
	return nil
}

// diagnoseUnsavedResult distinguishes a missing record from one that already
// holds a terminal status.
func (r *ResultRepo) diagnoseUnsavedResult(ctx context.Context, tx *sql.Tx, result *model.NotebookResult) error {
	var current model.JobStatus
	scanErr := tx.QueryRowContext(ctx, `
		SELECT status FROM notebook_results WHERE job_id = $1
	`, result.JobID).Scan(&current)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return fmt.Errorf("save check result for job %s: %w", result.JobID, ErrResultNotFound)
	}
	if scanErr != nil {
		return fmt.Errorf("save check result load status: %w", scanErr)
	}
	if current == model.JobStatusDeleted {
		return fmt.Errorf("save check result for job %s: %w", result.JobID, ErrResultNotFound)
	}
	return fmt.Errorf("job %s already finished with status %s", result.JobID, current)
}

// GetCheckResult returns the full record for a job, including resources.
// Tombstoned records are reported as not found.
func (r *ResultRepo) GetCheckResult(ctx context.Context, jobID string) (*model.NotebookResult, error) {
	return r.getCheckResult(ctx, jobID, resultColumns)
}

// GetCheckResultMeta returns the record with an empty RawHTML so callers
// serving a cached render skip the payload column.
func (r *ResultRepo) GetCheckResultMeta(ctx context.Context, jobID string) (*model.NotebookResult, error) {
	return r.getCheckResult(ctx, jobID, resultMetaColumns)
}

func (r *ResultRepo) getCheckResult(ctx context.Context, jobID, columns string) (*model.NotebookResult, error) {
	if jobID == "" {
		return nil, ErrJobIDRequired
	}

	var result *model.NotebookResult
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		row := pgxConn.QueryRow(ctx, `
			SELECT `+columns+`
			FROM notebook_results
			WHERE job_id = $1 AND status <> $2
		`, jobID, model.JobStatusDeleted)

		res, scanErr := scanResultFromRow(row)
		if scanErr != nil {
			return scanErr
		}
		result = res
		return nil
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get check result: %w", classifyStoreErr(err))
	}

	if err = r.loadResources(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetLatestSuccessfulResultsAllParams returns the newest DONE record per
// distinct overrides parameter set for one report.
func (r *ResultRepo) GetLatestSuccessfulResultsAllParams(
	ctx context.Context,
	reportName string,
) ([]*model.NotebookResult, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT ON (overrides_fingerprint) `+resultColumns+`
		FROM notebook_results
		WHERE report_name = $1 AND status = $2
		ORDER BY overrides_fingerprint, job_start_time DESC
	`, reportName, model.JobStatusDone)
	if err != nil {
		return nil, fmt.Errorf("get latest successful results: %w", classifyStoreErr(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			_ = cerr
		}
	}()

	var results []*model.NotebookResult
	for rows.Next() {
		res, scanErr := scanResultFromRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan latest successful result: %w", scanErr)
		}
		results = append(results, res)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate latest successful results: %w", rowsErr)
	}

	for _, res := range results {
		if err = r.loadResources(ctx, res); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// ListResults returns recent payload-free summaries, newest first.
func (r *ResultRepo) ListResults(
	ctx context.Context,
	opts model.ResultListOptions,
) ([]*model.ResultSummary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT job_id, report_name, report_title, overrides, status, job_start_time, update_time
		FROM notebook_results
		WHERE ($1 = '' OR report_name = $1) AND status <> $2
		ORDER BY job_start_time DESC
		LIMIT $3
	`, opts.ReportName, model.JobStatusDeleted, limit)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", classifyStoreErr(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			_ = cerr
		}
	}()

	var summaries []*model.ResultSummary
	for rows.Next() {
		summary, scanErr := scanSummary(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		summaries = append(summaries, summary)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate results: %w", rowsErr)
	}
	return summaries, nil
}

func scanSummary(scanner resultRowScanner) (*model.ResultSummary, error) {
	s := &model.ResultSummary{}
	var overrides []byte
	if err := scanner.Scan(
		&s.JobID,
		&s.ReportName,
		&s.ReportTitle,
		&overrides,
		&s.Status,
		&s.JobStartTime,
		&s.UpdateTime,
	); err != nil {
		return nil, fmt.Errorf("scan result summary: %w", err)
	}
	if len(overrides) > 0 {
		if err := json.Unmarshal(overrides, &s.Overrides); err != nil {
			return nil, fmt.Errorf("decode overrides for job %s: %w", s.JobID, err)
		}
	}
	s.JobStartTime = s.JobStartTime.UTC()
	s.UpdateTime = s.UpdateTime.UTC()
	return s, nil
}

// Delete marks a record as deleted; the tombstone drops out of every query.
func (r *ResultRepo) Delete(ctx context.Context, jobID string) error {
	if jobID == "" {
		return ErrJobIDRequired
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE notebook_results
		SET status = $2,
		    update_time = $3
		WHERE job_id = $1 AND status <> $2
	`, jobID, model.JobStatusDeleted, r.now())
	if err != nil {
		return fmt.Errorf("delete result: %w", classifyStoreErr(err))
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete result rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrResultNotFound
	}
	return nil
}

func (r *ResultRepo) loadResources(ctx context.Context, result *model.NotebookResult) error {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT relative_path, payload
		FROM notebook_result_resources
		WHERE job_id = $1
	`, result.JobID)
	if err != nil {
		return fmt.Errorf("load result resources: %w", classifyStoreErr(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			_ = cerr
		}
	}()

	for rows.Next() {
		var relPath string
		var payload []byte
		if scanErr := rows.Scan(&relPath, &payload); scanErr != nil {
			return fmt.Errorf("scan result resource: %w", scanErr)
		}
		if result.Resources == nil {
			result.Resources = make(map[string][]byte)
		}
		result.Resources[relPath] = payload
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return fmt.Errorf("iterate result resources: %w", rowsErr)
	}
	return nil
}
