package service

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/jeffamaxey/notebooker/internal/core"
)

// StdoutStore is the slice of the result store the monitor needs.
type StdoutStore interface {
	UpdateStdout(ctx context.Context, params core.UpdateStdoutParams) error
}

// StderrMonitor streams a subprocess's stderr into the result store line by
// line, then writes the complete transcript in one replace once the stream
// ends.
type StderrMonitor struct {
	store  StdoutStore
	logger *slog.Logger
}

// NewStderrMonitor creates a StderrMonitor.
func NewStderrMonitor(store StdoutStore, logger *slog.Logger) *StderrMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &StderrMonitor{store: store, logger: logger.With("component", "stderr_monitor")}
}

// Stream reads stderr until EOF. Each line is logged and appended to the
// job's stored stdout as it arrives; a failed append is logged and the
// stream continues.
// After EOF the full accumulated transcript replaces the stored value so the
// record converges even if individual appends were lost. The collected lines
// are returned.
func (m *StderrMonitor) Stream(ctx context.Context, jobID string, stderr io.Reader) []string {
	defer func() {
		if r := recover(); r != nil {
			m.logger.ErrorContext(ctx, "stderr monitor panicked", "job_id", jobID, "panic", r)
		}
	}()

	reader := bufio.NewReader(stderr)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\n")
			lines = append(lines, line)
			m.logger.InfoContext(ctx, "subprocess output", "job_id", jobID, "line", line)
			if updateErr := m.store.UpdateStdout(ctx, core.UpdateStdoutParams{
				JobID: jobID,
				Lines: []string{line},
			}); updateErr != nil {
				m.logger.WarnContext(ctx, "failed to append stdout line",
					"job_id", jobID,
					"err", updateErr,
				)
			}
		}
		if err != nil {
			if err != io.EOF {
				m.logger.WarnContext(ctx, "stderr read ended early", "job_id", jobID, "err", err)
			}
			break
		}
	}

	if len(lines) > 0 {
		if err := m.store.UpdateStdout(ctx, core.UpdateStdoutParams{
			JobID:   jobID,
			Lines:   lines,
			Replace: true,
		}); err != nil {
			m.logger.WarnContext(ctx, "failed to replace stdout transcript",
				"job_id", jobID,
				"err", err,
			)
		}
	}
	return lines
}
