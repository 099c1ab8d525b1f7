package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/jeffamaxey/notebooker/internal/core"
	"github.com/jeffamaxey/notebooker/internal/domain/model"
	"golang.org/x/sync/errgroup"
)

// SnapshotOptions configures a Snapshot service.
type SnapshotOptions struct {
	Store  core.ResultStore
	Root   string
	Logger *slog.Logger
}

// Snapshot exports the newest successful run of each parameter set of a
// report to a directory tree on disk.
type Snapshot struct {
	store  core.ResultStore
	root   string
	logger *slog.Logger
}

// NewSnapshot creates a Snapshot service.
func NewSnapshot(opts SnapshotOptions) (*Snapshot, error) {
	if opts.Store == nil {
		return nil, errors.New("snapshot requires a result store")
	}
	if opts.Root == "" {
		return nil, errors.New("snapshot requires an output root")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Snapshot{
		store:  opts.Store,
		root:   opts.Root,
		logger: logger.With("component", "snapshot"),
	}, nil
}

// Export writes the latest successful result per parameter set of the report
// under <root>/<report suffix>/. Each result becomes <label>.html; its binary
// resources keep their relative paths under the same report directory. The
// first write failure aborts the export.
func (s *Snapshot) Export(ctx context.Context, reportName string) error {
	if reportName == "" {
		return errors.New("report name is required")
	}

	results, err := s.store.GetLatestSuccessfulResultsAllParams(ctx, reportName)
	if err != nil {
		return fmt.Errorf("load latest results for %s: %w", reportName, err)
	}

	suffix := path.Base(reportName)
	dir := filepath.Join(s.root, suffix)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	// Parameter sets write distinct files under the report directory, so the
	// exports can run concurrently. The first failure cancels the rest.
	g, gctx := errgroup.WithContext(ctx)
	for _, result := range results {
		g.Go(func() error {
			label := result.Overrides.Label()
			if label == "" {
				label = suffix
			}
			if err := s.exportResult(dir, label, result); err != nil {
				return err
			}

			s.logger.InfoContext(gctx, "exported snapshot",
				"report_name", reportName,
				"job_id", result.JobID,
				"label", label,
			)
			return nil
		})
	}

	return g.Wait()
}

func (s *Snapshot) exportResult(dir, label string, result *model.NotebookResult) error {
	htmlPath := filepath.Join(dir, label+".html")
	if err := os.WriteFile(htmlPath, []byte(result.RawHTML), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", htmlPath, err)
	}

	for relPath, payload := range result.Resources {
		target := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create resource dir for %s: %w", relPath, err)
		}
		if err := os.WriteFile(target, payload, 0o644); err != nil {
			return fmt.Errorf("write resource %s: %w", relPath, err)
		}
	}
	return nil
}
