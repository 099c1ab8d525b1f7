package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jeffamaxey/notebooker/config"
	"github.com/jeffamaxey/notebooker/internal/bootstrap"
	"github.com/jeffamaxey/notebooker/internal/core"
	"github.com/jeffamaxey/notebooker/internal/domain/model"
	"github.com/jeffamaxey/notebooker/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrations,
		},
		"snapshot": {
			name:        "snapshot",
			description: "Export the latest successful results of a report to disk",
			run:         runSnapshot,
		},
		"result": {
			name:        "result",
			description: "Inspect a stored notebook result by job ID",
			run:         runResult,
		},
		"list": {
			name:        "list",
			description: "List recent job results",
			run:         runList,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: notebooker-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-12s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	timeout := fs.Duration("timeout", defaultMigrationTimeout, "migration timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, *timeout)
	defer cancel()

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx.Logger, db)

	return bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
}

func runSnapshot(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	report := fs.String("report", "", "report name to export (required)")
	out := fs.String("out", "", "output directory (defaults to SNAPSHOT_ROOT)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *report == "" {
		return errors.New("snapshot requires -report")
	}

	root := *out
	if root == "" {
		root = cmdCtx.Config.Snapshot.Root
	}

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx.Logger, db)

	store, err := openStore(cmdCtx, db)
	if err != nil {
		return err
	}

	snapshot, err := service.NewSnapshot(service.SnapshotOptions{
		Store:  store,
		Root:   root,
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	if err = snapshot.Export(ctx, *report); err != nil {
		return err
	}

	cmdCtx.Logger.Info("snapshot export complete", "report", *report, "root", root)
	return nil
}

func runResult(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("result", flag.ContinueOnError)
	jobID := fs.String("job", "", "job ID to inspect (required)")
	raw := fs.Bool("raw", false, "print the full record as JSON, including the rendered HTML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *jobID == "" {
		return errors.New("result requires -job")
	}

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx.Logger, db)

	store, err := openStore(cmdCtx, db)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, time.Minute)
	defer cancel()

	result, err := store.GetCheckResult(ctx, *jobID)
	if err != nil {
		return err
	}

	if *raw {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	return printResultSummary(result)
}

func printResultSummary(result *model.NotebookResult) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"job_id", result.JobID},
		{"report_name", result.ReportName},
		{"report_title", result.ReportTitle},
		{"status", string(result.Status)},
		{"overrides", result.Overrides.Label()},
		{"job_start_time", result.JobStartTime.Format(time.RFC3339)},
		{"update_time", result.UpdateTime.Format(time.RFC3339)},
		{"stdout_lines", fmt.Sprintf("%d", len(result.Stdout))},
		{"error_info", result.ErrorInfo},
	}
	for _, row := range rows {
		if err := writef(w, "%s\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runList(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	report := fs.String("report", "", "filter by report name")
	limit := fs.Int("limit", 20, "maximum rows to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx.Logger, db)

	store, err := openStore(cmdCtx, db)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, time.Minute)
	defer cancel()

	summaries, err := store.ListResults(ctx, model.ResultListOptions{
		ReportName: *report,
		Limit:      *limit,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err = writef(w, "JOB ID\tREPORT\tSTATUS\tSTARTED\n"); err != nil {
		return err
	}
	for _, s := range summaries {
		if err = writef(w, "%s\t%s\t%s\t%s\n",
			s.JobID, s.ReportName, s.Status, s.JobStartTime.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return w.Flush()
}

func connectDB(cmdCtx *commandContext) (*sql.DB, error) {
	return bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    cmdCtx.Config.Postgres,
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
}

func closeDB(logger *slog.Logger, db *sql.DB) {
	if err := db.Close(); err != nil {
		logger.Warn("db close failed", "error", err)
	}
}

//nolint:ireturn // the store engine is chosen by configuration at runtime.
func openStore(cmdCtx *commandContext, db *sql.DB) (core.ResultStore, error) {
	return core.OpenStore(core.StoreKind(cmdCtx.Config.Store.Kind), core.StoreConfig{
		DB:     db,
		Logger: cmdCtx.Logger,
	})
}
