// Package executor builds and runs the notebook execution subprocess. Each
// job is executed by an external CLI; this package encodes a job request into
// the CLI's argument list and supervises the spawned process.
package executor

import (
	"strconv"

	"github.com/jeffamaxey/notebooker/internal/domain/model"
)

// Options configures the subprocess command line that is shared by every
// invocation: the CLI binary, working directories, and result store flags.
type Options struct {
	// CLIPath is the path to the execution CLI binary.
	CLIPath string
	// OutputDir is passed as --output-base-dir.
	OutputDir string
	// TemplateDir is passed as --template-base-dir.
	TemplateDir string
	// PyTemplateDir is passed as --py-template-base-dir when set.
	PyTemplateDir string
	// DisableGit adds --notebooker-disable-git.
	DisableGit bool
	// StoreArgs carries the result store connection flags verbatim.
	StoreArgs []string
}

// Invocation is one fully-specified subprocess run for a single job.
type Invocation struct {
	JobID          string
	ReportName     string
	ReportTitle    string
	Overrides      model.Overrides
	Mailto         string
	Mailfrom       string
	GeneratePDF    bool
	HideCode       bool
	NRetries       int
	PrepareOnly    bool
	SchedulerJobID *string
}

// CommandLine encodes the invocation into the full argument list for the
// execution CLI. The encoding is deterministic: every toggle appears
// explicitly so two invocations with equal fields produce equal argument
// lists.
func (o Options) CommandLine(inv Invocation) ([]string, error) {
	overridesJSON, err := inv.Overrides.MarshalJSON()
	if err != nil {
		return nil, err
	}

	args := []string{
		"--output-base-dir", o.OutputDir,
		"--template-base-dir", o.TemplateDir,
	}
	if o.PyTemplateDir != "" {
		args = append(args, "--py-template-base-dir", o.PyTemplateDir)
	}
	args = append(args, o.StoreArgs...)
	if o.DisableGit {
		args = append(args, "--notebooker-disable-git")
	}

	args = append(args,
		"execute-notebook",
		"--job-id", inv.JobID,
		"--report-name", inv.ReportName,
		"--report-title", inv.ReportTitle,
		"--mailto", inv.Mailto,
		"--overrides-as-json", string(overridesJSON),
		"--n-retries", strconv.Itoa(inv.NRetries),
	)

	if inv.GeneratePDF {
		args = append(args, "--pdf-output")
	} else {
		args = append(args, "--no-pdf-output")
	}
	if inv.HideCode {
		args = append(args, "--hide-code")
	} else {
		args = append(args, "--show-code")
	}
	if inv.PrepareOnly {
		args = append(args, "--prepare-notebook-only")
	}
	if inv.SchedulerJobID != nil {
		args = append(args, "--scheduler-job-id="+*inv.SchedulerJobID)
	}
	if inv.Mailfrom != "" {
		args = append(args, "--mailfrom="+inv.Mailfrom)
	}

	return args, nil
}
