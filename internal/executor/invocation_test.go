package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffamaxey/notebooker/internal/domain/model"
)

func TestOptions_CommandLine_FullInvocation(t *testing.T) {
	schedulerID := "daily-0700"
	opts := Options{
		CLIPath:       "/usr/local/bin/notebooker-cli",
		OutputDir:     "/var/lib/notebooker/output",
		TemplateDir:   "/var/lib/notebooker/templates",
		PyTemplateDir: "/var/lib/notebooker/py-templates",
		DisableGit:    true,
		StoreArgs:     []string{"--serializer-cls", "postgres", "--pg-host", "db.internal"},
	}
	inv := Invocation{
		JobID:       "job-1234",
		ReportName:  "sales/weekly",
		ReportTitle: "Weekly Sales",
		Overrides: model.Overrides{
			{Name: "region", Value: "EU"},
			{Name: "year", Value: "2026"},
		},
		Mailto:         "team@example.com",
		Mailfrom:       "reports@example.com",
		GeneratePDF:    true,
		HideCode:       true,
		NRetries:       2,
		PrepareOnly:    true,
		SchedulerJobID: &schedulerID,
	}

	args, err := opts.CommandLine(inv)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--output-base-dir", "/var/lib/notebooker/output",
		"--template-base-dir", "/var/lib/notebooker/templates",
		"--py-template-base-dir", "/var/lib/notebooker/py-templates",
		"--serializer-cls", "postgres",
		"--pg-host", "db.internal",
		"--notebooker-disable-git",
		"execute-notebook",
		"--job-id", "job-1234",
		"--report-name", "sales/weekly",
		"--report-title", "Weekly Sales",
		"--mailto", "team@example.com",
		"--overrides-as-json", `{"region":"EU","year":"2026"}`,
		"--n-retries", "2",
		"--pdf-output",
		"--hide-code",
		"--prepare-notebook-only",
		"--scheduler-job-id=daily-0700",
		"--mailfrom=reports@example.com",
	}, args)
}

func TestOptions_CommandLine_Defaults(t *testing.T) {
	opts := Options{
		CLIPath:     "notebooker-cli",
		OutputDir:   "/tmp/output",
		TemplateDir: "/tmp/templates",
	}
	inv := Invocation{
		JobID:       "job-5678",
		ReportName:  "daily",
		ReportTitle: "daily",
		NRetries:    3,
	}

	args, err := opts.CommandLine(inv)
	require.NoError(t, err)

	assert.NotContains(t, args, "--py-template-base-dir")
	assert.NotContains(t, args, "--notebooker-disable-git")
	assert.NotContains(t, args, "--prepare-notebook-only")
	assert.Contains(t, args, "--no-pdf-output")
	assert.Contains(t, args, "--show-code")
	for _, arg := range args {
		assert.NotContains(t, arg, "--scheduler-job-id")
		assert.NotContains(t, arg, "--mailfrom")
	}
}

func TestOptions_CommandLine_Deterministic(t *testing.T) {
	opts := Options{
		CLIPath:     "notebooker-cli",
		OutputDir:   "/tmp/output",
		TemplateDir: "/tmp/templates",
	}
	inv := Invocation{
		JobID:      "job-9",
		ReportName: "r",
		Overrides: model.Overrides{
			{Name: "b", Value: "2"},
			{Name: "a", Value: "1"},
		},
	}

	first, err := opts.CommandLine(inv)
	require.NoError(t, err)
	second, err := opts.CommandLine(inv)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, `{"b":"2","a":"1"}`)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, -1, ExitCode(assert.AnError))
}
