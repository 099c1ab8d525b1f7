package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jeffamaxey/notebooker/internal/core"
	"github.com/jeffamaxey/notebooker/internal/domain/model"
	"github.com/jeffamaxey/notebooker/internal/executor"
	"github.com/jeffamaxey/notebooker/internal/mocks"
)

type fakeProcess struct {
	stderr   io.Reader
	exitCode int

	closeOnce sync.Once
	closed    bool
}

func (p *fakeProcess) Stderr() io.Reader { return p.stderr }

func (p *fakeProcess) Wait() error {
	if p.exitCode == 0 {
		return nil
	}
	return fmt.Errorf("exit status %d", p.exitCode)
}

func (p *fakeProcess) Poll() (bool, int) { return true, p.exitCode }

func (p *fakeProcess) Close() error {
	p.closeOnce.Do(func() { p.closed = true })
	return nil
}

type fakeRunner struct {
	mu       sync.Mutex
	proc     *fakeProcess
	startErr error
	started  []executor.Invocation
}

func (r *fakeRunner) Start(_ context.Context, _ executor.Options, inv executor.Invocation) (executor.Process, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.startErr != nil {
		return nil, r.startErr
	}
	r.started = append(r.started, inv)
	return r.proc, nil
}

func newTestLauncher(t *testing.T, store core.ResultStore, runner executor.Runner) *Launcher {
	t.Helper()
	launcher, err := NewLauncher(LauncherOptions{
		Store:       store,
		Runner:      runner,
		GracePeriod: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	return launcher
}

func TestLauncher_Submit_StubSavedBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockResultStore(ctrl)

	runner := &fakeRunner{proc: &fakeProcess{stderr: strings.NewReader("")}}

	var stubbed core.SaveStubParams
	store.EXPECT().
		SaveCheckStub(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params core.SaveStubParams) error {
			stubbed = params
			runner.mu.Lock()
			defer runner.mu.Unlock()
			assert.Empty(t, runner.started, "subprocess must not start before the stub exists")
			return nil
		})

	launcher := newTestLauncher(t, store, runner)

	jobID, err := launcher.Submit(context.Background(), model.SubmitRequest{
		ReportName:       "sales/weekly",
		RunSynchronously: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	assert.Equal(t, jobID, stubbed.JobID)
	assert.Equal(t, "sales/weekly", stubbed.ReportName)
	assert.Equal(t, "sales/weekly", stubbed.ReportTitle)
	assert.Equal(t, 3, stubbed.NRetries)

	runner.mu.Lock()
	defer runner.mu.Unlock()
	require.Len(t, runner.started, 1)
	assert.Equal(t, jobID, runner.started[0].JobID)
}

func TestLauncher_Submit_SyncFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockResultStore(ctrl)

	store.EXPECT().SaveCheckStub(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().
		UpdateStdout(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	store.EXPECT().
		UpdateCheckStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update core.StatusUpdate) error {
			assert.Equal(t, model.JobStatusError, update.Status)
			assert.Contains(t, update.ErrorInfo, "exited with code")
			assert.Contains(t, update.ErrorInfo, "boom")
			return nil
		})

	runner := &fakeRunner{proc: &fakeProcess{stderr: strings.NewReader("boom\n"), exitCode: 2}}
	launcher := newTestLauncher(t, store, runner)

	jobID, err := launcher.Submit(context.Background(), model.SubmitRequest{
		ReportName:       "sales/weekly",
		RunSynchronously: true,
	})
	require.Error(t, err)
	require.NotEmpty(t, jobID)

	var failure *ExecutionFailureError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, jobID, failure.JobID)
	assert.Equal(t, 2, failure.ExitCode)
}

func TestLauncher_Submit_AsyncFastFailureSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockResultStore(ctrl)

	store.EXPECT().SaveCheckStub(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().UpdateStdout(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	store.EXPECT().UpdateCheckStatus(gomock.Any(), gomock.Any()).Return(nil)

	runner := &fakeRunner{proc: &fakeProcess{stderr: strings.NewReader(""), exitCode: 1}}
	launcher := newTestLauncher(t, store, runner)

	_, err := launcher.Submit(context.Background(), model.SubmitRequest{ReportName: "r"})

	var failure *ExecutionFailureError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 1, failure.ExitCode)
}

func TestLauncher_Submit_StartFailureMarksJobFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockResultStore(ctrl)

	store.EXPECT().SaveCheckStub(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().
		UpdateCheckStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update core.StatusUpdate) error {
			assert.Equal(t, model.JobStatusError, update.Status)
			assert.Contains(t, update.ErrorInfo, "failed to start")
			return nil
		})

	runner := &fakeRunner{startErr: errors.New("binary not found")}
	launcher := newTestLauncher(t, store, runner)

	_, err := launcher.Submit(context.Background(), model.SubmitRequest{ReportName: "r"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary not found")
}

func TestLauncher_Submit_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockResultStore(ctrl)

	launcher := newTestLauncher(t, store, &fakeRunner{})

	_, err := launcher.Submit(context.Background(), model.SubmitRequest{})
	require.Error(t, err)
}

func TestLauncher_Rerun_PrefixesTitleOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockResultStore(ctrl)

	schedulerID := "nightly"
	prior := &model.NotebookResult{
		JobID:       "job-old",
		ReportName:  "sales/weekly",
		ReportTitle: "Weekly Sales",
		Overrides: model.Overrides{
			{Name: "region", Value: "EU"},
		},
		Mailto:         "team@example.com",
		SchedulerJobID: &schedulerID,
		NRetries:       2,
	}

	store.EXPECT().GetCheckResult(gomock.Any(), "job-old").Return(prior, nil)

	var stubbed core.SaveStubParams
	store.EXPECT().
		SaveCheckStub(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params core.SaveStubParams) error {
			stubbed = params
			return nil
		})

	runner := &fakeRunner{proc: &fakeProcess{stderr: strings.NewReader("")}}
	launcher := newTestLauncher(t, store, runner)

	newID, err := launcher.Rerun(context.Background(), "job-old")
	require.NoError(t, err)
	require.NotEmpty(t, newID)
	assert.NotEqual(t, "job-old", newID)

	assert.Equal(t, "Rerun of Weekly Sales", stubbed.ReportTitle)
	assert.Nil(t, stubbed.SchedulerJobID, "rerun drops the scheduler association")
	assert.Equal(t, prior.Overrides, stubbed.Overrides)
	assert.Equal(t, 2, stubbed.NRetries)
}

func TestLauncher_Rerun_DoesNotStackPrefixes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockResultStore(ctrl)

	prior := &model.NotebookResult{
		JobID:       "job-old",
		ReportName:  "sales/weekly",
		ReportTitle: "Rerun of Weekly Sales",
	}
	store.EXPECT().GetCheckResult(gomock.Any(), "job-old").Return(prior, nil)

	var stubbed core.SaveStubParams
	store.EXPECT().
		SaveCheckStub(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params core.SaveStubParams) error {
			stubbed = params
			return nil
		})

	runner := &fakeRunner{proc: &fakeProcess{stderr: strings.NewReader("")}}
	launcher := newTestLauncher(t, store, runner)

	_, err := launcher.Rerun(context.Background(), "job-old")
	require.NoError(t, err)

	assert.Equal(t, "Rerun of Weekly Sales", stubbed.ReportTitle)
}

func TestLauncher_Rerun_UnknownJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockResultStore(ctrl)

	store.EXPECT().
		GetCheckResult(gomock.Any(), "missing").
		Return(nil, errors.New("notebook result not found"))

	launcher := newTestLauncher(t, store, &fakeRunner{})

	_, err := launcher.Rerun(context.Background(), "missing")
	require.Error(t, err)
}
