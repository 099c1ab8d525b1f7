package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jeffamaxey/notebooker/internal/domain/model"
	"github.com/jeffamaxey/notebooker/internal/mocks"
)

func TestSnapshot_Export_WritesLatestPerParameterSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockResultStore(ctrl)

	results := []*model.NotebookResult{
		{
			JobID:      "job-eu",
			ReportName: "sales/weekly",
			Overrides:  model.Overrides{{Name: "region", Value: "EU"}},
			Status:     model.JobStatusDone,
			RawHTML:    "<html>eu</html>",
			Resources: map[string][]byte{
				"images/chart.png": []byte("png-bytes"),
			},
		},
		{
			JobID:      "job-us",
			ReportName: "sales/weekly",
			Overrides:  model.Overrides{{Name: "region", Value: "US"}},
			Status:     model.JobStatusDone,
			RawHTML:    "<html>us</html>",
		},
	}
	store.EXPECT().
		GetLatestSuccessfulResultsAllParams(gomock.Any(), "sales/weekly").
		Return(results, nil)

	root := t.TempDir()
	snapshot, err := NewSnapshot(SnapshotOptions{Store: store, Root: root})
	require.NoError(t, err)

	require.NoError(t, snapshot.Export(context.Background(), "sales/weekly"))

	euHTML, err := os.ReadFile(filepath.Join(root, "weekly", "region_EU.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>eu</html>", string(euHTML))

	usHTML, err := os.ReadFile(filepath.Join(root, "weekly", "region_US.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>us</html>", string(usHTML))

	chart, err := os.ReadFile(filepath.Join(root, "weekly", "images", "chart.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(chart))
}

func TestSnapshot_Export_NoOverridesFallsBackToReportSuffix(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockResultStore(ctrl)

	store.EXPECT().
		GetLatestSuccessfulResultsAllParams(gomock.Any(), "daily").
		Return([]*model.NotebookResult{
			{JobID: "job-1", ReportName: "daily", Status: model.JobStatusDone, RawHTML: "<html/>"},
		}, nil)

	root := t.TempDir()
	snapshot, err := NewSnapshot(SnapshotOptions{Store: store, Root: root})
	require.NoError(t, err)

	require.NoError(t, snapshot.Export(context.Background(), "daily"))

	html, err := os.ReadFile(filepath.Join(root, "daily", "daily.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html/>", string(html))
}

func TestSnapshot_Export_SecondExportOverwrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockResultStore(ctrl)

	first := []*model.NotebookResult{
		{JobID: "job-1", ReportName: "daily", Status: model.JobStatusDone, RawHTML: "old"},
	}
	second := []*model.NotebookResult{
		{JobID: "job-2", ReportName: "daily", Status: model.JobStatusDone, RawHTML: "new"},
	}
	gomock.InOrder(
		store.EXPECT().GetLatestSuccessfulResultsAllParams(gomock.Any(), "daily").Return(first, nil),
		store.EXPECT().GetLatestSuccessfulResultsAllParams(gomock.Any(), "daily").Return(second, nil),
	)

	root := t.TempDir()
	snapshot, err := NewSnapshot(SnapshotOptions{Store: store, Root: root})
	require.NoError(t, err)

	require.NoError(t, snapshot.Export(context.Background(), "daily"))
	require.NoError(t, snapshot.Export(context.Background(), "daily"))

	html, err := os.ReadFile(filepath.Join(root, "daily", "daily.html"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(html))
}

func TestSnapshot_Export_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockResultStore(ctrl)

	store.EXPECT().
		GetLatestSuccessfulResultsAllParams(gomock.Any(), "daily").
		Return(nil, assert.AnError)

	snapshot, err := NewSnapshot(SnapshotOptions{Store: store, Root: t.TempDir()})
	require.NoError(t, err)

	require.Error(t, snapshot.Export(context.Background(), "daily"))
}

func TestNewSnapshot_Validation(t *testing.T) {
	_, err := NewSnapshot(SnapshotOptions{Root: "/tmp"})
	require.Error(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	_, err = NewSnapshot(SnapshotOptions{Store: mocks.NewMockResultStore(ctrl)})
	require.Error(t, err)
}
