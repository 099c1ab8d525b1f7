package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffamaxey/notebooker/internal/core"
)

type recordingStdoutStore struct {
	mu      sync.Mutex
	appends [][]string
	replace []string
	fail    bool
}

func (s *recordingStdoutStore) UpdateStdout(_ context.Context, params core.UpdateStdoutParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return assert.AnError
	}
	if params.Replace {
		s.replace = params.Lines
		return nil
	}
	s.appends = append(s.appends, params.Lines)
	return nil
}

func TestStderrMonitor_Stream_AppendsEachLineThenReplaces(t *testing.T) {
	store := &recordingStdoutStore{}
	monitor := NewStderrMonitor(store, slog.Default())

	lines := monitor.Stream(context.Background(), "job-1", strings.NewReader("first\nsecond\nthird\n"))

	require.Equal(t, []string{"first", "second", "third"}, lines)
	assert.Equal(t, [][]string{{"first"}, {"second"}, {"third"}}, store.appends)
	assert.Equal(t, []string{"first", "second", "third"}, store.replace)
}

func TestStderrMonitor_Stream_KeepsPartialFinalLine(t *testing.T) {
	store := &recordingStdoutStore{}
	monitor := NewStderrMonitor(store, slog.Default())

	lines := monitor.Stream(context.Background(), "job-2", strings.NewReader("done\ntail without newline"))

	require.Equal(t, []string{"done", "tail without newline"}, lines)
	assert.Equal(t, []string{"done", "tail without newline"}, store.replace)
}

func TestStderrMonitor_Stream_EmptyStream(t *testing.T) {
	store := &recordingStdoutStore{}
	monitor := NewStderrMonitor(store, slog.Default())

	lines := monitor.Stream(context.Background(), "job-3", strings.NewReader(""))

	assert.Empty(t, lines)
	assert.Empty(t, store.appends)
	assert.Nil(t, store.replace)
}

func TestStderrMonitor_Stream_LogsEachLine(t *testing.T) {
	store := &recordingStdoutStore{}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	monitor := NewStderrMonitor(store, logger)

	monitor.Stream(context.Background(), "job-log", strings.NewReader("cell 1 executed\ncell 2 executed\n"))

	logged := buf.String()
	assert.Contains(t, logged, "cell 1 executed")
	assert.Contains(t, logged, "cell 2 executed")
	assert.Contains(t, logged, "job-log")
}

func TestStderrMonitor_Stream_ContinuesPastStoreErrors(t *testing.T) {
	store := &recordingStdoutStore{fail: true}
	monitor := NewStderrMonitor(store, slog.Default())

	lines := monitor.Stream(context.Background(), "job-4", strings.NewReader("a\nb\n"))

	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestStderrMonitor_Stream_DeliversLinesAsTheyArrive(t *testing.T) {
	store := &recordingStdoutStore{}
	monitor := NewStderrMonitor(store, slog.Default())

	pr, pw := io.Pipe()
	go func() {
		_, _ = pw.Write([]byte("streamed line\n"))
		_ = pw.Close()
	}()

	lines := monitor.Stream(context.Background(), "job-5", pr)

	assert.Equal(t, []string{"streamed line"}, lines)
	assert.Equal(t, []string{"streamed line"}, store.replace)
}
