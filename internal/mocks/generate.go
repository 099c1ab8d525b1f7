// Package mocks provides mock implementations for testing the notebooker job system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our store interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockStore := mocks.NewMockResultStore(ctrl)
//	mockStore.EXPECT().SaveCheckStub(gomock.Any(), gomock.Any()).Return(nil)
package mocks

// Generate mock for ResultStore interface from internal/core package.
// This creates MockResultStore with methods for all ResultStore interface methods:
// SaveCheckStub, UpdateStdout, UpdateCheckStatus, SaveCheckResult, GetCheckResult,
// GetLatestSuccessfulResultsAllParams, ListResults, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=result_store_mock.go github.com/jeffamaxey/notebooker/internal/core ResultStore

// Generate mock for RenderCache interface from internal/core package.
// This creates MockRenderCache with methods for all RenderCache interface methods:
// Get, Set
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=render_cache_mock.go github.com/jeffamaxey/notebooker/internal/core RenderCache
