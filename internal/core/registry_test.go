package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffamaxey/notebooker/internal/domain/model"
)

type nopStore struct{ ResultStore }

func (nopStore) GetCheckResult(context.Context, string) (*model.NotebookResult, error) {
	return nil, nil
}

func TestOpenStore_UnknownKind(t *testing.T) {
	_, err := OpenStore(StoreKind("bogus"), StoreConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown result store kind")
}

func TestRegisterStore_AndOpen(t *testing.T) {
	kind := StoreKind("registry-test")
	RegisterStore(kind, func(StoreConfig) (ResultStore, error) {
		return nopStore{}, nil
	})

	store, err := OpenStore(kind, StoreConfig{})
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.Contains(t, RegisteredStoreKinds(), kind)
}

func TestRegisterStore_DuplicatePanics(t *testing.T) {
	kind := StoreKind("registry-dup-test")
	RegisterStore(kind, func(StoreConfig) (ResultStore, error) {
		return nopStore{}, nil
	})

	assert.Panics(t, func() {
		RegisterStore(kind, func(StoreConfig) (ResultStore, error) {
			return nopStore{}, nil
		})
	})
}
