package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allen-Davis-M/Attendify/testutil/kvtest"
)

func TestStore(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "data", "attendify.db"), "attendify")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	kvtest.CheckKVStore(t, store)
}

func TestStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "attendify.db")

	store, err := Open(path, "attendify")
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "attendify_data", "kept"))
	require.NoError(t, store.Close())

	store, err = Open(path, "attendify")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	got, err := store.Get(ctx, "attendify_data")
	require.NoError(t, err)
	assert.Equal(t, "kept", got)
}

func TestStoreClosed(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "attendify.db"), "attendify")
	require.NoError(t, err)
	kvtest.CheckClosed(t, store)
}
