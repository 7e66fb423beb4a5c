package kvtest

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allen-Davis-M/Attendify/core"
)

// CheckKVStore runs the behaviour every core.KVStore must share against store.
func CheckKVStore(t *testing.T, store core.KVStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.Equal(t, core.ErrKeyNotFound, errors.Cause(err), "Get(missing)")

	require.NoError(t, store.Put(ctx, "k", `{"a":1}`))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, got)

	require.NoError(t, store.Put(ctx, "k", "second"))
	got, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	require.NoError(t, store.Put(ctx, "empty", ""))
	got, err = store.Get(ctx, "empty")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

// CheckClosed closes store and expects every later call to fail with core.ErrStoreClosed.
func CheckClosed(t *testing.T, store core.KVStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", "v"))
	require.NoError(t, store.Close())

	_, err := store.Get(ctx, "k")
	assert.Equal(t, core.ErrStoreClosed, errors.Cause(err), "Get after Close")
	err = store.Put(ctx, "k", "w")
	assert.Equal(t, core.ErrStoreClosed, errors.Cause(err), "Put after Close")
}
