package core

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	// ErrStoreClosed is returned by a KVStore used after Close.
	ErrStoreClosed = errors.New("store closed")
)

// StoreOpenTimeout bounds the wait for a file lock held by another process.
const StoreOpenTimeout = time.Second

// KVStore is a durable string-keyed store: arbitrary text in, arbitrary text out.
type KVStore interface {
	// Get returns ErrKeyNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Close() error
}
