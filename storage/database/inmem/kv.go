package inmemdb

import (
	"context"
	"sync"

	"github.com/Allen-Davis-M/Attendify/core"
)

// Store is an ephemeral core.KVStore, used in tests and throwaway runs.
type Store struct {
	table  map[string]string
	closed bool
	mutex  sync.RWMutex
}

var _ core.KVStore = (*Store)(nil)

func Open() *Store {
	return &Store{table: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.closed {
		return "", core.ErrStoreClosed
	}
	value, ok := s.table[key]
	if !ok {
		return "", core.ErrKeyNotFound
	}
	return value, nil
}

func (s *Store) Put(_ context.Context, key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return core.ErrStoreClosed
	}
	s.table[key] = value
	return nil
}

func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.closed = true
	return nil
}
