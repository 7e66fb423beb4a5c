package boltdb

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/Allen-Davis-M/Attendify/core"
)

// Store is a core.KVStore backed by a single bbolt bucket.
type Store struct {
	db     *bbolt.DB
	bucket []byte
}

var _ core.KVStore = (*Store)(nil)

// Open opens (or creates) the database file at path and makes sure the bucket exists.
func Open(path, bucket string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: core.StoreOpenTimeout})
	if err != nil {
		return nil, errors.Wrap(err, "opening bolt database")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating bucket")
	}

	return &Store{db: db, bucket: []byte(bucket)}, nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return core.ErrKeyNotFound
		}
		v := b.Get([]byte(key))
		if v == nil {
			return core.ErrKeyNotFound
		}
		value = string(v) // v is only valid inside the transaction
		return nil
	})
	if err != nil {
		return "", closedOr(err)
	}
	return value, nil
}

func (s *Store) Put(_ context.Context, key, value string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return errors.Wrap(closedOr(err), "writing to bolt database")
	}
	return nil
}

func closedOr(err error) error {
	if err == bbolt.ErrDatabaseNotOpen {
		return core.ErrStoreClosed
	}
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
