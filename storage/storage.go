// Package storage opens the configured key-value store and keeps UserData in it.
package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Allen-Davis-M/Attendify/core"
	"github.com/Allen-Davis-M/Attendify/core/tracker"
	boltdb "github.com/Allen-Davis-M/Attendify/storage/database/bolt"
	inmemdb "github.com/Allen-Davis-M/Attendify/storage/database/inmem"
	sqlxdb "github.com/Allen-Davis-M/Attendify/storage/database/sqlx"
)

// Open returns the store selected by conf.Storage.Engine.
func Open(conf *core.Config) (core.KVStore, error) {
	switch conf.Storage.Engine {
	case core.EngineBolt, "":
		return boltdb.Open(conf.Storage.Path, conf.Storage.Bucket)
	case core.EngineSQLite:
		return sqlxdb.Open(conf.Storage.Path)
	case core.EngineMemory:
		return inmemdb.Open(), nil
	default:
		return nil, errors.Errorf("unknown storage engine %q", conf.Storage.Engine)
	}
}

// errStoreGone tells the serving app that no further writes can succeed.
var errStoreGone = core.NewShutdownError("user data store is closed")

type userDataRepository struct {
	store core.KVStore
	key   string
}

var _ tracker.Repository = (*userDataRepository)(nil)

// NewUserDataRepository keeps the serialized UserData under key.
func NewUserDataRepository(store core.KVStore, key string) tracker.Repository {
	if key == "" {
		key = core.DefaultStorageKey
	}
	return &userDataRepository{store: store, key: key}
}

func (repo *userDataRepository) Load(ctx context.Context) (tracker.UserData, error) {
	value, err := repo.store.Get(ctx, repo.key)
	if err != nil {
		switch errors.Cause(err) {
		case core.ErrKeyNotFound:
			return tracker.UserData{}, tracker.ErrNoData
		case core.ErrStoreClosed:
			return tracker.UserData{}, errStoreGone
		}
		return tracker.UserData{}, errors.Wrap(err, "reading user data")
	}
	return tracker.Decode(value)
}

func (repo *userDataRepository) Save(ctx context.Context, data tracker.UserData) error {
	value, err := tracker.Encode(data)
	if err != nil {
		return err
	}
	if err = repo.store.Put(ctx, repo.key, value); err != nil {
		if errors.Cause(err) == core.ErrStoreClosed {
			return errStoreGone
		}
		return errors.Wrap(err, "writing user data")
	}
	return nil
}
