package testutil

import (
	"context"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Allen-Davis-M/Attendify/core"
	"github.com/Allen-Davis-M/Attendify/core/tracker"
	logsvc "github.com/Allen-Davis-M/Attendify/services/logger"
	"github.com/Allen-Davis-M/Attendify/storage"
	inmemdb "github.com/Allen-Davis-M/Attendify/storage/database/inmem"
)

// Env is a tracker.Service over an in-memory store, loaded with the starter data.
type Env struct {
	Store      *inmemdb.Store
	Svc        *tracker.Service
	Validate   *validator.Validate
	Translator ut.Translator
	Logger     core.Logger
}

func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	tracker.InitValidators(validate, translator)
	return validate, translator
}

func NewEnv(t *testing.T) *Env {
	t.Helper()

	store := inmemdb.Open()
	validate, translator := NewValidator()
	logger := logsvc.NewNopLogger()
	svc := tracker.NewService(storage.NewUserDataRepository(store, core.DefaultStorageKey), validate, logger)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("NewEnv() failed: %v", err)
	}
	return &Env{Store: store, Svc: svc, Validate: validate, Translator: translator, Logger: logger}
}
