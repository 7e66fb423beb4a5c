package dig_container

import (
	"context"
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/Allen-Davis-M/Attendify/apps/api/echo"
	"github.com/Allen-Davis-M/Attendify/core"
	"github.com/Allen-Davis-M/Attendify/core/tracker"
	logsvc "github.com/Allen-Davis-M/Attendify/services/logger"
	"github.com/Allen-Davis-M/Attendify/storage"
)

type NewConfigFunc func() *core.Config

func newLogger(conf *core.Config) (*logsvc.RollbarLogger, error) {
	zl, err := logsvc.NewZapLogger(conf, conf.AppName)
	if err != nil {
		return nil, errors.Wrap(err, "building zap logger")
	}
	logger := logsvc.NewRollbarLogger(zl, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger, nil
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	tracker.InitValidators(validate, translator)
	return validate
}

func newRepository(conf *core.Config, store core.KVStore) tracker.Repository {
	return storage.NewUserDataRepository(store, conf.Storage.Key)
}

func newService(repo tracker.Repository, validate *validator.Validate, logger core.Logger) (*tracker.Service, error) {
	svc := tracker.NewService(repo, validate, logger)
	if err := svc.Load(context.Background()); err != nil {
		return nil, err
	}
	return svc, nil
}

func newServer(
	conf *core.Config,
	svc *tracker.Service,
	validate *validator.Validate,
	translator ut.Translator,
	logger core.Logger,
) *echoapi.Server {
	return echoapi.NewServer(
		&echoapi.Options{Address: conf.Server.Host, Debug: conf.Debug},
		&echoapi.Deps{Svc: svc, Validate: validate, Translator: translator, Logger: logger},
	)
}

// New returns a new dependency injection dig.Container.
// newConfig defaults to core.NewConfig.
func New(newConfig NewConfigFunc) *dig.Container {
	if newConfig == nil {
		newConfig = core.NewConfig
	}
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger, dig.As(new(core.Logger))))
	must(c.Provide(storage.Open))
	must(c.Provide(newRepository))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
