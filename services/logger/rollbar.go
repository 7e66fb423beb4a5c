package logsvc

import (
	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"

	"github.com/Allen-Davis-M/Attendify/core"
	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

type RollbarLogger struct {
	zl *zap.SugaredLogger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(zl *zap.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{zl: zl.Sugar()}
}

// NewZapLogger builds a console logger in debug mode and a JSON one otherwise.
func NewZapLogger(conf *core.Config, name string) (*zap.Logger, error) {
	zconf := zap.NewProductionConfig()
	if conf.Debug {
		zconf = zap.NewDevelopmentConfig()
	}
	zconf.OutputPaths = []string{"stderr"}
	zl, err := zconf.Build()
	if err != nil {
		return nil, err
	}
	return zl.Named(name), nil
}

// NewNopLogger returns a logger that writes nowhere and never reports.
func NewNopLogger() *RollbarLogger {
	rollbar.SetEnabled(false)
	return &RollbarLogger{zl: zap.NewNop().Sugar()}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

func (l RollbarLogger) Sync() error {
	rollbar.Wait()
	return l.zl.Sync()
}

// expected fmt: msg | error, map[string]interface{}, tracker.Settings
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var personSet bool
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		// the only person there is: the local user
		if settings, ok := arg.(tracker.Settings); ok {
			if !personSet {
				rollbar.SetPerson(settings.UserName, settings.UserName, "")
				personSet = true
			}
		} else {
			newArgs = append(newArgs, arg)
		}
	}
	if !personSet {
		rollbar.ClearPerson()
	}
	return newArgs
}

// fields turns the args into zap key/value pairs.
func (l RollbarLogger) fields(args []interface{}) []interface{} {
	kv := make([]interface{}, 0, len(args)*2)
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			kv = append(kv, zap.Error(a))
		case map[string]interface{}:
			for k, v := range a {
				kv = append(kv, k, v)
			}
		case tracker.Settings:
			kv = append(kv, "user", a.UserName)
		default:
			kv = append(kv, zap.Any("extra", a))
		}
	}
	return kv
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.zl.Debugw(msg, l.fields(args)...)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.zl.Infow(msg, l.fields(args)...)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.zl.Warnw(msg, l.fields(args)...)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.zl.Errorw(msg, l.fields(args)...)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	rollbar.Wait()
	l.zl.Fatalw(msg, l.fields(args)...)
}
