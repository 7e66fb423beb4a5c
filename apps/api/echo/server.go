package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/Allen-Davis-M/Attendify/core"
	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

type (
	Options struct {
		Address        string
		Debug          bool
		DisableReqLogs bool
	}

	Deps struct {
		Svc        *tracker.Service
		Validate   *validator.Validate
		Translator ut.Translator
		Logger     core.Logger
	}

	Server struct {
		opts     *Options
		deps     *Deps
		app      *echo.Echo
		shutdown chan os.Signal
		errors   chan error
	}
)

var _ http.Handler = (*Server)(nil)

func NewServer(opts *Options, deps *Deps) *Server {
	s := &Server{
		opts:     opts,
		deps:     deps,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
		errors:   make(chan error, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Debug = s.opts.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in debug mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	registerTrackerAPI(v1, s.deps.Svc, s.deps.Validate)
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already pending
	}
}

// Start listens until the server is shut down. Listener failures are sent to Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Attendify API!")
}
