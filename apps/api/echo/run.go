package echoapi

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/Allen-Davis-M/Attendify/core"
)

// Run starts the server and blocks until it fails or is asked to shut down.
func Run(server *Server, logger core.Logger, shutdownTimeout time.Duration) error {
	go server.Start()
	logger.Info(fmt.Sprintf("API listening on %s", server.opts.Address))

	select {
	case err := <-server.Errors():
		return errors.Wrap(err, "server error")

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// asking listener to shut down and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
			if err = server.Close(); err != nil {
				return errors.Wrap(err, "could not force stop server")
			}
		}
	}
	return nil
}
