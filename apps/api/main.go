package main

import (
	"fmt"
	"log"

	echoapi "github.com/Allen-Davis-M/Attendify/apps/api/echo"
	dig_container "github.com/Allen-Davis-M/Attendify/apps/di/dig"
	"github.com/Allen-Davis-M/Attendify/core"
)

func main() {
	c := dig_container.New(nil)

	err := c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		store core.KVStore,
		server *echoapi.Server,
	) {
		defer func() { _ = logger.Sync() }()

		logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
		defer logger.Info("Application stopped")

		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close store", err)
			}
		}()

		if err := echoapi.Run(server, logger, conf.Server.ShutdownTimeout); err != nil {
			logger.Error(err.Error(), err)
		}
	})
	if err != nil {
		log.Fatal(err)
	}
}
