package main

import (
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/Allen-Davis-M/Attendify/apps/api/echo"
	dig_container "github.com/Allen-Davis-M/Attendify/apps/di/dig"
	"github.com/Allen-Davis-M/Attendify/core"
	"github.com/Allen-Davis-M/Attendify/core/tracker"
)

func main() {
	c := dig_container.New(nil)

	var exitCode int
	err := c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		store core.KVStore,
		svc *tracker.Service,
		validate *validator.Validate,
		translator ut.Translator,
	) {
		defer func() { _ = logger.Sync() }()

		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close store", err)
			}
		}()

		cli := commandLine{
			conf:       conf,
			svc:        svc,
			store:      store,
			translator: translator,
			out:        os.Stdout,
			in:         os.Stdin,
			serve: func(addr string) error {
				server := echoapi.NewServer(
					&echoapi.Options{Address: addr, Debug: conf.Debug},
					&echoapi.Deps{Svc: svc, Validate: validate, Translator: translator, Logger: logger},
				)
				return echoapi.Run(server, logger, conf.Server.ShutdownTimeout)
			},
		}
		if err := cli.run(os.Args); err != nil {
			if err != errHelp {
				fmt.Fprintf(os.Stderr, "error: %s\n", cli.formatErr(err))
			}
			exitCode = 1
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(exitCode)
}
