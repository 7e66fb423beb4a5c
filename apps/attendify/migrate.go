package main

import (
	"github.com/pkg/errors"

	sqlxdb "github.com/Allen-Davis-M/Attendify/storage/database/sqlx"
)

var migrateRunFunc = sqlxdb.MigrateRun // mockable

func (cli *commandLine) migrate(args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	store, ok := cli.store.(*sqlxdb.Store)
	if !ok {
		return errors.Errorf("migrations only apply to the sqlite engine, not %q", cli.conf.Storage.Engine)
	}
	return migrateRunFunc(args[0], store.DB(), args[1:]...)
}
