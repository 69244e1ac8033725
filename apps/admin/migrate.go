package main

import (
	"github.com/pkg/errors"

	"github.com/trezcool/presence/storage/database"
)

var gooseRunFunc = database.RunMigrations // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errors.New("migrate requires the postgres store")
	}
	return gooseRunFunc(cli.db, args[0], args[1:]...)
}
