package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/presence/core"
	"github.com/trezcool/presence/core/alert"
	"github.com/trezcool/presence/core/student"
	logsvc "github.com/trezcool/presence/services/logger"
	"github.com/trezcool/presence/storage"
	"github.com/trezcool/presence/storage/database"
)

func main() {
	os.Exit(start(os.Args))
}

func start(args []string) int {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)
	defer logsvc.Close()

	cli := commandLine{out: os.Stdout}

	if len(args) > 1 && args[1] == "migrate" {
		// set up DB
		if err := database.CreateIfNotExist(conf); err != nil {
			logger.Error(fmt.Sprintf("setting up database: %v", err), err)
			return 1
		}
		db, err := database.Open(conf)
		if err != nil {
			logger.Error(fmt.Sprintf("opening database: %v", err), err)
			return 1
		}
		defer func() { _ = db.Close() }()
		cli.db = db
	} else {
		// set up store
		repo, closeStore, err := storage.OpenStudentRepository(context.Background(), conf)
		if err != nil {
			logger.Error(fmt.Sprintf("setting up %s store: %v", conf.Store.Engine, err), err)
			return 1
		}
		defer func() { _ = closeStore() }()

		cli.svc = student.NewService(repo, conf)
		cli.alerts = alert.NewBox(0) // printed right away
		cli.roster = student.NewRoster(cli.svc, cli.alerts, logger)
	}

	// start CLI
	if err := cli.run(args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %s", err), err)
		}
		return 1
	}
	return 0
}
