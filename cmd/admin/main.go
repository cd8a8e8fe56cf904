package main

import (
	"log"
	"os"

	"erp/internal/config"
	"erp/internal/logger"
	"erp/internal/orgstructure"
	"erp/internal/profile"
	"erp/internal/store"
)

var stdLog *log.Logger

func main() {
	defer os.Exit(0)

	stdLog = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	cfg := config.Load()
	appLog := logger.NewRollbarLogger(stdLog, logger.Options{
		Token:       cfg.RollbarToken,
		Environment: cfg.Env,
		CodeVersion: cfg.Build,
		Enabled:     !cfg.Debug(),
	})

	// set up DB
	db, err := store.NewDB(cfg.DBDriver, cfg.DatabaseURL)
	if db != nil {
		defer db.Close()
	}
	errAndDie(err)

	catalog, err := orgstructure.DefaultCatalog()
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:       db.Client.DB,
		driver:   cfg.DBDriver,
		profiles: profile.NewService(profile.NewRepository(db.Client), appLog),
		org:      orgstructure.NewService(orgstructure.NewRepository(db.Client), catalog, appLog),
		out:      os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			stdLog.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		stdLog.Fatal(err)
	}
}
