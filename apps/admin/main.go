package main

import (
	"context"
	"log"
	"os"

	"github.com/buildbytes/lms/core"
	"github.com/buildbytes/lms/core/user"
	emailsvc "github.com/buildbytes/lms/services/email"
	"github.com/buildbytes/lms/storage/database"
	mongorepos "github.com/buildbytes/lms/storage/database/mongodb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	ctx, cancel := context.WithTimeout(context.Background(), conf.Mongo.Timeout)
	defer cancel()
	db, closeDB, err := database.Open(ctx, conf)
	errAndDie(err)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), conf.Mongo.Timeout)
		defer cancel()
		errAndDie(closeDB(ctx))
	}()

	// start CLI
	cli := commandLine{
		usrSvc: user.NewService(mongorepos.NewUserRepository(db), emailsvc.NewConsoleService(conf), conf),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
