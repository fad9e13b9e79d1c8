package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	echoapi "github.com/buildbytes/lms/apps/api/echo"
	"github.com/buildbytes/lms/core"
	"github.com/buildbytes/lms/core/certificate"
	"github.com/buildbytes/lms/core/course"
	"github.com/buildbytes/lms/core/message"
	"github.com/buildbytes/lms/core/progress"
	"github.com/buildbytes/lms/core/resource"
	"github.com/buildbytes/lms/core/submission"
	"github.com/buildbytes/lms/core/user"
	emailsvc "github.com/buildbytes/lms/services/email"
	logsvc "github.com/buildbytes/lms/services/logger"
	"github.com/buildbytes/lms/storage/database"
	mongorepos "github.com/buildbytes/lms/storage/database/mongodb"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))

	// set up DB
	ctx, cancel := context.WithTimeout(context.Background(), conf.Mongo.Timeout)
	defer cancel()
	db, closeDB, err := database.Open(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), conf.Mongo.Timeout)
		defer cancel()
		if err := closeDB(ctx); err != nil {
			logger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	usrSvc := user.NewService(mongorepos.NewUserRepository(db), mailSvc, conf)
	courseSvc := course.NewService(mongorepos.NewCourseRepository(db))
	subSvc := submission.NewService(mongorepos.NewSubmissionRepository(db), courseSvc)
	resSvc := resource.NewService(mongorepos.NewResourceRepository(db))
	msgSvc := message.NewService(mongorepos.NewMessageRepository(db), usrSvc)
	progressSvc := progress.NewService(courseSvc, subSvc, usrSvc)
	certSvc := certificate.NewService(mongorepos.NewCertificateRepository(db), courseSvc, usrSvc, mailSvc, conf)

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : env %q", conf.Env))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(&echoapi.Options{
		Address:        conf.Server.Address(),
		Conf:           conf,
		Logger:         logger,
		UserSvc:        usrSvc,
		CourseSvc:      courseSvc,
		SubmissionSvc:  subSvc,
		ResourceSvc:    resSvc,
		MessageSvc:     msgSvc,
		ProgressSvc:    progressSvc,
		CertificateSvc: certSvc,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))
	case <-server.Shutdown():
		logger.Info("integrity error: Start shutdown...")
	}

	// give outstanding requests a deadline for completion
	stopCtx, stopCancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer stopCancel()

	if err := server.Stop(stopCtx); err != nil {
		logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}
