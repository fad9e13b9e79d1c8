package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/buildbytes/lms/core"
	"github.com/buildbytes/lms/core/certificate"
	"github.com/buildbytes/lms/core/course"
	"github.com/buildbytes/lms/core/message"
	"github.com/buildbytes/lms/core/progress"
	"github.com/buildbytes/lms/core/resource"
	"github.com/buildbytes/lms/core/submission"
	"github.com/buildbytes/lms/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Conf   *core.Config
		Logger core.Logger

		UserSvc        *user.Service
		CourseSvc      *course.Service
		SubmissionSvc  *submission.Service
		ResourceSvc    *resource.Service
		MessageSvc     *message.Service
		ProgressSvc    *progress.Service
		CertificateSvc *certificate.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
		Shutdown() <-chan struct{}
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan struct{}
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan struct{}, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	api := s.app.Group("/api")
	api.GET("", home)
	auth := newAuth(conf, s.opts.UserSvc)
	jwt := auth.jwtMiddleware()

	registerUserAPI(api, jwt, auth, s.opts.UserSvc)
	registerCategoryAPI(api, jwt, auth, s.opts.CourseSvc)
	registerProjectAPI(api, jwt, auth, s.opts.CourseSvc, s.opts.ProgressSvc)
	registerTaskAPI(api, jwt, auth, s.opts.CourseSvc)
	registerSubmissionAPI(api, jwt, auth, s.opts.SubmissionSvc)
	registerResourceAPI(api, jwt, auth, s.opts.ResourceSvc)
	registerMessageAPI(api, jwt, auth, s.opts.MessageSvc)
	registerProgressAPI(api, jwt, auth, s.opts.ProgressSvc)
	registerCertificateAPI(api, jwt, auth, s.opts.CertificateSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// Shutdown is signalled when an unrecoverable integrity error is caught
// by the error handler.
func (s *server) Shutdown() <-chan struct{} { return s.shutdown }

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- struct{}{}:
	default:
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to BuildBytes LMS API!")
}
