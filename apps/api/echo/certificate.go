package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/buildbytes/lms/core/certificate"
	"github.com/buildbytes/lms/core/user"
)

type certificateApi struct {
	svc  *certificate.Service
	auth *auth
}

func registerCertificateAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *auth, svc *certificate.Service) {
	api := certificateApi{svc: svc, auth: auth}

	cg := g.Group("/certificates", jwt)
	cg.GET("", api.query)
	cg.POST("", api.generate)
	cg.GET("/:id", api.retrieve)
}

// Handlers

// query lists certificates. Students only ever see their own.
func (api *certificateApi) query(ctx echo.Context) error {
	usr, err := api.auth.authorize(ctx)
	if err != nil {
		return err
	}

	filter := new(certificate.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []certificate.Certificate{})
	}
	if usr.IsStudent() {
		filter.StudentID = usr.ID
	}

	certs, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying certificates")
	}
	if certs == nil {
		certs = []certificate.Certificate{}
	}
	return ctx.JSON(http.StatusOK, certs)
}

func (api *certificateApi) generate(ctx echo.Context) error {
	usr, err := api.auth.authorize(ctx)
	if err != nil {
		return err
	}

	var data certificate.GenerateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GenerateRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	studentID := data.StudentID
	if studentID == "" {
		studentID = usr.ID
	}
	// students may only claim their own certificate
	if usr.IsStudent() && studentID != usr.ID {
		return errForbidden
	}

	cert, err := api.svc.Generate(ctx.Request().Context(), studentID, data.ProjectID, usr.ID)
	if err != nil {
		return errors.Wrap(err, "generating certificate")
	}
	return ctx.JSON(http.StatusCreated, cert)
}

func (api *certificateApi) retrieve(ctx echo.Context) error {
	cert, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding certificate by ID")
	}
	if _, err := api.auth.authorize(ctx, OwnerOrRole(cert.StudentID, user.RoleMentor)); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cert)
}
