package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/buildbytes/lms/core/submission"
	"github.com/buildbytes/lms/core/user"
)

type submissionApi struct {
	svc  *submission.Service
	auth *auth
}

func registerSubmissionAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *auth, svc *submission.Service) {
	api := submissionApi{svc: svc, auth: auth}

	sg := g.Group("/submissions", jwt)
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id/review", api.review)
}

// Handlers

// query lists submissions. Students only ever see their own, whatever
// filter they pass.
func (api *submissionApi) query(ctx echo.Context) error {
	usr, err := api.auth.authorize(ctx)
	if err != nil {
		return err
	}

	filter := new(submission.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []submission.Submission{})
	}
	if usr.IsStudent() {
		filter.StudentID = usr.ID
	}

	subs, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	if subs == nil {
		subs = []submission.Submission{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *submissionApi) create(ctx echo.Context) error {
	usr, err := api.auth.authorize(ctx, RoleIs(user.RoleStudent))
	if err != nil {
		return err
	}

	var data submission.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sub, err := api.svc.Create(ctx.Request().Context(), data, usr.ID)
	if err != nil {
		return errors.Wrap(err, "creating submission")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *submissionApi) retrieve(ctx echo.Context) error {
	sub, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding submission by ID")
	}
	if _, err := api.auth.authorize(ctx, OwnerOrRole(sub.StudentID, user.RoleMentor)); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *submissionApi) review(ctx echo.Context) error {
	usr, err := api.auth.authorize(ctx, RoleIs(user.RoleMentor))
	if err != nil {
		return err
	}

	var data submission.Review
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Review")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	sub, err := api.svc.Review(ctx.Request().Context(), ctx.Param("id"), data, usr.ID)
	if err != nil {
		return errors.Wrap(err, "reviewing submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}
