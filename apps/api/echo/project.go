package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/buildbytes/lms/core/course"
	"github.com/buildbytes/lms/core/progress"
	"github.com/buildbytes/lms/core/user"
)

type projectApi struct {
	svc         *course.Service
	progressSvc *progress.Service
	auth        *auth
}

func registerProjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *auth, svc *course.Service, progressSvc *progress.Service) {
	api := projectApi{svc: svc, progressSvc: progressSvc, auth: auth}

	pg := g.Group("/projects", jwt)
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.GET("/:id", api.retrieve)
	pg.PUT("/:id", api.update)
	pg.DELETE("/:id", api.destroy)
	pg.GET("/:id/progress", api.progress)
}

// Handlers

// query lists projects. Students only ever see projects they are assigned
// to, whatever filter they pass.
func (api *projectApi) query(ctx echo.Context) error {
	usr, err := api.auth.authorize(ctx)
	if err != nil {
		return err
	}

	filter := new(course.ProjectFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []course.Project{})
	}
	if usr.IsStudent() {
		filter.AssignedStudent = usr.ID
	}

	prjs, err := api.svc.FilterProjects(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying projects")
	}
	if prjs == nil {
		prjs = []course.Project{}
	}
	return ctx.JSON(http.StatusOK, prjs)
}

func (api *projectApi) create(ctx echo.Context) error {
	usr, err := api.auth.authorize(ctx, RoleIs(user.RoleMentor))
	if err != nil {
		return err
	}

	var data course.NewProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProject")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	prj, err := api.svc.CreateProject(ctx.Request().Context(), data, usr.ID)
	if err != nil {
		return errors.Wrap(err, "creating project")
	}
	return ctx.JSON(http.StatusCreated, prj)
}

func (api *projectApi) retrieve(ctx echo.Context) error {
	prj, err := api.svc.GetProject(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding project by ID")
	}
	if _, err := api.auth.authorize(ctx, ParticipantOrRole(user.RoleMentor, prj.AssignedStudents...)); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, prj)
}

func (api *projectApi) update(ctx echo.Context) error {
	// role check first so non-mentors learn nothing about the id
	if _, err := api.auth.authorize(ctx, RoleIs(user.RoleMentor)); err != nil {
		return err
	}

	prj, err := api.svc.GetProject(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding project by ID")
	}
	if _, err := api.auth.authorize(ctx, Owner(prj.CreatedBy)); err != nil {
		return err
	}

	var data course.UpdateProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProject")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	prj, err = api.svc.UpdateProject(ctx.Request().Context(), prj.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating project")
	}
	return ctx.JSON(http.StatusOK, prj)
}

func (api *projectApi) destroy(ctx echo.Context) error {
	if _, err := api.auth.authorize(ctx, RoleIs(user.RoleMentor)); err != nil {
		return err
	}

	prj, err := api.svc.GetProject(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding project by ID")
	}
	if _, err := api.auth.authorize(ctx, Owner(prj.CreatedBy)); err != nil {
		return err
	}

	if err := api.svc.DeleteProject(ctx.Request().Context(), prj.ID); err != nil {
		return errors.Wrap(err, "deleting project")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *projectApi) progress(ctx echo.Context) error {
	prj, err := api.svc.GetProject(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding project by ID")
	}
	if _, err := api.auth.authorize(ctx, ParticipantOrRole(user.RoleMentor, prj.AssignedStudents...)); err != nil {
		return err
	}

	prog, err := api.progressSvc.ProjectProgress(ctx.Request().Context(), prj.ID)
	if err != nil {
		return errors.Wrap(err, "computing project progress")
	}
	return ctx.JSON(http.StatusOK, prog)
}
