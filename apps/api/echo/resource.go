package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/buildbytes/lms/core/resource"
	"github.com/buildbytes/lms/core/user"
)

type resourceApi struct {
	svc  *resource.Service
	auth *auth
}

func registerResourceAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *auth, svc *resource.Service) {
	api := resourceApi{svc: svc, auth: auth}

	rg := g.Group("/resources", jwt)
	rg.GET("", api.query)
	rg.POST("", api.create)
	rg.GET("/:id", api.retrieve)
	rg.PUT("/:id", api.update)
	rg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *resourceApi) query(ctx echo.Context) error {
	if _, err := api.auth.authorize(ctx); err != nil {
		return err
	}

	filter := new(resource.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []resource.Resource{})
	}

	resources, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying resources")
	}
	if resources == nil {
		resources = []resource.Resource{}
	}
	return ctx.JSON(http.StatusOK, resources)
}

func (api *resourceApi) create(ctx echo.Context) error {
	usr, err := api.auth.authorize(ctx, RoleIs(user.RoleMentor))
	if err != nil {
		return err
	}

	var data resource.NewResource
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResource")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.Create(ctx.Request().Context(), data, usr.ID)
	if err != nil {
		return errors.Wrap(err, "creating resource")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *resourceApi) retrieve(ctx echo.Context) error {
	if _, err := api.auth.authorize(ctx); err != nil {
		return err
	}

	res, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding resource by ID")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *resourceApi) update(ctx echo.Context) error {
	// role check first so non-mentors learn nothing about the id
	if _, err := api.auth.authorize(ctx, RoleIs(user.RoleMentor)); err != nil {
		return err
	}

	res, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding resource by ID")
	}
	if _, err := api.auth.authorize(ctx, Owner(res.CreatedBy)); err != nil {
		return err
	}

	var data resource.UpdateResource
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateResource")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res, err = api.svc.Update(ctx.Request().Context(), res.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating resource")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *resourceApi) destroy(ctx echo.Context) error {
	if _, err := api.auth.authorize(ctx, RoleIs(user.RoleMentor)); err != nil {
		return err
	}

	res, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding resource by ID")
	}
	if _, err := api.auth.authorize(ctx, Owner(res.CreatedBy)); err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), res.ID); err != nil {
		return errors.Wrap(err, "deleting resource")
	}
	return ctx.NoContent(http.StatusNoContent)
}
