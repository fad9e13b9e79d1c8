package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/buildbytes/lms/core/course"
	"github.com/buildbytes/lms/core/user"
)

type categoryApi struct {
	svc  *course.Service
	auth *auth
}

func registerCategoryAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *auth, svc *course.Service) {
	api := categoryApi{svc: svc, auth: auth}

	cg := g.Group("/subject-categories", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *categoryApi) query(ctx echo.Context) error {
	if _, err := api.auth.authorize(ctx); err != nil {
		return err
	}

	cats, err := api.svc.QueryCategories(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying categories")
	}
	if cats == nil {
		cats = []course.SubjectCategory{}
	}
	return ctx.JSON(http.StatusOK, cats)
}

func (api *categoryApi) create(ctx echo.Context) error {
	usr, err := api.auth.authorize(ctx, RoleIs(user.RoleMentor))
	if err != nil {
		return err
	}

	var data course.NewCategory
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCategory")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cat, err := api.svc.CreateCategory(ctx.Request().Context(), data, usr.ID)
	if err != nil {
		return errors.Wrap(err, "creating category")
	}
	return ctx.JSON(http.StatusCreated, cat)
}

func (api *categoryApi) retrieve(ctx echo.Context) error {
	if _, err := api.auth.authorize(ctx); err != nil {
		return err
	}

	cat, err := api.svc.GetCategory(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding category by ID")
	}
	return ctx.JSON(http.StatusOK, cat)
}

func (api *categoryApi) update(ctx echo.Context) error {
	// role check first so non-mentors learn nothing about the id
	if _, err := api.auth.authorize(ctx, RoleIs(user.RoleMentor)); err != nil {
		return err
	}

	cat, err := api.svc.GetCategory(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding category by ID")
	}
	if _, err := api.auth.authorize(ctx, Owner(cat.CreatedBy)); err != nil {
		return err
	}

	var data course.UpdateCategory
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCategory")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cat, err = api.svc.UpdateCategory(ctx.Request().Context(), cat.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating category")
	}
	return ctx.JSON(http.StatusOK, cat)
}

func (api *categoryApi) destroy(ctx echo.Context) error {
	if _, err := api.auth.authorize(ctx, RoleIs(user.RoleMentor)); err != nil {
		return err
	}

	cat, err := api.svc.GetCategory(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding category by ID")
	}
	if _, err := api.auth.authorize(ctx, Owner(cat.CreatedBy)); err != nil {
		return err
	}

	if err := api.svc.DeleteCategory(ctx.Request().Context(), cat.ID); err != nil {
		return errors.Wrap(err, "deleting category")
	}
	return ctx.NoContent(http.StatusNoContent)
}
