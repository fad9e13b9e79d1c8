package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/buildbytes/lms/core/progress"
)

type progressApi struct {
	svc  *progress.Service
	auth *auth
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *auth, svc *progress.Service) {
	api := progressApi{svc: svc, auth: auth}

	g.GET("/dashboard/stats", api.dashboardStats, jwt)
}

// dashboardStats returns role-shaped statistics: platform totals for a
// mentor, personal workload for a student.
func (api *progressApi) dashboardStats(ctx echo.Context) error {
	usr, err := api.auth.authorize(ctx)
	if err != nil {
		return err
	}

	if usr.IsMentor() {
		stats, err := api.svc.MentorStats(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "computing mentor stats")
		}
		return ctx.JSON(http.StatusOK, stats)
	}

	stats, err := api.svc.StudentStats(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "computing student stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}
