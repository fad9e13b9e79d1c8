package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/buildbytes/lms/core/message"
)

type messageApi struct {
	svc  *message.Service
	auth *auth
}

func registerMessageAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *auth, svc *message.Service) {
	api := messageApi{svc: svc, auth: auth}

	mg := g.Group("/messages", jwt)
	mg.GET("", api.query)
	mg.POST("", api.send)
	mg.GET("/:id", api.retrieve)
	mg.POST("/:id/read", api.markRead)
	mg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *messageApi) query(ctx echo.Context) error {
	usr, err := api.auth.authorize(ctx)
	if err != nil {
		return err
	}

	msgs, err := api.svc.QueryForUser(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying messages")
	}
	if msgs == nil {
		msgs = []message.Message{}
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api *messageApi) send(ctx echo.Context) error {
	usr, err := api.auth.authorize(ctx)
	if err != nil {
		return err
	}

	var data message.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	msg, err := api.svc.Send(ctx.Request().Context(), data, usr.ID)
	if err != nil {
		return errors.Wrap(err, "sending message")
	}
	return ctx.JSON(http.StatusCreated, msg)
}

func (api *messageApi) retrieve(ctx echo.Context) error {
	msg, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding message by ID")
	}
	if _, err := api.auth.authorize(ctx, ParticipantOf(msg.SenderID, msg.RecipientID)); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, msg)
}

// markRead flips the read flag; only the recipient may do it.
func (api *messageApi) markRead(ctx echo.Context) error {
	msg, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding message by ID")
	}
	if _, err := api.auth.authorize(ctx, ParticipantOf(msg.RecipientID)); err != nil {
		return err
	}

	msg, err = api.svc.MarkRead(ctx.Request().Context(), msg.ID)
	if err != nil {
		return errors.Wrap(err, "marking message read")
	}
	return ctx.JSON(http.StatusOK, msg)
}

// destroy removes a message; only the sender may do it.
func (api *messageApi) destroy(ctx echo.Context) error {
	msg, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding message by ID")
	}
	if _, err := api.auth.authorize(ctx, ParticipantOf(msg.SenderID)); err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), msg.ID); err != nil {
		return errors.Wrap(err, "deleting message")
	}
	return ctx.NoContent(http.StatusNoContent)
}
