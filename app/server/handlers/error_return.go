package handlers

import (
	"github.com/arju88nair/shelvedBackend/app/server/apperrors"
	"github.com/arju88nair/shelvedBackend/app/server/types"
	"github.com/labstack/echo/v4"
)

func (a *App) er(c echo.Context, err error) error {
	ae := apperrors.From(err)
	return c.JSON(ae.Status, &types.ErrorMessage{
		Message: ae.Message,
		Status:  ae.Status,
	})
}
