package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/presence/core/alert"
)

func registerAlertAPI(g *echo.Group, box *alert.Box) {
	g.GET("/alert", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, box.Current())
	})
	g.DELETE("/alert", func(ctx echo.Context) error {
		box.Dismiss()
		return ctx.NoContent(http.StatusNoContent)
	})
}
