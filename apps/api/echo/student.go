package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/presence/core/alert"
	"github.com/trezcool/presence/core/student"
)

type studentApi struct {
	roster   *student.Roster
	alerts   *alert.Box
	validate *validator.Validate
}

type checkoutResponse struct {
	Alert    alert.Alert   `json:"alert"`
	Students []student.Row `json:"students"`
}

func registerStudentAPI(g *echo.Group, roster *student.Roster, alerts *alert.Box, validate *validator.Validate) {
	api := studentApi{
		roster:   roster,
		alerts:   alerts,
		validate: validate,
	}

	sg := g.Group("/students")
	sg.GET("", api.list)
	sg.POST("/refresh", api.refresh)
	sg.GET("/attendance", api.attendance)
	sg.POST("/:id/checkout", api.checkout)
}

// Handlers

func (api *studentApi) list(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.roster.Rows())
}

// refresh re-fetches the roster. A failed fetch keeps the previous rows.
func (api *studentApi) refresh(ctx echo.Context) error {
	_ = api.roster.Refresh(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, api.roster.Rows())
}

func (api *studentApi) attendance(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.roster.Attendance())
}

func (api *studentApi) checkout(ctx echo.Context) error {
	var req student.CheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to CheckoutRequest")
	}
	if err := api.validate.Struct(req); err != nil {
		return err
	}

	if err := api.roster.Checkout(ctx.Request().Context(), req.ID, req.Name); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, checkoutResponse{
		Alert:    api.alerts.Current(),
		Students: api.roster.Rows(),
	})
}
