package handler

import (
	"crypto-storefront/internal/middleware"
	"crypto-storefront/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService      service.UserService
	dashboardService service.DashboardService
}

func NewUserHandler(userService service.UserService, dashboardService service.DashboardService) *UserHandler {
	return &UserHandler{
		userService:      userService,
		dashboardService: dashboardService,
	}
}

// Session works for anonymous callers too.
func (h *UserHandler) Session(c echo.Context) error {
	ctx := c.Request().Context()

	snapshot, err := h.dashboardService.Snapshot(ctx, middleware.CurrentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, snapshot)
}

func (h *UserHandler) GetAssets(c echo.Context) error {
	ctx := c.Request().Context()

	assets, err := h.userService.GetAssets(ctx, middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, assets)
}

func (h *UserHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	dashboard, err := h.dashboardService.Dashboard(ctx, middleware.CurrentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboard)
}
