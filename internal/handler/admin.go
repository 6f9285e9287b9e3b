package handler

import (
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/middleware"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/service"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	userService      service.UserService
	settingsService  service.SettingsService
	analyticsService service.AnalyticsService
	mediaService     service.MediaService
}

func NewAdminHandler(
	userService service.UserService,
	settingsService service.SettingsService,
	analyticsService service.AnalyticsService,
	mediaService service.MediaService,
) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		settingsService:  settingsService,
		analyticsService: analyticsService,
		mediaService:     mediaService,
	}
}

func (h *AdminHandler) Overview(c echo.Context) error {
	ctx := c.Request().Context()

	overview, err := h.analyticsService.Overview(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, overview)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.userService.ListUsers(ctx, q.Q, q.Page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (h *AdminHandler) ToggleBan(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.userService.ToggleBan(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	if user.IsSuspended {
		return mutated(c, http.StatusOK, user, toast(toastWarning, "SECURITY ALERT: OPERATOR ACCESS TERMINATED."))
	}
	return mutated(c, http.StatusOK, user, toast(toastSuccess, "CLEARANCE RESTORED: OPERATOR RE-INSTATED."))
}

func (h *AdminHandler) ToggleAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.userService.ToggleAdmin(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return mutated(c, http.StatusOK, user, toast(toastSuccess, "CLEARANCE UPDATED: ADMIN/OPERATOR LEVEL SET."))
}

func (h *AdminHandler) PurgeUser(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.userService.Purge(ctx, middleware.CurrentUser(c), c.Param("id")); err != nil {
		return err
	}

	return mutated(c, http.StatusOK, nil, toast(toastError, "DATA PURGED: OPERATOR REMOVED FROM ALL REGISTRIES."))
}

func (h *AdminHandler) GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.settingsService.Get())
}

// PublicSettings never includes the Telegram credentials.
func (h *AdminHandler) PublicSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.settingsService.Public())
}

func (h *AdminHandler) SaveSettings(c echo.Context) error {
	ctx := c.Request().Context()

	var settings model.Settings
	if err := bind(c, &settings); err != nil {
		return err
	}

	saved, err := h.settingsService.Save(ctx, settings)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusOK, saved, toast(toastSuccess, "CORE SYNC: SYSTEM SETTINGS COMMITTED TO CLOUD."))
}

func (h *AdminHandler) AddGateway(c echo.Context) error {
	ctx := c.Request().Context()

	var gateway model.PaymentGateway
	if err := bind(c, &gateway); err != nil {
		return err
	}

	saved, err := h.settingsService.AddGateway(ctx, gateway)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusCreated, saved, toast(toastSuccess, "PAYMENT GATEWAY ADDED: CORE STACK RECONFIGURED."))
}

func (h *AdminHandler) RemoveGateway(c echo.Context) error {
	ctx := c.Request().Context()

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid gateway index")
	}

	saved, err := h.settingsService.RemoveGateway(ctx, index)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusOK, saved, toast(toastWarning, "GATEWAY REMOVED FROM REGISTRY."))
}

func (h *AdminHandler) TestTelegram(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.settingsService.TestTelegram(ctx); err != nil {
		return err
	}

	return mutated(c, http.StatusOK, nil, toast(toastSuccess, "SIGNAL TRANSMITTED: TELEGRAM LINK ACTIVE."))
}

func (h *AdminHandler) UploadMedia(c echo.Context) error {
	ctx := c.Request().Context()

	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	url, err := h.mediaService.Upload(ctx, header.Header.Get(echo.HeaderContentType), header.Size, file)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.MediaResponse{
		URL:   url,
		Toast: toast(toastSuccess, "MEDIA UPLOADED TO CDN."),
	})
}
