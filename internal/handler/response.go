package handler

import (
	"crypto-storefront/internal/dto"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	toastSuccess = "success"
	toastWarning = "warning"
	toastError   = "error"
)

func toast(level, message string) *dto.Toast {
	return &dto.Toast{Level: level, Message: message}
}

// mutated writes a mutation result together with the toast shown to the operator.
func mutated(c echo.Context, status int, data any, t *dto.Toast) error {
	return c.JSON(status, dto.Envelope{Data: data, Toast: t})
}

func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	return nil
}
