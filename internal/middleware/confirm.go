package middleware

import (
	"crypto-storefront/internal/dto"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const HeaderConfirm = "X-Confirm"

func confirmed(c echo.Context) bool {
	return strings.EqualFold(c.Request().Header.Get(HeaderConfirm), "true") ||
		strings.EqualFold(c.QueryParam("confirm"), "true")
}

// RequireConfirmation answers 428 with the prompt until the caller repeats
// the request with X-Confirm: true or ?confirm=true.
func RequireConfirmation(prompt dto.ConfirmationPrompt) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !confirmed(c) {
				return c.JSON(http.StatusPreconditionRequired, map[string]any{
					"confirmation": prompt,
				})
			}
			return next(c)
		}
	}
}
