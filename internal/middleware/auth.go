package middleware

import (
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/service"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	userIDKey = "user_id"
	userKey   = "user"
)

// tokenFrom reads a bearer token from the Authorization header, falling back
// to the token query parameter used by websocket clients.
func tokenFrom(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return c.QueryParam("token")
}

func authenticate(c echo.Context, authService service.AuthService) (*model.User, error) {
	claims, err := authService.ParseToken(tokenFrom(c))
	if err != nil {
		return nil, err
	}
	return authService.ResolveUser(c.Request().Context(), claims)
}

func setUser(c echo.Context, user *model.User) {
	c.Set(userIDKey, user.ID)
	c.Set(userKey, user)
}

// Auth rejects requests without a valid token.
func Auth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tokenFrom(c) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			user, err := authenticate(c, authService)
			if errors.Is(err, service.ErrInvalidToken) {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			if err != nil {
				return err
			}
			setUser(c, user)
			return next(c)
		}
	}
}

// OptionalAuth attaches the user when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tokenFrom(c) == "" {
				return next(c)
			}
			if user, err := authenticate(c, authService); err == nil {
				setUser(c, user)
			}
			return next(c)
		}
	}
}

func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, service.ErrForbidden.Error())
			}
			return next(c)
		}
	}
}

// CurrentUser returns nil for anonymous requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userKey).(*model.User)
	return user
}
