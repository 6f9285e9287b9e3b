package handler

import (
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignUpRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.SignUp(ctx, req)
	if err != nil {
		return err
	}

	resp.Toast = toast(toastSuccess, "OPERATOR CREATED. WELCOME TO THE REPOSITORY.")
	return c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignInRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.SignIn(ctx, req)
	if err != nil {
		return err
	}

	resp.Toast = toast(toastSuccess, "ACCESS GRANTED. INITIALIZING SESSION.")
	return c.JSON(http.StatusOK, resp)
}
