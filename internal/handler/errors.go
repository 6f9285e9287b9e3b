package handler

import (
	"crypto-storefront/internal/cart"
	"crypto-storefront/internal/client"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/service"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

type errorMapping struct {
	err    error
	status int
	toast  string
}

var errorMappings = []errorMapping{
	{gorm.ErrRecordNotFound, http.StatusNotFound, "RECORD NOT FOUND."},
	{cart.ErrLineNotFound, http.StatusNotFound, "CART LINE NOT FOUND."},
	{service.ErrGatewayNotFound, http.StatusNotFound, "PLEASE SELECT A PAYMENT GATEWAY."},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "AUTHORIZATION DENIED: INVALID CREDENTIALS."},
	{service.ErrInvalidToken, http.StatusUnauthorized, "AUTHENTICATION REQUIRED."},
	{service.ErrAccountSuspended, http.StatusForbidden, "ACCESS RESTRICTED: ACCOUNT SUSPENDED."},
	{service.ErrForbidden, http.StatusForbidden, "ACCESS DENIED: ADMIN CLEARANCE REQUIRED."},
	{service.ErrSelfPurge, http.StatusForbidden, "CRITICAL ERROR: SELF-PURGE PROTOCOL DENIED."},
	{service.ErrEmailTaken, http.StatusConflict, "AUTHORIZATION DENIED: EMAIL ALREADY REGISTERED."},
	{service.ErrProposalNotAccepted, http.StatusConflict, "PROPOSAL AWAITING AUTHORIZATION."},
	{service.ErrEmptyCart, http.StatusBadRequest, "CART IS EMPTY."},
	{service.ErrInvalidCost, http.StatusBadRequest, "SYNTHESIS ERROR: NUMERIC COST REQUIRED."},
	{service.ErrInvalidStatus, http.StatusBadRequest, "STATUS UPDATE FAILED."},
	{service.ErrEmptyFeedback, http.StatusBadRequest, "FEEDBACK TRANSMISSION FAILED."},
	{service.ErrInvalidRating, http.StatusBadRequest, "FEEDBACK TRANSMISSION FAILED."},
	{service.ErrTelegramIncomplete, http.StatusBadRequest, "TELEGRAM CONFIG INCOMPLETE."},
	{client.ErrTelegramNotConfigured, http.StatusBadRequest, "TELEGRAM CONFIG INCOMPLETE."},
	{service.ErrInvalidInput, http.StatusBadRequest, ""},
	{service.ErrNoGateway, http.StatusServiceUnavailable, "NO PAYMENT GATEWAY CONFIGURED."},
	{client.ErrMediaDisabled, http.StatusServiceUnavailable, "MEDIA UPLOADS DISABLED."},
}

type errorResponse struct {
	Error string     `json:"error"`
	Toast *dto.Toast `json:"toast"`
}

// HTTPErrorHandler renders every failure as JSON carrying an error toast.
func HTTPErrorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message, toastMessage := classify(err)
		if status >= http.StatusInternalServerError {
			logger.Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		}

		resp := errorResponse{Error: message, Toast: toast(toastError, toastMessage)}
		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, resp)
		}
		if writeErr != nil {
			logger.Errorf("write error response: %v", writeErr)
		}
	}
}

func classify(err error) (int, string, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := fmt.Sprint(he.Message)
		return he.Code, message, strings.ToUpper(message) + "."
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			toastMessage := m.toast
			if toastMessage == "" {
				toastMessage = strings.ToUpper(err.Error()) + "."
			}
			return m.status, err.Error(), toastMessage
		}
	}

	return http.StatusInternalServerError, "internal server error", "OPERATION FAILED: SYSTEM ERROR."
}
