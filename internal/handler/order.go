package handler

import (
	"bytes"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/export"
	"crypto-storefront/internal/middleware"
	"crypto-storefront/internal/service"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.orderService.ListForUser(ctx, middleware.CurrentUser(c), q.Q, q.Page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (h *OrderHandler) AdminList(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.orderService.ListAll(ctx, q.Q, q.Page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.OrderStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	short := order.ID
	if len(short) > 8 {
		short = short[:8]
	}
	message := fmt.Sprintf("LOG UPDATE: TRANSACTION %s SET TO %s.", strings.ToUpper(short), strings.ToUpper(string(order.Status)))
	return mutated(c, http.StatusOK, order, toast(toastSuccess, message))
}

func (h *OrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.orderService.Delete(ctx, c.Param("id")); err != nil {
		return err
	}

	return mutated(c, http.StatusOK, nil, toast(toastWarning, "LOG PURGED: TRANSACTION RECORD ERASED."))
}

func (h *OrderHandler) Export(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.AllOrders(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteOrders(&buf, orders); err != nil {
		return err
	}

	return attachment(c, "orders.xlsx", buf.Bytes())
}
