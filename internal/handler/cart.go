package handler

import (
	"crypto-storefront/internal/cart"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/middleware"
	"crypto-storefront/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService     service.CartService
	checkoutService service.CheckoutService
}

func NewCartHandler(cartService service.CartService, checkoutService service.CheckoutService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

func cartResponse(c *cart.Cart, line *cart.Item, t *dto.Toast) dto.CartResponse {
	return dto.CartResponse{
		Items: c.Items,
		Total: c.Total(),
		Units: c.Units(),
		Line:  line,
		Toast: t,
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	userCart, err := h.cartService.Get(ctx, middleware.CurrentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cartResponse(userCart, nil, nil))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddCartItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.ProductID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	userCart, line, err := h.cartService.AddItem(ctx, middleware.CurrentUser(c), req.ProductID, cart.Options{
		Hosting: req.Hosting,
		Domain:  req.Domain,
		Inbox:   req.Inbox,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cartResponse(userCart, &line, toast(toastSuccess, "ASSET ADDED TO CART.")))
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateQuantityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Quantity == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity is required")
	}

	userCart, err := h.cartService.UpdateQuantity(ctx, middleware.CurrentUser(c), c.Param("config_id"), *req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cartResponse(userCart, nil, nil))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	userCart, err := h.cartService.RemoveItem(ctx, middleware.CurrentUser(c), c.Param("config_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cartResponse(userCart, nil, toast(toastWarning, "ASSET REMOVED FROM CART.")))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.cartService.Clear(ctx, middleware.CurrentUser(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cartResponse(cart.New(), nil, toast(toastWarning, "CART CLEARED.")))
}

func (h *CartHandler) CheckoutSummary(c echo.Context) error {
	ctx := c.Request().Context()

	summary, err := h.checkoutService.Summary(ctx, middleware.CurrentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary)
}

func (h *CartHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.checkoutService.PlaceOrder(ctx, middleware.CurrentUser(c), req.WalletAddress)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusCreated, order, toast(toastSuccess, "PAYMENT REGISTERED. AWAITING VERIFICATION."))
}
