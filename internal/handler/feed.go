package handler

import (
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/middleware"
	"crypto-storefront/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type FeedHandler struct {
	feedService service.FeedService
}

func NewFeedHandler(feedService service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

func (h *FeedHandler) List(c echo.Context) error {
	return h.list(c, false)
}

func (h *FeedHandler) AdminList(c echo.Context) error {
	return h.list(c, true)
}

func (h *FeedHandler) list(c echo.Context, admin bool) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.feedService.List(ctx, q.Q, q.Page, admin)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (h *FeedHandler) MarkSeen(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.feedService.MarkSeen(ctx, middleware.CurrentUser(c)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *FeedHandler) Feedback(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.FeedbackRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	update, err := h.feedService.Feedback(ctx, middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusOK, update, toast(toastSuccess, "FEEDBACK COMMITTED TO SIGNAL LOG."))
}

func (h *FeedHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.UpdateInput
	if err := bind(c, &input); err != nil {
		return err
	}

	update, err := h.feedService.Create(ctx, input)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusCreated, update, toast(toastSuccess, "BROADCAST COMMITTED: USER FEEDS UPDATED."))
}

func (h *FeedHandler) Edit(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.UpdateInput
	if err := bind(c, &input); err != nil {
		return err
	}

	update, err := h.feedService.Edit(ctx, c.Param("id"), input)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusOK, update, toast(toastSuccess, "BROADCAST UPDATED: SIGNALS RE-TRANSMITTED."))
}

func (h *FeedHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.feedService.Delete(ctx, c.Param("id")); err != nil {
		return err
	}

	return mutated(c, http.StatusOK, nil, toast(toastWarning, "BROADCAST RETRACTED: REMOVED FROM FEED."))
}
