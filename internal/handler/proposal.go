package handler

import (
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/middleware"
	"crypto-storefront/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ProposalHandler struct {
	proposalService service.ProposalService
}

func NewProposalHandler(proposalService service.ProposalService) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
	}
}

func (h *ProposalHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.ProposalInput
	if err := bind(c, &input); err != nil {
		return err
	}

	proposal, err := h.proposalService.Create(ctx, middleware.CurrentUser(c), input)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusCreated, proposal, toast(toastSuccess, "PROPOSAL TRANSMITTED. ENGINEERING REVIEW INITIALIZED."))
}

func (h *ProposalHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.proposalService.ListMine(ctx, middleware.CurrentUser(c), q.Q, q.Page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

// Order puts an accepted proposal in the caller's cart.
func (h *ProposalHandler) Order(c echo.Context) error {
	ctx := c.Request().Context()

	userCart, line, err := h.proposalService.AddToCart(ctx, middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cartResponse(userCart, &line, toast(toastSuccess, "CUSTOM BUILD ADDED TO CART.")))
}

func (h *ProposalHandler) AdminList(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.proposalService.ListAll(ctx, q.Q, q.Page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (h *ProposalHandler) Accept(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AcceptProposalRequest
	if err := c.Bind(&req); err != nil {
		return service.ErrInvalidCost
	}

	proposal, err := h.proposalService.Accept(ctx, c.Param("id"), req.EstimatedCost.String(), req.ImageURLs)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusOK, proposal, toast(toastSuccess, "PROPOSAL AUTHORIZED: COST & VISUALS COMMITTED."))
}

func (h *ProposalHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.proposalService.Delete(ctx, c.Param("id")); err != nil {
		return err
	}

	return mutated(c, http.StatusOK, nil, toast(toastError, "PROPOSAL VOIDED: RECORD STRIPPED."))
}
