package handler

import (
	"bytes"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/export"
	"crypto-storefront/internal/middleware"
	"crypto-storefront/internal/service"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ProductQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	products, err := h.catalogService.ListProducts(ctx, middleware.CurrentUser(c), q.Category, q.Search)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.catalogService.GetProduct(ctx, middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) AdminListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.catalogService.AdminListProducts(ctx, q.Q, q.Page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.ProductInput
	if err := bind(c, &input); err != nil {
		return err
	}

	product, err := h.catalogService.CreateProduct(ctx, input)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusCreated, product, toast(toastSuccess, "SYNTHESIS COMPLETE: NEW ASSET DEPLOYED."))
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.ProductInput
	if err := bind(c, &input); err != nil {
		return err
	}

	product, err := h.catalogService.UpdateProduct(ctx, c.Param("id"), input)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusOK, product, toast(toastSuccess, "ASSET UPDATED: REPOSITORY SYNCED."))
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.catalogService.DeleteProduct(ctx, c.Param("id")); err != nil {
		return err
	}

	return mutated(c, http.StatusOK, nil, toast(toastWarning, "ASSET REMOVED: DATA STRIPPED FROM REPOSITORY."))
}

func (h *CatalogHandler) ExportProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.AllProducts(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteProducts(&buf, products); err != nil {
		return err
	}

	return attachment(c, "products.xlsx", buf.Bytes())
}

func (h *CatalogHandler) AdminListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := bind(c, &q); err != nil {
		return err
	}

	page, err := h.catalogService.AdminListCategories(ctx, q.Q, q.Page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.CategoryInput
	if err := bind(c, &input); err != nil {
		return err
	}

	category, err := h.catalogService.CreateCategory(ctx, input)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusCreated, category, toast(toastSuccess, "CLASSIFICATION DEFINED."))
}

func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var input dto.CategoryInput
	if err := bind(c, &input); err != nil {
		return err
	}

	category, err := h.catalogService.UpdateCategory(ctx, c.Param("id"), input)
	if err != nil {
		return err
	}

	return mutated(c, http.StatusOK, category, toast(toastSuccess, "CLASSIFICATION UPDATED."))
}

func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.catalogService.DeleteCategory(ctx, c.Param("id")); err != nil {
		return err
	}

	return mutated(c, http.StatusOK, nil, toast(toastWarning, "CATEGORY VOIDED: INDEX UPDATED."))
}

func attachment(c echo.Context, filename string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Blob(http.StatusOK, export.ContentType, body)
}
