package service

import (
	"context"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/pagination"
	"crypto-storefront/internal/realtime"
	"crypto-storefront/internal/repository"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const AllCategories = "All"

type CatalogService interface {
	ListProducts(ctx context.Context, viewer *model.User, category, search string) ([]*model.Product, error)
	GetProduct(ctx context.Context, viewer *model.User, slug string) (*model.Product, error)
	AdminListProducts(ctx context.Context, q string, page int) (pagination.Page[*model.Product], error)
	AllProducts(ctx context.Context) ([]*model.Product, error)
	CreateProduct(ctx context.Context, input dto.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID string, input dto.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID string) error

	ListCategories(ctx context.Context) ([]*model.Category, error)
	AdminListCategories(ctx context.Context, q string, page int) (pagination.Page[*model.Category], error)
	CreateCategory(ctx context.Context, input dto.CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, input dto.CategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

type catalogServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	hub          publisher
	pageSize     int
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	hub *realtime.Hub,
	pageSize int,
) CatalogService {
	return &catalogServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		hub:          hub,
		pageSize:     pageSize,
	}
}

func isAdmin(viewer *model.User) bool {
	return viewer != nil && viewer.IsAdmin
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, viewer *model.User, category, search string) ([]*model.Product, error) {
	products, err := s.productRepo.ListNewest(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	admin := isAdmin(viewer)
	return pagination.Filter(products, func(p *model.Product) bool {
		if p.Hidden && !admin {
			return false
		}
		if category != "" && category != AllCategories && p.Category != category {
			return false
		}
		return pagination.ContainsFold(p.Name, search)
	}), nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, viewer *model.User, slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product.Hidden && !isAdmin(viewer) {
		return nil, fmt.Errorf("find product: %w", gorm.ErrRecordNotFound)
	}
	return product, nil
}

func (s *catalogServiceImpl) AdminListProducts(ctx context.Context, q string, page int) (pagination.Page[*model.Product], error) {
	products, err := s.productRepo.ListByName(ctx)
	if err != nil {
		return pagination.Page[*model.Product]{}, fmt.Errorf("list products: %w", err)
	}

	products = pagination.Filter(products, func(p *model.Product) bool {
		return pagination.ContainsFold(p.Name, q) || pagination.ContainsFold(p.Category, q)
	})
	return pagination.Paginate(products, page, s.pageSize), nil
}

func (s *catalogServiceImpl) AllProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.ListByName(ctx)
}

func validateProduct(input dto.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: product name required", ErrInvalidInput)
	}
	if input.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	for _, addon := range []model.AddOn{input.Hosting, input.CustomDomain, input.InboxAddon} {
		if addon.Price.IsNegative() {
			return fmt.Errorf("%w: add-on price must not be negative", ErrInvalidInput)
		}
		if addon.BillingCycle != "" && addon.BillingCycle != model.BillingMonthly && addon.BillingCycle != model.BillingYearly {
			return fmt.Errorf("%w: unknown billing cycle %q", ErrInvalidInput, addon.BillingCycle)
		}
	}
	return nil
}

func withDefaultCycle(a model.AddOn) model.AddOn {
	if a.BillingCycle == "" {
		a.BillingCycle = model.BillingMonthly
	}
	return a
}

// uniqueSlug derives the slug from the name when none is given and suffixes
// it with the product id when another product already holds it.
func (s *catalogServiceImpl) uniqueSlug(ctx context.Context, productID, requested, name string) (string, error) {
	base := slug.Make(requested)
	if base == "" {
		base = slug.Make(name)
	}
	if base == "" {
		base = productID
	}

	existing, err := s.productRepo.FindBySlug(ctx, base)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return base, nil
	}
	if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if existing.ID == productID {
		return base, nil
	}
	return base + "-" + productID[:8], nil
}

func applyProductInput(p *model.Product, input dto.ProductInput) {
	p.Name = strings.TrimSpace(input.Name)
	p.Description = input.Description
	p.Price = input.Price
	p.ImageURLs = input.ImageURLs
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	p.Category = input.Category
	p.IsCustom = input.IsCustom
	p.ModelURL = input.ModelURL
	p.PreviewURL = input.PreviewURL
	p.Hidden = input.Hidden
	p.Hosting = withDefaultCycle(input.Hosting)
	p.CustomDomain = withDefaultCycle(input.CustomDomain)
	p.InboxAddon = withDefaultCycle(input.InboxAddon)
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, input dto.ProductInput) (*model.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	product := &model.Product{ID: uuid.NewString()}
	applyProductInput(product, input)

	var err error
	product.Slug, err = s.uniqueSlug(ctx, product.ID, input.Slug, product.Name)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionProducts, realtime.OpCreated, product.ID, "", product)
	return product, nil
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, productID string, input dto.ProductInput) (*model.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	applyProductInput(product, input)

	requested := input.Slug
	if requested == "" {
		requested = product.Slug
	}
	product.Slug, err = s.uniqueSlug(ctx, product.ID, requested, product.Name)
	if err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionProducts, realtime.OpUpdated, product.ID, "", product)
	return product, nil
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionProducts, realtime.OpDeleted, productID, "", nil)
	return nil
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.categoryRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *catalogServiceImpl) AdminListCategories(ctx context.Context, q string, page int) (pagination.Page[*model.Category], error) {
	categories, err := s.categoryRepo.List(ctx, false)
	if err != nil {
		return pagination.Page[*model.Category]{}, fmt.Errorf("list categories: %w", err)
	}

	categories = pagination.Filter(categories, func(c *model.Category) bool {
		return pagination.ContainsFold(c.Name, q)
	})
	return pagination.Paginate(categories, page, s.pageSize), nil
}

func (s *catalogServiceImpl) CreateCategory(ctx context.Context, input dto.CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name required", ErrInvalidInput)
	}

	category := &model.Category{
		ID:       uuid.NewString(),
		Name:     name,
		ImageURL: input.ImageURL,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionCategories, realtime.OpCreated, category.ID, "", category)
	return category, nil
}

func (s *catalogServiceImpl) UpdateCategory(ctx context.Context, categoryID string, input dto.CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name required", ErrInvalidInput)
	}

	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	category.Name = name
	category.ImageURL = input.ImageURL
	category.Hidden = input.Hidden
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionCategories, realtime.OpUpdated, category.ID, "", category)
	return category, nil
}

func (s *catalogServiceImpl) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionCategories, realtime.OpDeleted, categoryID, "", nil)
	return nil
}
