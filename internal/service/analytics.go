package service

import (
	"context"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/repository"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const topCategoryLimit = 5

type AnalyticsService interface {
	Overview(ctx context.Context) (*dto.Overview, error)
}

type analyticsServiceImpl struct {
	userRepo     repository.UserRepository
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewAnalyticsService(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) AnalyticsService {
	return &analyticsServiceImpl{
		userRepo:     userRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *analyticsServiceImpl) Overview(ctx context.Context) (*dto.Overview, error) {
	var (
		users      []*model.User
		orders     []*model.Order
		products   []*model.Product
		categories []*model.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.userRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.orderRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.productRepo.ListNewest(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.categoryRepo.List(gctx, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load overview data: %w", err)
	}

	return Summarize(users, orders, products, categories), nil
}

// Summarize computes the admin overview figures.
func Summarize(users []*model.User, orders []*model.Order, products []*model.Product, categories []*model.Category) *dto.Overview {
	overview := &dto.Overview{
		TotalRevenue:      decimal.Zero,
		PendingRevenue:    decimal.Zero,
		AverageOrderValue: decimal.Zero,
		TopCategories:     []dto.CategoryCount{},
		Users:             len(users),
		Orders:            len(orders),
	}

	completed := 0
	for _, o := range orders {
		switch o.Status {
		case model.OrderCompleted:
			completed++
			overview.TotalRevenue = overview.TotalRevenue.Add(o.TotalPrice)
		case model.OrderPending:
			overview.PendingRevenue = overview.PendingRevenue.Add(o.TotalPrice)
		}
	}

	if len(users) > 0 {
		overview.ConversionRate = float64(completed) / float64(len(users)) * 100
	}
	if completed > 0 {
		overview.AverageOrderValue = overview.TotalRevenue.Div(decimal.NewFromInt(int64(completed)))
	}

	counts := make(map[string]int, len(categories))
	for _, p := range products {
		counts[p.Category]++
	}
	for _, c := range categories {
		overview.TopCategories = append(overview.TopCategories, dto.CategoryCount{Name: c.Name, Count: counts[c.Name]})
	}
	sort.SliceStable(overview.TopCategories, func(i, j int) bool {
		return overview.TopCategories[i].Count > overview.TopCategories[j].Count
	})
	if len(overview.TopCategories) > topCategoryLimit {
		overview.TopCategories = overview.TopCategories[:topCategoryLimit]
	}

	return overview
}
