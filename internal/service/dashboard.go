package service

import (
	"context"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/localstore"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/repository"
	"fmt"

	"github.com/shopspring/decimal"
)

type DashboardService interface {
	Dashboard(ctx context.Context, user *model.User) (*dto.DashboardResponse, error)
	Snapshot(ctx context.Context, user *model.User) (*dto.SessionSnapshot, error)
}

// LoadingState reports whether the first settings load is still pending.
type LoadingState interface {
	SettingsSource
	Loading() bool
}

type dashboardServiceImpl struct {
	orderRepo   repository.OrderRepository
	assetRepo   repository.AssetRepository
	feedService FeedService
	store       localstore.Store
	session     LoadingState
}

func NewDashboardService(
	orderRepo repository.OrderRepository,
	assetRepo repository.AssetRepository,
	feedService FeedService,
	store localstore.Store,
	session LoadingState,
) DashboardService {
	return &dashboardServiceImpl{
		orderRepo:   orderRepo,
		assetRepo:   assetRepo,
		feedService: feedService,
		store:       store,
		session:     session,
	}
}

// UserStatsOf counts items of completed orders as assets and sums every
// order total as spent.
func UserStatsOf(orders []*model.Order) dto.UserStats {
	stats := dto.UserStats{TotalSpent: decimal.Zero}
	for _, o := range orders {
		if o.Status == model.OrderCompleted {
			stats.TotalAssets += len(o.Items)
		}
		if o.Status.InFlight() {
			stats.PendingOrders++
		}
		stats.TotalSpent = stats.TotalSpent.Add(o.TotalPrice)
	}
	return stats
}

func (s *dashboardServiceImpl) Dashboard(ctx context.Context, user *model.User) (*dto.DashboardResponse, error) {
	orders, err := s.orderRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	unread, err := s.feedService.Unread(ctx, user)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	return &dto.DashboardResponse{
		Stats:         UserStatsOf(orders),
		UnreadUpdates: unread,
		Assets:        assets,
	}, nil
}

// Snapshot assembles the session view. Anonymous callers get settings only.
func (s *dashboardServiceImpl) Snapshot(ctx context.Context, user *model.User) (*dto.SessionSnapshot, error) {
	snapshot := &dto.SessionSnapshot{
		User:             user,
		Settings:         s.session.Settings().Public(),
		IsInitialLoading: s.session.Loading(),
		CartTotal:        decimal.Zero,
	}
	if user == nil {
		return snapshot, nil
	}

	c, err := s.store.LoadCart(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	snapshot.Cart = c.Items
	snapshot.CartTotal = c.Total()
	snapshot.CartUnits = c.Units()
	return snapshot, nil
}
