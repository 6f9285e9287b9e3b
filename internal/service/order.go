package service

import (
	"context"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/pagination"
	"crypto-storefront/internal/realtime"
	"crypto-storefront/internal/repository"
	"fmt"

	"gorm.io/gorm"
)

type OrderService interface {
	ListForUser(ctx context.Context, user *model.User, q string, page int) (pagination.Page[*model.Order], error)
	ListAll(ctx context.Context, q string, page int) (pagination.Page[*model.Order], error)
	AllOrders(ctx context.Context) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error)
	Delete(ctx context.Context, orderID string) error
}

type orderServiceImpl struct {
	db                *gorm.DB
	orderRepo         repository.OrderRepository
	assetRepo         repository.AssetRepository
	hub               publisher
	adminPageSize     int
	dashboardPageSize int
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	assetRepo repository.AssetRepository,
	hub *realtime.Hub,
	adminPageSize int,
	dashboardPageSize int,
) OrderService {
	return &orderServiceImpl{
		db:                db,
		orderRepo:         orderRepo,
		assetRepo:         assetRepo,
		hub:               hub,
		adminPageSize:     adminPageSize,
		dashboardPageSize: dashboardPageSize,
	}
}

// matchesOrder matches the order id or any item name.
func matchesOrder(o *model.Order, q string) bool {
	if pagination.ContainsFold(o.ID, q) {
		return true
	}
	for _, item := range o.Items {
		if pagination.ContainsFold(item.Name, q) {
			return true
		}
	}
	return false
}

func (s *orderServiceImpl) ListForUser(ctx context.Context, user *model.User, q string, page int) (pagination.Page[*model.Order], error) {
	orders, err := s.orderRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return pagination.Page[*model.Order]{}, fmt.Errorf("list orders: %w", err)
	}

	orders = pagination.Filter(orders, func(o *model.Order) bool { return matchesOrder(o, q) })
	return pagination.Paginate(orders, page, s.dashboardPageSize), nil
}

func (s *orderServiceImpl) ListAll(ctx context.Context, q string, page int) (pagination.Page[*model.Order], error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return pagination.Page[*model.Order]{}, fmt.Errorf("list orders: %w", err)
	}

	orders = pagination.Filter(orders, func(o *model.Order) bool {
		return matchesOrder(o, q) || pagination.ContainsFold(o.UserEmail, q)
	})
	return pagination.Paginate(orders, page, s.adminPageSize), nil
}

func (s *orderServiceImpl) AllOrders(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

// UpdateStatus moves the order to status. The first move to completed grants
// the ordered products to the buyer.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.UpdateStatus(ctx, tx, orderID, status); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if status != model.OrderCompleted {
			return nil
		}

		granted, err := s.orderRepo.MarkAssetsGranted(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("mark assets granted: %w", err)
		}
		if !granted {
			return nil
		}

		orderItems, err := s.orderRepo.GetOrderItems(ctx, tx, orderID)
		if err != nil {
			return fmt.Errorf("get order items: %w", err)
		}

		for _, item := range orderItems {
			err = s.assetRepo.Upsert(ctx, tx, &model.UserAsset{
				UserID:    order.UserID,
				ProductID: item.ProductID,
				Name:      item.Name,
				ModelURL:  item.ModelURL,
				Quantity:  item.Quantity,
			})
			if err != nil {
				return fmt.Errorf("grant user asset: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Status = status

	publish(ctx, s.hub, realtime.CollectionOrders, realtime.OpUpdated, order.ID, order.UserID, order)
	return order, nil
}

func (s *orderServiceImpl) Delete(ctx context.Context, orderID string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("find order: %w", err)
	}

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionOrders, realtime.OpDeleted, orderID, order.UserID, nil)
	return nil
}
