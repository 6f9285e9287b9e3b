package service

import (
	"context"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/localstore"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/notify"
	"crypto-storefront/internal/realtime"
	"crypto-storefront/internal/repository"
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const PaymentMethodCrypto = "crypto"

type SettingsSource interface {
	Settings() model.Settings
}

type CheckoutService interface {
	Summary(ctx context.Context, user *model.User) (*dto.CheckoutSummary, error)
	PlaceOrder(ctx context.Context, user *model.User, walletAddress string) (*model.Order, error)
}

type checkoutServiceImpl struct {
	db        *gorm.DB
	store     localstore.Store
	orderRepo repository.OrderRepository
	settings  SettingsSource
	hub       publisher
	notifier  Notifier
	logger    *log.Logger
}

func NewCheckoutService(
	db *gorm.DB,
	store localstore.Store,
	orderRepo repository.OrderRepository,
	settings SettingsSource,
	hub *realtime.Hub,
	notifier Notifier,
	logger *log.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		db:        db,
		store:     store,
		orderRepo: orderRepo,
		settings:  settings,
		hub:       hub,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *checkoutServiceImpl) Summary(ctx context.Context, user *model.User) (*dto.CheckoutSummary, error) {
	c, err := s.store.LoadCart(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	return &dto.CheckoutSummary{
		Gateways: s.settings.Settings().Gateways,
		Items:    c.Items,
		Total:    c.Total(),
	}, nil
}

// selectGateway picks the gateway by wallet address. An empty address picks
// the first configured gateway.
func selectGateway(gateways []model.PaymentGateway, walletAddress string) (model.PaymentGateway, error) {
	if len(gateways) == 0 {
		return model.PaymentGateway{}, ErrNoGateway
	}
	if walletAddress == "" {
		return gateways[0], nil
	}
	for _, g := range gateways {
		if g.WalletAddress == walletAddress {
			return g, nil
		}
	}
	return model.PaymentGateway{}, ErrGatewayNotFound
}

func (s *checkoutServiceImpl) PlaceOrder(ctx context.Context, user *model.User, walletAddress string) (*model.Order, error) {
	if err := ensureActive(user); err != nil {
		return nil, err
	}

	// Held until the cart is cleared so a concurrent add is either ordered or kept.
	unlock := s.store.LockUser(user.ID)
	defer unlock()

	c, err := s.store.LoadCart(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c.Empty() {
		return nil, ErrEmptyCart
	}

	gateway, err := selectGateway(s.settings.Settings().Gateways, walletAddress)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		UserEmail:     user.Email,
		TotalPrice:    c.Total(),
		Status:        model.OrderPending,
		PaymentMethod: PaymentMethodCrypto,
		Network:       gateway.Cryptocurrency,
		WalletAddress: gateway.WalletAddress,
	}

	orderItems := make([]model.OrderItem, len(c.Items))
	for i, item := range c.Items {
		orderItems[i] = model.OrderItem{
			OrderID:         order.ID,
			ProductID:       item.ProductID,
			ConfigID:        item.ConfigID,
			Name:            item.Name,
			Category:        item.Category,
			ImageURLs:       item.ImageURLs,
			ModelURL:        item.ModelURL,
			Price:           item.Price,
			Quantity:        item.Quantity,
			SelectedHosting: item.SelectedHosting,
			SelectedDomain:  item.SelectedDomain,
			SelectedInbox:   item.SelectedInbox,
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}

		if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items in db: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Items = orderItems

	publish(ctx, s.hub, realtime.CollectionOrders, realtime.OpCreated, order.ID, order.UserID, order)
	s.notifier.Notify(ctx, notify.OrderPlaced(order, user.DisplayName))

	if err := s.store.DeleteCart(ctx, user.ID); err != nil {
		s.logger.Errorf("checkout: clear cart for %s: %v", user.ID, err)
	}

	return order, nil
}
