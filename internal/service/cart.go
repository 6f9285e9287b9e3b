package service

import (
	"context"
	"crypto-storefront/internal/cart"
	"crypto-storefront/internal/localstore"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/repository"
	"fmt"
)

type CartService interface {
	Get(ctx context.Context, user *model.User) (*cart.Cart, error)
	AddItem(ctx context.Context, user *model.User, productID string, opts cart.Options) (*cart.Cart, cart.Item, error)
	AddProduct(ctx context.Context, user *model.User, product *model.Product, opts cart.Options) (*cart.Cart, cart.Item, error)
	UpdateQuantity(ctx context.Context, user *model.User, configID string, quantity int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, user *model.User, configID string) (*cart.Cart, error)
	Clear(ctx context.Context, user *model.User) error
}

type cartServiceImpl struct {
	store       localstore.Store
	productRepo repository.ProductRepository
}

func NewCartService(store localstore.Store, productRepo repository.ProductRepository) CartService {
	return &cartServiceImpl{
		store:       store,
		productRepo: productRepo,
	}
}

func (s *cartServiceImpl) Get(ctx context.Context, user *model.User) (*cart.Cart, error) {
	c, err := s.store.LoadCart(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return c, nil
}

// mutate loads the cart, applies fn and persists the result while holding
// the user's cart lock.
func (s *cartServiceImpl) mutate(ctx context.Context, user *model.User, fn func(c *cart.Cart) error) (*cart.Cart, error) {
	if err := ensureActive(user); err != nil {
		return nil, err
	}

	unlock := s.store.LockUser(user.ID)
	defer unlock()

	c, err := s.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}

	if err := s.store.SaveCart(ctx, user.ID, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return c, nil
}

func (s *cartServiceImpl) AddItem(ctx context.Context, user *model.User, productID string, opts cart.Options) (*cart.Cart, cart.Item, error) {
	if err := ensureActive(user); err != nil {
		return nil, cart.Item{}, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, cart.Item{}, fmt.Errorf("find product: %w", err)
	}
	if product.Hidden && !user.IsAdmin {
		return nil, cart.Item{}, fmt.Errorf("%w: product is not available", ErrInvalidInput)
	}

	return s.AddProduct(ctx, user, product, opts)
}

// AddProduct adds a product that need not exist in the catalog, such as a
// priced custom build.
func (s *cartServiceImpl) AddProduct(ctx context.Context, user *model.User, product *model.Product, opts cart.Options) (*cart.Cart, cart.Item, error) {
	var line cart.Item
	c, err := s.mutate(ctx, user, func(c *cart.Cart) error {
		line = c.Add(product, opts)
		return nil
	})
	if err != nil {
		return nil, cart.Item{}, err
	}
	return c, line, nil
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, user *model.User, configID string, quantity int) (*cart.Cart, error) {
	return s.mutate(ctx, user, func(c *cart.Cart) error {
		return c.UpdateQuantity(configID, quantity)
	})
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, user *model.User, configID string) (*cart.Cart, error) {
	return s.mutate(ctx, user, func(c *cart.Cart) error {
		if !c.Remove(configID) {
			return cart.ErrLineNotFound
		}
		return nil
	})
}

func (s *cartServiceImpl) Clear(ctx context.Context, user *model.User) error {
	if err := ensureActive(user); err != nil {
		return err
	}

	unlock := s.store.LockUser(user.ID)
	defer unlock()
	if err := s.store.DeleteCart(ctx, user.ID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
