package service

import (
	"context"
	"crypto-storefront/internal/cart"
	"crypto-storefront/internal/localstore"
	"crypto-storefront/internal/logger"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStore widens the window between loading and saving a cart.
type slowStore struct {
	localstore.Store
}

func (s slowStore) LoadCart(ctx context.Context, userID string) (*cart.Cart, error) {
	time.Sleep(time.Millisecond)
	return s.Store.LoadCart(ctx, userID)
}

func TestCartService_ConcurrentAddsKeepEveryUnit(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "buyer")
	p := e.product(t, "p1", 50)
	svc := NewCartService(slowStore{e.store}, e.productRepo)

	const adds = 20
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.AddProduct(ctx, u, p, cart.Options{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := svc.Get(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, adds, c.Units())
	assert.Equal(t, "1000", c.Total().String())
}

func TestCheckout_ConcurrentAddIsOrderedOrKept(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "buyer")
	p := e.product(t, "p1", 50)
	store := slowStore{e.store}
	svc := NewCartService(store, e.productRepo)
	checkout := NewCheckoutService(e.db, store, e.orderRepo, e.settings, e.hub, e.notifier, logger.Discard())

	_, _, err := svc.AddProduct(ctx, u, p, cart.Options{})
	require.NoError(t, err)

	const adds = 10
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.AddProduct(ctx, u, p, cart.Options{})
			assert.NoError(t, err)
		}()
	}
	order, err := checkout.PlaceOrder(ctx, u, "")
	require.NoError(t, err)
	wg.Wait()

	ordered := 0
	for _, item := range order.Items {
		ordered += item.Quantity
	}
	c, err := svc.Get(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, adds+1, ordered+c.Units())
}
