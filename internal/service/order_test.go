package service

import (
	"context"
	"crypto-storefront/internal/cart"
	"crypto-storefront/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func placeOrder(t *testing.T, e *testEnv, u *model.User, p *model.Product, qty int) *model.Order {
	t.Helper()
	ctx := context.Background()
	_, line, err := e.cart.AddItem(ctx, u, p.ID, cart.Options{})
	require.NoError(t, err)
	_, err = e.cart.UpdateQuantity(ctx, u, line.ConfigID, qty)
	require.NoError(t, err)

	order, err := e.checkout.PlaceOrder(ctx, u, "")
	require.NoError(t, err)
	return order
}

func TestOrderService_CompletionGrantsAssetsOnce(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "buyer")
	p := e.product(t, "p1", 50)
	order := placeOrder(t, e, u, p, 2)

	_, err := e.orders.UpdateStatus(ctx, order.ID, "shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := e.orders.UpdateStatus(ctx, order.ID, model.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, updated.Status)

	_, err = e.orders.UpdateStatus(ctx, order.ID, model.OrderPreparing)
	require.NoError(t, err)
	_, err = e.orders.UpdateStatus(ctx, order.ID, model.OrderCompleted)
	require.NoError(t, err)

	assets, err := e.users.GetAssets(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, 2, assets[0].Quantity)
	assert.Equal(t, p.ID, assets[0].ProductID)

	require.NoError(t, e.orders.Delete(ctx, order.ID))
	_, err = e.orderRepo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assets, err = e.users.GetAssets(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, assets, 1)
}

func TestOrderService_ListForUserSearchAndPaging(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "buyer")
	other := e.user(t, "other")
	p := e.product(t, "p1", 50)
	q := e.product(t, "q1", 20)

	for i := 0; i < 6; i++ {
		placeOrder(t, e, u, p, 1)
	}
	placeOrder(t, e, u, q, 1)
	placeOrder(t, e, other, p, 1)

	page, err := e.orders.ListForUser(ctx, u, "", 2)
	require.NoError(t, err)
	assert.Equal(t, 7, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 6, page.From)
	assert.Equal(t, 7, page.To)

	page, err = e.orders.ListForUser(ctx, u, "product Q1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)

	all, err := e.orders.ListAll(ctx, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 8, all.TotalItems)
	assert.Len(t, all.Items, 8)
}
