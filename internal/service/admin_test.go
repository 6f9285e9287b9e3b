package service

import (
	"context"
	"crypto-storefront/internal/cart"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_BanAdminPurge(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	admin := e.user(t, "admin")
	target := e.user(t, "target")

	banned, err := e.users.ToggleBan(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, banned.IsSuspended)
	restored, err := e.users.ToggleBan(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsSuspended)

	promoted, err := e.users.ToggleAdmin(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	assert.ErrorIs(t, e.users.Purge(ctx, admin, admin.ID), ErrSelfPurge)
	_, err = e.userRepo.FindByID(ctx, admin.ID)
	require.NoError(t, err)

	require.NoError(t, e.users.Purge(ctx, admin, target.ID))
	page, err := e.users.ListUsers(ctx, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)
}

func productInput(name string, hidden bool) dto.ProductInput {
	return dto.ProductInput{
		Name:     name,
		Price:    decimal.NewFromInt(25),
		Category: "Scripts",
		Hidden:   hidden,
		Hosting:  model.AddOn{Enabled: true, Price: decimal.NewFromInt(5)},
	}
}

func TestCatalogService_ProductsAndVisibility(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	admin := &model.User{ID: "a", IsAdmin: true}

	visible, err := e.catalog.CreateProduct(ctx, productInput("My Great Bot", false))
	require.NoError(t, err)
	assert.Equal(t, "my-great-bot", visible.Slug)
	assert.Equal(t, model.BillingMonthly, visible.Hosting.BillingCycle)

	dup, err := e.catalog.CreateProduct(ctx, productInput("My Great Bot", false))
	require.NoError(t, err)
	assert.NotEqual(t, visible.Slug, dup.Slug)

	hidden, err := e.catalog.CreateProduct(ctx, productInput("Secret Tool", true))
	require.NoError(t, err)

	_, err = e.catalog.CreateProduct(ctx, productInput(" ", false))
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := e.catalog.ListProducts(ctx, nil, AllCategories, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = e.catalog.ListProducts(ctx, admin, "", "secret")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, hidden.ID, list[0].ID)

	list, err = e.catalog.ListProducts(ctx, nil, "Templates", "")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = e.catalog.GetProduct(ctx, nil, hidden.Slug)
	assert.Error(t, err)
	got, err := e.catalog.GetProduct(ctx, admin, hidden.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Secret Tool", got.Name)

	input := productInput("My Great Bot v2", false)
	input.Slug = visible.Slug
	updated, err := e.catalog.UpdateProduct(ctx, visible.ID, input)
	require.NoError(t, err)
	assert.Equal(t, visible.Slug, updated.Slug)
	assert.Equal(t, "My Great Bot v2", updated.Name)

	require.NoError(t, e.catalog.DeleteProduct(ctx, visible.ID))
	assert.Error(t, e.catalog.DeleteProduct(ctx, visible.ID))
}

func TestCatalogService_Categories(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	scripts, err := e.catalog.CreateCategory(ctx, dto.CategoryInput{Name: "Scripts"})
	require.NoError(t, err)
	assert.False(t, scripts.Hidden)

	archive, err := e.catalog.CreateCategory(ctx, dto.CategoryInput{Name: "Archive"})
	require.NoError(t, err)
	_, err = e.catalog.UpdateCategory(ctx, archive.ID, dto.CategoryInput{Name: "Archive", Hidden: true})
	require.NoError(t, err)

	visible, err := e.catalog.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Scripts", visible[0].Name)

	page, err := e.catalog.AdminListCategories(ctx, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
}

func TestSettingsService_Gateways(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.settingsS.AddGateway(ctx, model.PaymentGateway{Cryptocurrency: "Bitcoin (BTC)"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	s, err := e.settingsS.AddGateway(ctx, model.PaymentGateway{Cryptocurrency: "Bitcoin (BTC)", WalletAddress: "bc1q"})
	require.NoError(t, err)
	require.Len(t, s.Gateways, 2)

	s, err = e.settingsS.RemoveGateway(ctx, 0)
	require.NoError(t, err)
	require.Len(t, s.Gateways, 1)
	assert.Equal(t, "bc1q", s.Gateways[0].WalletAddress)

	_, err = e.settingsS.RemoveGateway(ctx, 5)
	assert.ErrorIs(t, err, ErrGatewayNotFound)

	stored, err := e.settingsRepo.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, stored.Gateways, 1)
}

func TestSettingsService_SaveAndTelegram(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	assert.ErrorIs(t, e.settingsS.TestTelegram(ctx), ErrTelegramIncomplete)

	next := e.settingsS.Get()
	next.AppName = "NEON"
	next.Telegram = model.TelegramSettings{BotToken: "t", ChatID: "c"}
	_, err := e.settingsS.Save(ctx, next)
	require.NoError(t, err)

	assert.Equal(t, "NEON", e.settings.Settings().AppName)
	assert.Empty(t, e.settingsS.Public().Telegram.BotToken)
	assert.Equal(t, "t", e.settingsS.Get().Telegram.BotToken)

	require.NoError(t, e.settingsS.TestTelegram(ctx))

	next.AppName = ""
	_, err = e.settingsS.Save(ctx, next)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSummarize(t *testing.T) {
	users := []*model.User{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}
	orders := []*model.Order{
		{Status: model.OrderCompleted, TotalPrice: decimal.NewFromInt(100)},
		{Status: model.OrderCompleted, TotalPrice: decimal.NewFromInt(50)},
		{Status: model.OrderPending, TotalPrice: decimal.NewFromInt(30)},
		{Status: model.OrderFailed, TotalPrice: decimal.NewFromInt(999)},
	}
	products := []*model.Product{{Category: "Bots"}, {Category: "Bots"}, {Category: "Themes"}}
	categories := []*model.Category{{Name: "Themes"}, {Name: "Bots"}, {Name: "Empty"}}

	o := Summarize(users, orders, products, categories)
	assert.Equal(t, "150", o.TotalRevenue.String())
	assert.Equal(t, "30", o.PendingRevenue.String())
	assert.Equal(t, 50.0, o.ConversionRate)
	assert.Equal(t, "75", o.AverageOrderValue.String())
	require.Len(t, o.TopCategories, 3)
	assert.Equal(t, dto.CategoryCount{Name: "Bots", Count: 2}, o.TopCategories[0])
	assert.Equal(t, "Empty", o.TopCategories[2].Name)

	empty := Summarize(nil, nil, nil, nil)
	assert.Zero(t, empty.ConversionRate)
	assert.True(t, empty.AverageOrderValue.IsZero())
}

func TestAnalyticsService_Overview(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.user(t, "a")
	e.product(t, "p1", 10)

	o, err := e.analytics.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, o.Users)
	assert.Zero(t, o.Orders)
}

func TestDashboardService_Snapshot(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.settings.loading = true

	anon, err := e.dashboard.Snapshot(ctx, nil)
	require.NoError(t, err)
	assert.True(t, anon.IsInitialLoading)
	assert.Nil(t, anon.User)
	assert.Equal(t, "TECHMANSHIP", anon.Settings.AppName)

	u := e.user(t, "buyer")
	p := e.product(t, "p1", 40)
	_, _, err = e.cart.AddProduct(ctx, u, p, cart.Options{Hosting: true})
	require.NoError(t, err)

	snap, err := e.dashboard.Snapshot(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, u.ID, snap.User.ID)
	require.Len(t, snap.Cart, 1)
	assert.Equal(t, "50", snap.CartTotal.String())
	assert.Equal(t, 1, snap.CartUnits)
}
