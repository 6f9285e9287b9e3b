package repository

import (
	"context"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/testutil"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOrderRepository_CreateAndGrantOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewOrderRepository(db)

	order := &model.Order{
		ID:            "order-1",
		UserID:        "user-1",
		TotalPrice:    decimal.NewFromInt(60),
		Status:        model.OrderPending,
		PaymentMethod: "crypto",
	}
	items := []model.OrderItem{
		{OrderID: "order-1", ProductID: "p1", ConfigID: "p1-true-false-false", Name: "Bot", Price: decimal.NewFromInt(60), Quantity: 1},
	}
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := repo.Create(ctx, tx, order); err != nil {
			return err
		}
		return repo.CreateOrderItems(ctx, tx, items)
	}))

	found, err := repo.FindByID(ctx, "order-1")
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Bot", found.Items[0].Name)
	assert.True(t, found.TotalPrice.Equal(decimal.NewFromInt(60)))

	granted, err := repo.MarkAssetsGranted(ctx, db, "order-1")
	require.NoError(t, err)
	assert.True(t, granted)

	granted, err = repo.MarkAssetsGranted(ctx, db, "order-1")
	require.NoError(t, err)
	assert.False(t, granted)

	require.NoError(t, repo.UpdateStatus(ctx, db, "order-1", model.OrderCompleted))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, db, "missing", model.OrderCompleted), gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(ctx, "order-1"))
	_, err = repo.FindByID(ctx, "order-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAssetRepository_UpsertAccumulates(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewAssetRepository(db)

	asset := func(qty int) *model.UserAsset {
		return &model.UserAsset{UserID: "u1", ProductID: "p1", Name: "Bot", Quantity: qty}
	}
	require.NoError(t, repo.Upsert(ctx, db, asset(1)))
	require.NoError(t, repo.Upsert(ctx, db, asset(2)))

	assets, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, 3, assets[0].Quantity)
}

func TestSettingsRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(testutil.NewDB(t))

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	s := model.DefaultSettings()
	s.AppName = "FIRST"
	require.NoError(t, repo.Upsert(ctx, &s))

	s.AppName = "SECOND"
	s.Telegram = model.TelegramSettings{BotToken: "t", ChatID: "c"}
	s.Gateways = append(s.Gateways, model.PaymentGateway{Cryptocurrency: "Bitcoin (BTC)", WalletAddress: "bc1q"})
	require.NoError(t, repo.Upsert(ctx, &s))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SECOND", got.AppName)
	assert.True(t, got.Telegram.Configured())
	assert.Len(t, got.Gateways, 2)
	assert.Equal(t, s.Hero, got.Hero)
}

func TestUserRepository_Flags(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testutil.NewDB(t))

	require.NoError(t, repo.Create(ctx, &model.User{ID: "u1", Email: "b@example.com", DisplayName: "Bravo", PasswordHash: "x"}))
	require.NoError(t, repo.Create(ctx, &model.User{ID: "u2", Email: "a@example.com", DisplayName: "Alpha", PasswordHash: "x"}))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alpha", users[0].DisplayName)

	require.NoError(t, repo.SetSuspended(ctx, "u1", true))
	require.NoError(t, repo.SetAdmin(ctx, "u1", true))
	u, err := repo.FindByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	assert.True(t, u.IsSuspended)
	assert.True(t, u.IsAdmin)

	assert.ErrorIs(t, repo.SetSuspended(ctx, "missing", true), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), gorm.ErrRecordNotFound)
}

func TestCategoryRepository_VisibleOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(testutil.NewDB(t))

	now := time.Now()
	require.NoError(t, repo.Create(ctx, &model.Category{ID: "c1", Name: "Scripts", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &model.Category{ID: "c2", Name: "Archive", Hidden: true, CreatedAt: now}))

	visible, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Scripts", visible[0].Name)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
