package server

import (
	"bytes"
	"context"
	"crypto-storefront/internal/client"
	"crypto-storefront/internal/config"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/logger"
	"crypto-storefront/internal/middleware"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/realtime"
	"crypto-storefront/internal/repository"
	"crypto-storefront/internal/service"
	"crypto-storefront/internal/testutil"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySettings struct {
	mu sync.Mutex
	s  model.Settings
}

func (m *memorySettings) Settings() model.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.Clone()
}

func (m *memorySettings) Set(s model.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s.Clone()
}

func (m *memorySettings) Loading() bool { return false }

type silentNotifier struct{}

func (silentNotifier) Notify(_ context.Context, _ string) {}

func (silentNotifier) Heartbeat(context.Context) error { return client.ErrTelegramNotConfigured }

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	log := logger.Discard()
	db := testutil.NewDB(t)
	store := testutil.NewStore(t)
	hub := realtime.NewHub(log, 16)
	settings := &memorySettings{s: model.DefaultSettings()}
	notifier := silentNotifier{}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	updateRepo := repository.NewUpdateRepository(db)

	cartService := service.NewCartService(store, productRepo)
	feedService := service.NewFeedService(updateRepo, store, hub, 10, 5)
	mediaClient, err := client.NewMediaClient(&config.Cloudinary{})
	require.NoError(t, err)

	services := Services{
		Auth:      service.NewAuthService(config.Auth{JWTSecret: "test", TokenTTL: time.Hour, AdminEmails: []string{"root@example.com"}}, userRepo, hub, notifier),
		User:      service.NewUserService(userRepo, assetRepo, hub, 10),
		Catalog:   service.NewCatalogService(productRepo, categoryRepo, hub, 10),
		Cart:      cartService,
		Checkout:  service.NewCheckoutService(db, store, orderRepo, settings, hub, notifier, log),
		Order:     service.NewOrderService(db, orderRepo, assetRepo, hub, 10, 5),
		Proposal:  service.NewProposalService(repository.NewProposalRepository(db), cartService, hub, notifier, 10, 5),
		Feed:      feedService,
		Settings:  service.NewSettingsService(repository.NewSettingsRepository(db), settings, notifier, hub),
		Analytics: service.NewAnalyticsService(userRepo, orderRepo, productRepo, categoryRepo),
		Dashboard: service.NewDashboardService(orderRepo, assetRepo, feedService, store, settings),
		Media:     service.NewMediaService(mediaClient),
	}
	return NewServer(services, hub, log).Handler()
}

func call(t *testing.T, h http.Handler, method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func signUp(t *testing.T, h http.Handler, email string) (string, *model.User) {
	t.Helper()
	rec := call(t, h, http.MethodPost, "/api/auth/signup", "", dto.SignUpRequest{
		Email:       email,
		Password:    "secret123",
		DisplayName: "Operator",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Toast *dto.Toast      `json:"toast"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	rec := call(t, h, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutesRequireClearance(t *testing.T) {
	h := newTestServer(t)
	token, _ := signUp(t, h, "user@example.com")

	rec := call(t, h, http.MethodGet, "/api/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, h, http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Toast *dto.Toast `json:"toast"`
	}
	decode(t, rec, &body)
	require.NotNil(t, body.Toast)
	assert.Equal(t, "error", body.Toast.Level)
}

func TestCheckoutFlow(t *testing.T) {
	h := newTestServer(t)
	adminToken, _ := signUp(t, h, "root@example.com")
	userToken, _ := signUp(t, h, "buyer@example.com")

	rec := call(t, h, http.MethodPost, "/api/admin/products", adminToken, map[string]any{
		"name":  "Trading Bot",
		"price": "49.5",
		"hosting": map[string]any{
			"enabled": true,
			"price":   "10",
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created envelope
	decode(t, rec, &created)
	var product model.Product
	require.NoError(t, json.Unmarshal(created.Data, &product))
	assert.Equal(t, "trading-bot", product.Slug)

	rec = call(t, h, http.MethodPost, "/api/checkout", userToken, dto.CheckoutRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, h, http.MethodPost, "/api/cart/items", userToken, dto.AddCartItemRequest{ProductID: product.ID, Hosting: true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cartResp dto.CartResponse
	decode(t, rec, &cartResp)
	assert.Equal(t, "59.5", cartResp.Total.String())
	assert.Equal(t, 1, cartResp.Units)

	rec = call(t, h, http.MethodPost, "/api/checkout", userToken, dto.CheckoutRequest{})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var placed envelope
	decode(t, rec, &placed)
	var order model.Order
	require.NoError(t, json.Unmarshal(placed.Data, &order))
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, model.DefaultGateway.WalletAddress, order.WalletAddress)

	rec = call(t, h, http.MethodGet, "/api/cart", userToken, nil)
	decode(t, rec, &cartResp)
	assert.Empty(t, cartResp.Items)

	rec = call(t, h, http.MethodPatch, "/api/admin/orders/"+order.ID+"/status", adminToken, dto.OrderStatusRequest{Status: model.OrderCompleted})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var statusResp envelope
	decode(t, rec, &statusResp)
	require.NotNil(t, statusResp.Toast)
	assert.Contains(t, statusResp.Toast.Message, "SET TO COMPLETED")

	rec = call(t, h, http.MethodGet, "/api/assets", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var assets []model.UserAsset
	decode(t, rec, &assets)
	require.Len(t, assets, 1)
	assert.Equal(t, product.ID, assets[0].ProductID)
}

func TestDestructiveRoutesNeedConfirmation(t *testing.T) {
	h := newTestServer(t)
	adminToken, _ := signUp(t, h, "root@example.com")

	rec := call(t, h, http.MethodPost, "/api/admin/categories", adminToken, dto.CategoryInput{Name: "Scripts"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created envelope
	decode(t, rec, &created)
	var category model.Category
	require.NoError(t, json.Unmarshal(created.Data, &category))

	rec = call(t, h, http.MethodDelete, "/api/admin/categories/"+category.ID, adminToken, nil)
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	var prompt struct {
		Confirmation dto.ConfirmationPrompt `json:"confirmation"`
	}
	decode(t, rec, &prompt)
	assert.Equal(t, "VOID CLASSIFICATION", prompt.Confirmation.Title)

	rec = call(t, h, http.MethodGet, "/api/categories", "", nil)
	var categories []model.Category
	decode(t, rec, &categories)
	assert.Len(t, categories, 1)

	rec = call(t, h, http.MethodDelete, "/api/admin/categories/"+category.ID, adminToken, nil, middleware.HeaderConfirm, "true")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, h, http.MethodGet, "/api/categories", "", nil)
	decode(t, rec, &categories)
	assert.Empty(t, categories)
}

func TestSelfPurgeDenied(t *testing.T) {
	h := newTestServer(t)
	adminToken, admin := signUp(t, h, "root@example.com")
	require.True(t, admin.IsAdmin)

	rec := call(t, h, http.MethodDelete, "/api/admin/users/"+admin.ID+"?confirm=true", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Toast *dto.Toast `json:"toast"`
	}
	decode(t, rec, &body)
	require.NotNil(t, body.Toast)
	assert.Equal(t, "CRITICAL ERROR: SELF-PURGE PROTOCOL DENIED.", body.Toast.Message)
}

func TestPublicSettingsHideTelegram(t *testing.T) {
	h := newTestServer(t)
	adminToken, _ := signUp(t, h, "root@example.com")

	s := model.DefaultSettings()
	s.Telegram = model.TelegramSettings{BotToken: "bot-secret", ChatID: "42"}
	rec := call(t, h, http.MethodPut, "/api/admin/settings", adminToken, s)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, h, http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "bot-secret")

	rec = call(t, h, http.MethodGet, "/api/admin/settings", adminToken, nil)
	assert.Contains(t, rec.Body.String(), "bot-secret")
}

func TestMediaUploadDisabled(t *testing.T) {
	h := newTestServer(t)
	adminToken, _ := signUp(t, h, "root@example.com")

	rec := call(t, h, http.MethodPost, "/api/admin/media", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
