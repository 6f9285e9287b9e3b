package service

import (
	"context"
	"crypto-storefront/internal/config"
	"crypto-storefront/internal/localstore"
	"crypto-storefront/internal/logger"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/realtime"
	"crypto-storefront/internal/repository"
	"crypto-storefront/internal/testutil"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
}

func (n *recordingNotifier) Heartbeat(context.Context) error {
	n.Notify(context.Background(), "heartbeat")
	return nil
}

func (n *recordingNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type memorySettings struct {
	mu      sync.Mutex
	s       model.Settings
	loading bool
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

func (m *memorySettings) Loading() bool { return m.loading }

type testEnv struct {
	db       *gorm.DB
	store    localstore.Store
	hub      *realtime.Hub
	notifier *recordingNotifier
	settings *memorySettings

	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	orderRepo    repository.OrderRepository
	assetRepo    repository.AssetRepository
	proposalRepo repository.ProposalRepository
	updateRepo   repository.UpdateRepository
	settingsRepo repository.SettingsRepository

	auth      AuthService
	users     UserService
	catalog   CatalogService
	cart      CartService
	checkout  CheckoutService
	orders    OrderService
	proposals ProposalService
	feed      FeedService
	settingsS SettingsService
	analytics AnalyticsService
	dashboard DashboardService
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.Discard()

	e := &testEnv{
		db:       testutil.NewDB(t),
		store:    testutil.NewStore(t),
		hub:      realtime.NewHub(log, 16),
		notifier: &recordingNotifier{},
		settings: &memorySettings{s: model.DefaultSettings()},
	}
	e.userRepo = repository.NewUserRepository(e.db)
	e.productRepo = repository.NewProductRepository(e.db)
	e.categoryRepo = repository.NewCategoryRepository(e.db)
	e.orderRepo = repository.NewOrderRepository(e.db)
	e.assetRepo = repository.NewAssetRepository(e.db)
	e.proposalRepo = repository.NewProposalRepository(e.db)
	e.updateRepo = repository.NewUpdateRepository(e.db)
	e.settingsRepo = repository.NewSettingsRepository(e.db)

	authCfg := config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour, AdminEmails: []string{"Root@Example.com"}}
	e.auth = NewAuthService(authCfg, e.userRepo, e.hub, e.notifier)
	e.users = NewUserService(e.userRepo, e.assetRepo, e.hub, 10)
	e.catalog = NewCatalogService(e.productRepo, e.categoryRepo, e.hub, 10)
	e.cart = NewCartService(e.store, e.productRepo)
	e.checkout = NewCheckoutService(e.db, e.store, e.orderRepo, e.settings, e.hub, e.notifier, log)
	e.orders = NewOrderService(e.db, e.orderRepo, e.assetRepo, e.hub, 10, 5)
	e.proposals = NewProposalService(e.proposalRepo, e.cart, e.hub, e.notifier, 10, 5)
	e.feed = NewFeedService(e.updateRepo, e.store, e.hub, 10, 5)
	e.settingsS = NewSettingsService(e.settingsRepo, e.settings, e.notifier, e.hub)
	e.analytics = NewAnalyticsService(e.userRepo, e.orderRepo, e.productRepo, e.categoryRepo)
	e.dashboard = NewDashboardService(e.orderRepo, e.assetRepo, e.feed, e.store, e.settings)
	return e
}

func (e *testEnv) user(t *testing.T, id string) *model.User {
	t.Helper()
	u := &model.User{ID: id, Email: id + "@example.com", DisplayName: "User " + id, PasswordHash: "x"}
	require.NoError(t, e.userRepo.Create(context.Background(), u))
	return u
}

func (e *testEnv) product(t *testing.T, id string, price int64) *model.Product {
	t.Helper()
	p := &model.Product{
		ID:        id,
		Slug:      id,
		Name:      "Product " + id,
		Price:     decimal.NewFromInt(price),
		Category:  "Scripts",
		ImageURLs: []string{},
		Hosting: model.AddOn{
			Enabled:      true,
			Price:        decimal.NewFromInt(10),
			BillingCycle: model.BillingMonthly,
		},
	}
	require.NoError(t, e.productRepo.Create(context.Background(), p))
	return p
}
