package server

import (
	"context"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/handler"
	appmw "crypto-storefront/internal/middleware"
	"crypto-storefront/internal/realtime"
	"crypto-storefront/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type Services struct {
	Auth      service.AuthService
	User      service.UserService
	Catalog   service.CatalogService
	Cart      service.CartService
	Checkout  service.CheckoutService
	Order     service.OrderService
	Proposal  service.ProposalService
	Feed      service.FeedService
	Settings  service.SettingsService
	Analytics service.AnalyticsService
	Dashboard service.DashboardService
	Media     service.MediaService
}

type Server struct {
	echo     *echo.Echo
	services Services

	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	orderHandler    *handler.OrderHandler
	proposalHandler *handler.ProposalHandler
	feedHandler     *handler.FeedHandler
	adminHandler    *handler.AdminHandler
	streamHandler   *handler.StreamHandler
}

var (
	confirmDeleteProduct = dto.ConfirmationPrompt{
		Title:   "VOID ASSET",
		Message: "Permanently remove this asset from the repository? All associated configuration data will be lost.",
		Type:    "danger",
	}
	confirmDeleteCategory = dto.ConfirmationPrompt{
		Title:   "VOID CLASSIFICATION",
		Message: "Remove this category classification? Assets assigned to this category may lose indexing context.",
		Type:    "danger",
	}
	confirmDeleteOrder = dto.ConfirmationPrompt{
		Title:   "PURGE LOG",
		Message: "Remove this transaction record from the database? This will not affect the user's asset access.",
		Type:    "warning",
	}
	confirmDeleteProposal = dto.ConfirmationPrompt{
		Title:   "VOID PROPOSAL",
		Message: "Remove this synthesis request from the log? This action is permanent.",
		Type:    "danger",
	}
	confirmDeleteUpdate = dto.ConfirmationPrompt{
		Title:   "RETRACT UPDATE",
		Message: "Remove this broadcast from all user feeds? This action cannot be undone.",
		Type:    "danger",
	}
	confirmToggleBan = dto.ConfirmationPrompt{
		Title:   "TERMINATE ACCESS",
		Message: "Toggle this operator's access to the repository? Suspended operators cannot sign in.",
		Type:    "warning",
	}
	confirmPurgeUser = dto.ConfirmationPrompt{
		Title:   "PERMANENT DATA STRIP",
		Message: "This action will permanently purge this operator from all registries. This cannot be reversed.",
		Type:    "danger",
	}
)

func NewServer(services Services, hub *realtime.Hub, logger *log.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger = logger
	e.HTTPErrorHandler = handler.HTTPErrorHandler(logger)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Warnf("%s %s %d %s: %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			logger.Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		services:        services,
		authHandler:     handler.NewAuthHandler(services.Auth),
		userHandler:     handler.NewUserHandler(services.User, services.Dashboard),
		catalogHandler:  handler.NewCatalogHandler(services.Catalog),
		cartHandler:     handler.NewCartHandler(services.Cart, services.Checkout),
		orderHandler:    handler.NewOrderHandler(services.Order),
		proposalHandler: handler.NewProposalHandler(services.Proposal),
		feedHandler:     handler.NewFeedHandler(services.Feed),
		adminHandler:    handler.NewAdminHandler(services.User, services.Settings, services.Analytics, services.Media),
		streamHandler:   handler.NewStreamHandler(hub, logger),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	requireAuth := appmw.Auth(s.services.Auth)
	optionalAuth := appmw.OptionalAuth(s.services.Auth)
	confirm := appmw.RequireConfirmation

	// -------- public --------
	api.POST("/auth/signup", s.authHandler.SignUp)
	api.POST("/auth/signin", s.authHandler.SignIn)
	api.GET("/session", s.userHandler.Session, optionalAuth)
	api.GET("/settings", s.adminHandler.PublicSettings)
	api.GET("/products", s.catalogHandler.ListProducts, optionalAuth)
	api.GET("/products/:slug", s.catalogHandler.GetProduct, optionalAuth)
	api.GET("/categories", s.catalogHandler.ListCategories)

	// -------- signed in --------
	me := api.Group("", requireAuth)
	me.GET("/stream", s.streamHandler.Stream)
	me.GET("/dashboard", s.userHandler.Dashboard)
	me.GET("/assets", s.userHandler.GetAssets)

	me.GET("/cart", s.cartHandler.GetCart)
	me.POST("/cart/items", s.cartHandler.AddItem)
	me.PATCH("/cart/items/:config_id", s.cartHandler.UpdateItem)
	me.DELETE("/cart/items/:config_id", s.cartHandler.RemoveItem)
	me.DELETE("/cart", s.cartHandler.ClearCart)

	me.GET("/checkout", s.cartHandler.CheckoutSummary)
	me.POST("/checkout", s.cartHandler.PlaceOrder)
	me.GET("/orders", s.orderHandler.ListMine)

	me.POST("/proposals", s.proposalHandler.Create)
	me.GET("/proposals", s.proposalHandler.ListMine)
	me.POST("/proposals/:id/order", s.proposalHandler.Order)

	me.GET("/updates", s.feedHandler.List)
	me.POST("/updates/seen", s.feedHandler.MarkSeen)
	me.POST("/updates/:id/feedback", s.feedHandler.Feedback)

	// -------- admin --------
	admin := api.Group("/admin", requireAuth, appmw.RequireAdmin())
	admin.GET("/overview", s.adminHandler.Overview)

	admin.GET("/products", s.catalogHandler.AdminListProducts)
	admin.GET("/products/export", s.catalogHandler.ExportProducts)
	admin.POST("/products", s.catalogHandler.CreateProduct)
	admin.PUT("/products/:id", s.catalogHandler.UpdateProduct)
	admin.DELETE("/products/:id", s.catalogHandler.DeleteProduct, confirm(confirmDeleteProduct))

	admin.GET("/categories", s.catalogHandler.AdminListCategories)
	admin.POST("/categories", s.catalogHandler.CreateCategory)
	admin.PUT("/categories/:id", s.catalogHandler.UpdateCategory)
	admin.DELETE("/categories/:id", s.catalogHandler.DeleteCategory, confirm(confirmDeleteCategory))

	admin.GET("/orders", s.orderHandler.AdminList)
	admin.GET("/orders/export", s.orderHandler.Export)
	admin.PATCH("/orders/:id/status", s.orderHandler.UpdateStatus)
	admin.DELETE("/orders/:id", s.orderHandler.Delete, confirm(confirmDeleteOrder))

	admin.GET("/proposals", s.proposalHandler.AdminList)
	admin.POST("/proposals/:id/accept", s.proposalHandler.Accept)
	admin.DELETE("/proposals/:id", s.proposalHandler.Delete, confirm(confirmDeleteProposal))

	admin.GET("/updates", s.feedHandler.AdminList)
	admin.POST("/updates", s.feedHandler.Create)
	admin.PUT("/updates/:id", s.feedHandler.Edit)
	admin.DELETE("/updates/:id", s.feedHandler.Delete, confirm(confirmDeleteUpdate))

	admin.GET("/users", s.adminHandler.ListUsers)
	admin.POST("/users/:id/ban", s.adminHandler.ToggleBan, confirm(confirmToggleBan))
	admin.POST("/users/:id/admin", s.adminHandler.ToggleAdmin)
	admin.DELETE("/users/:id", s.adminHandler.PurgeUser, confirm(confirmPurgeUser))

	admin.GET("/settings", s.adminHandler.GetSettings)
	admin.PUT("/settings", s.adminHandler.SaveSettings)
	admin.POST("/settings/gateways", s.adminHandler.AddGateway)
	admin.DELETE("/settings/gateways/:index", s.adminHandler.RemoveGateway)
	admin.POST("/settings/telegram/test", s.adminHandler.TestTelegram)

	admin.POST("/media", s.adminHandler.UploadMedia, middleware.BodyLimit("21M"))
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
