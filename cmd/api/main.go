package main

import (
	"context"
	"crypto-storefront/internal/client"
	"crypto-storefront/internal/config"
	"crypto-storefront/internal/localstore"
	"crypto-storefront/internal/logger"
	"crypto-storefront/internal/notify"
	"crypto-storefront/internal/realtime"
	"crypto-storefront/internal/repository"
	"crypto-storefront/internal/server"
	"crypto-storefront/internal/service"
	"crypto-storefront/internal/session"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const eventBuffer = 64

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Printf("storefront: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := logger.New("storefront", cfg.Log)
	decimal.MarshalJSONWithoutQuotes = true

	db, err := client.OpenDatabase(cfg.Database)
	if err != nil {
		return err
	}
	if err := client.Migrate(db); err != nil {
		return err
	}

	store, err := localstore.Open(cfg.LocalStore.Path, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warnf("close local store: %v", err)
		}
	}()

	var sinks []realtime.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := client.NewKafkaSink(&cfg.Kafka)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
		log.Infof("forwarding change events to kafka topic %s", cfg.Kafka.Topic)
	}
	hub := realtime.NewHub(log, eventBuffer, sinks...)

	telegramClient := client.NewTelegramClient(&cfg.Telegram)
	mediaClient, err := client.NewMediaClient(&cfg.Cloudinary)
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	updateRepo := repository.NewUpdateRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	provider := session.NewProvider(settingsRepo, hub, cfg.Session, log)
	notifier := notify.NewNotifier(telegramClient, provider, log)
	defer notifier.Wait()

	adminPage := cfg.Pagination.AdminPageSize
	dashPage := cfg.Pagination.DashboardPageSize

	cartService := service.NewCartService(store, productRepo)
	feedService := service.NewFeedService(updateRepo, store, hub, adminPage, dashPage)
	userService := service.NewUserService(userRepo, assetRepo, hub, adminPage)

	srv := server.NewServer(server.Services{
		Auth:      service.NewAuthService(cfg.Auth, userRepo, hub, notifier),
		User:      userService,
		Catalog:   service.NewCatalogService(productRepo, categoryRepo, hub, adminPage),
		Cart:      cartService,
		Checkout:  service.NewCheckoutService(db, store, orderRepo, provider, hub, notifier, log),
		Order:     service.NewOrderService(db, orderRepo, assetRepo, hub, adminPage, dashPage),
		Proposal:  service.NewProposalService(proposalRepo, cartService, hub, notifier, adminPage, dashPage),
		Feed:      feedService,
		Settings:  service.NewSettingsService(settingsRepo, provider, notifier, hub),
		Analytics: service.NewAnalyticsService(userRepo, orderRepo, productRepo, categoryRepo),
		Dashboard: service.NewDashboardService(orderRepo, assetRepo, feedService, store, provider),
		Media:     service.NewMediaService(mediaClient),
	}, hub, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return provider.Start(gctx)
	})
	g.Go(func() error {
		log.Infof("Starting HTTP server on %s", cfg.Addr())
		if err := srv.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Signal received, starting graceful shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
