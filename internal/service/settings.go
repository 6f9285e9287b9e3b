package service

import (
	"context"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/realtime"
	"crypto-storefront/internal/repository"
	"fmt"
	"strings"
)

type SettingsHolder interface {
	SettingsSource
	Set(s model.Settings)
}

type Heartbeater interface {
	Heartbeat(ctx context.Context) error
}

type SettingsService interface {
	Get() model.Settings
	Public() model.Settings
	Save(ctx context.Context, settings model.Settings) (model.Settings, error)
	AddGateway(ctx context.Context, gateway model.PaymentGateway) (model.Settings, error)
	RemoveGateway(ctx context.Context, index int) (model.Settings, error)
	TestTelegram(ctx context.Context) error
}

type settingsServiceImpl struct {
	settingsRepo repository.SettingsRepository
	holder       SettingsHolder
	heartbeater  Heartbeater
	hub          publisher
}

func NewSettingsService(
	settingsRepo repository.SettingsRepository,
	holder SettingsHolder,
	heartbeater Heartbeater,
	hub *realtime.Hub,
) SettingsService {
	return &settingsServiceImpl{
		settingsRepo: settingsRepo,
		holder:       holder,
		heartbeater:  heartbeater,
		hub:          hub,
	}
}

func (s *settingsServiceImpl) Get() model.Settings {
	return s.holder.Settings()
}

func (s *settingsServiceImpl) Public() model.Settings {
	return s.holder.Settings().Public()
}

func (s *settingsServiceImpl) Save(ctx context.Context, settings model.Settings) (model.Settings, error) {
	if strings.TrimSpace(settings.AppName) == "" {
		return model.Settings{}, fmt.Errorf("%w: app name required", ErrInvalidInput)
	}
	if settings.Gateways == nil {
		settings.Gateways = s.holder.Settings().Gateways
	}
	return s.store(ctx, settings)
}

func (s *settingsServiceImpl) store(ctx context.Context, settings model.Settings) (model.Settings, error) {
	settings.Normalize()
	if err := s.settingsRepo.Upsert(ctx, &settings); err != nil {
		return model.Settings{}, fmt.Errorf("upsert settings: %w", err)
	}

	s.holder.Set(settings)
	publish(ctx, s.hub, realtime.CollectionSettings, realtime.OpUpdated, model.SettingsID, "", settings.Clone())
	return settings, nil
}

func (s *settingsServiceImpl) AddGateway(ctx context.Context, gateway model.PaymentGateway) (model.Settings, error) {
	gateway.Cryptocurrency = strings.TrimSpace(gateway.Cryptocurrency)
	gateway.WalletAddress = strings.TrimSpace(gateway.WalletAddress)
	if gateway.Cryptocurrency == "" || gateway.WalletAddress == "" {
		return model.Settings{}, fmt.Errorf("%w: cryptocurrency and wallet address required", ErrInvalidInput)
	}

	settings := s.holder.Settings()
	settings.Gateways = append(settings.Gateways, gateway)
	return s.store(ctx, settings)
}

func (s *settingsServiceImpl) RemoveGateway(ctx context.Context, index int) (model.Settings, error) {
	settings := s.holder.Settings()
	if index < 0 || index >= len(settings.Gateways) {
		return model.Settings{}, ErrGatewayNotFound
	}

	gateways := make([]model.PaymentGateway, 0, len(settings.Gateways)-1)
	gateways = append(gateways, settings.Gateways[:index]...)
	settings.Gateways = append(gateways, settings.Gateways[index+1:]...)
	return s.store(ctx, settings)
}

func (s *settingsServiceImpl) TestTelegram(ctx context.Context) error {
	if !s.holder.Settings().Telegram.Configured() {
		return ErrTelegramIncomplete
	}
	return s.heartbeater.Heartbeat(ctx)
}
