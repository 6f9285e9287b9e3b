// Package notify posts operator notifications to the Telegram chat configured
// in the global settings.
package notify

import (
	"context"
	"crypto-storefront/internal/client"
	"crypto-storefront/internal/model"
	"fmt"
	"sync"

	"github.com/labstack/gommon/log"
)

type SettingsSource interface {
	Settings() model.Settings
}

type Notifier struct {
	client   client.TelegramClient
	settings SettingsSource
	logger   *log.Logger
	wg       sync.WaitGroup
}

func NewNotifier(telegramClient client.TelegramClient, settings SettingsSource, logger *log.Logger) *Notifier {
	return &Notifier{
		client:   telegramClient,
		settings: settings,
		logger:   logger,
	}
}

// Notify sends text in the background. Failures are logged and never reach
// the caller. Unconfigured credentials skip the send.
func (n *Notifier) Notify(ctx context.Context, text string) {
	tg := n.settings.Settings().Telegram
	if !tg.Configured() {
		n.logger.Debug("notify: telegram not configured, skipping")
		return
	}

	ctx = context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.client.SendMessage(ctx, tg.BotToken, tg.ChatID, text); err != nil {
			n.logger.Errorf("notify: telegram send failed: %v", err)
		}
	}()
}

// Heartbeat sends the test message synchronously.
func (n *Notifier) Heartbeat(ctx context.Context) error {
	s := n.settings.Settings()
	if !s.Telegram.Configured() {
		return client.ErrTelegramNotConfigured
	}

	if err := n.client.SendMessage(ctx, s.Telegram.BotToken, s.Telegram.ChatID, Heartbeat(s.AppName)); err != nil {
		return fmt.Errorf("send heartbeat: %w", err)
	}
	return nil
}

// Wait blocks until in-flight notifications finish.
func (n *Notifier) Wait() {
	n.wg.Wait()
}
