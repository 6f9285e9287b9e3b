// Package session holds the process-wide view of the global settings and
// tracks whether the first load has finished.
package session

import (
	"context"
	"crypto-storefront/internal/config"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/realtime"
	"errors"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

type SettingsLoader interface {
	Get(ctx context.Context) (*model.Settings, error)
}

type Provider struct {
	loader  SettingsLoader
	hub     *realtime.Hub
	timeout time.Duration
	logger  *log.Logger

	mu       sync.RWMutex
	settings model.Settings

	ready     chan struct{}
	readyOnce sync.Once
}

func NewProvider(loader SettingsLoader, hub *realtime.Hub, cfg config.Session, logger *log.Logger) *Provider {
	return &Provider{
		loader:   loader,
		hub:      hub,
		timeout:  cfg.LoadTimeout,
		logger:   logger,
		settings: model.DefaultSettings(),
		ready:    make(chan struct{}),
	}
}

// Start loads settings/global, then follows settings events until ctx is
// cancelled. Loading ends on the first load result or when the timeout fires.
func (p *Provider) Start(ctx context.Context) error {
	sub := p.hub.Subscribe(nil, realtime.CollectionSettings)
	defer sub.Close()

	timer := time.AfterFunc(p.timeout, func() {
		if p.Loading() {
			p.logger.Warnf("session: settings not loaded after %s, serving defaults", p.timeout)
			p.markReady()
		}
	})
	defer timer.Stop()

	go p.load(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if ev.Op == realtime.OpDeleted {
				p.Set(model.DefaultSettings())
				continue
			}
			if s, ok := ev.Data.(model.Settings); ok {
				p.Set(s)
				continue
			}
			go p.load(ctx)
		}
	}
}

func (p *Provider) load(ctx context.Context) {
	defer p.markReady()

	s, err := p.loader.Get(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p.logger.Info("session: no stored settings, using defaults")
		return
	}
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Errorf("session: load settings: %v", err)
		}
		return
	}
	p.Set(*s)
}

func (p *Provider) markReady() {
	p.readyOnce.Do(func() { close(p.ready) })
}

// Set replaces the held settings.
func (p *Provider) Set(s model.Settings) {
	s.Normalize()
	p.mu.Lock()
	p.settings = s.Clone()
	p.mu.Unlock()
}

// Settings returns a copy of the current settings including credentials.
func (p *Provider) Settings() model.Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings.Clone()
}

func (p *Provider) Ready() <-chan struct{} {
	return p.ready
}

func (p *Provider) Loading() bool {
	select {
	case <-p.ready:
		return false
	default:
		return true
	}
}
