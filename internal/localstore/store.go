// Package localstore keeps per-user state that the storefront treats as
// client-local: the shopping cart and "last seen" feed timestamps.
package localstore

import (
	"context"
	"crypto-storefront/internal/cart"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

type Store interface {
	LoadCart(ctx context.Context, userID string) (*cart.Cart, error)
	SaveCart(ctx context.Context, userID string, c *cart.Cart) error
	DeleteCart(ctx context.Context, userID string) error
	LastSeen(ctx context.Context, userID, feed string) (time.Time, error)
	MarkSeen(ctx context.Context, userID, feed string, at time.Time) error
	// LockUser holds the user's cart until the returned func is called.
	LockUser(userID string) (unlock func())
	Close() error
}

type levelStore struct {
	db     *leveldb.DB
	locks  *userLocks
	logger *log.Logger
}

func Open(path string, logger *log.Logger) (Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return &levelStore{db: db, locks: newUserLocks(), logger: logger}, nil
}

// OpenMemory backs the store with an in-memory leveldb.
func OpenMemory(logger *log.Logger) (Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open memory leveldb: %w", err)
	}
	return &levelStore{db: db, locks: newUserLocks(), logger: logger}, nil
}

func cartKey(userID string) []byte {
	return []byte("cart/" + userID)
}

func lastSeenKey(userID, feed string) []byte {
	return []byte("last_seen/" + feed + "/" + userID)
}

// LoadCart rehydrates the stored cart. Missing or unreadable data yields an
// empty cart; the unreadable entry is discarded.
func (s *levelStore) LoadCart(ctx context.Context, userID string) (*cart.Cart, error) {
	raw, err := s.db.Get(cartKey(userID), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		s.logger.Warnf("cart hydration failed for %s, discarding: %v", userID, err)
		if delErr := s.db.Delete(cartKey(userID), nil); delErr != nil {
			s.logger.Warnf("discard cart for %s: %v", userID, delErr)
		}
		return cart.New(), nil
	}
	if c.Items == nil {
		c.Items = []cart.Item{}
	}
	return &c, nil
}

func (s *levelStore) SaveCart(ctx context.Context, userID string, c *cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.db.Put(cartKey(userID), raw, nil); err != nil {
		return fmt.Errorf("put cart: %w", err)
	}
	return nil
}

func (s *levelStore) DeleteCart(ctx context.Context, userID string) error {
	if err := s.db.Delete(cartKey(userID), nil); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// LastSeen returns the zero time when the feed was never opened.
func (s *levelStore) LastSeen(ctx context.Context, userID, feed string) (time.Time, error) {
	raw, err := s.db.Get(lastSeenKey(userID, feed), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get last seen: %w", err)
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, nil
	}
	return time.UnixMilli(ms), nil
}

func (s *levelStore) MarkSeen(ctx context.Context, userID, feed string, at time.Time) error {
	value := strconv.FormatInt(at.UnixMilli(), 10)
	if err := s.db.Put(lastSeenKey(userID, feed), []byte(value), nil); err != nil {
		return fmt.Errorf("put last seen: %w", err)
	}
	return nil
}

func (s *levelStore) LockUser(userID string) func() {
	return s.locks.lock(userID)
}

func (s *levelStore) Close() error {
	return s.db.Close()
}
