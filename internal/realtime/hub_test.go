package realtime

import (
	"context"
	"crypto-storefront/internal/logger"
	"crypto-storefront/internal/model"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []Event
	err    error
}

func (s *recordingSink) Forward(ctx context.Context, ev Event) error {
	s.events = append(s.events, ev)
	return s.err
}

func TestHub_DeliversToMatchingSubscribers(t *testing.T) {
	sink := &recordingSink{err: errors.New("broker down")}
	hub := NewHub(logger.Discard(), 4, sink)

	orders := hub.Subscribe(nil, CollectionOrders)
	products := hub.Subscribe(nil, CollectionProducts)
	defer orders.Close()
	defer products.Close()

	hub.Publish(context.Background(), Event{Collection: CollectionOrders, Op: OpCreated, ID: "o1"})

	select {
	case ev := <-orders.Events():
		assert.Equal(t, "o1", ev.ID)
		assert.False(t, ev.At.IsZero())
	default:
		t.Fatal("expected order event")
	}
	assert.Len(t, products.Events(), 0)
	require.Len(t, sink.events, 1)
}

func TestHub_FilterAndClose(t *testing.T) {
	hub := NewHub(logger.Discard(), 4)
	mine := hub.Subscribe(func(ev Event) bool { return ev.OwnerID == "u1" }, CollectionOrders)

	hub.Publish(context.Background(), Event{Collection: CollectionOrders, ID: "a", OwnerID: "u2"})
	hub.Publish(context.Background(), Event{Collection: CollectionOrders, ID: "b", OwnerID: "u1"})

	ev := <-mine.Events()
	assert.Equal(t, "b", ev.ID)

	assert.Equal(t, 1, hub.Subscribers())
	mine.Close()
	mine.Close()
	assert.Equal(t, 0, hub.Subscribers())

	_, open := <-mine.Events()
	assert.False(t, open)
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub(logger.Discard(), 1)
	sub := hub.Subscribe(nil, CollectionUpdates)
	defer sub.Close()

	for i := 0; i < 3; i++ {
		hub.Publish(context.Background(), Event{Collection: CollectionUpdates, ID: "x"})
	}
	assert.Len(t, sub.Events(), 1)
}

func TestHub_SinksNeverSeeTelegramCredentials(t *testing.T) {
	sink := &recordingSink{}
	hub := NewHub(logger.Discard(), 4, sink)
	admin := hub.Subscribe(nil, CollectionSettings)
	defer admin.Close()

	s := model.DefaultSettings()
	s.Telegram = model.TelegramSettings{BotToken: "bot-secret", ChatID: "42"}
	hub.Publish(context.Background(), Event{Collection: CollectionSettings, Op: OpUpdated, ID: model.SettingsID, Data: s})

	require.Len(t, sink.events, 1)
	forwarded, ok := sink.events[0].Data.(model.Settings)
	require.True(t, ok)
	assert.Empty(t, forwarded.Telegram.BotToken)
	assert.Empty(t, forwarded.Telegram.ChatID)
	assert.Equal(t, s.AppName, forwarded.AppName)

	ev := <-admin.Events()
	assert.Equal(t, "bot-secret", ev.Data.(model.Settings).Telegram.BotToken)
}
