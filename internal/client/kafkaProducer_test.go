package client

import (
	"context"
	"crypto-storefront/internal/realtime"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaSink_Forward(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if len(val) == 0 {
			return errors.New("empty payload")
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	sink := NewKafkaSinkWithProducer(producer, "storefront.events")
	defer sink.Close()

	ev := realtime.Event{Collection: realtime.CollectionOrders, Op: realtime.OpCreated, ID: "o1"}
	require.NoError(t, sink.Forward(context.Background(), ev))

	err := sink.Forward(context.Background(), ev)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}
