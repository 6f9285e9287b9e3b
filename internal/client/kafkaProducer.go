package client

import (
	"context"
	"crypto-storefront/internal/config"
	"crypto-storefront/internal/realtime"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
)

// KafkaSink forwards realtime events to a Kafka topic keyed by collection/id.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaSink(cfg *config.Kafka) (*KafkaSink, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = "crypto-storefront"
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Retry.Max = 0
	saramaCfg.Producer.Timeout = cfg.Timeout

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewKafkaSinkWithProducer(producer, cfg.Topic), nil
}

func NewKafkaSinkWithProducer(producer sarama.SyncProducer, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

func (s *KafkaSink) Forward(ctx context.Context, ev realtime.Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(ev.Collection + "/" + ev.ID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("op"), Value: []byte(ev.Op)},
		},
	})
	if err != nil {
		return fmt.Errorf("send kafka message: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.producer.Close()
}
