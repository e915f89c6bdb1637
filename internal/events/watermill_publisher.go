package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/AvaneeshKarthiks/FinWise/internal/config"
)

const metadataEventType = "event_type"

// WatermillPublisher publishes events to Kafka when brokers are configured
// and to an in-process channel otherwise.
type WatermillPublisher struct {
	publisher   message.Publisher
	subscriber  message.Subscriber
	topicPrefix string
	logger      *slog.Logger
}

func NewWatermillPublisher(cfg config.EventsConfig, logger *slog.Logger) (*WatermillPublisher, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	p := &WatermillPublisher{
		topicPrefix: cfg.TopicPrefix,
		logger:      logger,
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:   cfg.KafkaBrokers,
			Marshaler: kafka.DefaultMarshaler{},
		}, wmLogger)
		if err != nil {
			return nil, fmt.Errorf("create kafka publisher: %w", err)
		}
		p.publisher = publisher
		logger.Info("Event publisher using Kafka", "brokers", cfg.KafkaBrokers)
		return p, nil
	}

	channel := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)
	p.publisher = channel
	p.subscriber = channel
	logger.Info("Event publisher using in-process channel")
	return p, nil
}

// Topic returns the topic an event type is published to.
func (p *WatermillPublisher) Topic(eventType string) string {
	return p.topicPrefix + eventType
}

func (p *WatermillPublisher) PublishEvent(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set(metadataEventType, event.Type)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.Topic(event.Type), msg); err != nil {
		return fmt.Errorf("publish event %s: %w", event.Type, err)
	}
	return nil
}

// Subscriber returns the in-process subscriber, or nil when events go to
// Kafka.
func (p *WatermillPublisher) Subscriber() message.Subscriber {
	return p.subscriber
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}
