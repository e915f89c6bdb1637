package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

// RunAuditLog consumes the given topics and logs one line per event until
// ctx is cancelled or the subscriber closes.
func RunAuditLog(ctx context.Context, sub message.Subscriber, topics []string, logger *slog.Logger) error {
	var wg sync.WaitGroup
	for _, topic := range topics {
		messages, err := sub.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}

		wg.Add(1)
		go func(topic string, messages <-chan *message.Message) {
			defer wg.Done()
			for msg := range messages {
				var event Event
				if err := json.Unmarshal(msg.Payload, &event); err != nil {
					logger.Warn("Dropping undecodable event", "topic", topic, "error", err)
					msg.Ack()
					continue
				}
				logger.Info("Domain event",
					"topic", topic,
					"event_id", event.ID,
					"event_type", event.Type,
					"data", event.Data)
				msg.Ack()
			}
		}(topic, messages)
	}
	wg.Wait()
	return nil
}
