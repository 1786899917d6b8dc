package service

import (
	"context"
	"encoding/json"
	"fmt"

	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/pkg/events"
	pktNats "civic-bridge-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// MetadataEventType is the watermill metadata key carrying the event type.
const MetadataEventType = "event_type"

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName      string
	pubSub         *gochannel.GoChannel
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

// NewPublisherService publishes to the in-process topic and, when a NATS
// publisher is configured, to the outbound event stream.
func NewPublisherService(topicName string, pubSub *gochannel.GoChannel, eventPublisher *pktNats.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName:      topicName,
		pubSub:         pubSub,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *publisherService) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.EventType(), err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataEventType, event.EventType())

	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		return fmt.Errorf("publish %s event: %w", event.EventType(), err)
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// The in-process copy already went out; NATS is best effort.
			s.logger.Warn("PUBLISHER", "Failed to forward event to NATS", map[string]interface{}{
				"event_type": event.EventType(),
				"error":      err.Error(),
			})
		}
	}
	return nil
}
