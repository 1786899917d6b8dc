package service

import (
	"context"
	"encoding/json"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// ActivityNotifier pushes a new activity entry to a user's open feeds.
type ActivityNotifier interface {
	SendActivity(userID uuid.UUID, activity dto.ActivityLogResponse)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	activity  IActivityService
	notifier  ActivityNotifier
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	activity IActivityService,
	notifier ActivityNotifier,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		activity:  activity,
		notifier:  notifier,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage turns a signed-in user's LetterSent event into an activity
// log entry. Guest letters and other events are acknowledged and dropped.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	if msg.Metadata.Get(MetadataEventType) != events.TypeLetterSent {
		msg.Ack()
		return
	}

	var payload events.LetterSent
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal letter sent event", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	if payload.UserID == "" {
		msg.Ack()
		return
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		cs.logger.Warn("CONSUMER", "Letter sent event with invalid user id", map[string]interface{}{"user_id": payload.UserID})
		msg.Ack()
		return
	}

	entry, err := cs.activity.Record(ctx, &entity.ActivityLog{
		Id:        uuid.New(),
		UserId:    userID,
		RepName:   payload.RepName,
		RepRole:   payload.RepRole,
		RepAvatar: payload.RepAvatar,
		Topic:     payload.Topic,
		Excerpt:   payload.Excerpt,
		Method:    entity.ContactMethod(payload.Method),
		CreatedAt: payload.SentAt,
	})
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to record activity", map[string]interface{}{
			"user_id": payload.UserID,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	if cs.notifier != nil {
		cs.notifier.SendActivity(userID, *entry)
	}

	cs.logger.Info("CONSUMER", "Activity recorded", map[string]interface{}{
		"user_id":           payload.UserID,
		"representative_id": payload.RepresentativeID,
	})
	msg.Ack()
}
