package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/repository/unitofwork"
	"civic-bridge-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent map[uuid.UUID][]dto.ActivityLogResponse
}

func (n *recordingNotifier) SendActivity(userID uuid.UUID, activity dto.ActivityLogResponse) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sent == nil {
		n.sent = make(map[uuid.UUID][]dto.ActivityLogResponse)
	}
	n.sent[userID] = append(n.sent[userID], activity)
}

func (n *recordingNotifier) count(userID uuid.UUID) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent[userID])
}

func TestConsumerRecordsMemberLetters(t *testing.T) {
	const topic = "test.events"
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uowFactory := unitofwork.NewRepositoryFactory(newTestDB(t))
	activity := NewActivityService(uowFactory)
	notifier := &recordingNotifier{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, topic, activity, notifier, testLogger())
	require.NoError(t, consumer.Consume(ctx))
	publisher := NewPublisherService(topic, pubSub, nil, testLogger())

	user := seedUser(t, uowFactory, "Dana Reyes", testAddress)
	sentAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, publisher.Publish(ctx, events.LetterSent{
		GuestID:          uuid.NewString(),
		RepresentativeID: senator.ID,
		RepName:          senator.Name,
		Method:           "pdf",
		SentAt:           sentAt,
	}))
	require.NoError(t, publisher.Publish(ctx, events.BaseEvent{
		Type:       events.TypeUserSignedIn,
		Data:       map[string]interface{}{"user_id": user.Id.String()},
		OccurredAt: sentAt,
	}))
	require.NoError(t, publisher.Publish(ctx, events.LetterSent{
		UserID:           user.Id.String(),
		RepresentativeID: senator.ID,
		RepName:          senator.Name,
		RepRole:          senator.Role,
		Topic:            "Wildfire funding",
		Excerpt:          "I am writing about wildfire funding.",
		Method:           "webform",
		SentAt:           sentAt,
	}))

	assert.Eventually(t, func() bool { return notifier.count(user.Id) == 1 }, 2*time.Second, 10*time.Millisecond)

	page, err := activity.ListLogs(ctx, memberCaller(user), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Logs, 1)
	assert.Equal(t, "Wildfire funding", page.Logs[0].Topic)
	assert.Equal(t, "webform", page.Logs[0].Method)
	assert.True(t, sentAt.Equal(page.Logs[0].Date))
	assert.Len(t, notifier.sent, 1)
}
