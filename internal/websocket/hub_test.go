package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestSendActivityReachesEveryDevice(t *testing.T) {
	hub := newTestHub(t)
	userID := uuid.New()

	phone := &subscriber{hub: hub, userID: userID, send: make(chan []byte, 1)}
	laptop := &subscriber{hub: hub, userID: userID, send: make(chan []byte, 1)}
	hub.register <- phone
	hub.register <- laptop
	require.Eventually(t, func() bool { return hub.Connected(userID) == 2 }, time.Second, 5*time.Millisecond)

	hub.SendActivity(userID, dto.ActivityLogResponse{RepName: "Alex Padilla", Method: "pdf"})

	for _, c := range []*subscriber{phone, laptop} {
		select {
		case raw := <-c.send:
			var msg struct {
				Type string                  `json:"type"`
				Data dto.ActivityLogResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, "activity", msg.Type)
			assert.Equal(t, "Alex Padilla", msg.Data.RepName)
		case <-time.After(time.Second):
			t.Fatal("activity not delivered")
		}
	}
}

func TestUnregisterTwiceClosesOnce(t *testing.T) {
	hub := newTestHub(t)
	userID := uuid.New()
	client := &subscriber{hub: hub, userID: userID, send: make(chan []byte, 1)}

	hub.register <- client
	hub.unregister <- client
	hub.unregister <- client

	require.Eventually(t, func() bool { return hub.Connected(userID) == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-client.send
	assert.False(t, open)
}

func TestFullBufferDropsClient(t *testing.T) {
	hub := newTestHub(t)
	userID := uuid.New()
	client := &subscriber{hub: hub, userID: userID, send: make(chan []byte)}
	hub.register <- client
	require.Eventually(t, func() bool { return hub.Connected(userID) == 1 }, time.Second, 5*time.Millisecond)

	hub.SendActivity(userID, dto.ActivityLogResponse{RepName: "X"})

	assert.Eventually(t, func() bool { return hub.Connected(userID) == 0 }, time.Second, 5*time.Millisecond)
}
