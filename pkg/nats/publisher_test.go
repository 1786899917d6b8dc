package nats

import (
	"encoding/json"
	"testing"
	"time"

	"civic-bridge-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "civic_bridge.events.letter_sent", Subject(events.TypeLetterSent))
	assert.Equal(t, "civic_bridge.events.user_signed_in", Subject(events.TypeUserSignedIn))
}

func TestStreamCoversEverySubject(t *testing.T) {
	cfg := streamConfig()
	assert.Equal(t, StreamName, cfg.Name)
	assert.Equal(t, []string{"civic_bridge.events.>"}, cfg.Subjects)
	assert.Equal(t, 7*24*time.Hour, cfg.MaxAge)
}

func TestEnvelopeCarriesTypeAndPayload(t *testing.T) {
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ev := events.LetterSent{RepresentativeID: "fed_X", Method: "pdf", SentAt: at}

	data, err := json.Marshal(envelope{Type: ev.EventType(), OccurredAt: ev.Timestamp(), Data: ev.Payload()})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "LETTER_SENT", decoded["type"])
	assert.Equal(t, "fed_X", decoded["data"].(map[string]interface{})["representative_id"])
	assert.Equal(t, "2026-05-01T12:00:00Z", decoded["occurred_at"])
}
