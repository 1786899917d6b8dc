package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"civic-bridge-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendsInstructionAttachmentsAndTools(t *testing.T) {
	var captured generateRequest
	var path, key string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &captured))

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"response\":"},{"text":"\"hi\"}"}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("secret", "gemini-2.5-flash")
	p.BaseURL = srv.URL

	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleModel, Content: "Hello"},
		{Role: llm.RoleUser, Content: "Look", Attachments: []llm.Attachment{{MimeType: "image/png", Data: []byte{1, 2, 3}}}},
	}, llm.WithSystemInstruction("be civic"), llm.WithGoogleSearch())

	require.NoError(t, err)
	assert.Equal(t, `{"response":"hi"}`, out)
	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", path)
	assert.Equal(t, "secret", key)

	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "be civic", captured.SystemInstruction.Parts[0].Text)
	require.Len(t, captured.Tools, 1)
	assert.NotNil(t, captured.Tools[0].GoogleSearch)

	require.Len(t, captured.Contents, 2)
	assert.Equal(t, "model", captured.Contents[0].Role)
	assert.Equal(t, "user", captured.Contents[1].Role)
	require.Len(t, captured.Contents[1].Parts, 2)
	assert.Equal(t, "image/png", captured.Contents[1].Parts[1].InlineData.MimeType)
	assert.Equal(t, "AQID", captured.Contents[1].Parts[1].InlineData.Data)
	assert.Nil(t, captured.GenerationConfig)
}

func TestChatModelOverride(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("k", "gemini-2.5-flash")
	p.BaseURL = srv.URL

	_, err := p.Generate(context.Background(), "draft it", llm.WithModel("gemini-2.5-pro"), llm.WithTemperature(0.2))
	require.NoError(t, err)
	assert.Equal(t, "/models/gemini-2.5-pro:generateContent", path)
}

func TestChatErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota"}}`},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
		{"not json", http.StatusOK, `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewGeminiProvider("k", "m")
			p.BaseURL = srv.URL
			_, err := p.Generate(context.Background(), "x")
			assert.Error(t, err)
		})
	}
}
