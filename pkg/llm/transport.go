package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single model call when the caller's context does not.
const DefaultTimeout = 120 * time.Second

// StatusError is a non-200 answer from a model backend.
type StatusError struct {
	Backend string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error: status %d, body: %s", e.Backend, e.Status, e.Body)
}

// PostJSON sends in as a JSON body and returns the body of a 200 response.
func PostJSON(ctx context.Context, client *http.Client, backend, url string, header http.Header, in interface{}) ([]byte, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", backend, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", backend, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", backend, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", backend, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Backend: backend, Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// OpenAIRole maps the Gemini-style "model" role onto "assistant" for
// OpenAI-compatible backends.
func OpenAIRole(role string) string {
	if role == RoleModel {
		return RoleAssistant
	}
	return role
}
