package huggingface

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"civic-bridge-be/pkg/llm"

	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the OpenAI-compatible inference router.
const DefaultBaseURL = "https://router.huggingface.co/v1"

type HuggingFaceProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = &HuggingFaceProvider{}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

func NewHuggingFaceProvider(apiKey, baseURL, model string) *HuggingFaceProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HuggingFaceProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: llm.DefaultTimeout},
	}
}

func (p *HuggingFaceProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Apply(llm.Options{Model: p.model, MaxTokens: 1024}, options...)

	req := chatRequest{Model: opts.Model, MaxTokens: opts.MaxTokens, Temperature: opts.Temperature}
	if opts.SystemInstruction != "" {
		req.Messages = append(req.Messages, chatMessage{Role: llm.RoleSystem, Content: opts.SystemInstruction})
	}
	for _, m := range history {
		// Text-only router: evidence is named, not sent.
		text := m.Content
		for _, a := range m.Attachments {
			text += fmt.Sprintf("\n[attached %s evidence]", a.MimeType)
		}
		req.Messages = append(req.Messages, chatMessage{Role: llm.OpenAIRole(m.Role), Content: text})
	}

	header := http.Header{}
	if p.apiKey != "" {
		header.Set("Authorization", "Bearer "+p.apiKey)
	}

	body, err := llm.PostJSON(ctx, p.client, "huggingface", p.baseURL+"/chat/completions", header, req)
	if err != nil {
		return "", err
	}

	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		return "", fmt.Errorf("huggingface api returned error: %s", msg.String())
	}
	reply := gjson.GetBytes(body, "choices.0.message.content")
	if !reply.Exists() {
		return "", fmt.Errorf("empty choices from huggingface api")
	}
	return reply.String(), nil
}

func (p *HuggingFaceProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}
