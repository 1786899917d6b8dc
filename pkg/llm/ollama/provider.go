package ollama

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"civic-bridge-be/pkg/llm"

	"github.com/tidwall/gjson"
)

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ModelName: modelName,
		Client:    &http.Client{Timeout: llm.DefaultTimeout},
	}
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// toMessage inlines images; Ollama has no slot for other evidence, so it is
// only named in the text.
func toMessage(msg llm.Message) ollamaMessage {
	m := ollamaMessage{Role: llm.OpenAIRole(msg.Role), Content: msg.Content}
	for _, a := range msg.Attachments {
		if strings.HasPrefix(a.MimeType, "image/") {
			m.Images = append(m.Images, base64.StdEncoding.EncodeToString(a.Data))
			continue
		}
		m.Content += fmt.Sprintf("\n[attached %s document]", a.MimeType)
	}
	return m
}

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: 0.7, Model: o.ModelName}, opts...)

	req := ollamaChatRequest{
		Model:   options.Model,
		Options: ollamaOptions{Temperature: options.Temperature, NumPredict: options.MaxTokens},
	}
	if options.SystemInstruction != "" {
		req.Messages = append(req.Messages, ollamaMessage{Role: llm.RoleSystem, Content: options.SystemInstruction})
	}
	for _, msg := range history {
		req.Messages = append(req.Messages, toMessage(msg))
	}

	body, err := llm.PostJSON(ctx, o.Client, "ollama", o.BaseURL+"/api/chat", nil, req)
	if err != nil {
		return "", err
	}

	reply := gjson.GetBytes(body, "message.content")
	if !reply.Exists() {
		return "", fmt.Errorf("ollama response has no message")
	}
	return reply.String(), nil
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return o.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
