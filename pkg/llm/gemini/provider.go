package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"civic-bridge-be/pkg/llm"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var ErrEmptyResponse = errors.New("gemini returned no candidates")

type GeminiProvider struct {
	APIKey    string
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	return &GeminiProvider{
		APIKey:    apiKey,
		BaseURL:   DefaultBaseURL,
		ModelName: modelName,
		Client:    &http.Client{Timeout: llm.DefaultTimeout},
	}
}

// --- Wire types ---

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type tool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Tools             []tool            `json:"tools,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Model: g.ModelName}, opts...)

	req := generateRequest{}
	for _, msg := range history {
		if msg.Role == llm.RoleSystem {
			req.SystemInstruction = &content{Parts: []part{{Text: msg.Content}}}
			continue
		}
		req.Contents = append(req.Contents, toContent(msg))
	}
	if options.SystemInstruction != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: options.SystemInstruction}}}
	}
	if options.GoogleSearch {
		req.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}
	if options.Temperature > 0 || options.MaxTokens > 0 {
		cfg := &generationConfig{MaxOutputTokens: options.MaxTokens}
		if options.Temperature > 0 {
			t := options.Temperature
			cfg.Temperature = &t
		}
		req.GenerationConfig = cfg
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(g.BaseURL, "/"), options.Model)
	header := http.Header{}
	header.Set("x-goog-api-key", g.APIKey)

	body, err := llm.PostJSON(ctx, g.Client, "gemini", url, header, req)
	if err != nil {
		return "", err
	}

	var res generateResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if res.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", res.Error.Code, res.Error.Message)
	}
	if len(res.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	// Grounded answers may be split across several text parts.
	var out strings.Builder
	for _, p := range res.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	return out.String(), nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func toContent(msg llm.Message) content {
	role := llm.RoleUser
	if msg.Role == llm.RoleModel || msg.Role == llm.RoleAssistant {
		role = llm.RoleModel
	}

	c := content{Role: role}
	if msg.Content != "" {
		c.Parts = append(c.Parts, part{Text: msg.Content})
	}
	for _, a := range msg.Attachments {
		c.Parts = append(c.Parts, part{InlineData: &inlineData{
			MimeType: a.MimeType,
			Data:     base64.StdEncoding.EncodeToString(a.Data),
		}})
	}
	return c
}
