package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/easycal/easycal/internal/config"
	"github.com/easycal/easycal/internal/log"
)

const defaultOpenRouterURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider implements Provider for the OpenRouter chat
// completions API. Requests with image parts are routed to the configured
// vision model.
type OpenRouterProvider struct {
	client *http.Client
	config config.OpenRouterConfig
}

// NewOpenRouterProvider creates a new OpenRouter provider.
func NewOpenRouterProvider(cfg config.OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120
	}

	return &OpenRouterProvider{
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		config: cfg,
	}, nil
}

// openrouterMessage content is either a plain string or a list of typed
// parts when images are attached.
type openrouterMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type openrouterTextPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type openrouterImagePart struct {
	Type     string             `json:"type"`
	ImageURL openrouterImageURL `json:"image_url"`
}

type openrouterImageURL struct {
	URL string `json:"url"`
}

type openrouterChatRequest struct {
	Model       string              `json:"model"`
	Messages    []openrouterMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature *float64            `json:"temperature,omitempty"`
}

type openrouterChatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// SendMessage sends a chat completion request to OpenRouter.
func (p *OpenRouterProvider) SendMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	model := req.Model
	if model == "" {
		model = p.config.Model
		if req.HasImages() && p.config.VisionModel != "" {
			model = p.config.VisionModel
		}
	}

	messages := make([]openrouterMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openrouterMessage{Role: "system", Content: req.System})
	}
	for _, msg := range req.Messages {
		messages = append(messages, convertOpenRouterMessage(msg))
	}

	chatReq := openrouterChatRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature > 0 {
		t := req.Temperature
		chatReq.Temperature = &t
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OpenRouter request: %w", err)
	}

	baseURL := p.config.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterURL
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenRouter request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	// OpenRouter recommends identifying the calling application.
	if p.config.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", p.config.Referer)
	}
	if p.config.AppTitle != "" {
		httpReq.Header.Set("X-Title", p.config.AppTitle)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("OpenRouter request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenRouter response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Provider: "openrouter", Code: resp.StatusCode, Body: string(respBody)}
	}

	var chatResp openrouterChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("OpenRouter response contained no choices")
	}

	log.Debug("openrouter request completed", "model", chatResp.Model,
		"input_tokens", chatResp.Usage.PromptTokens, "output_tokens", chatResp.Usage.CompletionTokens)

	return &MessageResponse{
		Content:    chatResp.Choices[0].Message.Content,
		Model:      chatResp.Model,
		StopReason: chatResp.Choices[0].FinishReason,
		Usage: Usage{
			InputTokens:  chatResp.Usage.PromptTokens,
			OutputTokens: chatResp.Usage.CompletionTokens,
		},
	}, nil
}

func convertOpenRouterMessage(msg Message) openrouterMessage {
	if len(msg.Images) == 0 {
		return openrouterMessage{Role: msg.Role, Content: msg.Content}
	}

	parts := make([]any, 0, len(msg.Images)+1)
	text := msg.Content
	if text == "" {
		text = "Analyze the attached image and extract schedule information."
	}
	parts = append(parts, openrouterTextPart{Type: "text", Text: text})
	for _, dataURL := range msg.Images {
		parts = append(parts, openrouterImagePart{
			Type:     "image_url",
			ImageURL: openrouterImageURL{URL: dataURL},
		})
	}
	return openrouterMessage{Role: msg.Role, Content: parts}
}

// Name returns the provider name.
func (p *OpenRouterProvider) Name() string {
	return "openrouter"
}

// SupportsVision reports that image parts can be sent directly.
func (p *OpenRouterProvider) SupportsVision() bool {
	return true
}

// Close releases resources (no-op for OpenRouter).
func (p *OpenRouterProvider) Close() error {
	return nil
}
