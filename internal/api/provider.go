package api

import (
	"context"
	"fmt"
)

// Provider defines the interface for AI completion providers.
// Implementations include OpenRouter and DeepSeek.
type Provider interface {
	// SendMessage sends a completion request and returns the response.
	SendMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error)

	// Name returns the provider name (e.g., "openrouter", "deepseek").
	Name() string

	// SupportsVision reports whether image parts can be sent as-is.
	SupportsVision() bool

	// Close releases any resources held by the provider.
	Close() error
}

// StatusError is an upstream non-success response. The status code and raw
// error body are preserved so callers can surface them verbatim.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Code, e.Body)
}
