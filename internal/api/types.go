package api

// Message is one conversation turn as sent to a provider. Images carries
// data-URL encoded attachments for vision-capable providers; text-only
// providers never see it (the orchestrator degrades attachments to
// metadata text before dispatch).
type Message struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type MessageRequest struct {
	Messages    []Message `json:"messages"`
	System      string    `json:"system,omitempty"`
	Model       string    `json:"model,omitempty"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type MessageResponse struct {
	Content    string `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Usage      Usage  `json:"usage"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// HasImages reports whether any message carries an image part, which
// drives vision-model selection.
func (r MessageRequest) HasImages() bool {
	for _, msg := range r.Messages {
		if len(msg.Images) > 0 {
			return true
		}
	}
	return false
}
