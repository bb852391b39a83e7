// Package plan turns a pending conversation into a candidate schedule
// batch: it builds the completion request, joins attachment encodings,
// and decodes the model's structured reply with a best-effort extractor.
// Failures become fallback results; only cancellation escapes as an error
// so callers can tell "cancelled" from "failed".
package plan

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/easycal/easycal/internal/api"
	"github.com/easycal/easycal/internal/config"
	"github.com/easycal/easycal/internal/log"
	"github.com/easycal/easycal/internal/planner"
)

// Status classifies how a Result was obtained.
type Status string

const (
	// StatusSuccess means a plan was decoded from the model reply.
	StatusSuccess Status = "success"
	// StatusUnparseable means the reply was empty or not decodable; the
	// Result carries an explanatory summary and no items.
	StatusUnparseable Status = "unparseable"
	// StatusFallback means the upstream call failed and a substitute
	// result was produced instead of an error.
	StatusFallback Status = "fallback"
)

// Result is the candidate schedule batch handed to the sanitizer, plus a
// summary sentence for the transcript.
type Result struct {
	Summary string
	Items   []planner.ScheduleItem
	Status  Status
	Model   string
	Note    string
}

// Orchestrator drives one completion request per conversation turn.
type Orchestrator struct {
	provider    api.Provider
	zone        *time.Location
	maxTokens   int
	temperature float64
	now         func() time.Time
}

// NewOrchestrator builds an orchestrator for the given provider.
func NewOrchestrator(provider api.Provider, cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		provider:    provider,
		zone:        cfg.Location(),
		maxTokens:   cfg.Model.MaxTokens,
		temperature: cfg.Model.Temperature,
		now:         time.Now,
	}
}

// RequestSchedule sends the transcript to the provider and returns a
// candidate batch. Transport and parsing failures are converted into
// fallback results; cancellation is returned as an error and produces no
// result at all.
func (o *Orchestrator) RequestSchedule(ctx context.Context, messages []planner.Message) (*Result, error) {
	req := api.MessageRequest{
		Messages:    o.convertMessages(messages),
		System:      SystemPrompt(o.now(), o.zone),
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	}

	resp, err := o.provider.SendMessage(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			// User-initiated cancellation: no fallback, no state mutation.
			return nil, context.Canceled
		}

		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			log.Error("provider rejected request", err, "provider", o.provider.Name(), "status", statusErr.Code)
			return &Result{
				Summary: "The scheduling provider rejected the request. Please try again.",
				Items:   []planner.ScheduleItem{},
				Status:  StatusFallback,
				Note:    statusErr.Error(),
			}, nil
		}

		log.Error("failed to reach provider", err, "provider", o.provider.Name())
		return &Result{
			Summary: "I couldn't reach the scheduling provider. Please try again.",
			Items:   []planner.ScheduleItem{},
			Status:  StatusFallback,
			Note:    err.Error(),
		}, nil
	}

	if strings.TrimSpace(resp.Content) == "" {
		return &Result{
			Summary: "The model returned an empty reply. Please try again.",
			Items:   []planner.ScheduleItem{},
			Status:  StatusUnparseable,
			Model:   resp.Model,
		}, nil
	}

	extraction := ExtractPlan(resp.Content)
	if !extraction.Parsed {
		log.Debug("unparseable model reply", "provider", o.provider.Name(), "model", resp.Model)
		return &Result{
			Summary: "I couldn't read the model's reply as a plan. Please try again.",
			Items:   []planner.ScheduleItem{},
			Status:  StatusUnparseable,
			Model:   resp.Model,
			Note:    "no JSON object found in reply",
		}, nil
	}

	items := extraction.Plan.Items
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
	}

	summary := extraction.Plan.Summary
	if summary == "" {
		summary = "Here is the proposed schedule."
	}

	return &Result{
		Summary: summary,
		Items:   items,
		Status:  StatusSuccess,
		Model:   resp.Model,
	}, nil
}

// convertMessages maps transcript messages onto the provider wire shape.
// Image attachments become data-URL parts for vision-capable providers;
// everything else is folded into the text as metadata.
func (o *Orchestrator) convertMessages(messages []planner.Message) []api.Message {
	out := make([]api.Message, 0, len(messages))
	for _, msg := range messages {
		encoded := encodeAttachments(msg.Attachments)

		var images []string
		var plain []planner.Attachment
		for _, att := range encoded {
			if o.provider.SupportsVision() && att.IsImage() && att.DataURL != "" {
				images = append(images, att.DataURL)
			} else {
				plain = append(plain, att)
			}
		}

		out = append(out, api.Message{
			Role:    string(msg.Role),
			Content: withAttachmentContext(msg.Content, plain),
			Images:  images,
		})
	}
	return out
}
