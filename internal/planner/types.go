// Package planner holds the conversation/schedule state and the pure
// reducer that owns it. All mutation goes through Reducer.Reduce; every
// other component either dispatches actions or reads snapshots.
package planner

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// DeliveryStatus tracks the lifecycle of a user message across a request.
type DeliveryStatus string

const (
	StatusPending DeliveryStatus = "pending"
	StatusSent    DeliveryStatus = "sent"
	StatusError   DeliveryStatus = "error"
)

// Attachment is a file the user attached to a message. DataURL is filled
// in by the orchestrator right before dispatch; until then Path points at
// the local file.
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MIMEType string `json:"type"`
	Size     int64  `json:"size"`
	Path     string `json:"-"`
	DataURL  string `json:"-"`
}

// IsImage reports whether the attachment should be sent as an image part.
func (a Attachment) IsImage() bool {
	return len(a.MIMEType) >= 6 && a.MIMEType[:6] == "image/"
}

// Message is one turn in the chat transcript. Messages are append-only;
// only Status and Content may be patched on retry.
type Message struct {
	ID          string         `json:"id"`
	Role        Role           `json:"role"`
	Content     string         `json:"content"`
	CreatedAt   time.Time      `json:"createdAt"`
	Attachments []Attachment   `json:"attachments,omitempty"`
	Status      DeliveryStatus `json:"status,omitempty"`
}

// ScheduleItem is a single calendar entry. Start and End are ISO 8601
// strings as exchanged with the model; the datetime package interprets
// them. A ReminderMinutes of zero means "unset" until sanitization applies
// the default.
type ScheduleItem struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Location        string `json:"location,omitempty"`
	Start           string `json:"start"`
	End             string `json:"end,omitempty"`
	AllDay          bool   `json:"allDay,omitempty"`
	ReminderMinutes int    `json:"reminderMinutes,omitempty"`
}

// State is the aggregate the reducer owns: the transcript, the accepted
// schedule, and the request flags. Schedule order mirrors arrival order;
// any date sort is a presentation concern.
type State struct {
	Messages       []Message
	Schedule       []ScheduleItem
	SelectedItemID string
	IsLoading      bool
	LastError      string
}

// NewUserMessage builds a user turn ready for dispatch.
func NewUserMessage(content string, attachments []Attachment) Message {
	return Message{
		ID:          uuid.NewString(),
		Role:        RoleUser,
		Content:     content,
		CreatedAt:   time.Now(),
		Attachments: attachments,
		Status:      StatusSent,
	}
}

// NewAssistantMessage builds an assistant turn.
func NewAssistantMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewDraftItem builds a manually created schedule entry spanning one hour
// starting at now.
func NewDraftItem(title string, now time.Time) ScheduleItem {
	return ScheduleItem{
		ID:    uuid.NewString(),
		Title: title,
		Start: now.Format(time.RFC3339),
		End:   now.Add(time.Hour).Format(time.RFC3339),
	}
}

// InitialState seeds the transcript with an assistant greeting and an
// empty schedule. Any saved schedule is restored afterwards via
// SetSchedule so it goes through sanitization.
func InitialState() State {
	return State{
		Messages: []Message{
			NewAssistantMessage("Hi! Tell me about your plans and I'll turn them into calendar events."),
		},
		Schedule: []ScheduleItem{},
	}
}
