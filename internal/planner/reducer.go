package planner

import (
	"time"

	"github.com/easycal/easycal/internal/datetime"
)

// DefaultTolerance pads the "now" used for past/future checks so items
// created moments ago are not rejected due to clock or network latency.
const DefaultTolerance = 60 * time.Second

// Reducer computes state transitions. Reduce is a pure function of the
// previous state and the action (given a fixed clock): it performs no I/O
// and never mutates its input. Persistence and user feedback are the
// caller's concern.
type Reducer struct {
	Now       func() time.Time
	Zone      *time.Location
	Tolerance time.Duration
}

// NewReducer builds a reducer with the wall clock and default tolerance.
func NewReducer(zone *time.Location) *Reducer {
	return &Reducer{
		Now:       time.Now,
		Zone:      zone,
		Tolerance: DefaultTolerance,
	}
}

// Reduce applies action to state and returns the next state. Unknown or
// nil actions return state unchanged.
func (r *Reducer) Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddMessage:
		next := state
		next.Messages = appendCopy(state.Messages, a.Message)
		return next

	case UpdateMessageStatus:
		next := state
		next.Messages = make([]Message, len(state.Messages))
		for i, msg := range state.Messages {
			if msg.ID == a.ID {
				if a.Status != "" {
					msg.Status = a.Status
				}
				if a.Content != "" {
					msg.Content = a.Content
				}
			}
			next.Messages[i] = msg
		}
		next.LastError = a.Err
		return next

	case SetSchedule:
		next := state
		next.Schedule = r.sanitize(a.Items)
		return next

	case AddScheduleItems:
		next := state
		next.Schedule = appendCopy(state.Schedule, r.sanitize(a.Items)...)
		return next

	case AddScheduleItem:
		accepted := r.sanitize([]ScheduleItem{a.Item})
		if len(accepted) == 0 {
			return state
		}
		next := state
		next.Schedule = appendCopy(state.Schedule, accepted[0])
		return next

	case UpdateScheduleItem:
		if a.Item.Start != "" && !datetime.IsFutureOrPresent(a.Item.Start, r.Now()) {
			return state
		}
		next := state
		next.Schedule = make([]ScheduleItem, len(state.Schedule))
		for i, item := range state.Schedule {
			if item.ID == a.Item.ID {
				item = a.Item
			}
			next.Schedule[i] = item
		}
		return next

	case RemoveScheduleItem:
		next := state
		next.Schedule = make([]ScheduleItem, 0, len(state.Schedule))
		for _, item := range state.Schedule {
			if item.ID != a.ID {
				next.Schedule = append(next.Schedule, item)
			}
		}
		if state.SelectedItemID == a.ID {
			next.SelectedItemID = ""
		}
		return next

	case SelectItem:
		next := state
		next.SelectedItemID = a.ID
		return next

	case SetLoading:
		next := state
		next.IsLoading = a.Loading
		if a.Loading {
			next.LastError = ""
		}
		return next

	case SetError:
		next := state
		next.LastError = a.Message
		return next

	case ResetConversation:
		next := state
		next.Messages = InitialState().Messages
		next.LastError = ""
		return next

	default:
		return state
	}
}

// sanitize runs the batch through Sanitize against the tolerant reference.
func (r *Reducer) sanitize(items []ScheduleItem) []ScheduleItem {
	ref := r.Now().Add(-r.Tolerance)
	return Sanitize(items, ref, r.Zone)
}

func appendCopy[T any](prev []T, add ...T) []T {
	next := make([]T, 0, len(prev)+len(add))
	next = append(next, prev...)
	return append(next, add...)
}
