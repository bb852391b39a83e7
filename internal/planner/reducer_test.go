package planner

import (
	"reflect"
	"testing"
	"time"
)

// fixedReducer pins the clock so transitions are reproducible.
func fixedReducer(now time.Time) *Reducer {
	return &Reducer{
		Now:       func() time.Time { return now },
		Zone:      time.UTC,
		Tolerance: DefaultTolerance,
	}
}

func futureItem(id string, now time.Time) ScheduleItem {
	return ScheduleItem{
		ID:    id,
		Title: "event " + id,
		Start: now.Add(2 * time.Hour).Format(time.RFC3339),
	}
}

func TestReduce_AddMessage(t *testing.T) {
	r := fixedReducer(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	state := InitialState()

	msg := NewUserMessage("dentist tomorrow at 2pm", nil)
	next := r.Reduce(state, AddMessage{Message: msg})

	if len(next.Messages) != len(state.Messages)+1 {
		t.Fatalf("message count = %d, want %d", len(next.Messages), len(state.Messages)+1)
	}
	if next.Messages[len(next.Messages)-1].ID != msg.ID {
		t.Error("appended message should be last")
	}
	if len(state.Messages) != 1 {
		t.Error("previous state must not be mutated")
	}
	if !reflect.DeepEqual(next.Schedule, state.Schedule) {
		t.Error("schedule must be untouched by AddMessage")
	}
}

func TestReduce_Deterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := fixedReducer(now)
	state := InitialState()
	action := AddScheduleItems{Items: []ScheduleItem{futureItem("a", now), futureItem("b", now)}}

	first := r.Reduce(state, action)
	second := r.Reduce(state, action)

	if !reflect.DeepEqual(first, second) {
		t.Error("same state and action must produce structurally equal results")
	}
}

func TestReduce_AddScheduleItems_FiltersBatch(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := fixedReducer(now)
	state := InitialState()

	next := r.Reduce(state, AddScheduleItems{Items: []ScheduleItem{
		futureItem("keep", now),
		{ID: "stale", Title: "old", Start: "2020-01-01T00:00:00Z"},
	}})

	if len(next.Schedule) != 1 || next.Schedule[0].ID != "keep" {
		t.Fatalf("expected only the future item, got %v", next.Schedule)
	}
}

func TestReduce_AddScheduleItem_RejectedIsNoOp(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := fixedReducer(now)
	state := r.Reduce(InitialState(), AddScheduleItem{Item: futureItem("a", now)})

	next := r.Reduce(state, AddScheduleItem{Item: ScheduleItem{
		ID:    "past",
		Title: "yesterday",
		Start: "2020-05-31T12:00:00Z",
	}})

	if !reflect.DeepEqual(next, state) {
		t.Error("rejected single item must leave state unchanged")
	}
}

func TestReduce_UpdateScheduleItem_PastStartRejected(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := fixedReducer(now)
	state := r.Reduce(InitialState(), AddScheduleItem{Item: futureItem("a", now)})

	edited := state.Schedule[0]
	edited.Start = now.Add(-time.Minute).Format(time.RFC3339)
	next := r.Reduce(state, UpdateScheduleItem{Item: edited})

	// The schedule sequence is returned as-is, not rebuilt.
	if &next.Schedule[0] != &state.Schedule[0] {
		t.Error("rejected update must return the previous schedule sequence")
	}
	if next.Schedule[0].Start != state.Schedule[0].Start {
		t.Error("rejected update must not change the item")
	}
}

func TestReduce_UpdateScheduleItem_Merges(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := fixedReducer(now)
	state := r.Reduce(InitialState(), AddScheduleItem{Item: futureItem("a", now)})

	edited := state.Schedule[0]
	edited.Title = "renamed"
	edited.Location = "Room 4"
	next := r.Reduce(state, UpdateScheduleItem{Item: edited})

	if next.Schedule[0].Title != "renamed" || next.Schedule[0].Location != "Room 4" {
		t.Errorf("update not applied: %v", next.Schedule[0])
	}
	if state.Schedule[0].Title == "renamed" {
		t.Error("previous state must not be mutated")
	}
}

func TestReduce_UpdateScheduleItem_UnknownIDNoChange(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := fixedReducer(now)
	state := r.Reduce(InitialState(), AddScheduleItem{Item: futureItem("a", now)})

	ghost := futureItem("ghost", now)
	next := r.Reduce(state, UpdateScheduleItem{Item: ghost})

	if !reflect.DeepEqual(next.Schedule, state.Schedule) {
		t.Error("unknown ID must cause no schedule change")
	}
}

func TestReduce_RemoveSelectedClearsSelection(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := fixedReducer(now)
	state := r.Reduce(InitialState(), AddScheduleItem{Item: futureItem("a", now)})
	state = r.Reduce(state, SelectItem{ID: state.Schedule[0].ID})

	next := r.Reduce(state, RemoveScheduleItem{ID: state.SelectedItemID})

	if len(next.Schedule) != 0 {
		t.Errorf("item not removed: %v", next.Schedule)
	}
	if next.SelectedItemID != "" {
		t.Errorf("selection = %q, want cleared in the same transition", next.SelectedItemID)
	}
}

func TestReduce_RemoveOtherKeepsSelection(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := fixedReducer(now)
	state := r.Reduce(InitialState(), AddScheduleItems{Items: []ScheduleItem{
		futureItem("a", now), futureItem("b", now),
	}})
	state = r.Reduce(state, SelectItem{ID: "a"})

	next := r.Reduce(state, RemoveScheduleItem{ID: "b"})

	if next.SelectedItemID != "a" {
		t.Errorf("selection = %q, want %q preserved", next.SelectedItemID, "a")
	}
}

func TestReduce_SetLoadingClearsError(t *testing.T) {
	r := fixedReducer(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	state := r.Reduce(InitialState(), SetError{Message: "provider unreachable"})

	next := r.Reduce(state, SetLoading{Loading: true})
	if !next.IsLoading || next.LastError != "" {
		t.Errorf("loading must clear the error, got loading=%v err=%q", next.IsLoading, next.LastError)
	}

	done := r.Reduce(next, SetLoading{Loading: false})
	if done.IsLoading {
		t.Error("loading flag not cleared")
	}
}

func TestReduce_SetSchedule_ReplacesWholesale(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := fixedReducer(now)
	state := r.Reduce(InitialState(), AddScheduleItem{Item: futureItem("old", now)})

	next := r.Reduce(state, SetSchedule{Items: []ScheduleItem{
		futureItem("restored", now),
		{ID: "stale", Title: "gone", Start: "2019-01-01T10:00:00Z"},
	}})

	if len(next.Schedule) != 1 || next.Schedule[0].ID != "restored" {
		t.Fatalf("expected sanitized replacement, got %v", next.Schedule)
	}
}

func TestReduce_UpdateMessageStatus(t *testing.T) {
	r := fixedReducer(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	msg := NewUserMessage("hello", nil)
	msg.Status = StatusPending
	state := r.Reduce(InitialState(), AddMessage{Message: msg})

	next := r.Reduce(state, UpdateMessageStatus{ID: msg.ID, Status: StatusError, Err: "request failed"})

	got := next.Messages[len(next.Messages)-1]
	if got.Status != StatusError {
		t.Errorf("status = %q, want %q", got.Status, StatusError)
	}
	if next.LastError != "request failed" {
		t.Errorf("lastError = %q, want recorded", next.LastError)
	}

	cleared := r.Reduce(next, UpdateMessageStatus{ID: msg.ID, Status: StatusSent})
	if cleared.LastError != "" {
		t.Error("empty Err must clear LastError")
	}
}

func TestReduce_ResetConversation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := fixedReducer(now)
	state := r.Reduce(InitialState(), AddMessage{Message: NewUserMessage("dentist tomorrow", nil)})
	state = r.Reduce(state, AddScheduleItem{Item: futureItem("a", now)})
	state = r.Reduce(state, SelectItem{ID: "a"})
	state = r.Reduce(state, SetError{Message: "provider unreachable"})

	next := r.Reduce(state, ResetConversation{})

	if !reflect.DeepEqual(next.Messages, InitialState().Messages) {
		t.Errorf("transcript = %v, want the initial greeting only", next.Messages)
	}
	if next.LastError != "" {
		t.Error("reset must clear the error")
	}
	if !reflect.DeepEqual(next.Schedule, state.Schedule) || next.SelectedItemID != "a" {
		t.Error("schedule and selection must survive a conversation reset")
	}
	if len(state.Messages) != 2 {
		t.Error("previous state must not be mutated")
	}
}

func TestReduce_NilActionIsNoOp(t *testing.T) {
	r := fixedReducer(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	state := InitialState()

	if next := r.Reduce(state, nil); !reflect.DeepEqual(next, state) {
		t.Error("nil action must reduce to the unchanged state")
	}
}
