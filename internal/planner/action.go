package planner

// Action is a state transition request handled by Reducer.Reduce.
// Unhandled action kinds reduce to the unchanged state so new kinds can be
// introduced without breaking older consumers.
type Action interface {
	isAction()
}

// AddMessage appends a message to the transcript.
type AddMessage struct {
	Message Message
}

// UpdateMessageStatus patches the status and optionally the content of an
// existing message (retry flow). Err always replaces LastError, clearing
// it when empty.
type UpdateMessageStatus struct {
	ID      string
	Status  DeliveryStatus
	Content string
	Err     string
}

// SetSchedule replaces the schedule wholesale after sanitization (session
// restore).
type SetSchedule struct {
	Items []ScheduleItem
}

// AddScheduleItems appends the sanitized subset of a candidate batch (AI
// response).
type AddScheduleItems struct {
	Items []ScheduleItem
}

// AddScheduleItem appends a single item; if sanitization rejects it the
// transition is a no-op.
type AddScheduleItem struct {
	Item ScheduleItem
}

// UpdateScheduleItem replaces the item with a matching ID. The transition
// is rejected when the replacement's Start fails the instant-level
// future-or-present check; an unknown ID causes no change.
type UpdateScheduleItem struct {
	Item ScheduleItem
}

// RemoveScheduleItem removes an item by ID, clearing the selection if it
// pointed at the removed item.
type RemoveScheduleItem struct {
	ID string
}

// SelectItem sets the selected item reference.
type SelectItem struct {
	ID string
}

// SetLoading toggles the awaiting-response mode. Entering loading clears
// any previous error: loading and error are mutually exclusive signals.
type SetLoading struct {
	Loading bool
}

// SetError records a user-visible error string.
type SetError struct {
	Message string
}

// ResetConversation restores the transcript to the initial greeting and
// clears any error. The schedule and selection are untouched.
type ResetConversation struct{}

func (AddMessage) isAction()          {}
func (UpdateMessageStatus) isAction() {}
func (SetSchedule) isAction()         {}
func (AddScheduleItems) isAction()    {}
func (AddScheduleItem) isAction()     {}
func (UpdateScheduleItem) isAction()  {}
func (RemoveScheduleItem) isAction()  {}
func (SelectItem) isAction()          {}
func (SetLoading) isAction()          {}
func (SetError) isAction()            {}
func (ResetConversation) isAction()   {}
