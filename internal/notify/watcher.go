// Package notify watches the schedule and fires a callback when an
// item enters its reminder window.
package notify

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/easycal/easycal/internal/datetime"
	"github.com/easycal/easycal/internal/log"
	"github.com/easycal/easycal/internal/planner"
)

// Notifier receives an item whose reminder window has opened, along
// with the whole minutes remaining until it starts.
type Notifier func(item planner.ScheduleItem, minutesLeft int)

// Watcher checks the schedule once a minute. Each item fires at most
// once per session; replacing an item's entry rearms it.
type Watcher struct {
	cron   *cron.Cron
	notify Notifier
	now    func() time.Time

	mu    sync.Mutex
	items []planner.ScheduleItem
	fired map[string]bool
}

// NewWatcher builds a watcher ticking in the given zone.
func NewWatcher(loc *time.Location, notify Notifier) *Watcher {
	return &Watcher{
		cron:   cron.New(cron.WithLocation(loc)),
		notify: notify,
		now:    time.Now,
		fired:  make(map[string]bool),
	}
}

// Start begins the minute tick. It returns immediately; callbacks run
// on the cron goroutine.
func (w *Watcher) Start() error {
	if _, err := w.cron.AddFunc("* * * * *", w.tick); err != nil {
		return err
	}
	w.cron.Start()
	log.Debug("reminder watcher started")
	return nil
}

// Stop halts the tick and waits for a running callback to return.
func (w *Watcher) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

// SetSchedule replaces the watched snapshot. Items that left the
// schedule forget their fired state, so re-adding one reminds again.
func (w *Watcher) SetSchedule(items []planner.ScheduleItem) {
	w.mu.Lock()
	defer w.mu.Unlock()

	keep := make(map[string]bool, len(items))
	for _, item := range items {
		keep[item.ID] = true
	}
	for id := range w.fired {
		if !keep[id] {
			delete(w.fired, id)
		}
	}

	w.items = make([]planner.ScheduleItem, len(items))
	copy(w.items, items)
}

func (w *Watcher) tick() {
	now := w.now()

	w.mu.Lock()
	due := make([]planner.ScheduleItem, 0)
	minutes := make([]int, 0)
	for _, item := range w.items {
		if w.fired[item.ID] || item.ReminderMinutes <= 0 {
			continue
		}
		start, ok := datetime.ParseDate(item.Start)
		if !ok {
			continue
		}
		windowOpen := start.Add(-time.Duration(item.ReminderMinutes) * time.Minute)
		if now.Before(windowOpen) || !now.Before(start) {
			continue
		}
		w.fired[item.ID] = true
		due = append(due, item)
		minutes = append(minutes, int(start.Sub(now)/time.Minute))
	}
	w.mu.Unlock()

	for i, item := range due {
		w.notify(item, minutes[i])
	}
}
