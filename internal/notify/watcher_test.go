package notify

import (
	"testing"
	"time"

	"github.com/easycal/easycal/internal/planner"
)

func testWatcher(now time.Time) (*Watcher, *[]string) {
	var fired []string
	w := NewWatcher(time.UTC, func(item planner.ScheduleItem, minutesLeft int) {
		fired = append(fired, item.ID)
	})
	w.now = func() time.Time { return now }
	return w, &fired
}

func TestWatcher_FiresInsideWindow(t *testing.T) {
	now := time.Date(2025, 9, 25, 8, 55, 0, 0, time.UTC)
	w, fired := testWatcher(now)

	w.SetSchedule([]planner.ScheduleItem{{
		ID:              "a",
		Title:           "Standup",
		Start:           "2025-09-25T09:00:00Z",
		ReminderMinutes: 10,
	}})

	w.tick()
	if len(*fired) != 1 || (*fired)[0] != "a" {
		t.Fatalf("fired = %v", *fired)
	}

	// A second tick inside the same window must not fire again.
	w.tick()
	if len(*fired) != 1 {
		t.Errorf("item fired twice: %v", *fired)
	}
}

func TestWatcher_QuietOutsideWindow(t *testing.T) {
	item := planner.ScheduleItem{
		ID:              "a",
		Start:           "2025-09-25T09:00:00Z",
		ReminderMinutes: 10,
	}

	cases := map[string]time.Time{
		"before window": time.Date(2025, 9, 25, 8, 40, 0, 0, time.UTC),
		"after start":   time.Date(2025, 9, 25, 9, 0, 0, 0, time.UTC),
	}
	for name, now := range cases {
		w, fired := testWatcher(now)
		w.SetSchedule([]planner.ScheduleItem{item})
		w.tick()
		if len(*fired) != 0 {
			t.Errorf("%s: fired = %v", name, *fired)
		}
	}
}

func TestWatcher_SkipsItemsWithoutReminder(t *testing.T) {
	now := time.Date(2025, 9, 25, 8, 59, 0, 0, time.UTC)
	w, fired := testWatcher(now)

	w.SetSchedule([]planner.ScheduleItem{
		{ID: "none", Start: "2025-09-25T09:00:00Z"},
		{ID: "bad", Start: "tomorrow", ReminderMinutes: 10},
	})

	w.tick()
	if len(*fired) != 0 {
		t.Errorf("fired = %v", *fired)
	}
}

func TestWatcher_ReplacingItemRearms(t *testing.T) {
	now := time.Date(2025, 9, 25, 8, 55, 0, 0, time.UTC)
	w, fired := testWatcher(now)

	item := planner.ScheduleItem{ID: "a", Start: "2025-09-25T09:00:00Z", ReminderMinutes: 10}
	w.SetSchedule([]planner.ScheduleItem{item})
	w.tick()

	// Remove, then re-add: the fired mark must have been dropped.
	w.SetSchedule(nil)
	w.SetSchedule([]planner.ScheduleItem{item})
	w.tick()

	if len(*fired) != 2 {
		t.Errorf("fired = %v, want two notifications", *fired)
	}
}
