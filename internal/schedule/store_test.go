package schedule

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/easycal/easycal/internal/planner"
)

func sampleItems() []planner.ScheduleItem {
	return []planner.ScheduleItem{
		{
			ID:              "b",
			Title:           "Dentist",
			Location:        "Clinic",
			Start:           "2025-09-26T14:00:00+09:00",
			End:             "2025-09-26T15:00:00+09:00",
			ReminderMinutes: 30,
		},
		{
			ID:     "a",
			Title:  "Holiday",
			Start:  "2025-12-25T00:00:00Z",
			AllDay: true,
		},
	}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "schedule.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			items := sampleItems()
			if err := store.Save(items); err != nil {
				t.Fatalf("Save: %v", err)
			}

			loaded, err := store.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(loaded, items) {
				t.Errorf("Load = %+v, want %+v", loaded, items)
			}
		})
	}
}

func TestStore_SaveReplacesSnapshot(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Save(sampleItems()); err != nil {
				t.Fatalf("Save: %v", err)
			}

			replacement := []planner.ScheduleItem{{ID: "c", Title: "Only one", Start: "2026-01-01T09:00:00Z"}}
			if err := store.Save(replacement); err != nil {
				t.Fatalf("Save: %v", err)
			}

			loaded, err := store.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(loaded) != 1 || loaded[0].ID != "c" {
				t.Errorf("Load = %+v, want only the replacement", loaded)
			}
		})
	}
}

func TestStore_EmptyLoad(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			loaded, err := store.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(loaded) != 0 {
				t.Errorf("fresh store must be empty, got %+v", loaded)
			}
		})
	}
}

func TestSQLiteStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := store.Save(sampleItems()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	store.Close()

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, sampleItems()) {
		t.Errorf("Load after reopen = %+v", loaded)
	}
}
