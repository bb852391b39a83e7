// Package schedule persists the planner's schedule between sessions.
package schedule

import "github.com/easycal/easycal/internal/planner"

// Store is the persistence port for the schedule. Save replaces the
// whole snapshot; item ordering is preserved across Load.
type Store interface {
	Load() ([]planner.ScheduleItem, error)
	Save(items []planner.ScheduleItem) error
	Close() error
}
