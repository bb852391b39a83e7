package planner

import (
	"time"

	"github.com/easycal/easycal/internal/datetime"
)

// DefaultReminderMinutes is applied to items that arrive without a
// reminder lead time.
const DefaultReminderMinutes = 10

// Sanitize normalizes a candidate batch against a tolerant reference
// instant and returns the accepted subset:
//
//  1. items without a Start skip normalization and are dropped by the
//     acceptance filter;
//  2. date-only starts whose local day already passed are bumped one year;
//  3. a missing reminder lead time defaults to DefaultReminderMinutes;
//  4. an item is kept when EITHER the instant-level or the day-level check
//     passes. Day granularity is deliberately looser: an all-day item dated
//     "today" has a midnight instant that is usually already past.
//
// Sanitizing an already sanitized batch is a no-op: bumped dates are no
// longer past relative to the same reference, so nothing changes twice.
func Sanitize(items []ScheduleItem, ref time.Time, loc *time.Location) []ScheduleItem {
	accepted := make([]ScheduleItem, 0, len(items))
	for _, item := range items {
		if item.Start == "" {
			continue
		}
		item.Start = datetime.BumpDateOnlyToNextYearIfPast(item.Start, ref, loc)
		if item.ReminderMinutes == 0 {
			item.ReminderMinutes = DefaultReminderMinutes
		}
		if datetime.IsFutureOrPresent(item.Start, ref) || datetime.IsSameOrAfterDay(item.Start, ref, loc) {
			accepted = append(accepted, item)
		}
	}
	return accepted
}
