package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/easycal/easycal/internal/log"
	"github.com/easycal/easycal/internal/planner"
)

// ReadICS parses an iCalendar payload into schedule items. Events that
// cannot be read are skipped so one bad VEVENT does not lose the rest
// of the calendar.
func ReadICS(r io.Reader) ([]planner.ScheduleItem, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	items := make([]planner.ScheduleItem, 0)
	for _, ve := range cal.Events() {
		item, err := readVEvent(ve)
		if err != nil {
			log.Error("skipping unreadable event", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func readVEvent(ve *ical.VEvent) (planner.ScheduleItem, error) {
	var item planner.ScheduleItem

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil && p.Value != "" {
		item.ID = strings.TrimSuffix(p.Value, "@easycal")
	} else {
		item.ID = uuid.NewString()
	}

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		item.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		item.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		item.Location = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return item, fmt.Errorf("event %s: %w", item.ID, err)
	}
	item.AllDay = isAllDay(ve)
	if item.AllDay {
		item.Start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()).Format(time.RFC3339)
	} else {
		item.Start = start.Format(time.RFC3339)
		if end, err := ve.GetEndAt(); err == nil {
			item.End = end.Format(time.RFC3339)
		}
	}

	item.ReminderMinutes = reminderMinutes(ve)
	return item, nil
}

// isAllDay detects DATE-valued starts, either by the VALUE=DATE parameter
// or by the absence of a time component in the raw value.
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// reminderMinutes reads the first display alarm's relative trigger.
// Zero means no alarm was found; the sanitizer supplies the default.
func reminderMinutes(ve *ical.VEvent) int {
	for _, alarm := range ve.Alarms() {
		p := alarm.GetProperty(ical.ComponentProperty("TRIGGER"))
		if p == nil {
			continue
		}
		v := strings.TrimSpace(p.Value)
		v = strings.TrimPrefix(v, "-PT")
		v = strings.TrimSuffix(v, "M")
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return minutes
		}
	}
	return 0
}
