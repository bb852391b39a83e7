package export

import (
	"fmt"
	"net/url"
	"time"

	"github.com/easycal/easycal/internal/datetime"
	"github.com/easycal/easycal/internal/planner"
)

const googleCalendarBase = "https://calendar.google.com/calendar/render"

// GoogleCalendarURL builds a prefilled event-creation link for one item.
// A missing or unparseable end time defaults to one hour after start.
func GoogleCalendarURL(item planner.ScheduleItem) (string, error) {
	start, ok := datetime.ParseDate(item.Start)
	if !ok {
		return "", fmt.Errorf("item %q has no parseable start time", item.Title)
	}
	end, ok := datetime.ParseDate(item.End)
	if !ok {
		end = start.Add(time.Hour)
	}

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", item.Title)
	q.Set("dates", start.UTC().Format(icsTimeLayout)+"/"+end.UTC().Format(icsTimeLayout))
	if item.Description != "" {
		q.Set("details", item.Description)
	}
	if item.Location != "" {
		q.Set("location", item.Location)
	}
	return googleCalendarBase + "?" + q.Encode(), nil
}
