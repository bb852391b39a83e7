// Package export serializes a schedule into interchange formats: an
// iCalendar document, a JSON snapshot, and a Google Calendar event URL.
// Writers are deterministic so the same schedule always produces the
// same bytes.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/easycal/easycal/internal/datetime"
	"github.com/easycal/easycal/internal/planner"
)

const icsProdID = "-//EasyCal//EasyCal CLI//EN"

// icsTimeLayout is the compact UTC form required inside VEVENT blocks.
const icsTimeLayout = "20060102T150405Z"

// ICS renders the items as an iCalendar document. Lines are joined with
// CRLF per RFC 5545. Items whose start time cannot be parsed are left
// out of the document rather than failing the whole export.
func ICS(items []planner.ScheduleItem, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + icsProdID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}

	stamp := now.UTC().Format(icsTimeLayout)
	for _, item := range items {
		start, ok := datetime.ParseDate(item.Start)
		if !ok {
			continue
		}
		end, ok := datetime.ParseDate(item.End)
		if !ok {
			end = start.Add(time.Hour)
		}

		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+item.ID+"@easycal",
			"DTSTAMP:"+stamp,
		)
		if item.AllDay {
			lines = append(lines,
				"DTSTART;VALUE=DATE:"+start.UTC().Format("20060102"),
				"DTEND;VALUE=DATE:"+start.UTC().AddDate(0, 0, 1).Format("20060102"),
			)
		} else {
			lines = append(lines,
				"DTSTART:"+start.UTC().Format(icsTimeLayout),
				"DTEND:"+end.UTC().Format(icsTimeLayout),
			)
		}
		lines = append(lines, "SUMMARY:"+escapeText(item.Title))
		if item.Description != "" {
			lines = append(lines, "DESCRIPTION:"+escapeText(item.Description))
		}
		if item.Location != "" {
			lines = append(lines, "LOCATION:"+escapeText(item.Location))
		}
		if item.ReminderMinutes > 0 {
			lines = append(lines,
				"BEGIN:VALARM",
				fmt.Sprintf("TRIGGER:-PT%dM", item.ReminderMinutes),
				"ACTION:DISPLAY",
				"DESCRIPTION:"+escapeText(item.Title),
				"END:VALARM",
			)
		}
		lines = append(lines, "END:VEVENT")
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

// escapeText protects text property values. Backslash goes first so the
// escapes it introduces are not escaped again.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
