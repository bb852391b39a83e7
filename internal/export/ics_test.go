package export

import (
	"strings"
	"testing"
	"time"

	"github.com/easycal/easycal/internal/planner"
)

var exportNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func TestICS_Envelope(t *testing.T) {
	doc := ICS(nil, exportNow)

	if !strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n") {
		t.Error("document must open with BEGIN:VCALENDAR")
	}
	if !strings.HasSuffix(doc, "END:VCALENDAR\r\n") {
		t.Error("document must close with END:VCALENDAR")
	}
	for _, want := range []string{"VERSION:2.0", "PRODID:" + icsProdID, "CALSCALE:GREGORIAN"} {
		if !strings.Contains(doc, want+"\r\n") {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(strings.ReplaceAll(doc, "\r\n", ""), "\n") {
		t.Error("all line breaks must be CRLF")
	}
}

func TestICS_EventTimes(t *testing.T) {
	items := []planner.ScheduleItem{{
		ID:    "abc",
		Title: "Standup",
		Start: "2025-09-25T09:00:00+09:00",
		End:   "2025-09-25T09:30:00+09:00",
	}}

	doc := ICS(items, exportNow)

	if !strings.Contains(doc, "UID:abc@easycal\r\n") {
		t.Error("missing UID line")
	}
	if !strings.Contains(doc, "DTSTAMP:20250601T100000Z\r\n") {
		t.Error("DTSTAMP must be the compact UTC form of now")
	}
	if !strings.Contains(doc, "DTSTART:20250925T000000Z\r\n") {
		t.Error("DTSTART must be converted to UTC")
	}
	if !strings.Contains(doc, "DTEND:20250925T003000Z\r\n") {
		t.Error("DTEND must be converted to UTC")
	}
}

func TestICS_MissingEndDefaultsToOneHour(t *testing.T) {
	items := []planner.ScheduleItem{{
		ID:    "abc",
		Title: "Lunch",
		Start: "2025-09-25T12:00:00Z",
	}}

	doc := ICS(items, exportNow)
	if !strings.Contains(doc, "DTEND:20250925T130000Z\r\n") {
		t.Errorf("missing end must default to start plus one hour:\n%s", doc)
	}
}

func TestICS_TextEscaping(t *testing.T) {
	items := []planner.ScheduleItem{{
		ID:          "abc",
		Title:       `Team; Sync, Q3 \ review`,
		Description: "line one\nline two",
		Location:    "Cafe, 2F",
		Start:       "2025-09-25T12:00:00Z",
	}}

	doc := ICS(items, exportNow)

	if !strings.Contains(doc, `SUMMARY:Team\; Sync\, Q3 \\ review`+"\r\n") {
		t.Errorf("summary escaping wrong:\n%s", doc)
	}
	if !strings.Contains(doc, `DESCRIPTION:line one\nline two`+"\r\n") {
		t.Errorf("newline escaping wrong:\n%s", doc)
	}
	if !strings.Contains(doc, `LOCATION:Cafe\, 2F`+"\r\n") {
		t.Errorf("location escaping wrong:\n%s", doc)
	}
}

func TestICS_AllDay(t *testing.T) {
	items := []planner.ScheduleItem{{
		ID:     "abc",
		Title:  "Holiday",
		Start:  "2025-12-25T00:00:00Z",
		AllDay: true,
	}}

	doc := ICS(items, exportNow)
	if !strings.Contains(doc, "DTSTART;VALUE=DATE:20251225\r\n") {
		t.Errorf("all-day start must be DATE-valued:\n%s", doc)
	}
	if !strings.Contains(doc, "DTEND;VALUE=DATE:20251226\r\n") {
		t.Errorf("all-day end must be the next day:\n%s", doc)
	}
}

func TestICS_Reminder(t *testing.T) {
	items := []planner.ScheduleItem{{
		ID:              "abc",
		Title:           "Dentist",
		Start:           "2025-09-25T12:00:00Z",
		ReminderMinutes: 30,
	}}

	doc := ICS(items, exportNow)
	if !strings.Contains(doc, "BEGIN:VALARM\r\nTRIGGER:-PT30M\r\n") {
		t.Errorf("reminder must become a display alarm:\n%s", doc)
	}
}

func TestICS_SkipsUnparseableStart(t *testing.T) {
	items := []planner.ScheduleItem{
		{ID: "bad", Title: "Broken", Start: "next tuesday"},
		{ID: "good", Title: "Kept", Start: "2025-09-25T12:00:00Z"},
	}

	doc := ICS(items, exportNow)
	if strings.Contains(doc, "Broken") {
		t.Error("item with unparseable start must be left out")
	}
	if !strings.Contains(doc, "SUMMARY:Kept\r\n") {
		t.Error("valid item must survive")
	}
}

func TestReadICS_Roundtrip(t *testing.T) {
	items := []planner.ScheduleItem{{
		ID:              "evt-1",
		Title:           "Standup",
		Description:     "Daily sync",
		Location:        "Room 4",
		Start:           "2025-09-25T09:00:00Z",
		End:             "2025-09-25T09:30:00Z",
		ReminderMinutes: 15,
	}}

	parsed, err := ReadICS(strings.NewReader(ICS(items, exportNow)))
	if err != nil {
		t.Fatalf("ReadICS: %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("parsed %d events, want 1", len(parsed))
	}

	got := parsed[0]
	if got.ID != "evt-1" {
		t.Errorf("id = %q", got.ID)
	}
	if got.Title != "Standup" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Start != "2025-09-25T09:00:00Z" {
		t.Errorf("start = %q", got.Start)
	}
	if got.End != "2025-09-25T09:30:00Z" {
		t.Errorf("end = %q", got.End)
	}
	if got.ReminderMinutes != 15 {
		t.Errorf("reminder = %d", got.ReminderMinutes)
	}
}

func TestReadICS_Invalid(t *testing.T) {
	if _, err := ReadICS(strings.NewReader("not a calendar")); err == nil {
		t.Error("garbage input must fail")
	}
}
