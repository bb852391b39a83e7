package export

import (
	"net/url"
	"strings"
	"testing"

	"github.com/easycal/easycal/internal/planner"
)

func TestGoogleCalendarURL(t *testing.T) {
	link, err := GoogleCalendarURL(planner.ScheduleItem{
		ID:          "abc",
		Title:       "Team Sync",
		Description: "Weekly review",
		Location:    "Room 4",
		Start:       "2025-09-25T09:00:00+09:00",
		End:         "2025-09-25T10:00:00+09:00",
	})
	if err != nil {
		t.Fatalf("GoogleCalendarURL: %v", err)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("invalid URL %q: %v", link, err)
	}
	if !strings.HasPrefix(link, googleCalendarBase) {
		t.Errorf("link = %q", link)
	}

	q := parsed.Query()
	if q.Get("action") != "TEMPLATE" {
		t.Errorf("action = %q", q.Get("action"))
	}
	if q.Get("text") != "Team Sync" {
		t.Errorf("text = %q", q.Get("text"))
	}
	if q.Get("dates") != "20250925T000000Z/20250925T010000Z" {
		t.Errorf("dates = %q", q.Get("dates"))
	}
	if q.Get("details") != "Weekly review" {
		t.Errorf("details = %q", q.Get("details"))
	}
	if q.Get("location") != "Room 4" {
		t.Errorf("location = %q", q.Get("location"))
	}
}

func TestGoogleCalendarURL_DefaultEnd(t *testing.T) {
	link, err := GoogleCalendarURL(planner.ScheduleItem{
		Title: "Lunch",
		Start: "2025-09-25T12:00:00Z",
	})
	if err != nil {
		t.Fatalf("GoogleCalendarURL: %v", err)
	}

	q, _ := url.Parse(link)
	if q.Query().Get("dates") != "20250925T120000Z/20250925T130000Z" {
		t.Errorf("dates = %q", q.Query().Get("dates"))
	}
}

func TestGoogleCalendarURL_BadStart(t *testing.T) {
	if _, err := GoogleCalendarURL(planner.ScheduleItem{Title: "x", Start: "soon"}); err == nil {
		t.Error("unparseable start must fail")
	}
}
