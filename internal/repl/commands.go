package repl

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/easycal/easycal/internal/export"
	"github.com/easycal/easycal/internal/planner"
)

func (r *REPL) handleCommand(command, args string) error {
	switch command {
	case "/help", "/h":
		fmt.Print(r.formatter.FormatHelp())
		return nil

	case "/clear", "/c":
		r.dispatch(planner.ResetConversation{})
		r.displaySystem("Conversation cleared.")
		return nil

	case "/list", "/l":
		r.displaySchedule()
		return nil

	case "/add", "/a":
		return r.handleAdd(args)

	case "/select":
		return r.handleSelect(args)

	case "/edit", "/e":
		return r.handleEdit(args)

	case "/remove", "/rm":
		return r.handleRemove(args)

	case "/undo", "/u":
		return r.handleUndo()

	case "/attach":
		return r.handleAttach(args)

	case "/export":
		return r.handleExport(args)

	case "/gcal":
		return r.handleGcal(args)

	case "/import":
		return r.handleImport(args)

	case "/quit", "/exit", "/q":
		fmt.Println("\nGoodbye!")
		return nil

	default:
		return fmt.Errorf("unknown command: %s (type /help for available commands)", command)
	}
}

// itemAt resolves a 1-based list position to the schedule item.
func (r *REPL) itemAt(arg string) (planner.ScheduleItem, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return planner.ScheduleItem{}, fmt.Errorf("expected an item number, got %q", arg)
	}
	if n < 1 || n > len(r.state.Schedule) {
		return planner.ScheduleItem{}, fmt.Errorf("item %d does not exist (schedule has %d)", n, len(r.state.Schedule))
	}
	return r.state.Schedule[n-1], nil
}

func (r *REPL) handleAdd(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /add <title>")
	}

	before := len(r.state.Schedule)
	r.dispatch(planner.AddScheduleItem{Item: planner.NewDraftItem(args, time.Now())})
	if len(r.state.Schedule) == before {
		return fmt.Errorf("the item was rejected")
	}

	r.displaySystem(fmt.Sprintf("Added %q starting now. Use /edit %d start <time> to move it.", args, len(r.state.Schedule)))
	return nil
}

func (r *REPL) handleSelect(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /select <n>")
	}
	item, err := r.itemAt(args)
	if err != nil {
		return err
	}

	r.dispatch(planner.SelectItem{ID: item.ID})
	fmt.Println()
	fmt.Println(r.formatter.FormatItem(item))
	fmt.Println()
	return nil
}

func (r *REPL) handleEdit(args string) error {
	parts := strings.SplitN(args, " ", 3)
	if len(parts) < 3 {
		return fmt.Errorf("usage: /edit <n> <field> <value>")
	}

	item, err := r.itemAt(parts[0])
	if err != nil {
		return err
	}

	field, value := strings.ToLower(parts[1]), strings.TrimSpace(parts[2])
	switch field {
	case "title":
		item.Title = value
	case "desc", "description":
		item.Description = value
	case "location", "where":
		item.Location = value
	case "start":
		item.Start = value
	case "end":
		item.End = value
	case "reminder":
		minutes, err := strconv.Atoi(value)
		if err != nil || minutes < 0 {
			return fmt.Errorf("reminder must be a non-negative number of minutes")
		}
		item.ReminderMinutes = minutes
	case "allday":
		item.AllDay = value == "on" || value == "true" || value == "yes"
	default:
		return fmt.Errorf("unknown field %q (title, desc, location, start, end, reminder, allday)", field)
	}

	before := &r.state.Schedule[0]
	r.dispatch(planner.UpdateScheduleItem{Item: item})
	if len(r.state.Schedule) > 0 && &r.state.Schedule[0] == before {
		return fmt.Errorf("edit rejected: the new start time is in the past")
	}

	r.displaySystem("Item updated.")
	return nil
}

func (r *REPL) handleRemove(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /remove <n>")
	}
	item, err := r.itemAt(args)
	if err != nil {
		return err
	}

	r.dispatch(planner.RemoveScheduleItem{ID: item.ID})
	r.displaySystem(fmt.Sprintf("Removed %q.", item.Title))
	return nil
}

func (r *REPL) handleUndo() error {
	if r.undoSchedule == nil || time.Now().After(r.undoDeadline) {
		return fmt.Errorf("nothing to undo (proposals stay revertible for 10 seconds)")
	}

	r.dispatch(planner.SetSchedule{Items: r.undoSchedule})
	r.undoSchedule = nil
	r.displaySystem("Reverted the last proposal.")
	r.displaySchedule()
	return nil
}

func (r *REPL) handleAttach(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /attach <path>")
	}

	info, err := os.Stat(args)
	if err != nil {
		return fmt.Errorf("cannot attach %s: %w", args, err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot attach a directory")
	}

	mimeType := mime.TypeByExtension(filepath.Ext(args))
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = mimeType[:idx]
	}

	r.pending = append(r.pending, planner.Attachment{
		ID:       uuid.NewString(),
		Name:     filepath.Base(args),
		MIMEType: mimeType,
		Size:     info.Size(),
		Path:     args,
	})
	r.displaySystem(fmt.Sprintf("Attached %s (%d bytes). It will go with your next message.", filepath.Base(args), info.Size()))
	return nil
}

func (r *REPL) handleExport(args string) error {
	parts := strings.Fields(args)
	if len(parts) == 0 {
		return fmt.Errorf("usage: /export <ics|json> [path]")
	}
	if len(r.state.Schedule) == 0 {
		return fmt.Errorf("the schedule is empty")
	}

	var (
		data []byte
		path string
	)
	switch strings.ToLower(parts[0]) {
	case "ics":
		data = []byte(export.ICS(r.state.Schedule, time.Now()))
		path = "schedule.ics"
	case "json":
		encoded, err := export.JSON(r.state.Schedule)
		if err != nil {
			return fmt.Errorf("failed to encode schedule: %w", err)
		}
		data = encoded
		path = "schedule.json"
	default:
		return fmt.Errorf("unknown format %q (available: ics, json)", parts[0])
	}

	if len(parts) > 1 {
		path = parts[1]
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	r.displaySystem(fmt.Sprintf("Exported %d item(s) to %s.", len(r.state.Schedule), path))
	return nil
}

func (r *REPL) handleGcal(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /gcal <n>")
	}
	item, err := r.itemAt(args)
	if err != nil {
		return err
	}

	link, err := export.GoogleCalendarURL(item)
	if err != nil {
		return err
	}

	r.displayInfo("Open this link to add the event:\n" + link)
	return nil
}

func (r *REPL) handleImport(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /import <path>")
	}

	f, err := os.Open(args)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", args, err)
	}
	defer f.Close()

	items, err := export.ReadICS(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args, err)
	}
	if len(items) == 0 {
		return fmt.Errorf("%s contains no events", args)
	}

	before := len(r.state.Schedule)
	r.dispatch(planner.AddScheduleItems{Items: items})
	added := len(r.state.Schedule) - before

	note := fmt.Sprintf("Imported %d of %d event(s).", added, len(items))
	if added < len(items) {
		note += " The rest were in the past."
	}
	r.displaySystem(note)
	return nil
}
