package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/easycal/easycal/internal/datetime"
	"github.com/easycal/easycal/internal/planner"
)

const (
	serverName    = "schedule"
	serverVersion = "1.0.0"
)

// Server is the MCP server exposing the schedule to other agents.
type Server struct {
	mcpServer *server.MCPServer
	store     Store
}

// NewServer creates a schedule MCP server backed by the given store.
func NewServer(store Store) *Server {
	s := &Server{
		store: store,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	// list_events
	s.mcpServer.AddTool(
		mcp.NewTool("list_events",
			mcp.WithDescription("List all schedule items in saved order"),
		),
		s.handleListEvents,
	)

	// upcoming_events
	s.mcpServer.AddTool(
		mcp.NewTool("upcoming_events",
			mcp.WithDescription("List schedule items starting within the next N hours (default 24)"),
			mcp.WithNumber("hours", mcp.Description("Look-ahead window in hours")),
		),
		s.handleUpcomingEvents,
	)

	// add_event
	s.mcpServer.AddTool(
		mcp.NewTool("add_event",
			mcp.WithDescription("Add a schedule item with a title and start time"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Event title")),
			mcp.WithString("start", mcp.Required(), mcp.Description("Start time in RFC3339 format (e.g. 2025-01-15T09:00:00Z)")),
			mcp.WithString("end", mcp.Description("End time in RFC3339 format")),
			mcp.WithString("description", mcp.Description("Optional description")),
			mcp.WithString("location", mcp.Description("Optional location")),
			mcp.WithNumber("reminder_minutes", mcp.Description("Minutes before start to remind (default 10)")),
		),
		s.handleAddEvent,
	)

	// update_event
	s.mcpServer.AddTool(
		mcp.NewTool("update_event",
			mcp.WithDescription("Update fields of an existing schedule item"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Event ID")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("start", mcp.Description("New start time in RFC3339 format")),
			mcp.WithString("end", mcp.Description("New end time in RFC3339 format")),
			mcp.WithString("description", mcp.Description("New description")),
			mcp.WithString("location", mcp.Description("New location")),
			mcp.WithNumber("reminder_minutes", mcp.Description("New reminder lead time in minutes")),
		),
		s.handleUpdateEvent,
	)

	// remove_event
	s.mcpServer.AddTool(
		mcp.NewTool("remove_event",
			mcp.WithDescription("Remove a schedule item permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Event ID")),
		),
		s.handleRemoveEvent,
	)
}

func (s *Server) handleListEvents(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.store.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load schedule: %v", err)), nil
	}

	output, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleUpcomingEvents(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hours := req.GetFloat("hours", 24)
	if hours <= 0 {
		return mcp.NewToolResultError("hours must be positive"), nil
	}

	items, err := s.store.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load schedule: %v", err)), nil
	}

	now := time.Now()
	horizon := now.Add(time.Duration(hours * float64(time.Hour)))

	upcoming := make([]planner.ScheduleItem, 0)
	for _, item := range items {
		start, ok := datetime.ParseDate(item.Start)
		if !ok {
			continue
		}
		if start.Before(now) || start.After(horizon) {
			continue
		}
		upcoming = append(upcoming, item)
	}

	output, _ := json.MarshalIndent(upcoming, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleAddEvent(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	start := req.GetString("start", "")

	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}
	if _, ok := datetime.ParseDate(start); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid start %q (use RFC3339, e.g. 2025-01-15T09:00:00Z)", start)), nil
	}

	item := planner.ScheduleItem{
		ID:              uuid.NewString(),
		Title:           title,
		Description:     req.GetString("description", ""),
		Location:        req.GetString("location", ""),
		Start:           start,
		End:             req.GetString("end", ""),
		ReminderMinutes: int(req.GetFloat("reminder_minutes", float64(planner.DefaultReminderMinutes))),
	}

	// Same acceptance rule as the planner: date-only bump, then keep only
	// future-or-present items against the tolerant reference.
	accepted := planner.Sanitize([]planner.ScheduleItem{item}, time.Now().Add(-planner.DefaultTolerance), time.Local)
	if len(accepted) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("start %q is in the past; only future events can be scheduled", start)), nil
	}
	item = accepted[0]

	items, err := s.store.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load schedule: %v", err)), nil
	}
	items = append(items, item)
	if err := s.store.Save(items); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save schedule: %v", err)), nil
	}

	output, _ := json.MarshalIndent(item, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleUpdateEvent(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	items, err := s.store.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load schedule: %v", err)), nil
	}

	idx := -1
	for i, item := range items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return mcp.NewToolResultError(fmt.Sprintf("event %s not found", id)), nil
	}

	item := items[idx]
	if v := req.GetString("title", ""); v != "" {
		item.Title = v
	}
	if v := req.GetString("description", ""); v != "" {
		item.Description = v
	}
	if v := req.GetString("location", ""); v != "" {
		item.Location = v
	}
	if v := req.GetString("start", ""); v != "" {
		if _, ok := datetime.ParseDate(v); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start %q", v)), nil
		}
		// Instant-level rule, matching the planner's update transition.
		if !datetime.IsFutureOrPresent(v, time.Now()) {
			return mcp.NewToolResultError(fmt.Sprintf("start %q is in the past", v)), nil
		}
		item.Start = v
	}
	if v := req.GetString("end", ""); v != "" {
		if _, ok := datetime.ParseDate(v); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid end %q", v)), nil
		}
		item.End = v
	}
	if v := req.GetFloat("reminder_minutes", -1); v >= 0 {
		item.ReminderMinutes = int(v)
	}

	items[idx] = item
	if err := s.store.Save(items); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save schedule: %v", err)), nil
	}

	output, _ := json.MarshalIndent(item, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleRemoveEvent(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	items, err := s.store.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load schedule: %v", err)), nil
	}

	kept := make([]planner.ScheduleItem, 0, len(items))
	removed := false
	for _, item := range items {
		if item.ID == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return mcp.NewToolResultError(fmt.Sprintf("event %s not found", id)), nil
	}

	if err := s.store.Save(kept); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save schedule: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("removed event %s", id)), nil
}
