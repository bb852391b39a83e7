// Command mcp-schedule provides an MCP server for schedule management.
//
// This server exposes the planner's saved schedule so other agents can
// list, add, update, and remove calendar items.
//
// Usage:
//
//	./mcp-schedule          # Start MCP server (stdio)
//	./mcp-schedule --help   # Show help
//
// Environment:
//
//	EASYCAL_DB_PATH  Path to SQLite database (default: ~/.easycal/schedule.db)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/easycal/easycal/internal/schedule"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	dbPath := os.Getenv("EASYCAL_DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get home directory: %v\n", err)
			os.Exit(1)
		}
		dbPath = filepath.Join(home, ".easycal", "schedule.db")
	}

	store, err := schedule.NewSQLiteStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	s := schedule.NewServer(store)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Schedule Server - Calendar schedule access via MCP protocol

USAGE:
    mcp-schedule          Start MCP server (communicates via stdio)
    mcp-schedule --help   Show this help

ENVIRONMENT:
    EASYCAL_DB_PATH  Path to SQLite database file
                     Default: ~/.easycal/schedule.db

TOOLS:
    list_events      List all schedule items
    upcoming_events  List items starting within the next N hours
    add_event        Add an item (title, start, end, description, location)
    update_event     Update an item's fields
    remove_event     Remove an item permanently`)
}
