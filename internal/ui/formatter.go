package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/easycal/easycal/internal/datetime"
	"github.com/easycal/easycal/internal/planner"
)

var (
	UserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true)

	AssistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")) // Soft green

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SystemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Medium gray
			Italic(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("215")). // Orange
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)
)

type Formatter struct {
	colored  bool
	provider string
	zone     *time.Location
}

func NewFormatter(colored bool, provider string, zone *time.Location) *Formatter {
	if zone == nil {
		zone = time.UTC
	}
	return &Formatter{
		colored:  colored,
		provider: formatProviderName(provider),
		zone:     zone,
	}
}

// formatProviderName returns a display-friendly provider name.
func formatProviderName(provider string) string {
	switch provider {
	case "openrouter":
		return "OpenRouter"
	case "deepseek":
		return "DeepSeek"
	case "":
		return "AI"
	default:
		return strings.ToUpper(provider[:1]) + provider[1:]
	}
}

func (f *Formatter) FormatUserMessage(msg string) string {
	prefix := "You: "
	if f.colored {
		prefix = UserStyle.Render("You: ")
	}
	return prefix + msg
}

func (f *Formatter) FormatAssistantMessage(msg string) string {
	prefix := f.provider + ": "
	if f.colored {
		prefix = AssistantStyle.Render(f.provider + ": ")
	}
	return prefix + msg
}

func (f *Formatter) FormatError(err error) string {
	prefix := "Error: "
	if f.colored {
		prefix = ErrorStyle.Render("Error: ")
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	if f.colored {
		return InfoStyle.Render(info)
	}
	return info
}

func (f *Formatter) FormatSystem(msg string) string {
	if f.colored {
		return SystemStyle.Render(msg)
	}
	return msg
}

func (f *Formatter) FormatStatus(msg string) string {
	if f.colored {
		return StatusStyle.Render(msg)
	}
	return msg
}

// FormatSchedule renders the schedule as a numbered list in the planner
// timezone. The selected item gets a marker so /edit and /remove targets
// are obvious.
func (f *Formatter) FormatSchedule(items []planner.ScheduleItem, selectedID string) string {
	if len(items) == 0 {
		return f.FormatInfo("The schedule is empty.")
	}

	var b strings.Builder
	for i, item := range items {
		marker := "  "
		if item.ID == selectedID {
			marker = "> "
		}

		line := fmt.Sprintf("%s%2d. %-22s %s", marker, i+1, f.formatWhen(item), item.Title)
		if item.Location != "" {
			line += " @ " + item.Location
		}
		if item.ReminderMinutes > 0 {
			line += fmt.Sprintf(" (reminds %dm before)", item.ReminderMinutes)
		}

		if f.colored && item.ID == selectedID {
			line = SelectedStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatItem renders one item in full, for /select output.
func (f *Formatter) FormatItem(item planner.ScheduleItem) string {
	lines := []string{
		"Title:    " + item.Title,
		"When:     " + f.formatWhen(item),
	}
	if item.Description != "" {
		lines = append(lines, "Details:  "+item.Description)
	}
	if item.Location != "" {
		lines = append(lines, "Where:    "+item.Location)
	}
	if item.ReminderMinutes > 0 {
		lines = append(lines, fmt.Sprintf("Reminder: %d minutes before", item.ReminderMinutes))
	}
	out := strings.Join(lines, "\n")
	if f.colored {
		return DimStyle.Render(out)
	}
	return out
}

func (f *Formatter) formatWhen(item planner.ScheduleItem) string {
	start, ok := datetime.ParseDate(item.Start)
	if !ok {
		return item.Start
	}
	start = start.In(f.zone)

	if item.AllDay {
		return start.Format("Jan 02 (Mon)") + " all day"
	}

	out := start.Format("Jan 02 (Mon) 15:04")
	if end, ok := datetime.ParseDate(item.End); ok {
		out += "-" + end.In(f.zone).Format("15:04")
	}
	return out
}

func (f *Formatter) FormatWelcome(model string) string {
	if f.colored {
		titleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

		subtitleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

		labelStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

		valueStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

		borderStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))

		topBorder := borderStyle.Render("╭─────────────────────────────────────────╮")
		bottomBorder := borderStyle.Render("╰─────────────────────────────────────────╯")
		sideBorder := borderStyle.Render("│")

		title := titleStyle.Render(fmt.Sprintf("EasyCal • %s", f.provider))
		modelLine := labelStyle.Render("Model: ") + valueStyle.Render(model)
		zoneLine := labelStyle.Render("Zone:  ") + valueStyle.Render(f.zone.String())
		helpLine := subtitleStyle.Render("Type /help for commands")

		padLine := func(content string, width int) string {
			contentLen := lipgloss.Width(content)
			if contentLen < width {
				return content + strings.Repeat(" ", width-contentLen)
			}
			return content
		}

		boxWidth := 39
		lines := []string{
			"",
			topBorder,
			sideBorder + " " + padLine(title, boxWidth) + " " + sideBorder,
			sideBorder + " " + padLine(modelLine, boxWidth) + " " + sideBorder,
			sideBorder + " " + padLine(zoneLine, boxWidth) + " " + sideBorder,
			sideBorder + " " + padLine("", boxWidth) + " " + sideBorder,
			sideBorder + " " + padLine(helpLine, boxWidth) + " " + sideBorder,
			bottomBorder,
			"",
		}

		return strings.Join(lines, "\n")
	}

	lines := []string{
		"",
		fmt.Sprintf("EasyCal • %s", f.provider),
		fmt.Sprintf("Model: %s", model),
		fmt.Sprintf("Zone:  %s", f.zone.String()),
		"Type /help for commands",
		"",
	}

	return strings.Join(lines, "\n")
}

func (f *Formatter) FormatHelp() string {
	if f.colored {
		cmdStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

		descStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

		sectionStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")).
			Bold(true)

		dimStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

		formatCmd := func(cmd, desc string) string {
			return "  " + cmdStyle.Render(fmt.Sprintf("%-20s", cmd)) + " " + descStyle.Render(desc)
		}

		lines := []string{
			"",
			HeaderStyle.Render("Commands"),
			"",
			sectionStyle.Render("Planning"),
			formatCmd("(plain text)", "Describe your plans; the model proposes items"),
			formatCmd("/attach <path>", "Attach a file to the next message"),
			formatCmd("/undo", "Revert the last model proposal"),
			"",
			sectionStyle.Render("Schedule"),
			formatCmd("/list", "Show the schedule"),
			formatCmd("/add <title>", "Add a draft item starting now"),
			formatCmd("/select <n>", "Select item n"),
			formatCmd("/edit <n> <field> <value>", "Edit title, start, end, location or reminder"),
			formatCmd("/remove <n>", "Remove item n"),
			"",
			sectionStyle.Render("Export"),
			formatCmd("/export ics [path]", "Write the schedule as iCalendar"),
			formatCmd("/export json [path]", "Write the schedule as JSON"),
			formatCmd("/gcal <n>", "Google Calendar link for item n"),
			formatCmd("/import <path>", "Merge events from an .ics file"),
			"",
			sectionStyle.Render("General"),
			formatCmd("/clear", "Clear the conversation"),
			formatCmd("/help", "Show this help"),
			formatCmd("/quit", "Exit"),
			"",
			HeaderStyle.Render("Tips"),
			dimStyle.Render("  Ctrl+C cancels a request in flight"),
			dimStyle.Render("  /undo works for 10 seconds after a proposal lands"),
			"",
		}

		return strings.Join(lines, "\n")
	}

	lines := []string{
		"",
		"Commands:",
		"  (plain text)              - Describe plans; the model proposes items",
		"  /attach <path>            - Attach a file to the next message",
		"  /undo                     - Revert the last model proposal",
		"  /list                     - Show the schedule",
		"  /add <title>              - Add a draft item starting now",
		"  /select <n>               - Select item n",
		"  /edit <n> <field> <value> - Edit an item",
		"  /remove <n>               - Remove item n",
		"  /export ics|json [path]   - Export the schedule",
		"  /gcal <n>                 - Google Calendar link",
		"  /import <path>            - Merge an .ics file",
		"  /clear                    - Clear conversation",
		"  /help                     - Show help",
		"  /quit                     - Exit",
		"",
	}

	return strings.Join(lines, "\n")
}

// FormatPrompt returns a styled input prompt
func (f *Formatter) FormatPrompt() string {
	if f.colored {
		promptStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))
		arrowStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true)
		return promptStyle.Render("plan") + arrowStyle.Render(" > ")
	}
	return "plan > "
}
