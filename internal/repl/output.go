package repl

import (
	"fmt"
	"os"

	"github.com/easycal/easycal/internal/plan"
	"github.com/easycal/easycal/internal/ui"
)

func (r *REPL) displayWelcome() {
	fmt.Print(r.formatter.FormatWelcome(r.modelName()))
	if len(r.state.Messages) > 0 {
		fmt.Println(r.formatter.FormatAssistantMessage(r.state.Messages[0].Content))
		fmt.Println()
	}
}

func (r *REPL) modelName() string {
	switch r.config.Provider {
	case "deepseek":
		return r.config.DeepSeek.Model
	default:
		return r.config.OpenRouter.Model
	}
}

func (r *REPL) displayError(err error) {
	fmt.Println(r.formatter.FormatError(err))
	fmt.Println()
}

func (r *REPL) displayInfo(msg string) {
	fmt.Println(r.formatter.FormatInfo(msg))
	fmt.Println()
}

func (r *REPL) displaySystem(msg string) {
	fmt.Println(r.formatter.FormatSystem(msg))
	fmt.Println()
}

func (r *REPL) displayAssistant(msg string) {
	fmt.Println()
	fmt.Println(r.formatter.FormatAssistantMessage(ui.RenderMarkdown(msg)))
	fmt.Println()
	os.Stdout.Sync()
}

func (r *REPL) displaySchedule() {
	fmt.Println()
	fmt.Println(r.formatter.FormatSchedule(r.state.Schedule, r.state.SelectedItemID))
	fmt.Println()
}

// displayProposal shows the assistant summary plus what survived
// sanitization, and reminds about /undo when anything landed.
func (r *REPL) displayProposal(result *plan.Result, added, rejected int) {
	r.displayAssistant(result.Summary)

	if added > 0 {
		note := fmt.Sprintf("Added %d item(s) to the schedule.", added)
		if rejected > 0 {
			note += fmt.Sprintf(" %d item(s) were in the past and dropped.", rejected)
		}
		note += " /undo reverts within 10 seconds."
		r.displaySystem(note)
		r.displaySchedule()
		return
	}

	if rejected > 0 {
		r.displaySystem(fmt.Sprintf("All %d proposed item(s) were in the past; nothing was added.", rejected))
	}
}
