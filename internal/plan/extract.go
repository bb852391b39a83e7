package plan

import (
	"encoding/json"
	"strings"

	"github.com/easycal/easycal/internal/planner"
)

// Plan is the structured reply the model is instructed to produce.
type Plan struct {
	Summary string                 `json:"summary"`
	Items   []planner.ScheduleItem `json:"items"`
}

// Extraction is the tagged result of the best-effort extractor: either a
// decoded plan or the raw text that could not be parsed. Callers branch on
// Parsed, never on errors.
type Extraction struct {
	Parsed bool
	Plan   Plan
	Raw    string
}

// ExtractPlan scans content for a single JSON object, tolerating
// surrounding prose and markdown fences, and decodes it into a Plan.
// Anything that does not decode comes back as Unparseable raw text.
func ExtractPlan(content string) Extraction {
	cleaned := stripMarkdownFences(content)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return Extraction{Raw: content}
	}

	var plan Plan
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &plan); err != nil {
		return Extraction{Raw: content}
	}

	return Extraction{Parsed: true, Plan: plan}
}

// stripMarkdownFences removes a wrapping ```json ... ``` block that some
// models emit despite the raw-JSON instruction.
func stripMarkdownFences(content string) string {
	out := strings.TrimSpace(content)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}
