package plan

import "testing"

func TestExtractPlan_PlainJSON(t *testing.T) {
	ex := ExtractPlan(`{"summary":"one meeting","items":[{"title":"standup","start":"2025-09-25T09:00:00+09:00"}]}`)

	if !ex.Parsed {
		t.Fatal("expected plan to parse")
	}
	if ex.Plan.Summary != "one meeting" {
		t.Errorf("summary = %q", ex.Plan.Summary)
	}
	if len(ex.Plan.Items) != 1 || ex.Plan.Items[0].Title != "standup" {
		t.Errorf("items = %v", ex.Plan.Items)
	}
}

func TestExtractPlan_SurroundingProse(t *testing.T) {
	content := "Sure! Here is your plan:\n" +
		`{"summary":"dentist","items":[{"title":"dentist","start":"2025-09-25T14:00:00Z"}]}` +
		"\nLet me know if you want changes."

	ex := ExtractPlan(content)
	if !ex.Parsed {
		t.Fatal("expected JSON block inside prose to parse")
	}
	if ex.Plan.Summary != "dentist" {
		t.Errorf("summary = %q", ex.Plan.Summary)
	}
}

func TestExtractPlan_MarkdownFences(t *testing.T) {
	content := "```json\n{\"summary\":\"fenced\",\"items\":[]}\n```"

	ex := ExtractPlan(content)
	if !ex.Parsed {
		t.Fatal("expected fenced JSON to parse")
	}
	if ex.Plan.Summary != "fenced" {
		t.Errorf("summary = %q", ex.Plan.Summary)
	}
}

func TestExtractPlan_Unparseable(t *testing.T) {
	cases := []string{
		"",
		"no json here at all",
		"{broken json",
		"{\"summary\": \"unclosed\"",
	}
	for _, c := range cases {
		ex := ExtractPlan(c)
		if ex.Parsed {
			t.Errorf("ExtractPlan(%q) should not parse", c)
		}
		if ex.Raw != c {
			t.Errorf("raw text must be preserved for %q", c)
		}
	}
}
