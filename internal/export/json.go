package export

import (
	"encoding/json"

	"github.com/easycal/easycal/internal/planner"
)

// JSON renders the items as an indented JSON array, the same shape the
// planner exchanges with the model.
func JSON(items []planner.ScheduleItem) ([]byte, error) {
	if items == nil {
		items = []planner.ScheduleItem{}
	}
	return json.MarshalIndent(items, "", "  ")
}
