package resolution

import "github.com/mmynk/todolist/internal/models"

// Merge applies patch p onto the stored item and returns the merged copy.
//
// Field policies:
//   - ID, CreatedAt: never changed
//   - Title, Description, DueDate, Status: replaced only when present in p
//   - Checked: always replaced with p.Checked
//
// The unconditional Checked overwrite means a client that omits "checked"
// un-checks the item. This matches the legacy update endpoint and is kept
// for compatibility until product decides otherwise.
func Merge(current models.TodoItem, p models.Patch) models.TodoItem {
	merged := *current.Clone()

	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	if p.DueDate != nil {
		d := *p.DueDate
		merged.DueDate = &d
	}
	if p.Status != nil {
		merged.Status = *p.Status
	}
	merged.Checked = p.Checked

	return merged
}
