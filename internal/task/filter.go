package task

import (
	"time"

	"github.com/josephgoksu/tasktrack/models"
)

// Filter narrows GetAllTasks. Nil fields are ignored; set fields are
// combined with AND.
type Filter struct {
	Status *models.TaskStatus
	// HasDescription keeps tasks that have (true) or lack (false) a non-blank description.
	HasDescription *bool
	// DueBefore drops tasks due strictly after the bound.
	DueBefore *time.Time
	// DueAfter drops tasks due strictly before the bound.
	DueAfter *time.Time
}

// IsEmpty reports whether the filter has no criteria.
func (f *Filter) IsEmpty() bool {
	return f == nil || (f.Status == nil && f.HasDescription == nil && f.DueBefore == nil && f.DueAfter == nil)
}

// Matches reports whether t satisfies every criterion. Tasks without a due
// date are never excluded by the date bounds.
func (f *Filter) Matches(t models.Task) bool {
	if f == nil {
		return true
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.HasDescription != nil && t.HasDescription() != *f.HasDescription {
		return false
	}
	if t.DueDate != nil {
		if f.DueBefore != nil && t.DueDate.After(*f.DueBefore) {
			return false
		}
		if f.DueAfter != nil && t.DueDate.Before(*f.DueAfter) {
			return false
		}
	}
	return true
}

// ApplyFilters returns the tasks matching f. The input slice is not modified.
func ApplyFilters(tasks []models.Task, f *Filter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}
