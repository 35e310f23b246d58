package task

import (
	"time"

	"github.com/josephgoksu/tasktrack/models"
)

// Stats aggregates the collection by status.
type Stats struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	// Overdue counts tasks due strictly before now that are not completed.
	Overdue int `json:"overdue"`
}

// CompletionRate returns the completed share in percent, or 0 for an empty collection.
func (s Stats) CompletionRate() int {
	if s.Total == 0 {
		return 0
	}
	return s.Completed * 100 / s.Total
}

// ComputeStats counts tasks by status relative to now.
func ComputeStats(tasks []models.Task, now time.Time) Stats {
	stats := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusTodo:
			stats.Todo++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusCompleted:
			stats.Completed++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
	}
	return stats
}
