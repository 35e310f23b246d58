package task

import (
	"testing"

	"github.com/josephgoksu/tasktrack/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	now := date(2024, 6, 15)
	past := date(2024, 6, 1)
	future := date(2024, 7, 1)

	tasks := []models.Task{
		{ID: "1", Status: models.StatusTodo, DueDate: &past},
		{ID: "2", Status: models.StatusTodo, DueDate: &future},
		{ID: "3", Status: models.StatusInProgress},
		{ID: "4", Status: models.StatusCompleted, DueDate: &past},
		{ID: "5", Status: models.StatusTodo, DueDate: &now},
	}

	stats := ComputeStats(tasks, now)
	assert.Equal(t, Stats{Total: 5, Todo: 3, InProgress: 1, Completed: 1, Overdue: 1}, stats)
	assert.Equal(t, 20, stats.CompletionRate())
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, date(2024, 1, 1))
	assert.Equal(t, Stats{}, stats)
	assert.Zero(t, stats.CompletionRate())
}
