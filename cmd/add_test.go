package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/josephgoksu/tasktrack/models"
	"github.com/josephgoksu/tasktrack/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommand(t *testing.T) {
	dataFile := setupCLI(t)

	out, _, err := executeCommand(t, dataFile, "add", "Buy", "milk", "-d", "  two litres ", "--due", "2030-03-01")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Added")
	assert.Contains(t, out, "Buy milk")

	tasks := loadTasks(t, dataFile)
	require.Len(t, tasks, 1)
	got := tasks[0]
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "two litres", got.Description)
	assert.Equal(t, models.StatusTodo, got.Status)
	require.NotNil(t, got.DueDate)
	want := time.Date(2030, 3, 1, 0, 0, 0, 0, time.Local)
	assert.True(t, want.Equal(*got.DueDate), "due %v", got.DueDate)
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
}

func TestAddCommand_QuietPrintsID(t *testing.T) {
	dataFile := setupCLI(t)

	out, _, err := executeCommand(t, dataFile, "add", "Quiet task", "--quiet")
	require.NoError(t, err)

	tasks := loadTasks(t, dataFile)
	require.Len(t, tasks, 1)
	assert.Equal(t, tasks[0].ID+"\n", out)
}

func TestAddCommand_JSON(t *testing.T) {
	dataFile := setupCLI(t)

	out, _, err := executeCommand(t, dataFile, "add", "JSON task", "--json")
	require.NoError(t, err)

	res := decodeResult[models.Task](t, out)
	assert.True(t, res.Success)
	assert.Equal(t, "JSON task", res.Data.Title)
	assert.Equal(t, models.StatusTodo, res.Data.Status)
	assert.NotEmpty(t, res.Data.ID)
}

func TestAddCommand_BlankTitle(t *testing.T) {
	dataFile := setupCLI(t)

	_, _, err := executeCommand(t, dataFile, "add", "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &types.TaskError{Code: types.ErrInvalidTitle}))
	assert.Empty(t, loadTasks(t, dataFile))
}

func TestAddCommand_BlankTitleJSON(t *testing.T) {
	dataFile := setupCLI(t)

	out, _, err := executeCommand(t, dataFile, "add", " ", "--json")
	require.Error(t, err)

	var reported *reportedError
	assert.ErrorAs(t, err, &reported)
	res := decodeResult[models.Task](t, out)
	assert.False(t, res.Success)
	assert.Equal(t, types.ErrInvalidTitle, res.Code)
}

func TestAddCommand_InvalidDueDate(t *testing.T) {
	dataFile := setupCLI(t)

	_, _, err := executeCommand(t, dataFile, "add", "Task", "--due", "next week")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}
