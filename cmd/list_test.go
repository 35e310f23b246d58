package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/tasktrack/models"
	"github.com/josephgoksu/tasktrack/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listIDs(t *testing.T, dataFile string, args ...string) []string {
	t.Helper()
	out, _, err := executeCommand(t, dataFile, append([]string{"list", "--json"}, args...)...)
	require.NoError(t, err)

	res := decodeResult[[]models.Task](t, out)
	require.True(t, res.Success)
	ids := make([]string, 0, len(res.Data))
	for _, task := range res.Data {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestListCommand_NewestFirst(t *testing.T) {
	dataFile := setupCLI(t)
	seedTasks(t, dataFile, fixtureTasks()...)

	assert.Equal(t, []string{"bbb333", "bbb222", "aaa111"}, listIDs(t, dataFile))
}

func TestListCommand_Filters(t *testing.T) {
	dataFile := setupCLI(t)
	seedTasks(t, dataFile, fixtureTasks()...)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "status", args: []string{"--status", "in-progress"}, want: []string{"bbb222"}},
		{name: "status alias", args: []string{"-s", "done"}, want: []string{"bbb333"}},
		{name: "with description", args: []string{"--has-description"}, want: []string{"aaa111"}},
		{name: "without description", args: []string{"--has-description=false"}, want: []string{"bbb333", "bbb222"}},
		{name: "due before keeps undated", args: []string{"--due-before", "2024-06-01"}, want: []string{"bbb333", "aaa111"}},
		{name: "due after keeps undated", args: []string{"--due-after", "2024-06-01"}, want: []string{"bbb333", "bbb222"}},
		{name: "combined", args: []string{"--status", "todo", "--due-before", "2024-06-01"}, want: []string{"aaa111"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listIDs(t, dataFile, tt.args...))
		})
	}
}

func TestListCommand_DueBeforeCoversWholeDay(t *testing.T) {
	dataFile := setupCLI(t)
	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	afternoon := time.Date(2024, 7, 1, 15, 0, 0, 0, time.Local)
	nextDay := time.Date(2024, 7, 2, 8, 0, 0, 0, time.Local)
	seedTasks(t, dataFile,
		models.Task{ID: "ccc111", Title: "Call plumber", Status: models.StatusTodo, CreatedAt: created, UpdatedAt: created, DueDate: &afternoon},
		models.Task{ID: "ccc222", Title: "Pay rent", Status: models.StatusTodo, CreatedAt: created.Add(time.Hour), UpdatedAt: created.Add(time.Hour), DueDate: &nextDay},
	)

	assert.Equal(t, []string{"ccc111"}, listIDs(t, dataFile, "--due-before", "2024-07-01"))
	assert.Equal(t, []string{"ccc222", "ccc111"}, listIDs(t, dataFile, "--due-after", "2024-07-01"))
	assert.Empty(t, listIDs(t, dataFile, "--due-before", "2024-07-01 14:00"))
}

func TestListCommand_Human(t *testing.T) {
	dataFile := setupCLI(t)
	seedTasks(t, dataFile, fixtureTasks()...)

	out, _, err := executeCommand(t, dataFile, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Tasks: 3")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Water plants")
	assert.Contains(t, out, "File taxes")
	assert.NotContains(t, out, "match the filter")

	out, _, err = executeCommand(t, dataFile, "list", "--status", "todo")
	require.NoError(t, err)
	assert.Contains(t, out, "1 task(s) match the filter")
	assert.NotContains(t, out, "Water plants")
}

func TestListCommand_Empty(t *testing.T) {
	dataFile := setupCLI(t)

	out, _, err := executeCommand(t, dataFile, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found.")
}

func TestListCommand_QuietPrintsIDs(t *testing.T) {
	dataFile := setupCLI(t)
	seedTasks(t, dataFile, fixtureTasks()...)

	out, _, err := executeCommand(t, dataFile, "list", "-q")
	require.NoError(t, err)
	assert.Equal(t, []string{"bbb333", "bbb222", "aaa111"}, strings.Fields(out))
}

func TestListCommand_InvalidArguments(t *testing.T) {
	dataFile := setupCLI(t)

	_, _, err := executeCommand(t, dataFile, "list", "--status", "archived")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status")

	_, _, err = executeCommand(t, dataFile, "list", "--due-before", "soon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--due-before")
}

func TestListCommand_WatchNeedsOsFs(t *testing.T) {
	dataFile := setupCLI(t)

	original := appFs
	appFs = afero.NewMemMapFs()
	t.Cleanup(func() { appFs = original })

	_, _, err := executeCommand(t, dataFile, "list", "--watch")
	assert.ErrorIs(t, err, store.ErrWatchUnsupported)
}
