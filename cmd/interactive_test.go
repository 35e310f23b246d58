package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/tasktrack/internal/task"
	"github.com/josephgoksu/tasktrack/models"
	"github.com/josephgoksu/tasktrack/store"
	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Positions of the main menu entries.
const (
	menuCreate = iota
	menuView
	menuStart
	menuComplete
	menuUpdate
	menuDelete
	menuStats
	menuExit
)

// scriptedPrompter answers menu prompts from fixed queues. An empty queue
// behaves like the user pressing Ctrl+C (or Ctrl+D for the main menu).
type scriptedPrompter struct {
	menu     []int
	texts    []string
	picks    []string
	confirms []error

	pickLabels []string
}

func (p *scriptedPrompter) SelectMenu(items []MenuItem) (int, error) {
	if len(p.menu) == 0 {
		return 0, promptui.ErrEOF
	}
	i := p.menu[0]
	p.menu = p.menu[1:]
	return i, nil
}

func (p *scriptedPrompter) SelectTask(ctx context.Context, svc *task.Service, filterFn func(models.Task) bool, label string) (models.Task, error) {
	p.pickLabels = append(p.pickLabels, label)
	if len(p.picks) == 0 {
		return models.Task{}, promptui.ErrInterrupt
	}
	id := p.picks[0]
	p.picks = p.picks[1:]

	res := svc.GetTaskByID(ctx, id)
	if !res.Success {
		return models.Task{}, res.Err()
	}
	if filterFn != nil && !filterFn(res.Data) {
		return models.Task{}, ErrNoTasksFound
	}
	return res.Data, nil
}

func (p *scriptedPrompter) Text(label, def string, validate promptui.ValidateFunc) (string, error) {
	if len(p.texts) == 0 {
		return "", promptui.ErrInterrupt
	}
	value := p.texts[0]
	p.texts = p.texts[1:]
	if validate != nil {
		if err := validate(value); err != nil {
			return "", err
		}
	}
	return strings.TrimSpace(value), nil
}

func (p *scriptedPrompter) Confirm(string) error {
	if len(p.confirms) == 0 {
		return nil
	}
	err := p.confirms[0]
	p.confirms = p.confirms[1:]
	return err
}

func newMenuSession(t *testing.T, p *scriptedPrompter, seed ...models.Task) (*menuSession, *bytes.Buffer) {
	t.Helper()
	setupCLI(t)

	st, err := store.NewFileTaskStore(afero.NewMemMapFs(), "/data/tasks.json", store.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.NoError(t, st.Save(context.Background(), seed))

	svc := task.NewService(st,
		task.WithLogger(zerolog.Nop()),
		task.WithIDGenerator(func(time.Time) string { return "new001" }),
	)
	var out bytes.Buffer
	return &menuSession{ctx: context.Background(), svc: svc, out: &out, prompt: p}, &out
}

func TestMenuSession_CreateStartComplete(t *testing.T) {
	p := &scriptedPrompter{
		menu:  []int{menuCreate, menuStart, menuComplete, menuExit},
		texts: []string{"Buy milk", "two litres", "2024-07-01"},
		picks: []string{"new001", "new001"},
	}
	s, out := newMenuSession(t, p)

	s.run()

	res := s.svc.GetTaskByID(context.Background(), "new001")
	require.True(t, res.Success)
	assert.Equal(t, "Buy milk", res.Data.Title)
	assert.Equal(t, "two litres", res.Data.Description)
	assert.Equal(t, models.StatusCompleted, res.Data.Status)
	require.NotNil(t, res.Data.DueDate)
	assert.Equal(t, "2024-07-01", res.Data.DueDate.Format("2006-01-02"))

	assert.Equal(t, []string{"Select a task to start", "Select a task to complete"}, p.pickLabels)
	assert.Contains(t, out.String(), "✓ Added new001: Buy milk")
	assert.True(t, strings.HasSuffix(out.String(), "Goodbye!\n"))
}

func TestMenuSession_UpdateAndDelete(t *testing.T) {
	p := &scriptedPrompter{
		menu:     []int{menuUpdate, menuDelete, menuDelete, menuExit},
		texts:    []string{"Write annual report", "", ""},
		picks:    []string{"aaa111", "bbb222", "bbb333"},
		confirms: []error{errCancelled, nil},
	}
	s, out := newMenuSession(t, p, fixtureTasks()...)

	s.run()

	updated := s.svc.GetTaskByID(context.Background(), "aaa111")
	require.True(t, updated.Success)
	assert.Equal(t, "Write annual report", updated.Data.Title)
	assert.Empty(t, updated.Data.Description)
	assert.Nil(t, updated.Data.DueDate, "an empty due date answer clears it")

	assert.True(t, s.svc.GetTaskByID(context.Background(), "bbb222").Success, "cancelled deletion keeps the task")
	assert.False(t, s.svc.GetTaskByID(context.Background(), "bbb333").Success)

	assert.Contains(t, out.String(), "✓ Updated aaa111: Write annual report")
	assert.Contains(t, out.String(), "Deletion cancelled.")
	assert.Contains(t, out.String(), "✓ Deleted File taxes")
}

func TestMenuSession_AbortsKeepMenuRunning(t *testing.T) {
	p := &scriptedPrompter{
		// Starting a task that is already in progress finds nothing to pick,
		// the blank title is rejected, then the create prompt is abandoned.
		menu:  []int{menuStart, menuCreate, menuCreate},
		picks: []string{"bbb222"},
		texts: []string{"   "},
	}
	s, out := newMenuSession(t, p, fixtureTasks()...)

	s.run()

	assert.Contains(t, out.String(), "No matching tasks.")
	assert.Contains(t, out.String(), "Error: task title cannot be empty")
	assert.True(t, strings.HasSuffix(out.String(), "Goodbye!\n"))

	all := s.svc.GetAllTasks(context.Background(), nil)
	require.True(t, all.Success)
	assert.Len(t, all.Data, 3)
	assert.Empty(t, p.menu, "every scripted menu choice was used")
}

func TestMenuSession_ViewAndStats(t *testing.T) {
	p := &scriptedPrompter{
		menu:  []int{menuStats, menuView, menuExit},
		picks: []string{"aaa111"},
	}
	s, out := newMenuSession(t, p, fixtureTasks()...)

	s.run()

	assert.Contains(t, out.String(), "33%")
	assert.Contains(t, out.String(), "Write report")
	assert.Contains(t, out.String(), "Q2 numbers")
}

func TestMenuSession_MenuLabelsShowCounts(t *testing.T) {
	s, _ := newMenuSession(t, &scriptedPrompter{}, fixtureTasks()...)

	stats := s.svc.GetTaskStats(context.Background())
	require.True(t, stats.Success)
	items := s.menuItems(stats.Data)

	require.Len(t, items, menuExit+1)
	assert.Equal(t, "View Tasks (3 total)", items[menuView].Label)
	assert.Equal(t, "Start Working (1 todo)", items[menuStart].Label)
	assert.Equal(t, "Complete Task (1 in progress)", items[menuComplete].Label)
	assert.Equal(t, "Exit", items[menuExit].Label)
}
