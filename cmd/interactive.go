/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/josephgoksu/tasktrack/internal/logger"
	"github.com/josephgoksu/tasktrack/internal/task"
	"github.com/josephgoksu/tasktrack/internal/ui"
	"github.com/josephgoksu/tasktrack/internal/util"
	"github.com/josephgoksu/tasktrack/models"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// interactiveCmd represents the interactive command
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactive menu for common tasktrack operations",
	Long: `Interactive mode provides a guided menu interface for tasktrack operations.

This mode allows you to:
- Create new tasks
- View, start, complete, update and delete existing tasks
- See statistics

Use arrow keys to navigate and Enter to select.`,
	Aliases: []string{"menu", "ui"},
	Args:    cobra.NoArgs,
	RunE:    runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// errExitMenu ends the menu loop.
var errExitMenu = errors.New("exit")

// MenuItem represents a menu option
type MenuItem struct {
	Label       string
	Description string
	Action      func() error
}

// menuPrompter collects user input for the menu. The promptui version is
// used on a terminal; tests supply scripted answers.
type menuPrompter interface {
	SelectMenu(items []MenuItem) (int, error)
	SelectTask(ctx context.Context, svc *task.Service, filterFn func(models.Task) bool, label string) (models.Task, error)
	Text(label, def string, validate promptui.ValidateFunc) (string, error)
	Confirm(label string) error
}

type promptuiPrompter struct{}

func (promptuiPrompter) SelectMenu(items []MenuItem) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▶ {{ .Label | cyan }}",
		Inactive: "  {{ .Label | white }}",
		Selected: "▶ {{ .Label | green | bold }}",
		Details: `
{{ "Description:" | faint }} {{ .Description }}`,
	}

	prompt := promptui.Select{
		Label:     "What would you like to do?",
		Items:     items,
		Templates: templates,
		Size:      len(items),
	}
	i, _, err := prompt.Run()
	return i, err
}

func (promptuiPrompter) SelectTask(ctx context.Context, svc *task.Service, filterFn func(models.Task) bool, label string) (models.Task, error) {
	return selectTaskInteractive(ctx, svc, filterFn, label)
}

func (promptuiPrompter) Text(label, def string, validate promptui.ValidateFunc) (string, error) {
	return promptText(label, def, validate)
}

func (promptuiPrompter) Confirm(label string) error {
	return confirmOrAbort(label, false)
}

// menuSession holds what the menu actions share for one interactive run.
type menuSession struct {
	ctx    context.Context
	svc    *task.Service
	out    io.Writer
	prompt menuPrompter
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if !ui.IsInteractive() {
		return errors.New("interactive mode needs a terminal; use the subcommands instead (see tasktrack --help)")
	}
	if isJSON() {
		return errors.New("interactive mode does not support --json")
	}

	svc, _, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	s := &menuSession{ctx: cmd.Context(), svc: svc, out: cmd.OutOrStdout(), prompt: promptuiPrompter{}}
	fmt.Fprintln(s.out, ui.StyleTitle.Render("Welcome to tasktrack interactive mode!"))
	fmt.Fprintln(s.out, ui.StyleSubtle.Render("Use arrow keys to navigate, Enter to select, and Ctrl+C to exit."))
	fmt.Fprintln(s.out)

	s.run()
	return nil
}

// run shows the menu until the user exits or the context ends.
func (s *menuSession) run() {
	for s.runMenu() {
		if err := s.ctx.Err(); err != nil {
			break
		}
	}
	fmt.Fprintln(s.out, "Goodbye!")
}

// menuItems builds the main menu. Labels carry the current counts.
func (s *menuSession) menuItems(st task.Stats) []MenuItem {
	return []MenuItem{
		{
			Label:       "Create New Task",
			Description: "Add a new task to your list",
			Action:      s.handleCreate,
		},
		{
			Label:       fmt.Sprintf("View Tasks (%d total)", st.Total),
			Description: "Browse your tasks and open one",
			Action:      s.handleView,
		},
		{
			Label:       fmt.Sprintf("Start Working (%d todo)", st.Todo),
			Description: "Select a task to begin working on",
			Action: func() error {
				return s.handleStatus(models.StatusInProgress, "Select a task to start")
			},
		},
		{
			Label:       fmt.Sprintf("Complete Task (%d in progress)", st.InProgress),
			Description: "Mark a task as finished",
			Action: func() error {
				return s.handleStatus(models.StatusCompleted, "Select a task to complete")
			},
		},
		{
			Label:       "Update Task",
			Description: "Change the title, description or due date of a task",
			Action:      s.handleUpdate,
		},
		{
			Label:       "Delete Task",
			Description: "Remove a task permanently",
			Action:      s.handleDelete,
		},
		{
			Label:       "Statistics",
			Description: fmt.Sprintf("Todo: %d, In progress: %d, Completed: %d, Overdue: %d", st.Todo, st.InProgress, st.Completed, st.Overdue),
			Action:      s.handleStats,
		},
		{
			Label:       "Exit",
			Description: "Leave interactive mode",
			Action:      func() error { return errExitMenu },
		},
	}
}

// runMenu displays the main menu once and runs the chosen action. It returns
// false when the loop should stop.
func (s *menuSession) runMenu() bool {
	stats := s.svc.GetTaskStats(s.ctx)
	if !stats.Success {
		PrintError(s.out, userMessage(stats.Err()), stats.Err())
		return false
	}
	menuItems := s.menuItems(stats.Data)

	i, err := s.prompt.SelectMenu(menuItems)
	if err != nil {
		if !errors.Is(err, promptui.ErrInterrupt) && !errors.Is(err, promptui.ErrEOF) {
			fmt.Fprintf(s.out, "Selection error: %v\n", err)
		}
		return false
	}
	if i < 0 || i >= len(menuItems) {
		return false
	}
	logger.SetLastInput(menuItems[i].Label)

	if err := menuItems[i].Action(); err != nil {
		if errors.Is(err, errExitMenu) {
			return false
		}
		if isSelectionAbort(err) {
			if errors.Is(err, ErrNoTasksFound) {
				fmt.Fprintln(s.out, "No matching tasks.")
			}
			fmt.Fprintln(s.out)
			return true
		}
		PrintError(s.out, userMessage(err), err)
		fmt.Fprintln(s.out)
	}
	return true
}

// promptText asks for a line of input. A nil validate accepts anything.
func promptText(label, def string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: def != "",
		Validate:  validate,
	}
	value, err := p.Run()
	if err != nil {
		return "", err
	}
	logger.SetLastInput(value)
	return strings.TrimSpace(value), nil
}

func validateTitle(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("task title cannot be empty")
	}
	return nil
}

// validateOptionalDate accepts an empty answer or anything parseDate reads.
func validateOptionalDate(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	_, err := parseDate(input, time.Now())
	return err
}

// readDueDate prompts for an optional due date. The bool is false when the
// answer was left empty.
func (s *menuSession) readDueDate(def string) (time.Time, bool, error) {
	raw, err := s.prompt.Text("Due date (YYYY-MM-DD, empty for none)", def, validateOptionalDate)
	if err != nil || raw == "" {
		return time.Time{}, false, err
	}
	due, err := parseDate(raw, time.Now())
	return due, err == nil, err
}

func (s *menuSession) handleCreate() error {
	fmt.Fprintln(s.out, ui.StyleSectionTitle.Render("Create New Task"))

	title, err := s.prompt.Text("Task title", "", validateTitle)
	if err != nil {
		return err
	}
	description, err := s.prompt.Text("Description (optional)", "", nil)
	if err != nil {
		return err
	}
	due, hasDue, err := s.readDueDate("")
	if err != nil {
		return err
	}

	input := task.CreateTaskInput{Title: title, Description: description}
	if hasDue {
		input.DueDate = &due
	}
	res := s.svc.CreateTask(s.ctx, input)
	if !res.Success {
		return res.Err()
	}
	fmt.Fprintf(s.out, "✓ Added %s: %s\n\n", util.ShortID(res.Data.ID, 0), res.Data.Title)
	return nil
}

func (s *menuSession) handleView() error {
	res := s.svc.GetAllTasks(s.ctx, nil)
	if !res.Success {
		return res.Err()
	}
	fmt.Fprintln(s.out, ui.RenderTaskList(res.Data, time.Now(), false))
	if len(res.Data) == 0 {
		return nil
	}

	selected, err := s.prompt.SelectTask(s.ctx, s.svc, nil, "Open a task")
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, ui.RenderTaskDetail(selected, time.Now()))
	return nil
}

func (s *menuSession) handleStatus(status models.TaskStatus, label string) error {
	selected, err := s.prompt.SelectTask(s.ctx, s.svc, func(t models.Task) bool { return t.Status != status }, label)
	if err != nil {
		return err
	}
	res := s.svc.UpdateTaskStatus(s.ctx, selected.ID, status)
	if !res.Success {
		return res.Err()
	}
	fmt.Fprintf(s.out, "%s %s → %s\n\n", ui.StatusIcon(status), res.Data.Title, ui.StatusBadge(status))
	return nil
}

func (s *menuSession) handleUpdate() error {
	selected, err := s.prompt.SelectTask(s.ctx, s.svc, nil, "Select a task to update")
	if err != nil {
		return err
	}

	title, err := s.prompt.Text("Title", selected.Title, validateTitle)
	if err != nil {
		return err
	}
	description, err := s.prompt.Text("Description", selected.Description, nil)
	if err != nil {
		return err
	}
	currentDue := ""
	if selected.DueDate != nil {
		currentDue = ui.FormatDate(*selected.DueDate)
	}
	due, hasDue, err := s.readDueDate(currentDue)
	if err != nil {
		return err
	}

	patch := task.TaskPatch{Title: &title, Description: &description}
	if hasDue {
		patch.DueDate = &due
	} else {
		patch.ClearDueDate = true
	}
	res := s.svc.UpdateTask(s.ctx, selected.ID, patch)
	if !res.Success {
		return res.Err()
	}
	fmt.Fprintf(s.out, "✓ Updated %s: %s\n\n", util.ShortID(res.Data.ID, 0), res.Data.Title)
	return nil
}

func (s *menuSession) handleDelete() error {
	selected, err := s.prompt.SelectTask(s.ctx, s.svc, nil, "Select a task to delete")
	if err != nil {
		return err
	}
	if err := s.prompt.Confirm(fmt.Sprintf("Delete task '%s'", ui.Truncate(selected.Title, 50))); err != nil {
		if errors.Is(err, errCancelled) {
			fmt.Fprintln(s.out, "Deletion cancelled.")
			return nil
		}
		return err
	}
	res := s.svc.DeleteTask(s.ctx, selected.ID)
	if !res.Success {
		return res.Err()
	}
	fmt.Fprintf(s.out, "✓ Deleted %s\n\n", selected.Title)
	return nil
}

func (s *menuSession) handleStats() error {
	res := s.svc.GetTaskStats(s.ctx)
	if !res.Success {
		return res.Err()
	}
	fmt.Fprintln(s.out, ui.RenderStats(res.Data))
	return nil
}
