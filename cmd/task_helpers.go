package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/josephgoksu/tasktrack/internal/config"
	"github.com/josephgoksu/tasktrack/internal/logger"
	"github.com/josephgoksu/tasktrack/internal/task"
	"github.com/josephgoksu/tasktrack/internal/ui"
	"github.com/josephgoksu/tasktrack/models"
	"github.com/josephgoksu/tasktrack/store"
	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// appFs is the filesystem the task store is opened on.
var appFs = afero.NewOsFs()

// GetStore opens the configured task document.
func GetStore() (*store.FileTaskStore, error) {
	cfg := GetConfig()
	path := config.GetDataFilePath()

	opts := []store.Option{
		store.WithFormat(cfg.Data.Format),
		store.WithLogger(log.Logger),
	}
	if cfg.Data.Lock {
		opts = append(opts, store.WithFileLock())
	}

	s, err := store.NewFileTaskStore(appFs, path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", path, err)
	}
	return s, nil
}

// openService opens the store and builds a task service over it. The caller
// must call the returned close function.
func openService() (*task.Service, *store.FileTaskStore, func(), error) {
	st, err := GetStore()
	if err != nil {
		return nil, nil, func() {}, err
	}
	svc := task.NewService(st, task.WithLogger(log.Logger))
	closeFn := func() {
		if err := st.Close(); err != nil {
			LogError("failed to close task store", err)
		}
	}
	return svc, st, closeFn, nil
}

// resolveTaskArg returns the full task ID named by args[0] (any unique
// prefix). Without an argument it falls back to an interactive picker over
// the tasks accepted by filterFn.
func resolveTaskArg(cmd *cobra.Command, svc *task.Service, args []string, filterFn func(models.Task) bool, label string) (string, error) {
	ctx := cmd.Context()
	if len(args) > 0 {
		res := svc.ResolveTaskID(ctx, args[0])
		if !res.Success {
			return "", resultError(cmd, res)
		}
		return res.Data, nil
	}

	if !ui.IsInteractive() || isJSON() {
		return "", errors.New("a task ID is required when not running in a terminal")
	}
	selected, err := selectTaskInteractive(ctx, svc, filterFn, label)
	if err != nil {
		return "", err
	}
	return selected.ID, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from a list.
// It can be filtered using the provided filter function.
func selectTaskInteractive(ctx context.Context, svc *task.Service, filterFn func(models.Task) bool, label string) (models.Task, error) {
	res := svc.GetAllTasks(ctx, nil)
	if !res.Success {
		return models.Task{}, res.Err()
	}

	var tasks []models.Task
	for _, t := range res.Data {
		if filterFn == nil || filterFn(t) {
			tasks = append(tasks, t)
		}
	}
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} (ID: {{ .ID }}, Status: {{ .Status }})`,
		Inactive: `  {{ .Title | faint }} (ID: {{ .ID }}, Status: {{ .Status }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Task Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Description:\t" | faint }} {{ .Description }}
{{ "Status:\t" | faint }} {{ .Status }}
{{ "Due:\t" | faint }} {{ if .DueDate }}{{ .DueDate.Format "2006-01-02 15:04" }}{{ else }}-{{ end }}`,
	}

	searcher := func(input string, index int) bool {
		t := tasks[index]
		input = strings.ToLower(input)
		return strings.Contains(strings.ToLower(t.Title), input) || strings.HasPrefix(strings.ToLower(t.ID), input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
		Size:      10,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err // Return error as is (includes promptui.ErrInterrupt)
	}
	logger.SetLastInput(tasks[i].ID)
	return tasks[i], nil
}

// isSelectionAbort reports whether err means the user left a picker or had
// nothing to pick from.
func isSelectionAbort(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, ErrNoTasksFound)
}
