/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/josephgoksu/tasktrack/internal/task"
	"github.com/josephgoksu/tasktrack/internal/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks, newest first",
	Long: `List tasks, newest first. Filters are combined; tasks without a due date
are never excluded by --due-before or --due-after.

Examples:
  tasktrack list
  tasktrack list --status in-progress
  tasktrack list --due-before 2024-07-01 --has-description=false
  tasktrack list --watch`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listStatus         string
	listHasDescription bool
	listDueBefore      string
	listDueAfter       string
	listWatch          bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "only tasks with this status (todo, in-progress, completed)")
	listCmd.Flags().BoolVar(&listHasDescription, "has-description", false, "only tasks with (true) or without (false) a description")
	listCmd.Flags().StringVar(&listDueBefore, "due-before", "", "only tasks due on or before this date")
	listCmd.Flags().StringVar(&listDueAfter, "due-after", "", "only tasks due on or after this date")
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "keep running and re-render when the task file changes")
}

// buildListFilter turns the list flags into a service filter.
func buildListFilter(cmd *cobra.Command, now time.Time) (*task.Filter, error) {
	filter := &task.Filter{}

	if listStatus != "" {
		status, err := parseStatusArg(listStatus)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if cmd.Flags().Changed("has-description") {
		v := listHasDescription
		filter.HasDescription = &v
	}
	if listDueBefore != "" {
		t, err := parseDateBound(listDueBefore, now, true)
		if err != nil {
			return nil, fmt.Errorf("--due-before: %w", err)
		}
		filter.DueBefore = &t
	}
	if listDueAfter != "" {
		t, err := parseDateBound(listDueAfter, now, false)
		if err != nil {
			return nil, fmt.Errorf("--due-after: %w", err)
		}
		filter.DueAfter = &t
	}

	if filter.IsEmpty() {
		return nil, nil
	}
	return filter, nil
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := buildListFilter(cmd, time.Now())
	if err != nil {
		return err
	}

	svc, st, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if err := renderList(ctx, cmd, out, svc, filter); err != nil {
		return err
	}
	if !listWatch {
		return nil
	}

	return st.Watch(ctx, func() {
		if err := svc.Reload(ctx); err != nil {
			LogError("failed to reload tasks", err)
			return
		}
		if !isJSON() && ui.IsInteractive() {
			fmt.Fprint(out, "\033[H\033[2J")
		}
		if !isJSON() && !isQuiet() {
			fmt.Fprintf(out, "\n%s\n", ui.StyleSubtle.Render("updated "+time.Now().Format("15:04:05")))
		}
		if err := renderList(ctx, cmd, out, svc, filter); err != nil {
			log.Warn().Err(err).Msg("failed to render task list")
		}
	})
}

func renderList(ctx context.Context, cmd *cobra.Command, out io.Writer, svc *task.Service, filter *task.Filter) error {
	res := svc.GetAllTasks(ctx, filter)
	if !res.Success {
		return resultError(cmd, res)
	}

	switch {
	case isJSON():
		return printJSON(out, res)
	case isQuiet():
		for _, t := range res.Data {
			fmt.Fprintln(out, t.ID)
		}
	default:
		fmt.Fprint(out, ui.RenderTaskList(res.Data, time.Now(), isVerbose()))
		if filter != nil {
			fmt.Fprintln(out, ui.StyleSubtle.Render(strconv.Itoa(len(res.Data))+" task(s) match the filter"))
		}
	}
	return nil
}
