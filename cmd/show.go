/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/josephgoksu/tasktrack/internal/ui"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:     "show [task_id]",
	Aliases: []string{"view", "get"},
	Short:   "Show the details of a task",
	Long:    `Show every field of a task. The ID may be any unique prefix. Without an ID an interactive picker is shown.`,
	Example: `  tasktrack show lr7xk0a1
  tasktrack show lr7 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	svc, _, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	out := cmd.OutOrStdout()
	id, err := resolveTaskArg(cmd, svc, args, nil, "Select a task to view")
	if err != nil {
		if isSelectionAbort(err) {
			if errors.Is(err, ErrNoTasksFound) {
				printf(out, "No tasks found.\n")
			}
			return nil
		}
		return err
	}

	res := svc.GetTaskByID(cmd.Context(), id)
	if !res.Success {
		return resultError(cmd, res)
	}

	switch {
	case isJSON():
		return printJSON(out, res)
	case isQuiet():
		fmt.Fprintln(out, res.Data.ID)
	default:
		fmt.Fprintln(out, ui.RenderTaskDetail(res.Data, time.Now()))
	}
	return nil
}
