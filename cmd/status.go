/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/tasktrack/internal/ui"
	"github.com/josephgoksu/tasktrack/internal/util"
	"github.com/josephgoksu/tasktrack/models"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <task_id> <status>",
	Short: "Set the status of a task",
	Long:  `Set the status of a task. Accepted values: todo, in-progress, completed (aliases such as "doing" and "done" also work).`,
	Example: `  tasktrack status lr7 in-progress
  tasktrack status lr7 done`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := parseStatusArg(args[1])
		if err != nil {
			return err
		}
		return changeStatus(cmd, args[:1], status, "")
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// changeStatus moves the task named by args (or picked interactively) to
// status and reports the result.
func changeStatus(cmd *cobra.Command, args []string, status models.TaskStatus, pickLabel string) error {
	svc, _, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	out := cmd.OutOrStdout()
	notInStatus := func(t models.Task) bool { return t.Status != status }
	id, err := resolveTaskArg(cmd, svc, args, notInStatus, pickLabel)
	if err != nil {
		if isSelectionAbort(err) {
			if errors.Is(err, ErrNoTasksFound) {
				printf(out, "No tasks available to mark as %s.\n", ui.StatusLabel(status))
			} else {
				printf(out, "Operation cancelled.\n")
			}
			return nil
		}
		return err
	}

	res := svc.UpdateTaskStatus(cmd.Context(), id, status)
	if !res.Success {
		return resultError(cmd, res)
	}

	switch {
	case isJSON():
		return printJSON(out, res)
	case isQuiet():
		fmt.Fprintln(out, res.Data.ID)
	default:
		printf(out, "%s %s %s → %s\n", ui.StatusIcon(status), util.ShortID(res.Data.ID, 0), res.Data.Title, ui.StatusBadge(status))
	}
	return nil
}
