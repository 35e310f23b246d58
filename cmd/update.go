/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/josephgoksu/tasktrack/internal/task"
	"github.com/josephgoksu/tasktrack/internal/util"
	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:     "update <task_id>",
	Aliases: []string{"edit"},
	Short:   "Update fields of an existing task",
	Long: `Update one or more fields of a task. Only the flags you pass are changed.

Examples:
  tasktrack update lr7 --title "Ship v2"
  tasktrack update lr7 --status in-progress --due 2024-07-01
  tasktrack update lr7 --clear-due --description ""`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var (
	updateTitle       string
	updateDescription string
	updateStatus      string
	updateDue         string
	updateClearDue    bool
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description (empty string clears it)")
	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "new status (todo, in-progress, completed)")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "new due date (YYYY-MM-DD, \"YYYY-MM-DD HH:MM\", today, tomorrow)")
	updateCmd.Flags().BoolVar(&updateClearDue, "clear-due", false, "remove the due date")
	updateCmd.MarkFlagsMutuallyExclusive("due", "clear-due")
}

// buildPatch collects the changed flags into a patch.
func buildPatch(cmd *cobra.Command, now time.Time) (task.TaskPatch, error) {
	var patch task.TaskPatch
	flags := cmd.Flags()
	changed := false

	if flags.Changed("title") {
		v := updateTitle
		patch.Title = &v
		changed = true
	}
	if flags.Changed("description") {
		v := updateDescription
		patch.Description = &v
		changed = true
	}
	if flags.Changed("status") {
		status, err := parseStatusArg(updateStatus)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
		changed = true
	}
	if flags.Changed("due") {
		due, err := parseDate(updateDue, now)
		if err != nil {
			return patch, fmt.Errorf("--due: %w", err)
		}
		patch.DueDate = &due
		changed = true
	}
	if updateClearDue {
		patch.ClearDueDate = true
		changed = true
	}

	if !changed {
		return patch, errors.New("nothing to update: pass at least one of --title, --description, --status, --due or --clear-due")
	}
	return patch, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	patch, err := buildPatch(cmd, time.Now())
	if err != nil {
		return err
	}

	svc, _, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	id, err := resolveTaskArg(cmd, svc, args, nil, "")
	if err != nil {
		return err
	}

	res := svc.UpdateTask(cmd.Context(), id, patch)
	if !res.Success {
		return resultError(cmd, res)
	}

	out := cmd.OutOrStdout()
	switch {
	case isJSON():
		return printJSON(out, res)
	case isQuiet():
		fmt.Fprintln(out, res.Data.ID)
	default:
		printf(out, "✓ Updated %s: %s\n", util.ShortID(res.Data.ID, 0), res.Data.Title)
	}
	return nil
}
