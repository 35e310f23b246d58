/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/tasktrack/internal/ui"
	"github.com/josephgoksu/tasktrack/internal/util"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [task_id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Delete a task by its ID. If no ID is provided, an interactive list is shown. A confirmation prompt is displayed before deletion unless --yes is given.`,
	Example: `  tasktrack delete lr7
  tasktrack delete lr7 --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	svc, _, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	id, err := resolveTaskArg(cmd, svc, args, nil, "Select task to delete")
	if err != nil {
		if isSelectionAbort(err) {
			if errors.Is(err, ErrNoTasksFound) {
				printf(out, "No tasks available to delete.\n")
			} else {
				printf(out, "Deletion cancelled.\n")
			}
			return nil
		}
		return err
	}

	found := svc.GetTaskByID(ctx, id)
	if !found.Success {
		return resultError(cmd, found)
	}

	label := fmt.Sprintf("Delete task '%s' (ID: %s)", ui.Truncate(found.Data.Title, 50), util.ShortID(id, 0))
	if err := confirmOrAbort(label, deleteYes); err != nil {
		if errors.Is(err, errCancelled) {
			printf(out, "Deletion cancelled.\n")
			return nil
		}
		return err
	}

	res := svc.DeleteTask(ctx, id)
	if !res.Success {
		return resultError(cmd, res)
	}

	switch {
	case isJSON():
		return printJSON(out, res)
	case isQuiet():
		fmt.Fprintln(out, id)
	default:
		printf(out, "✓ Deleted %s: %s\n", util.ShortID(id, 0), found.Data.Title)
	}
	return nil
}
