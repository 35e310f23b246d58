/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/josephgoksu/tasktrack/models"
	"github.com/spf13/cobra"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done [task_id]",
	Aliases: []string{"complete", "d"},
	Short:   "Mark a task as completed",
	Long:    `Mark a task as completed. If task_id is provided, it marks that task directly. Otherwise, it presents an interactive list to choose a task.`,
	Example: `  # Interactive mode
  tasktrack done

  # Complete specific task
  tasktrack done lr7

  # Using alias
  tasktrack d lr7`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeStatus(cmd, args, models.StatusCompleted, "Select task to mark as done")
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
