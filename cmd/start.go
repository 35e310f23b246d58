/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/josephgoksu/tasktrack/models"
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:     "start [task_id]",
	Aliases: []string{"begin"},
	Short:   "Mark a task as in progress",
	Long:    `Mark a task as in progress. Without an ID an interactive list of tasks that are not in progress is shown.`,
	Example: `  tasktrack start
  tasktrack start lr7`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeStatus(cmd, args, models.StatusInProgress, "Select a task to start")
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
