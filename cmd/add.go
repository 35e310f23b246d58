/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/tasktrack/internal/task"
	"github.com/josephgoksu/tasktrack/internal/util"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title...>",
	Short: "Add a new task",
	Long: `Add a new task with status TODO. All arguments are joined into the title.

Examples:
  tasktrack add Buy milk
  tasktrack add "Quarterly report" -d "Include churn numbers" --due 2024-07-01
  tasktrack add Call the dentist --due tomorrow`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addDue         string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date (YYYY-MM-DD, \"YYYY-MM-DD HH:MM\", RFC 3339, today, tomorrow)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	input := task.CreateTaskInput{
		Title:       strings.Join(args, " "),
		Description: addDescription,
	}
	if addDue != "" {
		due, err := parseDate(addDue, time.Now())
		if err != nil {
			return err
		}
		input.DueDate = &due
	}

	svc, _, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	res := svc.CreateTask(cmd.Context(), input)
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
		printf(out, "✓ Added %s: %s\n", util.ShortID(res.Data.ID, 0), res.Data.Title)
	}
	return nil
}
