/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/tasktrack/internal/ui"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts by status",
	Long:  `Show how many tasks exist in each status, how many are overdue, and the completion rate.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, closeFn, err := openService()
		if err != nil {
			return err
		}
		defer closeFn()

		res := svc.GetTaskStats(cmd.Context())
		if !res.Success {
			return resultError(cmd, res)
		}

		out := cmd.OutOrStdout()
		switch {
		case isJSON():
			return printJSON(out, res)
		case isQuiet():
			fmt.Fprintln(out, res.Data.Total)
		default:
			fmt.Fprintln(out, ui.RenderStats(res.Data))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
