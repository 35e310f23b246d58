/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if isJSON() {
			return printJSON(out, versionResponse{Version: GetVersion()})
		}
		fmt.Fprintf(out, "tasktrack version %s\n", GetVersion())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
