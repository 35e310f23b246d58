/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the task file to a timestamped backup",
	Long: `Copy the task file to "<name>.backup-YYYYMMDD-HHMMSS<ext>" next to it.
Backups are never pruned. Use --list to see the existing ones.`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

var backupList bool

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().BoolVarP(&backupList, "list", "l", false, "list existing backups instead of creating one")
}

func runBackup(cmd *cobra.Command, args []string) error {
	st, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	out := cmd.OutOrStdout()

	if backupList {
		backups, err := st.ListBackups()
		if err != nil {
			return err
		}
		switch {
		case isJSON():
			return printJSON(out, backups)
		case len(backups) == 0:
			printf(out, "No backups found next to %s\n", st.Path())
		default:
			for _, b := range backups {
				fmt.Fprintln(out, b)
			}
		}
		return nil
	}

	path, err := st.Backup(cmd.Context())
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	resp := backupResponse{Success: true, Path: path}
	if path == "" {
		resp.Message = fmt.Sprintf("Nothing to back up: %s does not exist", st.Path())
	} else {
		resp.Message = "Backup created: " + filepath.Base(path)
	}

	switch {
	case isJSON():
		return printJSON(out, resp)
	case isQuiet():
		if path != "" {
			fmt.Fprintln(out, path)
		}
	default:
		fmt.Fprintln(out, resp.Message)
	}
	return nil
}
