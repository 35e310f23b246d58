/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <backup_file>",
	Short: "Replace the task file with a backup",
	Long: `Replace the task file with the contents of a backup. The backup may be in any
supported format; it is converted to the configured format. The current file is
backed up first so a restore can itself be undone.`,
	Example: `  tasktrack restore .tasktrack/tasks.backup-20240704-150405.json --yes`,
	Args:    cobra.ExactArgs(1),
	RunE:    runRestore,
}

var restoreYes bool

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "skip the confirmation prompt")
}

func runRestore(cmd *cobra.Command, args []string) error {
	source := args[0]
	out := cmd.OutOrStdout()

	svc, st, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	label := fmt.Sprintf("Replace %s with %s", st.Path(), source)
	if err := confirmOrAbort(label, restoreYes); err != nil {
		if errors.Is(err, errCancelled) {
			printf(out, "Restore cancelled.\n")
			return nil
		}
		return err
	}

	ctx := cmd.Context()
	safety, err := st.Backup(ctx)
	if err != nil {
		return fmt.Errorf("could not back up the current file before restoring: %w", err)
	}
	if err := st.Restore(ctx, source); err != nil {
		return err
	}
	if err := svc.Reload(ctx); err != nil {
		return err
	}

	res := svc.GetAllTasks(ctx, nil)
	if !res.Success {
		return resultError(cmd, res)
	}

	resp := restoreResponse{
		Success:   true,
		Message:   fmt.Sprintf("Restored %d task(s) from %s", len(res.Data), source),
		Source:    source,
		Backup:    safety,
		TaskCount: len(res.Data),
	}

	switch {
	case isJSON():
		return printJSON(out, resp)
	case isQuiet():
		fmt.Fprintln(out, resp.TaskCount)
	default:
		fmt.Fprintln(out, resp.Message)
		if safety != "" {
			fmt.Fprintf(out, "Previous file saved as %s\n", safety)
		}
	}
	return nil
}
