package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/josephgoksu/tasktrack/internal/logger"
	"github.com/josephgoksu/tasktrack/internal/ui"
	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"
)

// errCancelled is returned when the user declines a confirmation.
var errCancelled = errors.New("cancelled")

func isJSON() bool {
	return viper.GetBool("json")
}

func isQuiet() bool {
	return viper.GetBool("quiet")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// printf writes human-readable output unless --quiet or --json is set.
func printf(w io.Writer, format string, args ...any) {
	if isQuiet() || isJSON() {
		return
	}
	fmt.Fprintf(w, format, args...)
}

// confirmOrAbort asks a yes/no question. assumeYes skips the prompt. Without
// a terminal there is nobody to ask, so the caller must pass --yes.
func confirmOrAbort(label string, assumeYes bool) error {
	if assumeYes {
		return nil
	}
	if !ui.IsInteractive() || isJSON() {
		return errors.New("confirmation required: re-run with --yes")
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	answer, err := prompt.Run()
	logger.SetLastInput(answer)
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return errCancelled
		}
		return fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return nil
}
