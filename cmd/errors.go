package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/josephgoksu/tasktrack/internal/task"
	"github.com/josephgoksu/tasktrack/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// reportedError marks a failure whose details were already written to the
// command output (JSON mode). It still makes the process exit non-zero.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// ReportError prints err for the user and returns the process exit code.
func ReportError(w io.Writer, err error) int {
	var reported *reportedError
	if !errors.As(err, &reported) {
		PrintError(w, userMessage(err), err)
	}
	return 1
}

// userMessage extracts the user-facing part of an error.
func userMessage(err error) string {
	var taskErr *types.TaskError
	if errors.As(err, &taskErr) {
		return "Error: " + taskErr.Message
	}
	return "Error: " + err.Error()
}

// PrintError prints an error message without exiting, allowing for recovery.
// It prints a user-friendly message by default. If the --verbose flag is
// set, it prints the full technical error.
func PrintError(w io.Writer, userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(w, "Error: %s\n", technicalDetail(technicalErr))
		return
	}
	fmt.Fprintln(w, userMsg)
}

func technicalDetail(err error) string {
	var taskErr *types.TaskError
	if errors.As(err, &taskErr) {
		if cause, ok := taskErr.Details["error"]; ok {
			return fmt.Sprintf("%s (%v)", taskErr.Error(), cause)
		}
		return taskErr.Error()
	}
	return err.Error()
}

// LogError records an error at debug level; it shows up with --verbose.
func LogError(msg string, err error) {
	log.Debug().Err(err).Msg(msg)
}

// resultError turns a failed service result into a command error. In JSON
// mode the result itself is printed so scripts can read the error code.
func resultError[T any](cmd *cobra.Command, res task.Result[T]) error {
	err := res.Err()
	LogError(res.Message, err)
	if isJSON() {
		if printErr := printJSON(cmd.OutOrStdout(), res); printErr != nil {
			return printErr
		}
		return &reportedError{err: err}
	}
	return err
}
