/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/josephgoksu/tasktrack/internal/logger"
	"github.com/josephgoksu/tasktrack/internal/ui"
	"github.com/josephgoksu/tasktrack/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the tasktrack setup and diagnose issues",
	Long: `Validate your tasktrack configuration and task file.

Checks:
  • Configuration file
  • Task file presence, access and parseability
  • Storage format
  • Backups
  • Crash logs
  • Write locking

The command exits non-zero when a check fails.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// Doctor check outcomes.
const (
	checkOK   = "ok"
	checkWarn = "warn"
	checkFail = "fail"
)

// DoctorCheck represents a single diagnostic check
type DoctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warn", "fail"
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

var errDoctorFailed = errors.New("doctor found problems")

func runDoctor(cmd *cobra.Command, args []string) error {
	st, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := cmd.Context()
	report := doctorReport{Healthy: true}

	info, infoErr := st.FileInfo(ctx)
	if infoErr == nil {
		report.File = info
	}

	report.Checks = append(report.Checks,
		checkConfigFile(),
		checkDataFile(cmd, st, info, infoErr),
		checkFormat(st),
		checkBackups(st),
		checkCrashLogs(),
		checkLocking(),
	)
	for _, c := range report.Checks {
		if c.Status == checkFail {
			report.Healthy = false
		}
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		if err := printJSON(out, report); err != nil {
			return err
		}
		if !report.Healthy {
			return &reportedError{err: errDoctorFailed}
		}
		return nil
	}

	if !isQuiet() {
		ui.RenderPageHeader(out, "tasktrack doctor", st.Path())
		for _, c := range report.Checks {
			printCheck(out, c)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, doctorSummary(report))
	}
	if !report.Healthy {
		return errDoctorFailed
	}
	return nil
}

func doctorSummary(report doctorReport) string {
	warnings := 0
	for _, c := range report.Checks {
		if c.Status == checkWarn {
			warnings++
		}
	}
	switch {
	case !report.Healthy:
		return ui.RenderErrorPanel("Issues found", "Fix the errors above before continuing.")
	case warnings > 0:
		return ui.RenderWarningPanel("Everything looks good", fmt.Sprintf("%d warning(s) above are worth a look.", warnings))
	default:
		return ui.RenderSuccessPanel("Everything looks good", "No problems detected.")
	}
}

func printCheck(w io.Writer, c DoctorCheck) {
	var icon string
	switch c.Status {
	case checkOK:
		icon = ui.Icon("✓", ui.StylePrefixDone)
	case checkWarn:
		icon = ui.Icon("!", ui.StylePrefixWarn)
	case checkFail:
		icon = ui.Icon("✗", ui.StylePrefixError)
	}

	fmt.Fprintf(w, "%s %s: %s\n", icon, c.Name, c.Message)
	if c.Hint != "" && c.Status != checkOK {
		fmt.Fprintf(w, "   └─ %s\n", c.Hint)
	}
}

func checkConfigFile() DoctorCheck {
	used := viper.ConfigFileUsed()
	if used == "" {
		return DoctorCheck{
			Name:    "Configuration",
			Status:  checkOK,
			Message: "No config file, using defaults",
			Hint:    "Run: tasktrack config set <key> <value>",
		}
	}
	return DoctorCheck{Name: "Configuration", Status: checkOK, Message: "Loaded " + used}
}

func checkDataFile(cmd *cobra.Command, st *store.FileTaskStore, info *store.FileInfo, infoErr error) DoctorCheck {
	check := DoctorCheck{Name: "Task file"}
	switch {
	case infoErr != nil:
		check.Status = checkFail
		check.Message = infoErr.Error()
		check.Hint = "Restore a backup: tasktrack restore <backup_file>"
	case !info.Exists:
		check.Status = checkWarn
		check.Message = st.Path() + " does not exist yet"
		check.Hint = "It is created on first use, e.g. tasktrack add \"My first task\""
	default:
		if err := st.CheckHealth(cmd.Context()); err != nil {
			check.Status = checkFail
			check.Message = err.Error()
			check.Hint = "Check the file permissions or restore a backup"
			return check
		}
		check.Status = checkOK
		check.Message = fmt.Sprintf("%d task(s), %d bytes", info.TaskCount, info.Size)
	}
	return check
}

func checkFormat(st *store.FileTaskStore) DoctorCheck {
	check := DoctorCheck{Name: "Format", Status: checkOK, Message: st.Format()}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(st.Path())), ".")
	if ext == "yml" {
		ext = store.FormatYAML
	}
	if ext != "" && ext != st.Format() {
		check.Status = checkWarn
		check.Message = fmt.Sprintf("%s content in a .%s file", st.Format(), ext)
		check.Hint = "Rename the file or unset data.format so the two agree"
	}
	return check
}

func checkBackups(st *store.FileTaskStore) DoctorCheck {
	backups, err := st.ListBackups()
	if err != nil {
		return DoctorCheck{Name: "Backups", Status: checkWarn, Message: err.Error()}
	}
	if len(backups) == 0 {
		return DoctorCheck{
			Name:    "Backups",
			Status:  checkWarn,
			Message: "No backups found",
			Hint:    "Run: tasktrack backup",
		}
	}
	return DoctorCheck{
		Name:    "Backups",
		Status:  checkOK,
		Message: fmt.Sprintf("%d backup(s), latest %s", len(backups), filepath.Base(backups[len(backups)-1])),
	}
}

func checkCrashLogs() DoctorCheck {
	logs, err := logger.ListCrashLogs()
	if err != nil {
		return DoctorCheck{Name: "Crash logs", Status: checkWarn, Message: err.Error()}
	}
	if len(logs) == 0 {
		return DoctorCheck{Name: "Crash logs", Status: checkOK, Message: "None"}
	}
	return DoctorCheck{
		Name:    "Crash logs",
		Status:  checkWarn,
		Message: fmt.Sprintf("%d crash log(s), latest %s", len(logs), logs[len(logs)-1]),
		Hint:    "Attach the latest log when reporting a bug",
	}
}

func checkLocking() DoctorCheck {
	if GetConfig().Data.Lock {
		return DoctorCheck{Name: "Locking", Status: checkOK, Message: "Writes are serialized with a lock file"}
	}
	return DoctorCheck{
		Name:    "Locking",
		Status:  checkOK,
		Message: "Disabled",
		Hint:    "Enable when several processes share the file: tasktrack config set data.lock true",
	}
}
