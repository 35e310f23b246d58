package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/tasktrack/internal/task"
	"github.com/josephgoksu/tasktrack/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Display layouts for dates. Midnight due dates show without a clock.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

var titleCaser = cases.Title(language.English)

// StatusLabel returns a human readable status, e.g. "In Progress".
func StatusLabel(status models.TaskStatus) string {
	return titleCaser.String(strings.ReplaceAll(strings.ToLower(string(status)), "_", " "))
}

// StatusBadge returns the styled icon and label of a status.
func StatusBadge(status models.TaskStatus) string {
	return StatusStyle(status).Render(StatusIcon(status) + " " + StatusLabel(status))
}

// FormatDate renders t in local time, dropping the clock at midnight.
func FormatDate(t time.Time) string {
	local := t.Local()
	if local.Hour() == 0 && local.Minute() == 0 && local.Second() == 0 {
		return local.Format(DateLayout)
	}
	return local.Format(DateTimeLayout)
}

// DueLabel renders the due date of t, flagged when overdue.
func DueLabel(t models.Task, now time.Time) string {
	if t.DueDate == nil {
		return StyleSubtle.Render("no due date")
	}
	label := "due " + FormatDate(*t.DueDate)
	if t.IsOverdue(now) {
		return StyleOverdue.Render(label + " (overdue)")
	}
	return StyleDate.Render(label)
}

// RenderTaskDetail renders all fields of a task inside a panel.
func RenderTaskDetail(t models.Task, now time.Time) string {
	var sb strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&sb, "%s %s\n", StyleSubtle.Render(fmt.Sprintf("%-12s", label)), value)
	}

	row("ID", t.ID)
	row("Status", StatusBadge(t.Status))
	row("Due", DueLabel(t, now))
	row("Created", t.CreatedAt.Local().Format(DateTimeLayout))
	row("Updated", t.UpdatedAt.Local().Format(DateTimeLayout))
	if t.HasDescription() {
		sb.WriteString("\n" + WrapText(t.Description, 60))
	}

	border := ColorSecondary
	if t.IsOverdue(now) {
		border = ColorError
	}
	return NewPanel(t.Title, strings.TrimRight(sb.String(), "\n")).WithBorderColor(border).Render()
}

// RenderStats renders the status breakdown with a completion bar.
func RenderStats(s task.Stats) string {
	const barWidth = 30

	filled := 0
	if s.Total > 0 {
		filled = s.Completed * barWidth / s.Total
	}
	bar := StyleSuccess.Render(strings.Repeat("█", filled)) +
		StyleSubtle.Render(strings.Repeat("░", barWidth-filled))

	var sb strings.Builder
	row := func(label string, value string) {
		fmt.Fprintf(&sb, "%s %s\n", padRight(label, 14), value)
	}
	row("Total", fmt.Sprint(s.Total))
	row(StatusBadge(models.StatusTodo), fmt.Sprint(s.Todo))
	row(StatusBadge(models.StatusInProgress), fmt.Sprint(s.InProgress))
	row(StatusBadge(models.StatusCompleted), fmt.Sprint(s.Completed))
	overdue := fmt.Sprint(s.Overdue)
	if s.Overdue > 0 {
		overdue = StyleOverdue.Render(overdue)
	}
	row("Overdue", overdue)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %d%%", bar, s.CompletionRate())

	return NewPanel("Task statistics", sb.String()).WithWidth(48).Render()
}
