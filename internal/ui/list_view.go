package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/tasktrack/internal/util"
	"github.com/josephgoksu/tasktrack/models"
)

// RenderTaskList renders tasks grouped by status. Verbose mode switches to a
// single table with timestamps and descriptions. Input order is kept inside
// each group.
func RenderTaskList(tasks []models.Task, now time.Time, verbose bool) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render("No tasks found.") + "\n"
	}

	byStatus := make(map[models.TaskStatus][]models.Task)
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}

	var counts []string
	for _, s := range models.AllStatuses() {
		if n := len(byStatus[s]); n > 0 {
			counts = append(counts, fmt.Sprintf("%s %d", StatusStyle(s).Render(StatusIcon(s)), n))
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, " Tasks: %d (%s)\n", len(tasks), strings.Join(counts, " • "))
	sb.WriteString(StyleSubtle.Render(strings.Repeat("─", min(TerminalWidth(50), 72))) + "\n")

	if verbose {
		sb.WriteString(renderVerboseTable(tasks, now))
		return sb.String()
	}
	sb.WriteString(renderCompactList(byStatus, now))
	return sb.String()
}

// renderCompactList renders tasks as bullet lists under a header per status.
func renderCompactList(byStatus map[models.TaskStatus][]models.Task, now time.Time) string {
	var sb strings.Builder
	for _, s := range models.AllStatuses() {
		group := byStatus[s]
		if len(group) == 0 {
			continue
		}

		sb.WriteString(StyleHeader.Render(StatusBadge(s)) + "\n")
		for _, t := range group {
			line := fmt.Sprintf(" • %s  %s", StyleSubtle.Render(util.ShortID(t.ID, 0)), StyleTitle.Render(t.Title))
			if t.DueDate != nil {
				line += "  " + DueLabel(t, now)
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderVerboseTable renders every task as one table row with full metadata.
func renderVerboseTable(tasks []models.Task, now time.Time) string {
	table := &Table{
		Headers:  []string{"ID", "Status", "Title", "Due", "Created", "Description"},
		MaxWidth: 40,
	}
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = FormatDate(*t.DueDate)
			if t.IsOverdue(now) {
				due += " !"
			}
		}
		desc := t.Description
		if desc == "" {
			desc = "-"
		}
		table.Rows = append(table.Rows, []string{
			t.ID,
			StatusLabel(t.Status),
			t.Title,
			due,
			t.CreatedAt.Local().Format("Jan 02 15:04"),
			strings.ReplaceAll(desc, "\n", " "),
		})
	}
	return table.Render()
}
