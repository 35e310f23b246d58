package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/tasktrack/models"
	"github.com/josephgoksu/tasktrack/types"
)

// dateLayouts are tried in order by parseDate. Layouts without a zone are
// read in local time. The first one is the date-only layout.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
}

// parseDate reads a user supplied date. Besides the layouts above it accepts
// "today" and "tomorrow" (local midnight).
func parseDate(raw string, now time.Time) (time.Time, error) {
	t, _, err := parseDateValue(raw, now)
	return t, err
}

// parseDateBound reads a filter bound. An upper bound given as a whole day
// (a date without a time, today or tomorrow) covers that entire day.
func parseDateBound(raw string, now time.Time, upper bool) (time.Time, error) {
	t, wholeDay, err := parseDateValue(raw, now)
	if err != nil {
		return time.Time{}, err
	}
	if upper && wholeDay {
		return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return t, nil
}

// parseDateValue does the parsing for parseDate. The bool reports whether
// the input named a whole day rather than an instant.
func parseDateValue(raw string, now time.Time) (time.Time, bool, error) {
	value := strings.TrimSpace(raw)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch strings.ToLower(value) {
	case "":
		return time.Time{}, false, fmt.Errorf("date cannot be empty")
	case "today":
		return midnight, true, nil
	case "tomorrow":
		return midnight.AddDate(0, 0, 1), true, nil
	}

	for i, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, now.Location()); err == nil {
			return t, i == 0, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q (use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\", RFC 3339, today or tomorrow)", raw)
}

// parseStatusArg converts user input into a status, reporting INVALID_STATUS.
func parseStatusArg(raw string) (models.TaskStatus, error) {
	status, err := models.ParseStatus(raw)
	if err != nil {
		return "", types.NewTaskError(types.ErrInvalidStatus, err.Error(), nil)
	}
	return status, nil
}
