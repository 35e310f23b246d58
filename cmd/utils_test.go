package cmd

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/josephgoksu/tasktrack/models"
	"github.com/josephgoksu/tasktrack/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, 6, 15, 18, 45, 0, 0, loc)

	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{input: "2024-07-01", want: time.Date(2024, 7, 1, 0, 0, 0, 0, loc)},
		{input: " 2024-07-01 09:30 ", want: time.Date(2024, 7, 1, 9, 30, 0, 0, loc)},
		{input: "2024-07-01T09:30", want: time.Date(2024, 7, 1, 9, 30, 0, 0, loc)},
		{input: "2024-07-01T09:30:00Z", want: time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)},
		{input: "today", want: time.Date(2024, 6, 15, 0, 0, 0, 0, loc)},
		{input: "Tomorrow", want: time.Date(2024, 6, 16, 0, 0, 0, 0, loc)},
		{input: "", wantErr: true},
		{input: "2024-13-01", wantErr: true},
		{input: "01/07/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDate(tt.input, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestParseDateBound(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, 6, 15, 18, 45, 0, 0, loc)
	endOfDay := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
	}

	tests := []struct {
		input string
		upper bool
		want  time.Time
	}{
		{input: "2024-07-01", upper: true, want: endOfDay(2024, 7, 1)},
		{input: "today", upper: true, want: endOfDay(2024, 6, 15)},
		{input: "tomorrow", upper: true, want: endOfDay(2024, 6, 16)},
		{input: "2024-07-01 09:30", upper: true, want: time.Date(2024, 7, 1, 9, 30, 0, 0, loc)},
		{input: "2024-07-01", upper: false, want: time.Date(2024, 7, 1, 0, 0, 0, 0, loc)},
		{input: "today", upper: false, want: time.Date(2024, 6, 15, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/upper=%t", tt.input, tt.upper), func(t *testing.T) {
			got, err := parseDateBound(tt.input, now, tt.upper)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}

	_, err := parseDateBound("soon", now, true)
	assert.Error(t, err)
}

func TestParseStatusArg(t *testing.T) {
	status, err := parseStatusArg("In Progress")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, status)

	_, err = parseStatusArg("archived")
	assert.True(t, errors.Is(err, &types.TaskError{Code: types.ErrInvalidStatus}))
}
