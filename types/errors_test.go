package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskError(t *testing.T) {
	err := NewTaskError(ErrTaskNotFound, `Task with ID "abc" not found`, map[string]interface{}{"id": "abc"})

	assert.Equal(t, `TASK_NOT_FOUND: Task with ID "abc" not found`, err.Error())
	assert.Equal(t, "abc", err.Details["id"])
}

func TestTaskError_Is(t *testing.T) {
	wrapped := fmt.Errorf("show: %w", NewTaskError(ErrAmbiguousID, "ambiguous", nil))

	assert.True(t, errors.Is(wrapped, &TaskError{Code: ErrAmbiguousID}))
	assert.False(t, errors.Is(wrapped, &TaskError{Code: ErrTaskNotFound}))
	assert.False(t, errors.Is(wrapped, errors.New("ambiguous")))

	var te *TaskError
	assert.True(t, errors.As(wrapped, &te))
	assert.Equal(t, ErrAmbiguousID, te.Code)
}
