/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import "fmt"

// ErrorCode classifies failures returned by the task service.
type ErrorCode string

const (
	ErrInvalidTitle  ErrorCode = "INVALID_TITLE"
	ErrTaskNotFound  ErrorCode = "TASK_NOT_FOUND"
	ErrInvalidStatus ErrorCode = "INVALID_STATUS"
	ErrAmbiguousID   ErrorCode = "AMBIGUOUS_ID"
	ErrPersistence   ErrorCode = "PERSISTENCE_ERROR"
	ErrUnexpected    ErrorCode = "UNEXPECTED_ERROR"
)

// TaskError provides structured error information for service failures.
type TaskError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any *TaskError carrying the same code, so callers can write
// errors.Is(err, &types.TaskError{Code: types.ErrTaskNotFound}).
func (e *TaskError) Is(target error) bool {
	t, ok := target.(*TaskError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewTaskError creates a new structured task error.
func NewTaskError(code ErrorCode, message string, details map[string]interface{}) *TaskError {
	return &TaskError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
