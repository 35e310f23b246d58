package task

import (
	"fmt"

	"github.com/josephgoksu/tasktrack/types"
)

// Result is the uniform outcome of every service operation. Callers branch
// on Success and show Message; Code and Error are set on failure.
type Result[T any] struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    T               `json:"data,omitempty"`
	Code    types.ErrorCode `json:"code,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Err converts a failed result into a *types.TaskError. It returns nil for
// successful results.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	var details map[string]interface{}
	if r.Error != "" {
		details = map[string]interface{}{"error": r.Error}
	}
	return types.NewTaskError(r.Code, r.Message, details)
}

func succeed[T any](data T, format string, args ...any) Result[T] {
	return Result[T]{
		Success: true,
		Message: fmt.Sprintf(format, args...),
		Data:    data,
	}
}

func fail[T any](code types.ErrorCode, message string, err error) Result[T] {
	res := Result[T]{
		Success: false,
		Message: message,
		Code:    code,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}
