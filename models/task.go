package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// AllStatuses lists the statuses in workflow order.
func AllStatuses() []TaskStatus {
	return []TaskStatus{StatusTodo, StatusInProgress, StatusCompleted}
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus converts user input into a TaskStatus.
// Matching is case-insensitive and accepts a few common aliases.
func ParseStatus(raw string) (TaskStatus, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch key {
	case "todo", "pending", "open":
		return StatusTodo, nil
	case "in_progress", "inprogress", "doing", "started", "wip":
		return StatusInProgress, nil
	case "completed", "complete", "done", "finished":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("unknown status %q (expected one of: todo, in-progress, completed)", raw)
}

// Task represents a unit of work.
type Task struct {
	ID          string     `json:"id" yaml:"id" toml:"id" validate:"required"`
	Title       string     `json:"title" yaml:"title" toml:"title" validate:"required,notblank"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Status      TaskStatus `json:"status" yaml:"status" toml:"status" validate:"required,oneof=TODO IN_PROGRESS COMPLETED"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt" toml:"createdAt" validate:"required"`
	UpdatedAt   time.Time  `json:"updatedAt" yaml:"updatedAt" toml:"updatedAt" validate:"required"`
	DueDate     *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty" toml:"dueDate,omitempty"`
}

// HasDescription reports whether the task carries a non-blank description.
func (t Task) HasDescription() bool {
	return strings.TrimSpace(t.Description) != ""
}

// IsOverdue reports whether the task has a due date strictly before now
// and is not yet completed.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

// TaskList is the document wrapper used by formats that cannot hold a
// top-level array (TOML).
type TaskList struct {
	Tasks []Task `json:"tasks" yaml:"tasks" toml:"tasks" validate:"dive"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var errorMessages []string
	for _, e := range validationErrors {
		errorMessages = append(errorMessages, fmt.Sprintf("validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
}
