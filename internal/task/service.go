package task

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/josephgoksu/tasktrack/internal/util"
	"github.com/josephgoksu/tasktrack/models"
	"github.com/josephgoksu/tasktrack/store"
	"github.com/josephgoksu/tasktrack/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoadState tracks whether the in-memory collection has been populated.
type LoadState int

const (
	StateUninitialized LoadState = iota
	StateLoaded
)

func (s LoadState) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "uninitialized"
}

// CreateTaskInput carries the caller-supplied fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// TaskPatch lists the fields to change. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	DueDate     *time.Time
	// ClearDueDate removes the due date. It wins over DueDate.
	ClearDueDate bool
}

// Service encapsulates all business logic for managing tasks.
// It owns the in-memory collection and writes the whole collection back to
// the store after every mutation. If a save fails the in-memory change is
// kept and the operation reports PERSISTENCE_ERROR.
type Service struct {
	mu    sync.Mutex
	store store.TaskStore
	tasks []models.Task
	state LoadState
	now   func() time.Time
	newID func(time.Time) string
	log   zerolog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides task ID generation.
func WithIDGenerator(gen func(time.Time) string) ServiceOption {
	return func(s *Service) { s.newID = gen }
}

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *Service) { s.log = l }
}

// NewService creates a new Task Service backed by st. Nothing is read until
// Initialize or the first operation.
func NewService(st store.TaskStore, opts ...ServiceOption) *Service {
	s := &Service{
		store: st,
		now:   time.Now,
		newID: util.NewTaskID,
		log:   log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "task").Logger()
	return s
}

// State returns the current load state.
func (s *Service) State() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Initialize loads the collection from the store. Calls after the first
// successful load are no-ops.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoaded(ctx)
}

// Reload discards the in-memory collection and reads the store again.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateUninitialized
	s.tasks = nil
	return s.ensureLoaded(ctx)
}

// ensureLoaded must be called with s.mu held.
func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.state == StateLoaded {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.tasks = s.store.Load(ctx)
	s.state = StateLoaded
	s.log.Debug().Int("tasks", len(s.tasks)).Msg("task collection loaded")
	return nil
}

// persist must be called with s.mu held.
func (s *Service) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.tasks); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist tasks; in-memory state kept")
		return err
	}
	return nil
}

func (s *Service) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

// recoverInto converts a panic inside an operation into a failed result.
func recoverInto[T any](res *Result[T], op string, l zerolog.Logger) {
	if r := recover(); r != nil {
		err := fmt.Errorf("%v", r)
		l.Error().Err(err).Str("op", op).Msg("recovered from panic")
		*res = fail[T](types.ErrUnexpected, fmt.Sprintf("Unexpected error while trying to %s", op), err)
	}
}

func loadFailure[T any](err error) Result[T] {
	return fail[T](types.ErrUnexpected, "Failed to load tasks", err)
}

func notFound[T any](id string) Result[T] {
	return fail[T](types.ErrTaskNotFound, fmt.Sprintf("Task with ID %q not found", id), nil)
}

// CreateTask validates input, assigns an ID and timestamps, appends the task
// and persists the collection.
func (s *Service) CreateTask(ctx context.Context, input CreateTaskInput) (res Result[models.Task]) {
	defer recoverInto(&res, "create task", s.log)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return loadFailure[models.Task](err)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return fail[models.Task](types.ErrInvalidTitle, "Task title cannot be empty", nil)
	}

	now := s.now()
	task := models.Task{
		ID:          s.newID(now),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      models.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.DueDate != nil {
		due := *input.DueDate
		task.DueDate = &due
	}
	if err := models.ValidateStruct(task); err != nil {
		return fail[models.Task](types.ErrUnexpected, "Task failed validation", err)
	}

	s.tasks = append(s.tasks, task)
	if err := s.persist(ctx); err != nil {
		return fail[models.Task](types.ErrPersistence, "Failed to save task", err)
	}

	s.log.Debug().Str("id", task.ID).Msg("task created")
	return succeed(task.Clone(), "Task %q created", task.Title)
}

// GetAllTasks returns a filtered copy of the collection, newest first.
func (s *Service) GetAllTasks(ctx context.Context, filter *Filter) (res Result[[]models.Task]) {
	defer recoverInto(&res, "list tasks", s.log)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return loadFailure[[]models.Task](err)
	}

	tasks := ApplyFilters(s.tasks, filter)
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return succeed(tasks, "Found %d task(s)", len(tasks))
}

// GetTaskByID returns the task with the exact given ID.
func (s *Service) GetTaskByID(ctx context.Context, id string) (res Result[models.Task]) {
	defer recoverInto(&res, "get task", s.log)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return loadFailure[models.Task](err)
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return notFound[models.Task](id)
	}
	return succeed(s.tasks[idx].Clone(), "Task found")
}

// FindTaskIDsByPrefix returns the IDs starting with prefix.
// It implements util.IDPrefixResolver.
func (s *Service) FindTaskIDsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	var ids []string
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, prefix) {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

// ResolveTaskID expands a unique ID prefix to the full task ID.
func (s *Service) ResolveTaskID(ctx context.Context, idOrPrefix string) (res Result[string]) {
	defer recoverInto(&res, "resolve task ID", s.log)

	id, err := util.ResolveTaskID(ctx, s, idOrPrefix)
	switch {
	case err == nil:
		return succeed(id, "Task ID resolved")
	case errors.Is(err, util.ErrNotFound):
		return fail[string](types.ErrTaskNotFound, fmt.Sprintf("Task with ID %q not found", idOrPrefix), err)
	case errors.Is(err, util.ErrAmbiguousID):
		return fail[string](types.ErrAmbiguousID, fmt.Sprintf("Task ID %q is ambiguous", idOrPrefix), err)
	default:
		return loadFailure[string](err)
	}
}

// UpdateTask merges the provided fields into the task, refreshes UpdatedAt
// and persists. Validation happens before anything is changed.
func (s *Service) UpdateTask(ctx context.Context, id string, patch TaskPatch) (res Result[models.Task]) {
	defer recoverInto(&res, "update task", s.log)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return loadFailure[models.Task](err)
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return notFound[models.Task](id)
	}

	var title string
	if patch.Title != nil {
		title = strings.TrimSpace(*patch.Title)
		if title == "" {
			return fail[models.Task](types.ErrInvalidTitle, "Task title cannot be empty", nil)
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return fail[models.Task](types.ErrInvalidStatus, fmt.Sprintf("Invalid status %q", *patch.Status), nil)
	}

	task := s.tasks[idx].Clone()
	if patch.Title != nil {
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	switch {
	case patch.ClearDueDate:
		task.DueDate = nil
	case patch.DueDate != nil:
		due := *patch.DueDate
		task.DueDate = &due
	}
	task.UpdatedAt = s.now()

	s.tasks[idx] = task
	if err := s.persist(ctx); err != nil {
		return fail[models.Task](types.ErrPersistence, "Failed to save task", err)
	}

	s.log.Debug().Str("id", task.ID).Msg("task updated")
	return succeed(task.Clone(), "Task %q updated", task.Title)
}

// UpdateTaskStatus changes only the status of a task.
func (s *Service) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) Result[models.Task] {
	return s.UpdateTask(ctx, id, TaskPatch{Status: &status})
}

// DeleteTask removes the task and persists the collection.
func (s *Service) DeleteTask(ctx context.Context, id string) (res Result[bool]) {
	defer recoverInto(&res, "delete task", s.log)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return loadFailure[bool](err)
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return notFound[bool](id)
	}

	title := s.tasks[idx].Title
	s.tasks = slices.Delete(s.tasks, idx, idx+1)
	if err := s.persist(ctx); err != nil {
		return fail[bool](types.ErrPersistence, "Failed to save tasks", err)
	}

	s.log.Debug().Str("id", id).Msg("task deleted")
	return succeed(true, "Task %q deleted", title)
}

// GetTaskStats counts tasks by status and overdue state.
func (s *Service) GetTaskStats(ctx context.Context) (res Result[Stats]) {
	defer recoverInto(&res, "compute statistics", s.log)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return loadFailure[Stats](err)
	}
	return succeed(ComputeStats(s.tasks, s.now()), "Statistics computed")
}
