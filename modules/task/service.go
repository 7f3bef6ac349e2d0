package task

import (
	"context"
	"time"

	domain "github.com/example/taskmaster/domain/task"
	"github.com/go-monolith/mono/pkg/types"
)

// Service handles task business logic: validation, existence checks and
// partial update construction.
type Service struct {
	store  Store
	logger types.Logger
	now    func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceClock sets the clock used for updated_at.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new Service.
func NewService(store Store, logger types.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddTask validates and stores a new task, returning its ID.
func (s *Service) AddTask(ctx context.Context, in domain.NewTask) (int64, error) {
	if in.Title == "" {
		return 0, domain.ErrEmptyTitle
	}
	if !domain.ValidPriority(in.Priority) {
		return 0, domain.ErrInvalidPriority
	}
	if !domain.ValidateDueDate(in.DueDate) {
		return 0, domain.ErrInvalidDueDate
	}

	t := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	}
	// An empty due date means "no due date".
	if t.DueDate != nil && *t.DueDate == "" {
		t.DueDate = nil
	}

	id, err := s.store.Insert(ctx, t)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("Task added", "id", id, "title", t.Title)
	return id, nil
}

// ListTasks returns every task in ID order. Store failures are returned, not
// hidden behind an empty list.
func (s *Service) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.store.GetAll(ctx)
}

// GetTask returns a single task or ErrNotFound.
func (s *Service) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// DeleteTask removes a task. It returns ErrNotFound if the task does not exist.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	existed, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return domain.ErrNotFound
	}
	s.logger.Debug("Task deleted", "id", id)
	return nil
}

// UpdateTask applies the supplied fields of changes to a task. Fields left
// nil keep their stored values; updated_at is always refreshed.
func (s *Service) UpdateTask(ctx context.Context, id int64, changes domain.Changes) error {
	if changes.Title != nil && *changes.Title == "" {
		return domain.ErrEmptyTitle
	}
	if changes.Priority != nil && !domain.ValidPriority(*changes.Priority) {
		return domain.ErrInvalidPriority
	}
	if !domain.ValidateDueDate(changes.DueDate) {
		return domain.ErrInvalidDueDate
	}

	cmd, ok := BuildPartialUpdate(id, changes, s.now())
	if !ok {
		return domain.ErrNoFieldsProvided
	}

	existed, err := s.store.ExecuteUpdate(ctx, cmd)
	if err != nil {
		return err
	}
	if !existed {
		return domain.ErrNotFound
	}
	s.logger.Debug("Task updated", "id", id, "fields", len(cmd.Set))
	return nil
}

// BuildPartialUpdate turns a sparse patch into an update command.
//
// Only supplied fields are assigned, in declaration order, and updated_at is
// set to now. It returns false when no field was supplied.
func BuildPartialUpdate(id int64, changes domain.Changes, now time.Time) (domain.UpdateCommand, bool) {
	if changes.IsEmpty() {
		return domain.UpdateCommand{}, false
	}
	return domain.UpdateCommand{ID: id, Set: changes.Assignments(), UpdatedAt: now}, true
}
