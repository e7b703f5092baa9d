package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jlbarros/tasko/core"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// TaskService implements ownership-scoped CRUD over tasks. Callers
// pass the resolved owner ID on every operation; the storage layer
// filters by it so an ownership mismatch is indistinguishable from a
// missing task.
type TaskService struct {
	db core.TaskStorage
}

func NewTaskService(db core.TaskStorage) *TaskService {
	return &TaskService{db: db}
}

// Create adds a task bound to the owner, completed defaulting to false
// unless the input sets it.
func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, input core.TaskInput) (*core.Task, error) {
	if err := core.ValidateTitle(input.Title); err != nil {
		return nil, err
	}

	task := &core.Task{
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	}

	if err := s.db.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// List returns one page of the owner's tasks in insertion order.
func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID, page, limit int) (*core.TaskPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	result, err := s.db.ListTasks(ctx, ownerID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return result, nil
}

// Get returns the owner's task or core.ErrTaskNotFound.
func (s *TaskService) Get(ctx context.Context, ownerID uuid.UUID, taskID int64) (*core.Task, error) {
	return s.db.GetTask(ctx, ownerID, taskID)
}

// Update applies the non-nil fields of patch and refreshes updated_at.
func (s *TaskService) Update(ctx context.Context, ownerID uuid.UUID, taskID int64, patch core.TaskPatch) (*core.Task, error) {
	if patch.Title != nil {
		if err := core.ValidateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}
	return s.db.UpdateTask(ctx, ownerID, taskID, patch)
}

// Delete removes the owner's task permanently. Returns false with
// core.ErrTaskNotFound whether the task is missing or owned by
// someone else.
func (s *TaskService) Delete(ctx context.Context, ownerID uuid.UUID, taskID int64) (bool, error) {
	return s.db.DeleteTask(ctx, ownerID, taskID)
}

// SetCompleted sets the completed flag to the given value (not a flip)
// and refreshes updated_at. Calling it twice with the same value is
// idempotent apart from the timestamp.
func (s *TaskService) SetCompleted(ctx context.Context, ownerID uuid.UUID, taskID int64, completed bool) (*core.Task, error) {
	return s.db.SetTaskCompleted(ctx, ownerID, taskID, completed)
}
