package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jlbarros/tasko/core"
)

// FakeStorage is a test-only fake implementing core.StorageAdapter.
// It stores rows in maps and exposes error fields for behavior
// injection.
type FakeStorage struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]*core.User
	tasks  map[int64]*core.Task
	nextID int64

	createUserErr error
	getUserErr    error
	createTaskErr error
	taskErr       error
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		users:  make(map[uuid.UUID]*core.User),
		tasks:  make(map[int64]*core.Task),
		nextID: 1,
	}
}

func (f *FakeStorage) CreateUser(ctx context.Context, u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createUserErr != nil {
		return f.createUserErr
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *FakeStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *FakeStorage) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeStorage) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return core.ErrUserNotFound
	}
	u.LastLoginAt = &at
	u.UpdatedAt = at
	return nil
}

func (f *FakeStorage) CreateTask(ctx context.Context, t *core.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createTaskErr != nil {
		return f.createTaskErr
	}

	now := time.Now().UTC()
	t.ID = f.nextID
	f.nextID++
	t.CreatedAt = now
	t.UpdatedAt = now
	clone := *t
	f.tasks[t.ID] = &clone
	return nil
}

func (f *FakeStorage) ListTasks(ctx context.Context, ownerID uuid.UUID, page, limit int) (*core.TaskPage, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.taskErr != nil {
		return nil, f.taskErr
	}

	var owned []*core.Task
	for _, t := range f.tasks {
		if t.UserID == ownerID {
			clone := *t
			owned = append(owned, &clone)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })

	total := len(owned)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &core.TaskPage{
		Tasks: owned[start:end],
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

// find is the single ownership predicate: a task under a different
// owner is reported exactly like a missing one.
func (f *FakeStorage) find(ownerID uuid.UUID, taskID int64) (*core.Task, error) {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != ownerID {
		return nil, core.ErrTaskNotFound
	}
	return t, nil
}

func (f *FakeStorage) GetTask(ctx context.Context, ownerID uuid.UUID, taskID int64) (*core.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.taskErr != nil {
		return nil, f.taskErr
	}
	t, err := f.find(ownerID, taskID)
	if err != nil {
		return nil, err
	}
	clone := *t
	return &clone, nil
}

func (f *FakeStorage) UpdateTask(ctx context.Context, ownerID uuid.UUID, taskID int64, patch core.TaskPatch) (*core.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taskErr != nil {
		return nil, f.taskErr
	}
	t, err := f.find(ownerID, taskID)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now().UTC()
	clone := *t
	return &clone, nil
}

func (f *FakeStorage) DeleteTask(ctx context.Context, ownerID uuid.UUID, taskID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taskErr != nil {
		return false, f.taskErr
	}
	if _, err := f.find(ownerID, taskID); err != nil {
		return false, err
	}
	delete(f.tasks, taskID)
	return true, nil
}

func (f *FakeStorage) SetTaskCompleted(ctx context.Context, ownerID uuid.UUID, taskID int64, completed bool) (*core.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taskErr != nil {
		return nil, f.taskErr
	}
	t, err := f.find(ownerID, taskID)
	if err != nil {
		return nil, err
	}
	t.Completed = completed
	t.UpdatedAt = time.Now().UTC()
	clone := *t
	return &clone, nil
}

// allowAllThrottle is a pass-through core.LoginThrottle for tests that
// don't exercise rate limiting.
type allowAllThrottle struct{}

func (allowAllThrottle) Allow(string) bool { return true }
func (allowAllThrottle) Reset(string)      {}
