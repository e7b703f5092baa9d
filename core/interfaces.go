package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORTS (Database operations)
// ============================================

// UserStorage defines user-related database operations
type UserStorage interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// TaskStorage defines task-related database operations.
//
// Every method takes the owning user's ID and filters by it in addition
// to any task ID. A task ID alone never authorizes access: a row owned
// by someone else is reported exactly like a row that does not exist.
type TaskStorage interface {
	CreateTask(ctx context.Context, t *Task) error
	ListTasks(ctx context.Context, ownerID uuid.UUID, page, limit int) (*TaskPage, error)
	GetTask(ctx context.Context, ownerID uuid.UUID, taskID int64) (*Task, error)
	UpdateTask(ctx context.Context, ownerID uuid.UUID, taskID int64, patch TaskPatch) (*Task, error)
	DeleteTask(ctx context.Context, ownerID uuid.UUID, taskID int64) (bool, error)
	SetTaskCompleted(ctx context.Context, ownerID uuid.UUID, taskID int64, completed bool) (*Task, error)
}

type StorageAdapter interface {
	UserStorage
	TaskStorage
}

// ============================================
// SECURITY PORTS
// ============================================

// PasswordHandler hashes and verifies passwords with a memory-hard,
// salted algorithm. The salt is embedded in the returned digest.
type PasswordHandler interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenCodec issues and verifies stateless signed access tokens.
// Verify collapses every failure mode (bad signature, malformed
// structure, missing claims, expiry) into ErrInvalidToken.
type TokenCodec interface {
	Issue(user *User, now time.Time) (token string, expiresAt time.Time, err error)
	Verify(token string, now time.Time) (*TokenClaims, error)
}

// LoginThrottle is a sliding-window attempt counter keyed by identity.
// Allow records the attempt and reports whether it may proceed; Reset
// clears the identity's window after a successful authentication.
type LoginThrottle interface {
	Allow(identity string) bool
	Reset(identity string)
}
