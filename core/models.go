package core

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account in the system
//
// This is the sole root of task ownership: every task query is
// filtered by the owning user's ID.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"` // Never expose in JSON
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

// Task represents a single todo item owned by a user
type Task struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TokenClaims is the identity carried inside a signed access token.
// It exists only for the lifetime of the token string; no server-side
// session store backs it.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	Name      string
	ExpiresAt time.Time
}

// RegisterInput contains the data needed to register a new user
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginInput contains the credentials for authentication
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult contains the authenticated user and their access token
type LoginResult struct {
	User        *User
	AccessToken string
	TokenType   string // always "bearer"
	ExpiresIn   int64  // seconds until the token expires
}

// TaskInput contains the fields a client may set when creating a task
type TaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
}

// TaskPatch contains the optional fields of a partial task update.
// Nil fields are left untouched.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// TaskPage is one page of a user's task list plus the data needed to
// build the pagination envelope.
type TaskPage struct {
	Tasks []*Task
	Page  int
	Limit int
	Total int
}

// HasNext reports whether another page of tasks follows this one.
func (p *TaskPage) HasNext() bool {
	return p.Page*p.Limit < p.Total
}

// HasPrev reports whether a page of tasks precedes this one.
func (p *TaskPage) HasPrev() bool {
	return p.Page > 1
}
