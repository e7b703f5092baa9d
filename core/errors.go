package core

import "errors"

// Validation errors (client input)
var (
	ErrInvalidEmail       = errors.New("Invalid email format")                                     // 400
	ErrPasswordTooShort   = errors.New("Password must be at least 8 characters long")              // 400
	ErrPasswordTooLong    = errors.New("Password must be less than 128 characters")                // 400
	ErrPasswordNoUpper    = errors.New("Password must contain at least one uppercase letter")      // 400
	ErrPasswordNoLower    = errors.New("Password must contain at least one lowercase letter")      // 400
	ErrPasswordNoDigit    = errors.New("Password must contain at least one digit")                 // 400
	ErrPasswordNoSymbol   = errors.New("Password must contain at least one special character")     // 400
	ErrNameRequired       = errors.New("Name is required")                                         // 400
	ErrNameTooLong        = errors.New("Name must be less than 100 characters")                    // 400
	ErrTitleRequired      = errors.New("Title is required")                                        // 400
	ErrTitleTooLong       = errors.New("Title must be less than 255 characters")                   // 400
)

// Authentication errors. Credential failures are deliberately coarse:
// "no such user" and "wrong password" both surface as ErrInvalidCredentials.
var (
	ErrInvalidCredentials = errors.New("Incorrect email or password")       // 401
	ErrMissingAuthHeader  = errors.New("Missing authentication credentials") // 401
	ErrInvalidToken       = errors.New("Could not validate credentials")     // 401
	ErrInactiveUser       = errors.New("Inactive user")                      // 401
)

// Conflict and rate-limit errors
var (
	ErrEmailTaken  = errors.New("Email already registered")                        // 409
	ErrRateLimited = errors.New("Too many login attempts. Please try again later.") // 429
)

// Not-found errors. ErrTaskNotFound covers both a missing row and an
// ownership mismatch so task IDs cannot be enumerated.
var (
	ErrUserNotFound = errors.New("User not found")                            // 404 internally, 401 at the gate
	ErrTaskNotFound = errors.New("Task not found or user doesn't own the task") // 404
)

// Config errors (server-side configuration)
var (
	ErrSecretRequired  = errors.New("secret is required")          // 500
	ErrSecretTooShort  = errors.New("secret too short")            // 500
	ErrStorageRequired = errors.New("storage adapter is required") // 500
)
