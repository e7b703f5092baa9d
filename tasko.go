// Package tasko wires the task-management backend together: storage,
// password hashing, token issuance, login throttling and the services
// built on top of them.
package tasko

import (
	"fmt"
	"time"

	"github.com/jlbarros/tasko/core"
	"github.com/jlbarros/tasko/crypto"
	"github.com/jlbarros/tasko/pkg/throttle"
	"github.com/jlbarros/tasko/services"
)

const minSecretLen = 32

// Config collects the dependencies and knobs for a Tasko instance.
// Secrets are passed here explicitly; no component reads ambient
// configuration on its own.
type Config struct {
	Secret string

	Database core.StorageAdapter

	// Optional config
	PasswordHasher core.PasswordHandler
	Tokens         core.TokenCodec
	Throttle       core.LoginThrottle
	TokenTTL       time.Duration
}

// Tasko holds the assembled services ready to be mounted by an HTTP
// adapter.
type Tasko struct {
	Auth  *services.AuthService
	Tasks *services.TaskService
}

func New(config Config) (*Tasko, error) {
	if config.Secret == "" {
		return nil, core.ErrSecretRequired
	}
	if len(config.Secret) < minSecretLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", core.ErrSecretTooShort, minSecretLen)
	}
	if config.Database == nil {
		return nil, core.ErrStorageRequired
	}

	// Set Defaults

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewArgon2()
	}

	tokens := config.Tokens
	if tokens == nil {
		tokens = crypto.NewJWTCodec(config.Secret, config.TokenTTL)
	}

	loginThrottle := config.Throttle
	if loginThrottle == nil {
		loginThrottle = throttle.NewMemory(throttle.Config{})
	}

	return &Tasko{
		Auth:  services.NewAuthService(config.Database, passwordHasher, tokens, loginThrottle),
		Tasks: services.NewTaskService(config.Database),
	}, nil
}
