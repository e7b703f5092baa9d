// Package throttle provides an in-process sliding-window counter for
// login attempts.
//
// The window state lives entirely in process memory: a restart clears
// it and multiple instances each keep their own counts. That is a
// documented limitation of this component, not something callers need
// to work around. The core.LoginThrottle port exists so a distributed
// implementation can replace this one without touching call sites.
package throttle

import (
	"sync"
	"time"

	"github.com/jlbarros/tasko/core"
)

const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 300 * time.Second
)

// Config configures the throttle window
type Config struct {
	MaxAttempts int
	Window      time.Duration
}

// Ensure Memory implements core.LoginThrottle
var _ core.LoginThrottle = (*Memory)(nil)

// Memory is a mutex-guarded map from identity to the timestamps of its
// recent attempts. The single lock serializes concurrent checks for
// the same identity; two racing attempts can never both observe
// "under ceiling" and slip past the limit.
type Memory struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	maxAttempts int
	window      time.Duration

	now func() time.Time // test hook
}

// NewMemory creates a new in-memory throttle
func NewMemory(c Config) *Memory {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}

	return &Memory{
		attempts:    make(map[string][]time.Time),
		maxAttempts: c.MaxAttempts,
		window:      c.Window,
		now:         time.Now,
	}
}

// Allow prunes timestamps older than the window, then tests the count
// against the ceiling. Under the ceiling the attempt is recorded and
// allowed, whether or not the credentials later turn out to be valid.
// At or over the ceiling it is rejected without being recorded.
func (m *Memory) Allow(identity string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-m.window)

	kept := m.attempts[identity][:0]
	for _, at := range m.attempts[identity] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}

	if len(kept) >= m.maxAttempts {
		m.attempts[identity] = kept
		return false
	}

	m.attempts[identity] = append(kept, now)
	return true
}

// Reset clears the identity's window. Called after a successful
// authentication so legitimate users are not penalized for earlier
// failures.
func (m *Memory) Reset(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.attempts, identity)
}

// Len returns the number of identities currently tracked.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.attempts)
}
