package engine

import (
	"sync"
	"time"
)

// Clock abstracts the monotonic time source used by the loop and throttles so tests can
// control time deterministically.
type Clock interface {
	// Now returns the current time.
	//
	// Returns:
	//   - time.Time: the current time
	Now() time.Time
}

// SystemClock is the wall-clock implementation of Clock backed by time.Now.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock is a manually driven Clock for tests and offline rendering.
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockClock creates a MockClock frozen at start.
//
// Parameters:
//   - start: the initial time
//
// Returns:
//   - *MockClock: the new clock
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{current: start}
}

// Now returns the mocked time.
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set moves the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}
