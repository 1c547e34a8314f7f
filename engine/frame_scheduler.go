package engine

import (
	"slices"
	"sync"
	"time"
)

// FrameCallback is invoked once per display refresh with the time elapsed since the
// scheduler started.
type FrameCallback func(timestamp time.Duration)

// FrameHandle identifies a pending frame callback so it can be revoked. The zero handle is never issued.
type FrameHandle uint64

// FrameScheduler is the display-refresh callback mechanism. A requested callback runs at most
// once, on the next refresh; callers that want a continuous loop request again from inside the callback.
type FrameScheduler interface {
	// RequestFrame schedules cb for the next display refresh.
	//
	// Parameters:
	//   - cb: the callback to run
	//
	// Returns:
	//   - FrameHandle: the handle that revokes this request via CancelFrame
	RequestFrame(cb FrameCallback) FrameHandle

	// CancelFrame revokes a pending request. Unknown or already fired handles are ignored.
	//
	// Parameters:
	//   - h: the handle returned by RequestFrame
	CancelFrame(h FrameHandle)
}

// frameQueue is the pending callback set shared by Loop and ManualScheduler.
type frameQueue struct {
	mu        *sync.Mutex
	next      FrameHandle
	callbacks map[FrameHandle]FrameCallback
}

func newFrameQueue() frameQueue {
	return frameQueue{
		mu:        &sync.Mutex{},
		callbacks: make(map[FrameHandle]FrameCallback),
	}
}

func (q *frameQueue) request(cb FrameCallback) FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.callbacks[q.next] = cb
	return q.next
}

func (q *frameQueue) cancel(h FrameHandle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.callbacks, h)
}

// take removes and returns every pending callback in request order. Callbacks requested
// while the batch runs land in the next batch.
func (q *frameQueue) take() []FrameCallback {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.callbacks) == 0 {
		return nil
	}
	handles := make([]FrameHandle, 0, len(q.callbacks))
	for h := range q.callbacks {
		handles = append(handles, h)
	}
	slices.Sort(handles)
	batch := make([]FrameCallback, 0, len(handles))
	for _, h := range handles {
		batch = append(batch, q.callbacks[h])
		delete(q.callbacks, h)
	}
	return batch
}

func (q *frameQueue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.callbacks)
}

// ManualScheduler is a FrameScheduler whose refreshes are triggered explicitly with Step.
// It backs headless rendering and deterministic tests.
type ManualScheduler struct {
	queue  frameQueue
	frames int
}

var _ FrameScheduler = &ManualScheduler{}

// NewManualScheduler creates an empty ManualScheduler.
//
// Returns:
//   - *ManualScheduler: the new scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{queue: newFrameQueue()}
}

func (m *ManualScheduler) RequestFrame(cb FrameCallback) FrameHandle {
	return m.queue.request(cb)
}

func (m *ManualScheduler) CancelFrame(h FrameHandle) {
	m.queue.cancel(h)
}

// Step runs every callback pending at the moment of the call with the given timestamp.
//
// Parameters:
//   - timestamp: the refresh timestamp passed to each callback
//
// Returns:
//   - int: the number of callbacks that ran
func (m *ManualScheduler) Step(timestamp time.Duration) int {
	batch := m.queue.take()
	for _, cb := range batch {
		cb(timestamp)
	}
	m.frames++
	return len(batch)
}

// Pending returns the number of callbacks waiting for the next Step.
func (m *ManualScheduler) Pending() int {
	return m.queue.pending()
}

// Frames returns how many times Step has been called.
func (m *ManualScheduler) Frames() int {
	return m.frames
}
