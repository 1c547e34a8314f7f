package texture

import (
	"errors"
	"image"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-card/common"
)

// ErrLoaderClosed is recorded on textures requested after the loader was closed.
var ErrLoaderClosed = errors.New("texture: loader closed")

// loader implements the Loader interface.
type loader struct {
	mu      *sync.Mutex
	baseDir string
	workers int
	queue   int
	decode  func(path string) (*image.NRGBA, error)

	pool    worker.DynamicWorkerPool
	pending sync.WaitGroup
	taskID  atomic.Int64
	closed  atomic.Bool
}

// Loader decodes image files off the calling goroutine. Load never blocks on I/O and never
// fails: a missing or corrupt file leaves the returned texture without pixels, which materials
// treat as "render the base color".
type Loader interface {
	// Load returns a pending texture and schedules the decode.
	//
	// Parameters:
	//   - path: the file path, relative paths resolve against the base directory
	//
	// Returns:
	//   - *Texture: the texture, filled in asynchronously
	Load(path string) *Texture

	// Wait blocks until every scheduled decode has finished. It returns at once after Close.
	Wait()

	// Close stops the decode workers without waiting for decodes in flight. Queued decodes are
	// skipped, a running decode is discarded if its texture was disposed, and loads scheduled
	// afterwards fail with ErrLoaderClosed.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a Loader backed by a dynamic worker pool.
//
// Parameters:
//   - options: functional options (base directory, worker count)
//
// Returns:
//   - Loader: the new loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:      &sync.Mutex{},
		workers: 2,
		queue:   32,
		decode:  DecodeFile,
	}
	for _, opt := range options {
		opt(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queue, time.Second)
	return l
}

func (l *loader) Load(path string) *Texture {
	t := New(path)

	if l.closed.Load() {
		t.Fail(ErrLoaderClosed)
		return t
	}
	l.pending.Add(1)

	full := path
	if l.baseDir != "" && !filepath.IsAbs(path) {
		full = filepath.Join(l.baseDir, path)
	}

	l.pool.SubmitTask(worker.Task{
		ID:      int(l.taskID.Add(1)),
		Payload: full,
		Do: func() (any, error) {
			defer l.pending.Done()
			if l.closed.Load() {
				t.Fail(ErrLoaderClosed)
				return nil, ErrLoaderClosed
			}
			if t.Disposed() {
				return nil, nil
			}
			img, err := l.decode(full)
			if err != nil {
				common.Logger().Debug("texture unavailable, using base color", "path", full, "err", err)
				t.Fail(err)
				return nil, err
			}
			if t.Disposed() {
				return nil, nil
			}
			t.SetImage(img)
			return img, nil
		},
	})
	return t
}

func (l *loader) Wait() {
	if l.closed.Load() {
		return
	}
	l.pending.Wait()
}

func (l *loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed.Swap(true) {
		return
	}
	l.pool.Stop()
}
