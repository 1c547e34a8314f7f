package texture

import (
	"image"
	"sync"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/resource"
)

// WrapMode selects how texture coordinates outside [0, 1] are resolved.
type WrapMode int

const (
	WrapClampToEdge WrapMode = iota
	WrapRepeat
)

// Texture is an image that may still be loading. Materials hold a Texture from the moment it is
// requested; until the pixels arrive (or if they never do) the material renders with its base
// color alone.
type Texture struct {
	resource.Handle

	// Name is the path or identifier the texture was requested with.
	Name string

	// Wrap is the addressing mode for out-of-range coordinates.
	Wrap WrapMode

	mu      sync.Mutex
	img     *image.NRGBA
	average common.Color
	version uint64
	err     error
	dropped bool
	done    chan struct{}
	once    sync.Once
}

// New creates a pending texture with no pixels.
//
// Parameters:
//   - name: the texture identifier
//
// Returns:
//   - *Texture: the pending texture
func New(name string) *Texture {
	return &Texture{
		Name: name,
		done: make(chan struct{}),
	}
}

// FromImage creates a texture that is immediately ready.
//
// Parameters:
//   - name: the texture identifier
//   - img: the pixels
//
// Returns:
//   - *Texture: the ready texture
func FromImage(name string, img image.Image) *Texture {
	t := New(name)
	t.SetImage(img)
	return t
}

// SetImage replaces the pixels and bumps the version so renderers re-upload.
// Completes a pending load. Ignored once the texture is disposed.
func (t *Texture) SetImage(img image.Image) {
	n := toNRGBA(img)
	avg := AverageColor(n)

	t.mu.Lock()
	if t.dropped {
		t.mu.Unlock()
		return
	}
	t.img = n
	t.average = avg
	t.err = nil
	t.version++
	t.mu.Unlock()
	t.finish()
}

// Fail records a load error and completes a pending load. The texture stays without pixels.
func (t *Texture) Fail(err error) {
	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
	t.finish()
}

func (t *Texture) finish() {
	t.once.Do(func() { close(t.done) })
}

// Image returns the current pixels and their version. The image is nil until loaded.
//
// Returns:
//   - *image.NRGBA: the pixels, or nil
//   - uint64: the version, 0 until loaded
func (t *Texture) Image() (*image.NRGBA, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.img, t.version
}

// Ready reports whether pixels are available.
func (t *Texture) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.img != nil
}

// Err returns the load error, if the load failed.
func (t *Texture) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Average returns the alpha-weighted mean color of the pixels, or white while not loaded.
func (t *Texture) Average() common.Color {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.img == nil {
		return common.White
	}
	return t.average
}

// Done is closed once the load has either succeeded or failed.
func (t *Texture) Done() <-chan struct{} {
	return t.done
}

// Dispose releases the pixels and notifies renderers holding a GPU copy.
func (t *Texture) Dispose() {
	t.mu.Lock()
	t.img = nil
	t.dropped = true
	t.mu.Unlock()
	t.finish()
	t.Handle.Dispose()
}
