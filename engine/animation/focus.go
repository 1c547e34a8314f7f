package animation

import "sync/atomic"

// Focus presets. FocusCard slides the card down and twists it, as when a detail panel opens
// over it; Rest returns it to center.
const (
	FocusOffsetY   = -3.5
	FocusRotationZ = -0.4
)

// Focus holds the externally controlled card offset and twist. Writers on any goroutine may
// change it at any time; the driver reads the latest values on every frame. Both values are
// swapped as one pair, so a reader never sees half of an update.
type Focus struct {
	values atomic.Pointer[focusValues]
}

type focusValues struct {
	offsetY, rotationZ float64
}

var rest = &focusValues{}

// NewFocus creates a Focus at rest.
func NewFocus() *Focus {
	f := &Focus{}
	f.values.Store(rest)
	return f
}

func (f *Focus) load() *focusValues {
	if v := f.values.Load(); v != nil {
		return v
	}
	return rest
}

// Set stores new target values.
//
// Parameters:
//   - offsetY: the card group's target vertical offset
//   - rotationZ: the card group's target twist in radians
func (f *Focus) Set(offsetY, rotationZ float64) {
	f.values.Store(&focusValues{offsetY: offsetY, rotationZ: rotationZ})
}

// Get returns the current target values.
//
// Returns:
//   - float64: the target vertical offset
//   - float64: the target twist
func (f *Focus) Get() (float64, float64) {
	v := f.load()
	return v.offsetY, v.rotationZ
}

// FocusCard applies the focused preset.
func (f *Focus) FocusCard() {
	f.Set(FocusOffsetY, FocusRotationZ)
}

// Rest applies the rest preset.
func (f *Focus) Rest() {
	f.Set(0, 0)
}

// Focused reports whether either value is away from rest.
func (f *Focus) Focused() bool {
	return f.load().focused()
}

func (v *focusValues) focused() bool {
	return v.offsetY != 0 || v.rotationZ != 0
}

// Toggle switches between the focused and rest presets. Concurrent toggles each flip the
// state once.
//
// Returns:
//   - bool: true if the card is now focused
func (f *Focus) Toggle() bool {
	for {
		old := f.values.Load()
		cur := old
		if cur == nil {
			cur = rest
		}
		next, focused := &focusValues{offsetY: FocusOffsetY, rotationZ: FocusRotationZ}, true
		if cur.focused() {
			next, focused = rest, false
		}
		if f.values.CompareAndSwap(old, next) {
			return focused
		}
	}
}
