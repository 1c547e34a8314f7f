package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Hosts that are not GLFW based translate their native key events into these codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyF     = 70  // F key (ASCII), toggles the card focus pose
	KeyR     = 82  // R key (ASCII), returns the card to rest
	KeyP     = 80  // P key (ASCII), toggles the frame profiler
	KeyS     = 83  // S key (ASCII), writes a snapshot
	KeySpace = 32  // Spacebar (ASCII), same as KeyF
	KeyEsc   = 256 // Escape key (GLFW)
)
