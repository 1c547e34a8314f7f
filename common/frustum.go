package common

// OrthoFrustum holds the four side planes of a symmetric orthographic view volume.
type OrthoFrustum struct {
	Left, Right float32
	Top, Bottom float32
}

// SymmetricFrustum derives an orthographic frustum of fixed height whose width follows the
// viewport aspect ratio, centered on the view axis.
//
// Parameters:
//   - height: the full frustum height in world units
//   - aspect: viewport width divided by viewport height
//
// Returns:
//   - OrthoFrustum: bounds of ±height*aspect/2 horizontally and ±height/2 vertically
func SymmetricFrustum(height, aspect float32) OrthoFrustum {
	width := height * aspect
	return OrthoFrustum{
		Left:   -width / 2,
		Right:  width / 2,
		Top:    height / 2,
		Bottom: -height / 2,
	}
}

// Width returns the horizontal extent of the frustum.
func (f OrthoFrustum) Width() float32 {
	return f.Right - f.Left
}

// Height returns the vertical extent of the frustum.
func (f OrthoFrustum) Height() float32 {
	return f.Top - f.Bottom
}
