package animation

// DriverBuilderOption is a functional option for configuring a Driver.
type DriverBuilderOption func(*driver)

// WithRenderer sets the renderer each frame ends with. Without one the driver only animates.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithRenderer(r Renderer) DriverBuilderOption {
	return func(d *driver) {
		d.renderer = r
	}
}

// WithFocus shares a Focus with the driver so an outside controller can move the card.
//
// Parameters:
//   - f: the focus values
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithFocus(f *Focus) DriverBuilderOption {
	return func(d *driver) {
		if f != nil {
			d.focus = f
		}
	}
}

// WithOrientation sets the starting pose.
func WithOrientation(o Orientation) DriverBuilderOption {
	return func(d *driver) {
		d.orientation = o
	}
}
