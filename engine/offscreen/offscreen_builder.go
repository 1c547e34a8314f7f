package offscreen

// HostBuilderOption is a functional option for configuring a Host.
type HostBuilderOption func(*host)

// WithSupersample renders frames at factor times the logical size. Values < 1 are ignored.
// The renderer caps the effective ratio at 2.
//
// Parameters:
//   - factor: the supersample factor
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithSupersample(factor int) HostBuilderOption {
	return func(h *host) {
		if factor >= 1 {
			h.supersample = float64(factor)
		}
	}
}
