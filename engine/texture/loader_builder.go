package texture

// LoaderBuilderOption is a functional option for configuring a Loader.
type LoaderBuilderOption func(*loader)

// WithBaseDir sets the directory relative texture paths resolve against.
//
// Parameters:
//   - dir: the asset directory
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithBaseDir(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.baseDir = dir
	}
}

// WithWorkers sets the number of concurrent decode workers (default 2).
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithQueueSize sets how many decodes may wait for a worker before Load blocks (default 32).
//
// Parameters:
//   - n: the queue capacity
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithQueueSize(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.queue = n
		}
	}
}
