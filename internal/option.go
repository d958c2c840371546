package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config       *Config
	forceRebuild bool
	limit        int
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithForceRebuild forces RebuildAndReindex regardless of cache state.
func WithForceRebuild(force bool) Option {
	return func(a *application) {
		a.forceRebuild = force
	}
}

// WithLimit caps the number of catalogue entries (0 means unlimited).
func WithLimit(n int) Option {
	return func(a *application) {
		a.limit = n
	}
}
