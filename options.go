package luastack

import (
	"fmt"
	"log/slog"
)

// config holds the construction-time settings for a State.
type config struct {
	handler       slog.Handler
	libraries     []Library
	registrySize  int
	callStackSize int
}

// defaultConfig returns the settings New and Wrap start from: default
// logging, no libraries opened, the runtime's stock sizing.
func defaultConfig() *config {
	return &config{}
}

// Option is a function that modifies a State's configuration.
type Option func(*config) error

// WithLogHandler creates an option to set the slog handler used by
// the State and its guards. Without it, logs go to a default text
// handler on stdout.
func WithLogHandler(handler slog.Handler) Option {
	return func(cfg *config) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		cfg.handler = handler
		return nil
	}
}

// WithLibraries creates an option to open the given standard
// libraries as soon as the State exists, in the order given.
func WithLibraries(libs ...Library) Option {
	return func(cfg *config) error {
		for _, lib := range libs {
			if _, ok := stdLibs[lib]; !ok {
				return fmt.Errorf("%w: %q", ErrLibraryUnknown, lib)
			}
		}
		cfg.libraries = append(cfg.libraries, libs...)
		return nil
	}
}

// WithRegistrySize creates an option to size the instance's value
// registry, which bounds how deep the value stack can grow. Only New
// honors it; Wrap ignores sizing.
func WithRegistrySize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("registry size must be positive, got %d", n)
		}
		cfg.registrySize = n
		return nil
	}
}

// WithCallStackSize creates an option to size the instance's call
// stack, which bounds how deeply calls can nest. Only New honors it;
// Wrap ignores sizing.
func WithCallStackSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("call stack size must be positive, got %d", n)
		}
		cfg.callStackSize = n
		return nil
	}
}
