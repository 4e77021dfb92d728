package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger creates a properly configured logger for the state
// wrapper types. If the provided handler is nil, it creates a default
// handler with appropriate grouping.
//
// Parameters:
//   - handler: The slog.Handler to use, or nil for defaults
//   - component: The component to group log output under (e.g., "State")
//
// Returns:
//   - The configured handler
//   - A logger created from the handler
func SetupLogger(handler slog.Handler, component string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		defaultHandler := slog.NewTextHandler(os.Stdout, nil)
		handler = defaultHandler.WithGroup("luastack")
		// Create a logger from the handler
		defaultLogger := slog.New(handler)
		defaultLogger.Warn("Handler is nil, using the default logger configuration.")
	}

	var logger *slog.Logger
	if component != "" {
		logger = slog.New(handler.WithGroup(component))
	} else {
		logger = slog.New(handler)
	}

	return handler, logger
}
