package luastack

import (
	"errors"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Sentinel errors for the failure categories surfaced by checked
// operations. Match against these with errors.Is; the concrete
// *SyntaxError, *FileError, *RuntimeError and *ResourceError values
// carry the runtime's original message and unwrap to their category.
var (
	// ErrClosed is returned by checked operations used after Close.
	ErrClosed = errors.New("lua state is closed")

	// ErrStateNil is returned by Wrap when the raw instance is nil.
	ErrStateNil = errors.New("lua state is nil")

	// ErrSyntax is the category for parser rejections.
	ErrSyntax = errors.New("lua syntax error")

	// ErrFile is the category for unreadable chunk files.
	ErrFile = errors.New("lua file error")

	// ErrRuntime is the category for errors raised during execution.
	ErrRuntime = errors.New("lua runtime error")

	// ErrResource is the category for exhausted interpreter resources.
	ErrResource = errors.New("lua resource exhausted")

	// ErrLibraryUnknown is returned by Open for a Library this package
	// does not know.
	ErrLibraryUnknown = errors.New("unknown standard library")
)

// SyntaxError reports that the runtime's parser rejected a chunk.
// Message is the parser's diagnostic, verbatim.
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string { return e.Message }

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// FileError reports that a chunk file could not be opened or read.
// Message is the runtime's diagnostic, verbatim.
type FileError struct {
	Message string
}

func (e *FileError) Error() string { return e.Message }

func (e *FileError) Unwrap() error { return ErrFile }

// RuntimeError reports an error raised during execution. Message is
// the string form of the Lua error value, verbatim; Traceback holds
// the runtime's stack trace when one was captured, and is empty
// otherwise.
type RuntimeError struct {
	Message   string
	Traceback string
}

func (e *RuntimeError) Error() string { return e.Message }

func (e *RuntimeError) Unwrap() error { return ErrRuntime }

// ResourceError reports that the runtime ran out of an internal
// resource while performing an operation.
type ResourceError struct {
	Message string
}

func (e *ResourceError) Error() string { return e.Message }

func (e *ResourceError) Unwrap() error { return ErrResource }

// fromAPIError maps a gopher-lua ApiError onto the matching typed
// error. The message is taken from the Lua error value itself, not
// from ApiError.Error, so callers see exactly what the runtime
// produced with no trailing trace text appended.
func fromAPIError(apiErr *lua.ApiError) error {
	msg := apiErr.Object.String()
	switch apiErr.Type {
	case lua.ApiErrorSyntax:
		return &SyntaxError{Message: msg}
	case lua.ApiErrorFile:
		return &FileError{Message: msg}
	default:
		if isExhaustion(msg) {
			return &ResourceError{Message: msg}
		}
		return &RuntimeError{Message: msg, Traceback: apiErr.StackTrace}
	}
}

// isExhaustion reports whether msg is one of the runtime's own
// exhaustion diagnostics. The runtime raises these as ordinary runtime
// errors, with its usual position prefix, so only the suffix is
// stable.
func isExhaustion(msg string) bool {
	return strings.HasSuffix(msg, "stack overflow") ||
		strings.HasSuffix(msg, "registry overflow")
}

// translateError converts any error reported by the underlying
// runtime into this package's taxonomy. Errors that already belong to
// the taxonomy pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *SyntaxError, *FileError, *RuntimeError, *ResourceError:
		return err
	}
	if errors.Is(err, ErrClosed) {
		return err
	}
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) {
		return fromAPIError(apiErr)
	}
	if strings.Contains(err.Error(), "overflow") {
		return &ResourceError{Message: err.Error()}
	}
	return &RuntimeError{Message: err.Error()}
}
