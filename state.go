// Package luastack is a thin safety layer over the gopher-lua runtime.
// A State wraps one runtime instance, either owning it or borrowing
// one owned elsewhere, and exposes the instance's stack-based API with
// validated inputs and typed errors in place of unwound panics. A
// StackGuard records the stack depth on creation and restores it on
// Restore, keeping host code balanced across early returns.
//
// The layer deliberately preserves the runtime's programming model:
// values move between Go and Lua through a per-instance value stack
// addressed by positive, negative and pseudo indices, and the caller
// remains responsible for overall stack discipline. States and guards
// are not safe for concurrent use; confine each instance to a single
// goroutine.
package luastack

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-luastack/internal/helpers"
	lua "github.com/yuin/gopher-lua"
)

// Pseudo-indices addressing interpreter internals rather than stack
// slots. They are accepted anywhere a stack index is, including by
// GetTable and SetTable.
const (
	// RegistryIndex addresses the registry, a table reserved for host
	// code to store Lua values across calls.
	RegistryIndex = lua.RegistryIndex

	// GlobalsIndex addresses the table of global variables.
	GlobalsIndex = lua.GlobalsIndex
)

// State is a handle to one runtime instance. It is created either
// with New, which builds and owns a fresh instance, or with Wrap,
// which borrows an instance owned by other code. All operations
// address the instance's value stack; checked operations report
// failures as typed errors from this package instead of unwinding.
//
// A State must not be copied and is not safe for concurrent use.
type State struct {
	l     *lua.LState
	owned bool

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a State that owns a fresh runtime instance. The
// instance starts bare, with no standard libraries loaded; open them
// selectively with Open or up front with the WithLibraries option.
// The caller must Close the State to release the instance.
func New(opts ...Option) (*State, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	handler, logger := helpers.SetupLogger(cfg.handler, "State")

	lopts := lua.Options{SkipOpenLibs: true}
	if cfg.registrySize > 0 {
		lopts.RegistrySize = cfg.registrySize
	}
	if cfg.callStackSize > 0 {
		lopts.CallStackSize = cfg.callStackSize
	}

	s := &State{
		l:          lua.NewState(lopts),
		owned:      true,
		logHandler: handler,
		logger:     logger,
	}
	for _, lib := range cfg.libraries {
		if err := s.Open(lib); err != nil {
			s.Close()
			return nil, err
		}
	}

	s.logger.Debug("created owning state", "libraries", len(cfg.libraries))
	return s, nil
}

// Wrap creates a borrowing State for a runtime instance owned by
// other code, typically the instance the runtime hands to a native
// callback. Closing the wrapper severs the association but leaves the
// instance running. The sizing options WithRegistrySize and
// WithCallStackSize only apply at instance creation and are ignored
// here.
func Wrap(raw *lua.LState, opts ...Option) (*State, error) {
	if raw == nil {
		return nil, ErrStateNil
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	handler, logger := helpers.SetupLogger(cfg.handler, "State")

	s := &State{
		l:          raw,
		owned:      false,
		logHandler: handler,
		logger:     logger,
	}
	for _, lib := range cfg.libraries {
		if err := s.Open(lib); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("created borrowing state")
	return s, nil
}

// Close releases the runtime instance of an owning State and severs a
// borrowing State from its instance. Close is idempotent, and closing
// a borrowing State never closes the underlying instance. Checked
// operations on a closed State return ErrClosed; permissive ones
// report zero values.
func (s *State) Close() {
	if s.l == nil {
		return
	}
	if s.owned && !s.l.IsClosed() {
		s.l.Close()
	}
	s.logger.Debug("state closed", "owned", s.owned)
	s.l = nil
}

// RawState exposes the wrapped runtime instance for operations this
// layer does not cover. The instance is shared, not transferred: the
// State keeps operating on it, and the caller must leave the stack
// balanced. Returns nil after Close.
func (s *State) RawState() *lua.LState {
	return s.l
}

// borrow wraps the instance the runtime passed to a native callback.
// When it is the instance this State already holds, the State itself
// is reused; a different instance, such as a coroutine thread, gets a
// fresh borrowing wrapper sharing the logger.
func (s *State) borrow(raw *lua.LState) *State {
	if raw == s.l {
		return s
	}
	return &State{
		l:          raw,
		owned:      false,
		logHandler: s.logHandler,
		logger:     s.logger,
	}
}

// runProtected executes fn inside the runtime's protected-call
// machinery so errors raised by metamethods or library loaders come
// back as typed Go errors instead of unwinding into the host. The
// call receives args and leaves nret results on the stack on success;
// on failure the stack is left as the failed call left it, with
// nothing pushed.
func (s *State) runProtected(fn lua.LGFunction, nret int, args ...lua.LValue) error {
	if s.l == nil {
		return ErrClosed
	}
	err := s.l.CallByParam(lua.P{
		Fn:      s.l.NewFunction(fn),
		NRet:    nret,
		Protect: true,
	}, args...)
	return translateError(err)
}
