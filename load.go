package luastack

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// MultRet requests that a protected call keep every result the callee
// returns instead of adjusting them to a fixed count.
const MultRet = lua.MultRet

// LoadString compiles source as a chunk and pushes the resulting
// function onto the stack without running it. A parse failure is
// reported as a *SyntaxError carrying the parser's diagnostic
// verbatim, with nothing pushed.
func (s *State) LoadString(source string) error {
	if s.l == nil {
		return ErrClosed
	}
	fn, err := s.l.LoadString(source)
	if err != nil {
		return translateError(err)
	}
	s.l.Push(fn)
	s.logger.Debug("loaded chunk from string", "bytes", len(source))
	return nil
}

// LoadFile reads the file at path, compiles it as a chunk and pushes
// the resulting function onto the stack without running it. An
// unreadable file is reported as a *FileError and a parse failure as
// a *SyntaxError, both carrying the runtime's diagnostic verbatim; in
// either case nothing is pushed.
func (s *State) LoadFile(path string) error {
	if s.l == nil {
		return ErrClosed
	}
	fn, err := s.l.LoadFile(path)
	if err != nil {
		return translateError(err)
	}
	s.l.Push(fn)
	s.logger.Debug("loaded chunk from file", "path", path)
	return nil
}

// PCall calls a function in protected mode. The function and its
// nargs arguments are taken from the top of the stack, arguments
// above the function, and are consumed by the call. On success
// nresults values are pushed, or every result when nresults is
// MultRet. On failure the error object is pushed in their place and a
// typed error is returned, normally a *RuntimeError whose message is
// the error object's string form.
//
// When errfunc is nonzero it is the stack index of an error handler
// function, which runs before the stack unwinds; its return value
// replaces the error object. The handler itself stays on the stack.
func (s *State) PCall(nargs, nresults, errfunc int) error {
	if s.l == nil {
		return ErrClosed
	}
	var handler *lua.LFunction
	if errfunc != 0 {
		fn, ok := s.at(errfunc).(*lua.LFunction)
		if !ok {
			return &RuntimeError{
				Message: fmt.Sprintf("error handler expected at index %d, got %s",
					errfunc, s.at(errfunc).Type()),
			}
		}
		handler = fn
	}

	err := s.l.PCall(nargs, nresults, handler)
	if err == nil {
		return nil
	}

	terr := translateError(err)
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Object != nil {
		s.push(apiErr.Object)
	} else {
		s.push(lua.LString(terr.Error()))
	}
	s.logger.Debug("protected call failed", "error", terr)
	return terr
}

// DoString loads source and runs it with no arguments inside a
// protected call, discarding any results. The stack is restored to
// the depth it was found at, whether the chunk succeeds or fails.
func (s *State) DoString(source string) error {
	if s.l == nil {
		return ErrClosed
	}
	guard := NewStackGuard(s)
	defer guard.Restore()

	if err := s.LoadString(source); err != nil {
		return err
	}
	return s.PCall(0, MultRet, 0)
}

// DoFile loads the chunk file at path and runs it with no arguments
// inside a protected call, discarding any results. The stack is
// restored to the depth it was found at, whether the chunk succeeds
// or fails.
func (s *State) DoFile(path string) error {
	if s.l == nil {
		return ErrClosed
	}
	guard := NewStackGuard(s)
	defer guard.Restore()

	if err := s.LoadFile(path); err != nil {
		return err
	}
	return s.PCall(0, MultRet, 0)
}
