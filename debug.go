package luastack

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Debug describes an activation record or a function value. It is the
// runtime's own record type; GetStack captures one and GetInfo fills
// in the fields selected by its flags.
type Debug = lua.Debug

// GetStack captures the activation record at the given level of the
// call stack, level 0 being the function currently running. It
// reports false when level does not address a live activation. Hand
// the record to GetInfo to populate it.
func (s *State) GetStack(level int) (*Debug, bool) {
	if s.l == nil {
		return nil, false
	}
	return s.l.GetStack(level)
}

// GetInfo fills in fields of ar selected by what: 'S' for source
// information, 'l' for the current line, 'u' for the upvalue count,
// 'n' for the function's name, and 'f' to additionally push the
// function itself onto the stack. When what begins with '>' the
// function to inspect is popped from the top of the stack; otherwise
// ar must be a non-nil record captured by GetStack. A flag the
// runtime does not recognize is reported as a *RuntimeError.
func (s *State) GetInfo(what string, ar *Debug) error {
	if s.l == nil {
		return ErrClosed
	}
	fn := lua.LValue(lua.LNil)
	if strings.HasPrefix(what, ">") {
		fn = s.at(-1)
		s.Pop(1)
	}
	v, err := s.l.GetInfo(what, ar, fn)
	if err != nil {
		return translateError(err)
	}
	if v != lua.LNil {
		s.push(v)
	}
	return nil
}
