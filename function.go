package luastack

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Function is the signature of a native callback callable from Lua.
// The runtime invokes it with a borrowing State whose stack holds the
// call's arguments, argument one at index 1; the callback pushes its
// results and returns how many it pushed.
//
// To signal a script-level error, call RaiseError on the State, which
// does not return. A panic inside the callback is caught by the
// enclosing protected call and reported through its error object.
type Function func(s *State) int

// RawFunction is the runtime's own callback signature. Callbacks
// written directly against the runtime, for example through RawState,
// use it instead of Function.
type RawFunction = lua.LGFunction

// UpvalueIndex converts upvalue position i, starting at 1, into the
// pseudo-index addressing the running closure's i-th upvalue.
func UpvalueIndex(i int) int {
	return lua.UpvalueIndex(i)
}

// wrapCallback adapts fn to the runtime's callback signature, handing
// it a borrowing State for whichever instance the runtime invokes it
// on.
func (s *State) wrapCallback(fn Function) lua.LGFunction {
	return func(raw *lua.LState) int {
		return fn(s.borrow(raw))
	}
}

// PushFunction pushes fn as a native function value callable from
// Lua.
func (s *State) PushFunction(fn Function) {
	if s.l == nil {
		s.logger.Debug("push function on closed state ignored")
		return
	}
	s.l.Push(s.l.NewFunction(s.wrapCallback(fn)))
}

// PushClosure pushes fn as a native closure capturing the top nup
// stack values as its upvalues. The captured values are popped; the
// value pushed first becomes upvalue 1, addressable inside the
// callback through UpvalueIndex.
func (s *State) PushClosure(fn Function, nup int) {
	if s.l == nil {
		s.logger.Debug("push closure on closed state ignored")
		return
	}
	top := s.l.GetTop()
	if nup < 0 || nup > top {
		panic(fmt.Sprintf("luastack: PushClosure(%d) with %d values on the stack", nup, top))
	}
	ups := make([]lua.LValue, nup)
	for i := 0; i < nup; i++ {
		ups[i] = s.l.Get(top - nup + 1 + i)
	}
	s.l.Pop(nup)
	s.l.Push(s.l.NewClosure(s.wrapCallback(fn), ups...))
}

// PushRawFunction pushes fn without the borrowing-State adapter, for
// callbacks written directly against the runtime.
func (s *State) PushRawFunction(fn RawFunction) {
	if s.l == nil {
		s.logger.Debug("push function on closed state ignored")
		return
	}
	s.l.Push(s.l.NewFunction(fn))
}

// RaiseError raises a script-level error from inside a native
// callback, formatted fmt.Sprintf style and prefixed with the current
// script position. It unwinds into the enclosing protected call and
// does not return. Calling it outside a callback is a caller error.
func (s *State) RaiseError(format string, args ...any) {
	if s.l == nil {
		panic("luastack: RaiseError on a closed State")
	}
	s.l.RaiseError(format, args...)
}
