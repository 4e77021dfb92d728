package luastack

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// tableGet and tableSet run inside the runtime's protected-call
// machinery on behalf of GetTable and SetTable, so metamethod errors
// surface as Go errors rather than unwinding into the host.
func tableGet(L *lua.LState) int {
	L.Push(L.GetTable(L.Get(1), L.Get(2)))
	return 1
}

func tableSet(L *lua.LState) int {
	L.SetTable(L.Get(1), L.Get(2), L.Get(3))
	return 0
}

func metatableSet(L *lua.LState) int {
	L.SetMetatable(L.Get(1), L.Get(2))
	return 0
}

// NewTable creates an empty table and pushes it onto the stack.
func (s *State) NewTable() {
	if s.l == nil {
		s.logger.Debug("new table on closed state ignored")
		return
	}
	s.l.Push(s.l.NewTable())
}

// GetTable reads t[k], where t is the value at idx and k is the value
// on the top of the stack. The key is popped and the result pushed in
// its place, running any __index metamethod along the way. A failure
// raised by a metamethod comes back as a *RuntimeError and leaves the
// key consumed with nothing pushed.
//
// The common pattern pushes the table, then the key, and calls
// GetTable(-2).
func (s *State) GetTable(idx int) error {
	if s.l == nil {
		return ErrClosed
	}
	tbl := s.at(idx)
	key := s.at(-1)
	s.Pop(1)
	return s.runProtected(tableGet, 1, tbl, key)
}

// SetTable writes t[k] = v, where t is the value at idx, k is the
// value just below the top and v is the value on the top. Both key
// and value are popped; any __newindex metamethod runs inside the
// call and its failures come back as a *RuntimeError.
//
// The common pattern pushes the table, the key and the value, and
// calls SetTable(-3).
func (s *State) SetTable(idx int) error {
	if s.l == nil {
		return ErrClosed
	}
	tbl := s.at(idx)
	key := s.at(-2)
	val := s.at(-1)
	s.Pop(2)
	return s.runProtected(tableSet, 0, tbl, key, val)
}

// GetGlobal pushes the value of the global variable name. An __index
// metamethod on the globals table runs inside the call; on failure
// nothing is pushed.
func (s *State) GetGlobal(name string) error {
	if s.l == nil {
		return ErrClosed
	}
	return s.runProtected(func(L *lua.LState) int {
		L.Push(L.GetGlobal(name))
		return 1
	}, 1)
}

// SetGlobal pops the value on the top of the stack and stores it as
// the global variable name.
func (s *State) SetGlobal(name string) error {
	if s.l == nil {
		return ErrClosed
	}
	val := s.at(-1)
	s.Pop(1)
	return s.runProtected(func(L *lua.LState) int {
		L.SetGlobal(name, L.Get(1))
		return 0
	}, 0, val)
}

// SetMetatable pops a table, or nil, from the top of the stack and
// installs it as the metatable of the value at idx. A value the
// runtime rejects as a metatable is reported as a *RuntimeError, with
// the would-be metatable already popped.
func (s *State) SetMetatable(idx int) error {
	if s.l == nil {
		return ErrClosed
	}
	obj := s.at(idx)
	mt := s.at(-1)
	s.Pop(1)
	return s.runProtected(metatableSet, 0, obj, mt)
}

// Next advances a traversal over the table at idx. The previous key
// is popped from the top of the stack; while entries remain the next
// key and its value are pushed and Next reports true, and once the
// traversal is done nothing is pushed and it reports false. Start by
// pushing nil, and do not modify the table mid-traversal.
func (s *State) Next(idx int) (bool, error) {
	if s.l == nil {
		return false, ErrClosed
	}
	tbl, ok := s.at(idx).(*lua.LTable)
	if !ok {
		return false, &RuntimeError{
			Message: fmt.Sprintf("table expected, got %s", s.at(idx).Type()),
		}
	}
	key := s.at(-1)
	s.Pop(1)
	nextKey, nextVal := tbl.Next(key)
	if nextKey == lua.LNil {
		return false, nil
	}
	s.push(nextKey)
	s.push(nextVal)
	return true, nil
}

// RegisterModule builds a table out of fns and stores it as the
// global name, the way the runtime's own libraries install
// themselves. The stack is left as it was found.
func (s *State) RegisterModule(name string, fns map[string]Function) error {
	if s.l == nil {
		return ErrClosed
	}
	guard := NewStackGuard(s)
	defer guard.Restore()

	s.NewTable()
	for fname, fn := range fns {
		s.PushString(fname)
		s.PushFunction(fn)
		if err := s.SetTable(-3); err != nil {
			return err
		}
	}
	if err := s.SetGlobal(name); err != nil {
		return err
	}
	s.logger.Debug("registered module", "name", name, "functions", len(fns))
	return nil
}
