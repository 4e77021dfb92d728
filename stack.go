package luastack

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// GetTop reports the number of values on the stack, which is also the
// positive index of the topmost value. A closed State reports 0.
func (s *State) GetTop() int {
	if s.l == nil {
		return 0
	}
	return s.l.GetTop()
}

// Pop removes the top n values from the stack. Popping more values
// than the stack holds is a caller error and panics rather than
// corrupting the stack.
func (s *State) Pop(n int) {
	if n == 0 {
		return
	}
	top := s.GetTop()
	if n < 0 || n > top {
		panic(fmt.Sprintf("luastack: Pop(%d) with %d values on the stack", n, top))
	}
	s.l.Pop(n)
}

// PushNil pushes the nil value.
func (s *State) PushNil() { s.push(lua.LNil) }

// PushBoolean pushes b.
func (s *State) PushBoolean(b bool) { s.push(lua.LBool(b)) }

// PushInteger pushes n as a Lua number.
func (s *State) PushInteger(n int64) { s.push(lua.LNumber(n)) }

// PushNumber pushes f as a Lua number.
func (s *State) PushNumber(f float64) { s.push(lua.LNumber(f)) }

// PushString pushes str.
func (s *State) PushString(str string) { s.push(lua.LString(str)) }

// push appends v to the stack. Pushing onto a closed State has no
// effect beyond a debug log entry.
func (s *State) push(v lua.LValue) {
	if s.l == nil {
		s.logger.Debug("push on closed state ignored")
		return
	}
	s.l.Push(v)
}

// at reads the value at idx without removing it. Indices addressing
// nothing, including any index on a closed State, read as nil.
func (s *State) at(idx int) lua.LValue {
	if s.l == nil {
		return lua.LNil
	}
	return s.l.Get(idx)
}

// valid reports whether idx addresses an existing stack slot or a
// pseudo-index. Index 0 is never valid; negative indices count down
// from the top.
func (s *State) valid(idx int) bool {
	if s.l == nil {
		return false
	}
	if idx <= lua.RegistryIndex {
		return true
	}
	top := s.l.GetTop()
	if idx > 0 {
		return idx <= top
	}
	return idx < 0 && -idx <= top
}

// IsNil reports whether idx addresses an existing value that is nil.
// An index outside the stack reports false, which distinguishes a
// stored nil from the absence of a value.
func (s *State) IsNil(idx int) bool {
	return s.valid(idx) && s.at(idx).Type() == lua.LTNil
}

// IsBoolean reports whether the value at idx is a boolean. Indices
// addressing nothing report false; predicates never raise.
func (s *State) IsBoolean(idx int) bool { return s.at(idx).Type() == lua.LTBool }

// IsFunction reports whether the value at idx is a function, Lua or
// native alike.
func (s *State) IsFunction(idx int) bool { return s.at(idx).Type() == lua.LTFunction }

// IsNumber reports whether the value at idx is a number.
func (s *State) IsNumber(idx int) bool { return s.at(idx).Type() == lua.LTNumber }

// IsString reports whether the value at idx is a string.
func (s *State) IsString(idx int) bool { return s.at(idx).Type() == lua.LTString }

// IsTable reports whether the value at idx is a table.
func (s *State) IsTable(idx int) bool { return s.at(idx).Type() == lua.LTTable }

// IsUserData reports whether the value at idx is a userdata.
func (s *State) IsUserData(idx int) bool { return s.at(idx).Type() == lua.LTUserData }

// ToBoolean reads the value at idx under the language's truth rules:
// nil and false are false, every other value is true. Indices
// addressing nothing read as nil and report false.
func (s *State) ToBoolean(idx int) bool { return lua.LVAsBool(s.at(idx)) }

// ToInteger reads the value at idx as an integer, truncating toward
// zero. Numeric strings are coerced the way the runtime coerces them;
// values that are not numbers report 0.
func (s *State) ToInteger(idx int) int64 { return int64(lua.LVAsNumber(s.at(idx))) }

// ToNumber reads the value at idx as a number, with the runtime's
// string coercion. Values that are not numbers report 0.
func (s *State) ToNumber(idx int) float64 { return float64(lua.LVAsNumber(s.at(idx))) }

// ToString reads the value at idx as a string. Numbers format the way
// the runtime formats them; every other non-string value reports "".
func (s *State) ToString(idx int) string { return lua.LVAsString(s.at(idx)) }
