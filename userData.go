package luastack

import (
	lua "github.com/yuin/gopher-lua"
)

// NewUserData allocates a zero-valued T, wraps it in a fresh userdata
// value, pushes the userdata onto s's stack and returns a pointer for
// the host to fill in. The T stays reachable for as long as the
// userdata itself is. Reports nil on a closed State.
func NewUserData[T any](s *State) *T {
	if s.l == nil {
		s.logger.Debug("new userdata on closed state ignored")
		return nil
	}
	v := new(T)
	ud := s.l.NewUserData()
	ud.Value = v
	s.l.Push(ud)
	return v
}

// ToUserData returns the *T carried by the userdata at idx. An index
// that does not address a userdata reports nil. The payload itself is
// not validated: a userdata carrying anything other than a *T is a
// caller error and panics on the type assertion.
func ToUserData[T any](s *State, idx int) *T {
	ud, ok := s.at(idx).(*lua.LUserData)
	if !ok {
		return nil
	}
	return ud.Value.(*T)
}
