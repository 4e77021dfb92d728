package luastack

// StackGuard records the depth of a State's stack at creation and
// restores it on Restore, popping whatever was pushed above the mark
// in between. It keeps host code balanced across early returns and
// error paths:
//
//	guard := luastack.NewStackGuard(s)
//	defer guard.Restore()
//
// Guards nest as long as they are restored in reverse order of
// creation, which defer does naturally. Forget releases a guard
// without restoring, for values meant to be left behind. A StackGuard
// belongs to a single goroutine, like the State it watches.
type StackGuard struct {
	s         *State
	depth     int
	forgotten bool
}

// NewStackGuard records the current depth of s's stack and returns
// the guard that will restore it.
func NewStackGuard(s *State) *StackGuard {
	return &StackGuard{s: s, depth: s.GetTop()}
}

// Depth reports the stack depth the guard restores to.
func (g *StackGuard) Depth() int {
	return g.depth
}

// Forget releases the guard without touching the stack, keeping every
// value pushed since it was created. Restore becomes a no-op.
func (g *StackGuard) Forget() {
	g.forgotten = true
}

// Restore pops values until the stack is back at the recorded depth.
// It does nothing after Forget, nothing on a closed State and nothing
// when the stack sits exactly at the mark, so deferring it alongside
// an explicit call is harmless. A stack already below the mark means
// other code over-popped; that is a caller bug, so Restore logs it
// and leaves the stack alone rather than papering over it with fresh
// values.
func (g *StackGuard) Restore() {
	if g.forgotten || g.s == nil || g.s.l == nil {
		return
	}
	top := g.s.GetTop()
	switch {
	case top > g.depth:
		g.s.l.Pop(top - g.depth)
		g.s.logger.Debug("stack restored", "from", top, "to", g.depth)
	case top < g.depth:
		g.s.logger.Warn("stack below guard depth", "top", top, "depth", g.depth)
	}
}
