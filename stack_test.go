package luastack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushAndPredicates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		push func(s *State)
		is   func(s *State, idx int) bool
	}{
		{
			name: "nil",
			push: func(s *State) { s.PushNil() },
			is:   (*State).IsNil,
		},
		{
			name: "boolean",
			push: func(s *State) { s.PushBoolean(true) },
			is:   (*State).IsBoolean,
		},
		{
			name: "integer",
			push: func(s *State) { s.PushInteger(42) },
			is:   (*State).IsNumber,
		},
		{
			name: "number",
			push: func(s *State) { s.PushNumber(1.5) },
			is:   (*State).IsNumber,
		},
		{
			name: "string",
			push: func(s *State) { s.PushString("hi") },
			is:   (*State).IsString,
		},
		{
			name: "table",
			push: func(s *State) { s.NewTable() },
			is:   (*State).IsTable,
		},
		{
			name: "function",
			push: func(s *State) { s.PushFunction(func(*State) int { return 0 }) },
			is:   (*State).IsFunction,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestState(t)
			tt.push(s)
			require.Equal(t, 1, s.GetTop(), "Expected exactly one value pushed")
			assert.True(t, tt.is(s, -1), "Expected the matching predicate to hold at -1")
			assert.True(t, tt.is(s, 1), "Expected the matching predicate to hold at 1")
		})
	}
}

func TestPredicatesOutOfRange(t *testing.T) {
	t.Parallel()
	s := newTestState(t)
	s.PushString("only value")

	for _, idx := range []int{0, 2, -2, 99, -99} {
		assert.False(t, s.IsNil(idx), "IsNil(%d) should be false", idx)
		assert.False(t, s.IsBoolean(idx), "IsBoolean(%d) should be false", idx)
		assert.False(t, s.IsFunction(idx), "IsFunction(%d) should be false", idx)
		assert.False(t, s.IsNumber(idx), "IsNumber(%d) should be false", idx)
		assert.False(t, s.IsString(idx), "IsString(%d) should be false", idx)
		assert.False(t, s.IsTable(idx), "IsTable(%d) should be false", idx)
		assert.False(t, s.IsUserData(idx), "IsUserData(%d) should be false", idx)
	}
	require.Equal(t, 1, s.GetTop(), "Expected predicates to leave the stack untouched")
}

func TestIsNilDistinguishesMissing(t *testing.T) {
	t.Parallel()
	s := newTestState(t)
	s.PushNil()

	assert.True(t, s.IsNil(-1), "Expected a stored nil to report true")
	assert.False(t, s.IsNil(-2), "Expected an absent slot to report false, not nil")
}

func TestPseudoIndices(t *testing.T) {
	t.Parallel()
	s := newTestState(t)

	assert.True(t, s.IsTable(RegistryIndex), "Expected the registry to be a table")
	assert.True(t, s.IsTable(GlobalsIndex), "Expected the globals to be a table")
	assert.Equal(t, 0, s.GetTop(), "Expected pseudo-index reads to leave the stack alone")
}

func TestConversions(t *testing.T) {
	t.Parallel()
	s := newTestState(t)

	s.PushInteger(42)
	assert.Equal(t, int64(42), s.ToInteger(-1))
	assert.Equal(t, 42.0, s.ToNumber(-1))
	assert.Equal(t, "42", s.ToString(-1), "Expected numbers to format as the runtime formats them")
	assert.True(t, s.ToBoolean(-1), "Expected a number to be truthy")
	s.Pop(1)

	s.PushString("7")
	assert.Equal(t, int64(7), s.ToInteger(-1), "Expected numeric strings to coerce")
	s.Pop(1)

	s.PushNumber(3.9)
	assert.Equal(t, int64(3), s.ToInteger(-1), "Expected truncation toward zero")
	s.Pop(1)

	s.PushString("not a number")
	assert.Zero(t, s.ToInteger(-1))
	assert.Equal(t, "not a number", s.ToString(-1))
	s.Pop(1)

	s.PushBoolean(false)
	assert.False(t, s.ToBoolean(-1))
	assert.Empty(t, s.ToString(-1), "Expected non-string, non-number values to read as empty")
	s.Pop(1)

	s.PushNil()
	assert.False(t, s.ToBoolean(-1), "Expected nil to be falsy")
	s.Pop(1)

	// Out-of-range reads are permissive.
	assert.False(t, s.ToBoolean(5))
	assert.Zero(t, s.ToInteger(5))
	assert.Empty(t, s.ToString(5))
}

func TestGetTopTracksPushesAndPops(t *testing.T) {
	t.Parallel()
	s := newTestState(t)
	require.Equal(t, 0, s.GetTop())

	s.PushInteger(1)
	s.PushInteger(2)
	s.PushInteger(3)
	require.Equal(t, 3, s.GetTop())

	s.Pop(2)
	require.Equal(t, 1, s.GetTop())
	s.Pop(0)
	require.Equal(t, 1, s.GetTop())
}

func TestPopUnderflowPanics(t *testing.T) {
	t.Parallel()
	s := newTestState(t)
	s.PushInteger(1)

	require.PanicsWithValue(t, "luastack: Pop(2) with 1 values on the stack", func() {
		s.Pop(2)
	}, "Expected over-popping to panic instead of corrupting the stack")

	require.Panics(t, func() { s.Pop(-1) }, "Expected a negative pop count to panic")
}
