package luastack

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Library identifies one of the runtime's standard libraries for Open
// and the WithLibraries option.
type Library string

// The standard libraries an instance can open. New builds bare
// instances, so nothing is available, not even print, until at least
// LibBase is opened.
const (
	LibBase    Library = "base"
	LibPackage Library = "package"
	LibTable   Library = "table"
	LibString  Library = "string"
	LibMath    Library = "math"
	LibIO      Library = "io"
	LibOS      Library = "os"
	LibDebug   Library = "debug"
)

// stdLibs maps each Library onto the runtime's module name and loader
// function.
var stdLibs = map[Library]struct {
	name   string
	loader lua.LGFunction
}{
	LibBase:    {lua.BaseLibName, lua.OpenBase},
	LibPackage: {lua.LoadLibName, lua.OpenPackage},
	LibTable:   {lua.TabLibName, lua.OpenTable},
	LibString:  {lua.StringLibName, lua.OpenString},
	LibMath:    {lua.MathLibName, lua.OpenMath},
	LibIO:      {lua.IoLibName, lua.OpenIo},
	LibOS:      {lua.OsLibName, lua.OpenOs},
	LibDebug:   {lua.DebugLibName, lua.OpenDebug},
}

// allLibraries lists every Library in the runtime's initialization
// order, the package library first so later loaders register with
// package.loaded.
var allLibraries = []Library{
	LibPackage,
	LibBase,
	LibTable,
	LibIO,
	LibOS,
	LibString,
	LibMath,
	LibDebug,
}

// Open loads one standard library into the instance by running its
// loader inside a protected call. Open LibPackage before the others
// when require and package.loaded need to see them.
func (s *State) Open(lib Library) error {
	if s.l == nil {
		return ErrClosed
	}
	std, ok := stdLibs[lib]
	if !ok {
		return fmt.Errorf("%w: %q", ErrLibraryUnknown, lib)
	}
	if err := s.runProtected(std.loader, 0, lua.LString(std.name)); err != nil {
		return err
	}
	s.logger.Debug("opened library", "library", lib)
	return nil
}

// OpenBase loads the base library, providing print, pairs, pcall and
// friends.
func (s *State) OpenBase() error { return s.Open(LibBase) }

// OpenString loads the string library.
func (s *State) OpenString() error { return s.Open(LibString) }

// OpenTable loads the table library.
func (s *State) OpenTable() error { return s.Open(LibTable) }

// OpenLibraries loads every library this package knows, in the
// runtime's own initialization order.
func (s *State) OpenLibraries() error {
	for _, lib := range allLibraries {
		if err := s.Open(lib); err != nil {
			return fmt.Errorf("opening %s library: %w", lib, err)
		}
	}
	return nil
}
