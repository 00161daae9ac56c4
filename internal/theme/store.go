package theme

import "sync/atomic"

// slot is a value that is fixed the first time it is written or read.
// A read of an unset slot pins the default, so later writes are ignored.
type slot[T any] struct {
	p   atomic.Pointer[T]
	def func() T
}

func (s *slot[T]) set(v T) bool {
	return s.p.CompareAndSwap(nil, &v)
}

func (s *slot[T]) get() T {
	if v := s.p.Load(); v != nil {
		return *v
	}
	d := s.def()
	s.p.CompareAndSwap(nil, &d)
	return *s.p.Load()
}

// Store owns a logger's presentation settings. Every setting is
// first-write-wins: a Set call succeeds only while the setting has been
// neither set nor read, and reports whether it took effect. A Store is
// safe for concurrent use.
type Store struct {
	colors  slot[Colors]
	symbols slot[Symbols]
	borders slot[Borders]
	styling slot[bool]
	debug   slot[bool]
}

// NewStore returns a Store that falls back to the stock palette, symbols
// and borders, with styling and debug output enabled.
func NewStore() *Store {
	s := &Store{}
	s.colors.def = DefaultColors
	s.symbols.def = DefaultSymbols
	s.borders.def = DefaultBorders
	s.styling.def = func() bool { return true }
	s.debug.def = func() bool { return true }
	return s
}

func (s *Store) SetColors(c Colors) bool   { return s.colors.set(c) }
func (s *Store) SetSymbols(y Symbols) bool { return s.symbols.set(y) }
func (s *Store) SetBorders(b Borders) bool { return s.borders.set(b) }

// SetStyling turns inline markup into escape codes (true) or strips the
// markers only (false).
func (s *Store) SetStyling(on bool) bool { return s.styling.set(on) }

// SetDebug controls whether debug messages reach the console. File
// logging of debug messages is governed by the sink's level set instead.
func (s *Store) SetDebug(on bool) bool { return s.debug.set(on) }

func (s *Store) Colors() Colors   { return s.colors.get() }
func (s *Store) Symbols() Symbols { return s.symbols.get() }
func (s *Store) Borders() Borders { return s.borders.get() }
func (s *Store) Styling() bool    { return s.styling.get() }
func (s *Store) Debug() bool      { return s.debug.get() }
