package sink

import "github.com/crimson-sun/tinsel/internal/model"

func bit(l model.Level) uint32 { return 1 << l }

var allBits = func() uint32 {
	var m uint32
	for _, l := range model.Levels {
		m |= bit(l)
	}
	return m
}()

// Allowed reports whether lines of level l are written.
func (s *Sink) Allowed(l model.Level) bool {
	return l.Valid() && s.allowed.Load()&bit(l) != 0
}

// Allow adds levels to the allow-set.
func (s *Sink) Allow(levels ...model.Level) {
	var add uint32
	for _, l := range levels {
		if l.Valid() {
			add |= bit(l)
		}
	}
	s.allowed.Or(add)
}

// Deny removes levels from the allow-set.
func (s *Sink) Deny(levels ...model.Level) {
	var drop uint32
	for _, l := range levels {
		if l.Valid() {
			drop |= bit(l)
		}
	}
	s.allowed.And(^drop)
}

// Clear empties the allow-set; nothing is written until levels are allowed
// again.
func (s *Sink) Clear() { s.allowed.Store(0) }

// AllowAll restores the default allow-set of every level.
func (s *Sink) AllowAll() { s.allowed.Store(allBits) }

// SetLevels replaces the allow-set with exactly levels.
func (s *Sink) SetLevels(levels ...model.Level) {
	var m uint32
	for _, l := range levels {
		if l.Valid() {
			m |= bit(l)
		}
	}
	s.allowed.Store(m)
}

// Levels returns the allow-set in declaration order.
func (s *Sink) Levels() []model.Level {
	m := s.allowed.Load()
	out := make([]model.Level, 0, len(model.Levels))
	for _, l := range model.Levels {
		if m&bit(l) != 0 {
			out = append(out, l)
		}
	}
	return out
}
