package tinsel

import (
	"github.com/crimson-sun/tinsel/internal/ansi"
	"github.com/crimson-sun/tinsel/internal/markup"
	"github.com/crimson-sun/tinsel/internal/model"
	"github.com/crimson-sun/tinsel/internal/rotation"
	"github.com/crimson-sun/tinsel/internal/theme"
)

// Level is the severity of a message.
type Level = model.Level

const (
	Debug   = model.Debug
	Info    = model.Info
	Warn    = model.Warn
	Error   = model.Error
	Success = model.Success
)

// Interval is the width of a log file's time window.
type Interval = rotation.Interval

const (
	OneHour    = rotation.OneHour
	ThreeHour  = rotation.ThreeHour
	SixHour    = rotation.SixHour
	NineHour   = rotation.NineHour
	TwelveHour = rotation.TwelveHour
	OneDay     = rotation.OneDay
)

// Colors, Symbols and Borders make up a theme. Empty fields in a value
// passed to WithColors, WithSymbols or WithBorders keep the default.
type (
	Colors  = theme.Colors
	Symbols = theme.Symbols
	Borders = theme.Borders
)

// DefaultColors returns the stock 16-color palette.
func DefaultColors() Colors { return theme.DefaultColors() }

// NoColors returns a palette with every slot empty.
func NoColors() Colors { return theme.NoColors() }

// DefaultSymbols returns the stock level glyphs.
func DefaultSymbols() Symbols { return theme.DefaultSymbols() }

// DefaultBorders returns the stock rounded box glyphs.
func DefaultBorders() Borders { return theme.DefaultBorders() }

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) { return model.ParseLevel(s) }

// ParseInterval converts "1h", "3h", "6h", "9h", "12h" or "1d" to an Interval.
func ParseInterval(s string) (Interval, error) { return rotation.ParseInterval(s) }

// Hex converts "#rrggbb" or "#rgb" to a truecolor foreground sequence.
func Hex(s string) (string, error) { return theme.ResolveColor(s) }

// RGB returns the truecolor foreground sequence for r, g, b.
func RGB(r, g, b uint8) string { return ansi.RGB(r, g, b) }

// RGBBackground returns the truecolor background sequence for r, g, b.
func RGBBackground(r, g, b uint8) string { return ansi.RGBBackground(r, g, b) }

// Strip removes escape sequences from s.
func Strip(s string) string { return ansi.Strip(s) }

// StripMarkup removes paired markup markers from s, keeping their content.
func StripMarkup(s string) string { return markup.Strip(s) }
