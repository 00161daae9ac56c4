// Package ansi holds the SGR escape codes tinsel emits and the helpers used
// to measure and sanitise rendered text.
package ansi

import (
	"fmt"
	"unicode/utf8"

	xansi "github.com/charmbracelet/x/ansi"
)

// SGR sequences. Each style has a matching "off" code so styles can be
// closed without resetting the caller's color.
const (
	Reset = "\x1b[0m"

	Bold    = "\x1b[1m"
	BoldOff = "\x1b[22m"

	Dim    = "\x1b[2m"
	DimOff = "\x1b[22m"

	Italic    = "\x1b[3m"
	ItalicOff = "\x1b[23m"

	Underline    = "\x1b[4m"
	UnderlineOff = "\x1b[24m"

	Strikethrough    = "\x1b[9m"
	StrikethroughOff = "\x1b[29m"
)

// Strip removes every escape sequence from s. Stripping clean text returns
// it unchanged.
func Strip(s string) string {
	return xansi.Strip(s)
}

// Width is the visible width of s: one column per code point once escape
// sequences are removed.
func Width(s string) int {
	return utf8.RuneCountInString(Strip(s))
}

// RGB returns the truecolor foreground sequence for r, g, b.
func RGB(r, g, b uint8) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// RGBBackground returns the truecolor background sequence for r, g, b.
func RGBBackground(r, g, b uint8) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}
