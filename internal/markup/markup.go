// Package markup turns the inline marker syntax used in message bodies
// into styled runs and escape-coded strings.
//
//	**bold**  *italic*  _underline_  ~strikethrough~  @dim@
//
// Bold is resolved first, then each single-character marker in the order
// above. Within one pass a marker pairs with the next occurrence of the same
// marker; an opener that never finds a closer is left as literal text and
// ends that pass. Pairing is positional, not a stack, so styles combine when
// their spans overlap.
package markup

import (
	"strings"

	"github.com/crimson-sun/tinsel/internal/ansi"
)

// Style is a set of text attributes. The zero value is Plain.
type Style uint8

const (
	Bold Style = 1 << iota
	Italic
	Underline
	Strikethrough
	Dim
)

// Plain is the empty style set.
const Plain Style = 0

// Has reports whether every attribute in o is set in s.
func (s Style) Has(o Style) bool { return s&o == o }

// attrs lists attributes in the order their open codes are emitted.
var attrs = []struct {
	style     Style
	open, off string
}{
	{Bold, ansi.Bold, ansi.BoldOff},
	{Dim, ansi.Dim, ansi.DimOff},
	{Italic, ansi.Italic, ansi.ItalicOff},
	{Underline, ansi.Underline, ansi.UnderlineOff},
	{Strikethrough, ansi.Strikethrough, ansi.StrikethroughOff},
}

// singles are the one-byte markers, in pass order.
var singles = []struct {
	marker byte
	style  Style
}{
	{'*', Italic},
	{'_', Underline},
	{'~', Strikethrough},
	{'@', Dim},
}

// Run is a contiguous span of text sharing one style set.
type Run struct {
	Text  string
	Style Style
}

// Parse scans text for marker pairs and returns the resulting runs with
// all consumed markers removed. Adjacent runs never share a style.
func Parse(text string) []Run {
	n := len(text)
	if n == 0 {
		return nil
	}
	styles := make([]Style, n)
	drop := make([]bool, n)

	pairBold(text, styles, drop)
	for _, s := range singles {
		pairSingle(text, s.marker, s.style, styles, drop)
	}
	return collect(text, styles, drop)
}

// pairBold pairs non-overlapping "**" tokens left to right.
func pairBold(text string, styles []Style, drop []bool) {
	open := -1
	for i := 0; i+1 < len(text); {
		if text[i] != '*' || text[i+1] != '*' {
			i++
			continue
		}
		if open < 0 {
			open = i
		} else {
			drop[open], drop[open+1], drop[i], drop[i+1] = true, true, true, true
			for j := open + 2; j < i; j++ {
				styles[j] |= Bold
			}
			open = -1
		}
		i += 2
	}
}

// pairSingle pairs consecutive surviving occurrences of marker.
func pairSingle(text string, marker byte, style Style, styles []Style, drop []bool) {
	open := -1
	for i := 0; i < len(text); i++ {
		if drop[i] || text[i] != marker {
			continue
		}
		if open < 0 {
			open = i
			continue
		}
		drop[open], drop[i] = true, true
		for j := open + 1; j < i; j++ {
			if !drop[j] {
				styles[j] |= style
			}
		}
		open = -1
	}
}

func collect(text string, styles []Style, drop []bool) []Run {
	var (
		runs []Run
		cur  strings.Builder
		st   Style
	)
	flush := func() {
		if cur.Len() > 0 {
			runs = append(runs, Run{Text: cur.String(), Style: st})
			cur.Reset()
		}
	}
	for i := 0; i < len(text); i++ {
		if drop[i] {
			continue
		}
		if styles[i] != st {
			flush()
			st = styles[i]
		}
		cur.WriteByte(text[i])
	}
	flush()
	return runs
}

// Formatter renders runs between a base color and a closing reset.
type Formatter struct {
	Reset   string
	Enabled bool // emit attribute codes for styled runs
}

// Format renders runs as color + content + reset. With Enabled set, each
// styled run re-asserts color and is wrapped in its attribute codes;
// otherwise only the text is written.
func (f Formatter) Format(runs []Run, color string) string {
	var b strings.Builder
	b.WriteString(color)
	for _, r := range runs {
		if !f.Enabled || r.Style == Plain {
			b.WriteString(r.Text)
			continue
		}
		b.WriteString(color)
		for _, a := range attrs {
			if r.Style.Has(a.style) {
				b.WriteString(a.open)
			}
		}
		b.WriteString(r.Text)
		for i := len(attrs) - 1; i >= 0; i-- {
			if r.Style.Has(attrs[i].style) {
				b.WriteString(attrs[i].off)
			}
		}
	}
	b.WriteString(f.Reset)
	return b.String()
}

// Render parses text and formats it in color, closing with the standard
// reset sequence.
func Render(text, color string, enabled bool) string {
	return Formatter{Reset: ansi.Reset, Enabled: enabled}.Format(Parse(text), color)
}

// Strip returns text with every consumed marker removed and nothing added.
func Strip(text string) string {
	return Plaintext(Parse(text))
}

// Plaintext concatenates the text of runs.
func Plaintext(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
