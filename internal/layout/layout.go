// Package layout renders messages for the console: the single-line tagged
// form and the bordered, word-wrapped box.
//
// Widths are counted in code points of NFC-normalised text, one column
// each; escape sequences never count. Every row of a box has the same
// visible width.
package layout

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/tinsel/internal/ansi"
	"github.com/crimson-sun/tinsel/internal/markup"
	"github.com/crimson-sun/tinsel/internal/theme"
)

// DefaultWidth is the box width used when none is given.
const DefaultWidth = 75

const (
	hourglass = "⏳"

	boxClock  = "15:04:05"
	lineClock = "15:04:05.000"

	// header: corner, space, symbol, space, title, fill, timestamp, corner
	headerOverhead = 4
	// the header fill is never narrower than two glyphs
	minOverhead = headerOverhead + 2
)

// timestampWidth is the width of hourglass + " " + HH:MM:SS.
var timestampWidth = utf8.RuneCountInString(hourglass) + 1 + len(boxClock)

// Mode selects how content rows sit between the side borders.
type Mode uint8

const (
	// Padded keeps one space of gutter on each side: content spans width-4.
	Padded Mode = iota
	// Flush puts content directly against the borders: content spans width-2.
	Flush
)

// BoxSpec describes one box. Width below MinWidth is raised to it.
type BoxSpec struct {
	BoxColor  string
	TextColor string
	Symbol    string
	Title     string
	Width     int
	Mode      Mode
}

// MinWidth is the narrowest box that fits title, symbol and the timestamp
// on the top border without truncation.
func MinWidth(title, symbol string) int {
	return columns(norm.NFC.String(title)) + timestampWidth + columns(norm.NFC.String(symbol)) + minOverhead
}

// Renderer draws messages using the palette, borders and styling flag of
// a theme store.
type Renderer struct {
	theme *theme.Store
	now   func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the time source for timestamps. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// New creates a Renderer reading its settings from store.
func New(store *theme.Store, opts ...Option) *Renderer {
	r := &Renderer{theme: store, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Theme is the store the renderer reads its settings from.
func (r *Renderer) Theme() *theme.Store { return r.theme }

// Now is the renderer's current time.
func (r *Renderer) Now() time.Time { return r.now() }

// Box renders message inside a box stamped with the current time.
func (r *Renderer) Box(spec BoxSpec, message string) string {
	return r.BoxAt(r.now(), spec, message)
}

// BoxAt renders message inside a box stamped with t. The result ends
// with a newline.
func (r *Renderer) BoxAt(t time.Time, spec BoxSpec, message string) string {
	colors := r.theme.Colors()
	borders := r.theme.Borders()
	f := markup.Formatter{Reset: colors.Reset, Enabled: r.theme.Styling()}

	title := norm.NFC.String(spec.Title)
	symbol := norm.NFC.String(spec.Symbol)
	stamp := hourglass + " " + t.Format(boxClock)

	width := spec.Width
	if floor := MinWidth(title, symbol); width < floor {
		width = floor
	}

	var b strings.Builder

	fill := sub(width, columns(title)+columns(stamp)+columns(symbol)+headerOverhead)
	b.WriteString(spec.BoxColor + borders.TopLeft)
	b.WriteString(colors.Bold + " " + symbol + " " + title + colors.Reset)
	b.WriteString(spec.BoxColor + strings.Repeat(borders.Horizontal, fill))
	b.WriteString(colors.Dim + stamp + colors.Reset)
	b.WriteString(spec.BoxColor + borders.TopRight + colors.Reset + "\n")

	gutter := " "
	inner := sub(width, 4)
	if spec.Mode == Flush {
		gutter = ""
		inner = sub(width, 2)
	}

	for _, line := range wrap(cellsOf(markup.Parse(message)), inner) {
		content := f.Format(runsOf(line), spec.TextColor)
		pad := sub(inner, ansi.Width(content))
		b.WriteString(spec.BoxColor + borders.Vertical + gutter)
		b.WriteString(content)
		b.WriteString(spec.BoxColor + strings.Repeat(" ", pad) + gutter + borders.Vertical + colors.Reset + "\n")
	}

	b.WriteString(spec.BoxColor + borders.BottomLeft)
	b.WriteString(strings.Repeat(borders.Horizontal, sub(width, 2)))
	b.WriteString(borders.BottomRight + colors.Reset + "\n")
	return b.String()
}

// Line renders the single-line form stamped with the current time.
func (r *Renderer) Line(color, textColor, symbol, title, message string) string {
	return r.LineAt(r.now(), color, textColor, symbol, title, message)
}

// LineAt renders "symbol HH:MM:SS.mmm separator title message" stamped
// with t: the symbol in color, timestamp and separator dim, the title bold
// and the message through the markup processor in textColor. No trailing
// newline.
func (r *Renderer) LineAt(t time.Time, color, textColor, symbol, title, message string) string {
	c := r.theme.Colors()
	sep := r.theme.Symbols().Separator

	var b strings.Builder
	b.WriteString(color + symbol + c.Reset + " ")
	b.WriteString(c.Dim + t.Format(lineClock) + c.Reset + " ")
	b.WriteString(c.Dim + sep + c.Reset + " ")
	b.WriteString(c.Bold + color + title + c.Reset + " ")
	f := markup.Formatter{Reset: c.Reset, Enabled: r.theme.Styling()}
	b.WriteString(f.Format(markup.Parse(message), textColor))
	return b.String()
}

// cell is one column of content with the style it was written in.
type cell struct {
	r rune
	s markup.Style
}

// cellsOf flattens runs into cells. Escape sequences already present in
// the text take no columns and are dropped.
func cellsOf(runs []markup.Run) []cell {
	var cs []cell
	for _, run := range runs {
		for _, r := range norm.NFC.String(ansi.Strip(run.Text)) {
			cs = append(cs, cell{r, run.Style})
		}
	}
	return cs
}

func runsOf(line []cell) []markup.Run {
	var (
		runs []markup.Run
		b    strings.Builder
	)
	for i, c := range line {
		if i > 0 && c.s != line[i-1].s {
			runs = append(runs, markup.Run{Text: b.String(), Style: line[i-1].s})
			b.Reset()
		}
		b.WriteRune(c.r)
	}
	if len(line) > 0 {
		runs = append(runs, markup.Run{Text: b.String(), Style: line[len(line)-1].s})
	}
	return runs
}

// wrap splits cs into rows no wider than limit. Paragraphs break on '\n';
// an empty paragraph yields one empty row and a whitespace-only one none. Words are packed
// greedily with single spaces; a word wider than limit is cut into
// limit-wide chunks, each on its own row.
func wrap(cs []cell, limit int) [][]cell {
	if limit < 1 {
		limit = 1
	}
	var rows [][]cell
	for _, para := range paragraphs(cs) {
		if len(para) == 0 {
			rows = append(rows, nil)
			continue
		}
		words := fields(para)

		var cur []cell
		for _, w := range words {
			if len(w) > limit {
				if len(cur) > 0 {
					rows = append(rows, cur)
					cur = nil
				}
				for len(w) > 0 {
					n := min(limit, len(w))
					rows = append(rows, w[:n:n])
					w = w[n:]
				}
				continue
			}

			switch {
			case len(cur) == 0:
				cur = append([]cell(nil), w...)
			case len(cur)+1+len(w) <= limit:
				// the joining space keeps only styles shared by both sides
				cur = append(cur, cell{' ', cur[len(cur)-1].s & w[0].s})
				cur = append(cur, w...)
			default:
				rows = append(rows, cur)
				cur = append([]cell(nil), w...)
			}
		}
		if len(cur) > 0 {
			rows = append(rows, cur)
		}
	}
	return rows
}

func paragraphs(cs []cell) [][]cell {
	var out [][]cell
	start := 0
	for i, c := range cs {
		if c.r == '\n' {
			out = append(out, cs[start:i])
			start = i + 1
		}
	}
	return append(out, cs[start:])
}

func fields(cs []cell) [][]cell {
	var out [][]cell
	start := -1
	for i, c := range cs {
		if unicode.IsSpace(c.r) {
			if start >= 0 {
				out = append(out, cs[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, cs[start:])
	}
	return out
}

func columns(s string) int {
	return utf8.RuneCountInString(s)
}

// sub is a - b floored at zero.
func sub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}
