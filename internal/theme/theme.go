// Package theme holds the palette, symbol set and border glyphs used to
// decorate messages, plus the store that owns them for a logger's lifetime.
package theme

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/crimson-sun/tinsel/internal/ansi"
	"github.com/crimson-sun/tinsel/internal/model"
)

// Colors are escape sequences, one per palette slot. Each level has an
// accent color (symbol, title, box border) and a text color (body).
type Colors struct {
	Info        string `yaml:"info"`
	InfoText    string `yaml:"info_text"`
	Warn        string `yaml:"warn"`
	WarnText    string `yaml:"warn_text"`
	Error       string `yaml:"error"`
	ErrorText   string `yaml:"error_text"`
	Success     string `yaml:"success"`
	SuccessText string `yaml:"success_text"`
	Debug       string `yaml:"debug"`
	DebugText   string `yaml:"debug_text"`
	Dim         string `yaml:"dim"`
	Bold        string `yaml:"bold"`
	Reset       string `yaml:"reset"`
}

// Symbols are the glyphs prefixed to messages. The five level symbols also
// identify severity when a sink sniffs rendered text.
type Symbols struct {
	Info      string `yaml:"info"`
	Warn      string `yaml:"warn"`
	Error     string `yaml:"error"`
	Success   string `yaml:"success"`
	Debug     string `yaml:"debug"`
	Separator string `yaml:"separator"`
}

// Borders are the glyphs a box is drawn with. Each should be one column.
type Borders struct {
	TopLeft     string `yaml:"top_left"`
	TopRight    string `yaml:"top_right"`
	BottomLeft  string `yaml:"bottom_left"`
	BottomRight string `yaml:"bottom_right"`
	Horizontal  string `yaml:"horizontal"`
	Vertical    string `yaml:"vertical"`
}

// DefaultColors is the bright 16-color palette.
func DefaultColors() Colors {
	return Colors{
		Info:        "\x1b[96m",
		InfoText:    "\x1b[36m",
		Warn:        "\x1b[93m",
		WarnText:    "\x1b[33m",
		Error:       "\x1b[91m",
		ErrorText:   "\x1b[31m",
		Success:     "\x1b[92m",
		SuccessText: "\x1b[32m",
		Debug:       "\x1b[95m",
		DebugText:   "\x1b[35m",
		Dim:         ansi.Dim,
		Bold:        ansi.Bold,
		Reset:       ansi.Reset,
	}
}

// NoColors is a palette with every slot empty, for output that must carry
// no escape sequences at all.
func NoColors() Colors {
	return Colors{}
}

// DefaultSymbols returns the stock level glyphs.
func DefaultSymbols() Symbols {
	return Symbols{
		Info:      "ℹ",
		Warn:      "⚠",
		Error:     "✖",
		Success:   "✔",
		Debug:     "⁂",
		Separator: "›",
	}
}

// DefaultBorders returns rounded box-drawing glyphs.
func DefaultBorders() Borders {
	return Borders{
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "╰",
		BottomRight: "╯",
		Horizontal:  "─",
		Vertical:    "│",
	}
}

// Merge returns c with every non-empty slot of o applied over it.
func (c Colors) Merge(o Colors) Colors {
	set(&c.Info, o.Info)
	set(&c.InfoText, o.InfoText)
	set(&c.Warn, o.Warn)
	set(&c.WarnText, o.WarnText)
	set(&c.Error, o.Error)
	set(&c.ErrorText, o.ErrorText)
	set(&c.Success, o.Success)
	set(&c.SuccessText, o.SuccessText)
	set(&c.Debug, o.Debug)
	set(&c.DebugText, o.DebugText)
	set(&c.Dim, o.Dim)
	set(&c.Bold, o.Bold)
	set(&c.Reset, o.Reset)
	return c
}

// Merge returns s with every non-empty slot of o applied over it.
func (s Symbols) Merge(o Symbols) Symbols {
	set(&s.Info, o.Info)
	set(&s.Warn, o.Warn)
	set(&s.Error, o.Error)
	set(&s.Success, o.Success)
	set(&s.Debug, o.Debug)
	set(&s.Separator, o.Separator)
	return s
}

// Merge returns b with every non-empty slot of o applied over it.
func (b Borders) Merge(o Borders) Borders {
	set(&b.TopLeft, o.TopLeft)
	set(&b.TopRight, o.TopRight)
	set(&b.BottomLeft, o.BottomLeft)
	set(&b.BottomRight, o.BottomRight)
	set(&b.Horizontal, o.Horizontal)
	set(&b.Vertical, o.Vertical)
	return b
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ResolveColor converts a palette value from configuration into an escape
// sequence. "#rrggbb" (or "#rgb") becomes a truecolor foreground code;
// anything else is taken as a literal sequence.
func ResolveColor(v string) (string, error) {
	if !strings.HasPrefix(v, "#") {
		return v, nil
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return "", fmt.Errorf("theme: color %q: %w", v, err)
	}
	r, g, b := c.RGB255()
	return ansi.RGB(r, g, b), nil
}

// ResolveColors applies ResolveColor to every slot of c.
func ResolveColors(c Colors) (Colors, error) {
	slots := []*string{
		&c.Info, &c.InfoText, &c.Warn, &c.WarnText, &c.Error, &c.ErrorText,
		&c.Success, &c.SuccessText, &c.Debug, &c.DebugText, &c.Dim, &c.Bold, &c.Reset,
	}
	for _, p := range slots {
		v, err := ResolveColor(*p)
		if err != nil {
			return Colors{}, err
		}
		*p = v
	}
	return c, nil
}

// For returns the accent and text colors of level l.
func (c Colors) For(l model.Level) (accent, text string) {
	switch l {
	case model.Debug:
		return c.Debug, c.DebugText
	case model.Warn:
		return c.Warn, c.WarnText
	case model.Error:
		return c.Error, c.ErrorText
	case model.Success:
		return c.Success, c.SuccessText
	default:
		return c.Info, c.InfoText
	}
}

// For returns the symbol of level l.
func (s Symbols) For(l model.Level) string {
	switch l {
	case model.Debug:
		return s.Debug
	case model.Warn:
		return s.Warn
	case model.Error:
		return s.Error
	case model.Success:
		return s.Success
	default:
		return s.Info
	}
}

// Sniff reports the level whose symbol occurs in text, checking info,
// warn, error, success and debug in that order. Empty symbols never match.
func (s Symbols) Sniff(text string) (model.Level, bool) {
	for _, l := range []model.Level{model.Info, model.Warn, model.Error, model.Success, model.Debug} {
		if sym := s.For(l); sym != "" && strings.Contains(text, sym) {
			return l, true
		}
	}
	return 0, false
}
