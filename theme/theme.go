// Package theme maps display roles and document colors onto terminal styles.
package theme

import (
	"strings"

	"textbrowser/colorcode"
	"textbrowser/render"
)

// ANSI foreground codes.
const (
	Black   = 30
	Red     = 31
	Green   = 32
	Yellow  = 33
	Blue    = 34
	Magenta = 35
	Cyan    = 36
	White   = 37
)

// Theme defines the style of each display role.
type Theme struct {
	Name string

	Status    render.Style // top bar
	Help      render.Style // bottom bar
	Indicator render.Style // scroll percentage
	Dialog    render.Style // modal input borders and prompts
	Heading   render.Style
	Link      render.Style
	Bold      render.Style
	Emphasis  render.Style
	Separator render.Style
	Plain     render.Style

	// Colors maps a document color name to its style. Names missing from
	// the map render as Plain.
	Colors map[string]render.Style
}

// Color returns the style for a document color name.
func (t *Theme) Color(name string) (render.Style, bool) {
	s, ok := t.Colors[colorcode.Normalize(name)]
	return s, ok
}

func fg(code int) render.Style { return render.Style{FgColor: code} }

func bold(code int) render.Style { return render.Style{FgColor: code, Bold: true} }

// documentColors maps every recognized color onto the eight terminal
// colors. Extended names fold onto their nearest neighbour.
func documentColors() map[string]render.Style {
	return map[string]render.Style{
		"red":     fg(Red),
		"green":   fg(Green),
		"blue":    fg(Blue),
		"yellow":  fg(Yellow),
		"cyan":    fg(Cyan),
		"magenta": fg(Magenta),
		"white":   fg(White),
		"black":   {},
		"orange":  fg(Yellow),
		"purple":  fg(Magenta),
		"pink":    fg(Magenta),
		"brown":   fg(Yellow),
		"gray":    fg(White),
		"grey":    fg(White),
	}
}

var (
	// Default is the classic green-on-black palette.
	Default = &Theme{
		Name:      "default",
		Status:    bold(Cyan),
		Help:      fg(Yellow),
		Indicator: fg(Green),
		Dialog:    fg(Green),
		Heading:   bold(Magenta),
		Link:      fg(Green),
		Bold:      bold(White),
		Emphasis:  fg(Red),
		Separator: fg(Yellow),
		Colors:    documentColors(),
	}

	// Mono uses attributes only, for terminals without color or when
	// NO_COLOR is set.
	Mono = &Theme{
		Name:      "mono",
		Status:    render.Style{Reverse: true},
		Help:      render.Style{Reverse: true},
		Indicator: render.Style{Bold: true},
		Dialog:    render.Style{},
		Heading:   render.Style{Bold: true, Underline: true},
		Link:      render.Style{Underline: true},
		Bold:      render.Style{Bold: true},
		Emphasis:  render.Style{Dim: true},
		Separator: render.Style{Dim: true},
		Colors:    map[string]render.Style{},
	}
)

// All lists the built-in themes.
var All = []*Theme{Default, Mono}

// ByName returns the theme with the given name, or Default.
func ByName(name string) *Theme {
	for _, t := range All {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return Default
}
