// Package colorcode marks colored text runs with guillemet sentinels so that
// color intent survives conversion of a document to plain text.
//
// An encoded run looks like «red»some text«/red». Decoding splits a line into
// segments, each carrying the color active for that stretch of text.
package colorcode

import (
	"regexp"
	"strings"
)

const (
	markOpen  = "«"
	markClose = "»"
)

// Segment is a run of text drawn in one color. Color is empty for plain text.
type Segment struct {
	Text  string
	Color string
}

// known lists the color names the codec recognizes. Extended names are kept
// so the renderer can map them onto the nearest terminal color.
var known = map[string]bool{
	"red":     true,
	"green":   true,
	"blue":    true,
	"yellow":  true,
	"cyan":    true,
	"magenta": true,
	"white":   true,
	"black":   true,
	"orange":  true,
	"purple":  true,
	"pink":    true,
	"brown":   true,
	"gray":    true,
	"grey":    true,
}

var markerRE = regexp.MustCompile(`«/?[a-z]+»`)

// Known reports whether name is a recognized color.
func Known(name string) bool {
	return known[Normalize(name)]
}

// Normalize lower-cases and trims a color name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Encode wraps text in open/close markers for color. Unrecognized colors and
// empty text are returned unchanged.
func Encode(color, text string) string {
	color = Normalize(color)
	if !known[color] || text == "" {
		return text
	}
	return markOpen + color + markClose + text + markOpen + "/" + color + markClose
}

// HasMarkers reports whether line may contain encoded runs.
func HasMarkers(line string) bool {
	return strings.Contains(line, markOpen) && strings.Contains(line, markClose)
}

// Split decodes line into ordered segments. A closing marker ends any active
// color. Markers naming an unknown color are dropped and their text is kept
// as plain. Adjacent segments of the same color are merged and empty
// segments omitted, so re-encoding the segments and splitting again gives
// the same result.
func Split(line string) []Segment {
	var segs []Segment
	color := ""

	emit := func(text string) {
		if text == "" {
			return
		}
		if n := len(segs); n > 0 && segs[n-1].Color == color {
			segs[n-1].Text += text
			return
		}
		segs = append(segs, Segment{Text: text, Color: color})
	}

	pos := 0
	for _, loc := range markerRE.FindAllStringIndex(line, -1) {
		emit(line[pos:loc[0]])
		pos = loc[1]

		name := line[loc[0]+len(markOpen) : loc[1]-len(markClose)]
		if strings.HasPrefix(name, "/") {
			color = ""
			continue
		}
		if known[name] {
			color = name
		} else {
			color = ""
		}
	}
	emit(line[pos:])
	return segs
}

// Strip removes all markers from line, leaving only its text.
func Strip(line string) string {
	if !HasMarkers(line) {
		return line
	}
	var sb strings.Builder
	for _, s := range Split(line) {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
