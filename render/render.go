// Package render provides the terminal drawing primitives used by the
// browser: styled cells, a back-buffer canvas, width-aware text helpers and
// raw-mode terminal control.
package render

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Cell represents a single character cell in the terminal.
type Cell struct {
	Rune  rune
	Style Style
}

// Style represents text styling for a cell.
type Style struct {
	Bold      bool
	Dim       bool
	Underline bool
	Reverse   bool
	FgColor   int // ANSI foreground color code (0 = default, 31 = red, 36 = cyan, etc.)
}

// BoxStyle defines the characters used for drawing boxes.
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

var (
	SingleBox = BoxStyle{
		TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
		Horizontal: '─', Vertical: '│',
	}

	DoubleBox = BoxStyle{
		TopLeft: '╔', TopRight: '╗', BottomLeft: '╚', BottomRight: '╝',
		Horizontal: '═', Vertical: '║',
	}

	ASCIIBox = BoxStyle{
		TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
		Horizontal: '-', Vertical: '|',
	}
)

// UnicodeWidth returns the display width of a rune in terminal cells.
func UnicodeWidth(r rune) int {
	if r < 0x20 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of a string in terminal cells.
func StringWidth(s string) int {
	width := 0
	for _, r := range s {
		width += UnicodeWidth(r)
	}
	return width
}

// WrapText wraps text to fit within a given width in terminal cells. Words
// wider than the width are broken across lines.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var currentLine strings.Builder
		currentWidth := 0

		for _, word := range words {
			wordWidth := StringWidth(word)

			switch {
			case currentWidth == 0 && wordWidth > width:
				lines = append(lines, breakWord(word, width)...)
			case currentWidth == 0:
				currentLine.WriteString(word)
				currentWidth = wordWidth
			case currentWidth+1+wordWidth <= width:
				currentLine.WriteByte(' ')
				currentLine.WriteString(word)
				currentWidth += 1 + wordWidth
			default:
				lines = append(lines, currentLine.String())
				currentLine.Reset()
				currentWidth = 0
				if wordWidth > width {
					lines = append(lines, breakWord(word, width)...)
				} else {
					currentLine.WriteString(word)
					currentWidth = wordWidth
				}
			}
		}

		if currentWidth > 0 {
			lines = append(lines, currentLine.String())
		}
	}

	return lines
}

func breakWord(word string, maxWidth int) []string {
	var result []string
	runes := []rune(word)

	for len(runes) > 0 {
		var line strings.Builder
		lineWidth := 0

		for len(runes) > 0 {
			w := UnicodeWidth(runes[0])
			if lineWidth+w > maxWidth {
				break
			}
			line.WriteRune(runes[0])
			lineWidth += w
			runes = runes[1:]
		}

		// A single rune wider than the line still has to go somewhere.
		if line.Len() == 0 {
			line.WriteRune(runes[0])
			runes = runes[1:]
		}
		result = append(result, line.String())
	}

	return result
}

// TruncateToWidth truncates a string to fit within the specified width.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	width := 0
	for i, r := range s {
		charWidth := UnicodeWidth(r)
		if width+charWidth > maxWidth {
			return s[:i]
		}
		width += charWidth
	}

	return s
}

// Truncate truncates a string adding ellipsis if needed.
func Truncate(s string, width int) string {
	if StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return TruncateToWidth(s, width)
	}
	return TruncateToWidth(s, width-3) + "..."
}

// IsBlank returns true if the string contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
