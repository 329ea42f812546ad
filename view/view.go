// Package view lays a page out on a character grid: a status bar, a
// scrolling content area, and a help bar, with per-line styling derived
// from the lightweight markup the document converter emits.
package view

import (
	"fmt"
	"strings"

	"textbrowser/colorcode"
	"textbrowser/render"
	"textbrowser/theme"
)

// Surface is the drawing target. Writes past the right edge are clipped.
type Surface interface {
	Size() (width, height int)
	Draw(row, col int, text string, style render.Style)
}

// Kind classifies a content line for styling.
type Kind int

const (
	Plain Kind = iota
	Colored
	Heading
	Link
	Bold
	Emphasis
	Separator
)

func (k Kind) String() string {
	switch k {
	case Colored:
		return "colored"
	case Heading:
		return "heading"
	case Link:
		return "link"
	case Bold:
		return "bold"
	case Emphasis:
		return "emphasis"
	case Separator:
		return "separator"
	default:
		return "plain"
	}
}

// Classify picks the style class of a line. The first matching rule wins.
func Classify(line string) Kind {
	switch {
	case colorcode.HasMarkers(line):
		return Colored
	case strings.HasPrefix(line, "#"):
		return Heading
	case strings.Contains(line, "[") && strings.Contains(line, "]("):
		return Link
	case strings.Contains(line, "**"):
		return Bold
	case strings.Contains(line, "_"):
		return Emphasis
	case isSeparator(line):
		return Separator
	}
	return Plain
}

func isSeparator(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	return strings.Trim(s, "=-_*") == ""
}

// Frame is everything drawn for one screen.
type Frame struct {
	Status string
	Help   string
	Body   []string
	Scroll int

	// ShowPercent enables the scroll indicator on the help bar.
	ShowPercent bool
}

// ContentHeight is the number of body rows visible at a terminal height.
func ContentHeight(height int) int {
	return max(0, height-2)
}

// MaxScroll is the largest valid scroll offset for a body of n lines.
func MaxScroll(n, height int) int {
	return max(0, n-ContentHeight(height))
}

// Clamp bounds offset to [0, MaxScroll].
func Clamp(offset, n, height int) int {
	return min(max(offset, 0), MaxScroll(n, height))
}

// Percent reports how far offset is through a body of n lines.
func Percent(offset, n int) int {
	if n == 0 {
		return 0
	}
	return offset * 100 / n
}

// Render draws f onto s.
func Render(s Surface, th *theme.Theme, f Frame) {
	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return
	}

	s.Draw(0, 0, render.TruncateToWidth(f.Status, width), th.Status)

	contentHeight := ContentHeight(height)
	start := Clamp(f.Scroll, len(f.Body), height)
	end := min(start+contentHeight, len(f.Body))
	for i, line := range f.Body[start:end] {
		drawLine(s, th, i+1, line, width)
	}

	if height < 2 {
		return
	}
	s.Draw(height-1, 0, render.TruncateToWidth(f.Help, width), th.Help)

	if f.ShowPercent && len(f.Body) > contentHeight {
		indicator := fmt.Sprintf(" [%d%%] ", Percent(start, len(f.Body)))
		col := width - render.StringWidth(indicator) - 1
		if col >= 0 {
			s.Draw(height-1, col, indicator, th.Indicator)
		}
	}
}

func drawLine(s Surface, th *theme.Theme, row int, line string, width int) {
	kind := Classify(line)
	if kind != Colored {
		s.Draw(row, 0, render.TruncateToWidth(line, width), lineStyle(th, kind))
		return
	}

	col := 0
	for _, seg := range colorcode.Split(line) {
		if col >= width {
			return
		}
		style := th.Plain
		if seg.Color != "" {
			if cs, ok := th.Color(seg.Color); ok {
				style = cs
			}
		}
		text := render.TruncateToWidth(seg.Text, width-col)
		s.Draw(row, col, text, style)
		col += render.StringWidth(seg.Text)
	}
}

func lineStyle(th *theme.Theme, k Kind) render.Style {
	switch k {
	case Heading:
		return th.Heading
	case Link:
		return th.Link
	case Bold:
		return th.Bold
	case Emphasis:
		return th.Emphasis
	case Separator:
		return th.Separator
	}
	return th.Plain
}
