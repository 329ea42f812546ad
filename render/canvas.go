package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Canvas is a drawable buffer that can be rendered to the terminal.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// NewCanvas creates a new canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{Rune: ' '}
		}
	}
	return &Canvas{width: width, height: height, cells: cells}
}

// TerminalSize returns the dimensions of the terminal attached to f.
func TerminalSize(f *os.File) (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Clear fills the entire canvas with spaces.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a rune at the given position with the given style.
func (c *Canvas) Set(x, y int, r rune, style Style) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = Cell{Rune: r, Style: style}
}

// Get returns the cell at the given position.
func (c *Canvas) Get(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

// WriteString writes a string starting at the given position, clipping at
// the right edge. Returns the number of terminal cells used (not runes).
func (c *Canvas) WriteString(x, y int, s string, style Style) int {
	pos := 0
	for _, r := range s {
		w := UnicodeWidth(r)
		if w == 0 {
			continue
		}
		if x+pos+w > c.width {
			break
		}
		c.Set(x+pos, y, r, style)
		// The trailing half of a wide rune is blanked so stale content
		// never shows through.
		if w == 2 {
			c.Set(x+pos+1, y, 0, style)
		}
		pos += w
	}
	return pos
}

// Fill sets every cell of a rectangle to r.
func (c *Canvas) Fill(x, y, width, height int, r rune, style Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			c.Set(col, row, r, style)
		}
	}
}

// DrawBox draws a box on the canvas.
func (c *Canvas) DrawBox(x, y, width, height int, box BoxStyle, style Style) {
	if width < 2 || height < 2 {
		return
	}

	c.Set(x, y, box.TopLeft, style)
	c.Set(x+width-1, y, box.TopRight, style)
	c.Set(x, y+height-1, box.BottomLeft, style)
	c.Set(x+width-1, y+height-1, box.BottomRight, style)

	for i := 1; i < width-1; i++ {
		c.Set(x+i, y, box.Horizontal, style)
		c.Set(x+i, y+height-1, box.Horizontal, style)
	}

	for i := 1; i < height-1; i++ {
		c.Set(x, y+i, box.Vertical, style)
		c.Set(x+width-1, y+i, box.Vertical, style)
	}
}

// DrawBoxWithTitle draws a box with a title in the top border.
func (c *Canvas) DrawBoxWithTitle(x, y, width, height int, title string, box BoxStyle, style Style, titleStyle Style) {
	c.DrawBox(x, y, width, height, box, style)

	if title == "" || width <= 4 {
		return
	}
	title = TruncateToWidth(title, width-4)
	titleX := x + 2
	c.Set(titleX-1, y, ' ', style)
	n := c.WriteString(titleX, y, title, titleStyle)
	c.Set(titleX+n, y, ' ', style)
}

// Render outputs the canvas as a string with ANSI escape codes.
func (c *Canvas) Render() string {
	var sb strings.Builder
	sb.WriteString(CursorHome)

	var currentStyle Style
	sb.WriteString(styleSequence(currentStyle))

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y][x]
			if cell.Rune == 0 {
				continue
			}

			if cell.Style != currentStyle {
				sb.WriteString(styleSequence(cell.Style))
				currentStyle = cell.Style
			}

			sb.WriteRune(cell.Rune)
		}
		if y < c.height-1 {
			sb.WriteString("\r\n")
		}
	}

	sb.WriteString("\033[0m")
	return sb.String()
}

func styleSequence(s Style) string {
	codes := []string{"0"}
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Dim {
		codes = append(codes, "2")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	if s.Reverse {
		codes = append(codes, "7")
	}
	if s.FgColor > 0 {
		codes = append(codes, fmt.Sprintf("%d", s.FgColor))
	}
	return fmt.Sprintf("\033[%sm", strings.Join(codes, ";"))
}

// RenderTo writes the canvas to w.
func (c *Canvas) RenderTo(w io.Writer) error {
	_, err := io.WriteString(w, c.Render())
	return err
}

// PlainText returns the canvas content without styling, one line per row
// with trailing spaces trimmed.
func (c *Canvas) PlainText() string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var sb strings.Builder
		for x := 0; x < c.width; x++ {
			if r := c.cells[y][x].Rune; r != 0 {
				sb.WriteRune(r)
			}
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
