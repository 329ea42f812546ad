// Package screen is the terminal the browser draws on: an alternate-screen
// canvas in raw mode with key decoding and modal line input.
package screen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"textbrowser/lineedit"
	"textbrowser/render"
	"textbrowser/theme"
)

// ErrCancelled is returned by Input when the user aborts the capture.
var ErrCancelled = errors.New("input cancelled")

// InputRequest describes a modal capture.
type InputRequest struct {
	Title  string   // shown in the box border
	Lines  []string // text above the field
	Prompt string   // label before the field
	MaxLen int      // maximum runes, 0 for unlimited
	Secret bool     // mask the typed text
	Bottom bool     // anchor the box to the bottom of the screen
}

// Screen owns the controlling terminal while the browser runs.
type Screen struct {
	in     *os.File
	out    *os.File
	term   *render.Terminal
	canvas *render.Canvas
	theme  *theme.Theme
	scheme lineedit.KeyScheme
	resize chan os.Signal
}

// Open switches the terminal to the alternate screen and raw mode.
func Open(in, out *os.File, th *theme.Theme) (*Screen, error) {
	term, err := render.NewTerminal(in)
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	width, height, err := render.TerminalSize(out)
	if err != nil {
		return nil, err
	}
	if err := term.EnterRawMode(); err != nil {
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}

	s := &Screen{
		in:     in,
		out:    out,
		term:   term,
		canvas: render.NewCanvas(width, height),
		theme:  th,
		scheme: lineedit.NewEmacsScheme(),
		resize: make(chan os.Signal, 1),
	}
	signal.Notify(s.resize, syscall.SIGWINCH)
	render.EnterAltScreen(out)
	return s, nil
}

// Close restores the terminal.
func (s *Screen) Close() error {
	signal.Stop(s.resize)
	render.ExitAltScreen(s.out)
	return s.term.RestoreMode()
}

// Size returns the current canvas dimensions.
func (s *Screen) Size() (width, height int) {
	return s.canvas.Width(), s.canvas.Height()
}

// Draw writes text at a cell position, clipped at the right edge.
func (s *Screen) Draw(row, col int, text string, style render.Style) {
	s.canvas.WriteString(col, row, text, style)
}

// Clear blanks the back buffer.
func (s *Screen) Clear() {
	s.canvas.Clear()
}

// Refresh copies the back buffer to the terminal.
func (s *Screen) Refresh() error {
	return s.canvas.RenderTo(s.out)
}

// resized reports whether a SIGWINCH arrived and, if so, rebuilds the
// canvas at the new size.
func (s *Screen) resized() bool {
	select {
	case <-s.resize:
	default:
		return false
	}
	width, height, err := render.TerminalSize(s.out)
	if err != nil || (width == s.canvas.Width() && height == s.canvas.Height()) {
		return false
	}
	s.canvas = render.NewCanvas(width, height)
	return true
}

// ReadKey blocks until a key is pressed or the terminal is resized.
func (s *Screen) ReadKey() (Key, error) {
	buf := make([]byte, 16)
	for {
		n, err := s.in.Read(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return Key{}, fmt.Errorf("reading key: %w", err)
		}
		// Raw mode reads time out with no bytes, which os.File reports
		// as io.EOF.
		if n == 0 {
			if s.resized() {
				return Key{Code: KeyResize}, nil
			}
			continue
		}
		if k := Decode(buf[:n]); k.Code != KeyUnknown {
			return k, nil
		}
	}
}

// Input opens a modal box and reads one line. The cursor is visible only
// while the box is open. ErrCancelled reports Escape, Ctrl-C or Ctrl-G.
func (s *Screen) Input(req InputRequest) (string, error) {
	ed := lineedit.New(req.MaxLen)
	io.WriteString(s.out, render.CursorShow)
	defer io.WriteString(s.out, render.CursorHide)

	buf := make([]byte, 64)
	dirty := true
	for {
		if dirty {
			row, col := s.drawModal(req, ed)
			if err := s.Refresh(); err != nil {
				return "", err
			}
			fmt.Fprintf(s.out, "\033[%d;%dH", row+1, col+1)
			dirty = false
		}

		n, err := s.in.Read(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if n == 0 {
			dirty = s.resized()
			continue
		}

		ev := s.scheme.HandleKey(ed, buf, n)
		switch {
		case ev.Cancel:
			return "", ErrCancelled
		case ev.Submit:
			return ed.Text(), nil
		case ev.Consumed:
			dirty = true
		}
	}
}

// drawModal draws the input box over the current canvas and returns the
// cursor position.
func (s *Screen) drawModal(req InputRequest, ed *lineedit.Editor) (row, col int) {
	return DrawModal(s.canvas, s.theme, req, ed)
}

// DrawModal lays out an input box on c and returns where the cursor belongs.
func DrawModal(c *render.Canvas, th *theme.Theme, req InputRequest, ed *lineedit.Editor) (row, col int) {
	width := max(c.Width()-4, 10)
	height := len(req.Lines) + 3
	if len(req.Lines) > 0 {
		height++
	}
	x := 2
	y := max((c.Height()-height)/2, 0)
	if req.Bottom {
		y = max(c.Height()-height-1, 0)
	}

	c.Fill(x, y, width, height, ' ', render.Style{})
	c.DrawBoxWithTitle(x, y, width, height, req.Title, render.SingleBox, th.Dialog, withBold(th.Dialog))

	inner := width - 4
	for i, line := range req.Lines {
		c.WriteString(x+2, y+1+i, render.TruncateToWidth(line, inner), render.Style{})
	}

	fieldRow := y + height - 2
	prompt := render.TruncateToWidth(req.Prompt, inner/2)
	fieldX := x + 2 + c.WriteString(x+2, fieldRow, prompt, render.Style{})
	fieldWidth := x + width - 2 - fieldX

	before, after := ed.Display(req.Secret)
	// Keep the cursor inside the field by scrolling the text left.
	for render.StringWidth(before) >= fieldWidth && before != "" {
		_, size := utf8.DecodeRuneInString(before)
		before = before[size:]
	}
	used := c.WriteString(fieldX, fieldRow, before, render.Style{})
	c.WriteString(fieldX+used, fieldRow, render.TruncateToWidth(after, fieldWidth-used), render.Style{})
	return fieldRow, fieldX + used
}

func withBold(st render.Style) render.Style {
	st.Bold = true
	return st
}
