package view

import (
	"fmt"
	"strings"
	"testing"

	"textbrowser/render"
	"textbrowser/theme"
)

type draw struct {
	row, col int
	text     string
	style    render.Style
}

type fakeSurface struct {
	width, height int
	draws         []draw
}

func (f *fakeSurface) Size() (int, int) { return f.width, f.height }

func (f *fakeSurface) Draw(row, col int, text string, style render.Style) {
	f.draws = append(f.draws, draw{row, col, text, style})
}

func (f *fakeSurface) row(r int) []draw {
	var out []draw
	for _, d := range f.draws {
		if d.row == r {
			out = append(out, d)
		}
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line     string
		expected Kind
	}{
		{"# Title", Heading},
		{"## «red»Title«/red»", Colored},
		{"see [docs](https://example.com)", Link},
		{"# [docs](https://example.com)", Heading},
		{"**loud** and [x](y)", Link},
		{"**loud**", Bold},
		{"_quiet_", Emphasis},
		{"snake_case", Emphasis},
		{"=====", Separator},
		{" - - - ", Plain},
		{"-*-=-", Separator},
		{"[3] Home", Plain},
		{"", Plain},
		{"plain words", Plain},
	}
	for _, tt := range tests {
		if got := Classify(tt.line); got != tt.expected {
			t.Errorf("Classify(%q) = %v, expected %v", tt.line, got, tt.expected)
		}
	}
}

func TestScrollMath(t *testing.T) {
	tests := []struct {
		offset, n, height, expected int
	}{
		{-5, 100, 24, 0},
		{10, 100, 24, 10},
		{500, 100, 24, 78},
		{3, 10, 24, 0},
		{0, 0, 1, 0},
	}
	for _, tt := range tests {
		got := Clamp(tt.offset, tt.n, tt.height)
		if got != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.offset, tt.n, tt.height, got, tt.expected)
		}
	}
	if ContentHeight(1) != 0 {
		t.Error("content height must not go negative")
	}
	if Percent(50, 200) != 25 {
		t.Errorf("got %d, expected 25", Percent(50, 200))
	}
}

func TestRenderBars(t *testing.T) {
	s := &fakeSurface{width: 40, height: 6}
	body := make([]string, 20)
	for i := range body {
		body[i] = fmt.Sprintf("line %d", i)
	}
	Render(s, theme.Default, Frame{
		Status:      " Status bar text ",
		Help:        " Help ",
		Body:        body,
		Scroll:      5,
		ShowPercent: true,
	})

	top := s.row(0)
	if len(top) != 1 || top[0].text != " Status bar text " || top[0].style != theme.Default.Status {
		t.Errorf("unexpected status draw: %+v", top)
	}

	for r := 1; r <= 4; r++ {
		d := s.row(r)
		expected := fmt.Sprintf("line %d", r+4)
		if len(d) != 1 || d[0].text != expected {
			t.Errorf("row %d: got %+v, expected %q", r, d, expected)
		}
	}

	bottom := s.row(5)
	if len(bottom) != 2 {
		t.Fatalf("got %d draws on help row, expected 2", len(bottom))
	}
	if bottom[1].text != " [25%] " || bottom[1].col != 40-7-1 {
		t.Errorf("unexpected indicator: %+v", bottom[1])
	}
}

func TestRenderNoIndicatorWhenFits(t *testing.T) {
	s := &fakeSurface{width: 40, height: 10}
	Render(s, theme.Default, Frame{Help: "help", Body: []string{"a", "b"}, ShowPercent: true})
	for _, d := range s.row(9) {
		if strings.Contains(d.text, "%") {
			t.Errorf("indicator drawn for short page: %+v", d)
		}
	}
}

func TestRenderColoredSegments(t *testing.T) {
	s := &fakeSurface{width: 12, height: 3}
	Render(s, theme.Default, Frame{Body: []string{"ab «red»cdef«/red» ghijkl"}})

	segs := s.row(1)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, expected 3: %+v", len(segs), segs)
	}
	if segs[1].text != "cdef" || segs[1].col != 3 || segs[1].style.FgColor != theme.Red {
		t.Errorf("unexpected red segment: %+v", segs[1])
	}
	if segs[2].text != " ghij" || segs[2].col != 7 {
		t.Errorf("tail segment not clipped at width: %+v", segs[2])
	}
}

func TestRenderClipsLongLines(t *testing.T) {
	s := &fakeSurface{width: 5, height: 3}
	Render(s, theme.Default, Frame{Body: []string{"# a long heading"}})
	d := s.row(1)
	if len(d) != 1 || d[0].text != "# a l" || d[0].style != theme.Default.Heading {
		t.Errorf("unexpected draw: %+v", d)
	}
}
