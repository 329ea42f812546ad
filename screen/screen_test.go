package screen

import (
	"strings"
	"testing"

	"textbrowser/lineedit"
	"textbrowser/render"
	"textbrowser/theme"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Key
	}{
		{"letter", "q", RuneKey('q')},
		{"digit", "7", RuneKey('7')},
		{"ctrl-k", "\x0b", RuneKey(11)},
		{"utf8", "é", RuneKey('é')},
		{"enter", "\r", Key{Code: KeyEnter}},
		{"escape", "\x1b", Key{Code: KeyEscape}},
		{"up", "\x1b[A", Key{Code: KeyUp}},
		{"down app mode", "\x1bOB", Key{Code: KeyDown}},
		{"page up", "\x1b[5~", Key{Code: KeyPageUp}},
		{"page down", "\x1b[6~", Key{Code: KeyPageDown}},
		{"home", "\x1b[H", Key{Code: KeyHome}},
		{"home vt", "\x1b[1~", Key{Code: KeyHome}},
		{"end", "\x1b[4~", Key{Code: KeyEnd}},
		{"unknown", "\x1b[Z", Key{}},
		{"empty", "", Key{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("got %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func modalRow(c *render.Canvas, row int) string {
	return strings.Split(c.PlainText(), "\n")[row]
}

func TestDrawModal(t *testing.T) {
	c := render.NewCanvas(30, 10)
	ed := lineedit.New(0)
	ed.InsertString("12")
	req := InputRequest{Title: "Go to Link", Lines: []string{"Pick (0-4):"}, Prompt: "> "}

	row, col := DrawModal(c, theme.Default, req, ed)
	if row != 5 || col != 8 {
		t.Errorf("got cursor (%d, %d), expected (5, 8)", row, col)
	}
	if got := modalRow(c, 2); !strings.Contains(got, "Go to Link") {
		t.Errorf("title row %q missing title", got)
	}
	if got := modalRow(c, 3); !strings.Contains(got, "Pick (0-4):") {
		t.Errorf("line row %q missing text", got)
	}
	if got := modalRow(c, 5); !strings.Contains(got, "> 12") {
		t.Errorf("field row %q missing value", got)
	}
}

func TestDrawModalSecret(t *testing.T) {
	c := render.NewCanvas(30, 10)
	ed := lineedit.New(0)
	ed.InsertString("hunter2")
	DrawModal(c, theme.Default, InputRequest{Prompt: "Value: ", Secret: true}, ed)

	text := c.PlainText()
	if strings.Contains(text, "hunter2") {
		t.Error("secret value was drawn in the clear")
	}
	if !strings.Contains(text, "Value: *******") {
		t.Errorf("masked value missing from %q", text)
	}
}

func TestDrawModalScrollsLongInput(t *testing.T) {
	c := render.NewCanvas(30, 10)
	ed := lineedit.New(0)
	ed.InsertString("abcdefghijklmnopqrstuvwxy")
	_, col := DrawModal(c, theme.Default, InputRequest{Prompt: "> "}, ed)
	if col != 25 {
		t.Errorf("got cursor column %d, expected 25", col)
	}
	if !strings.Contains(c.PlainText(), "> ghijklmnopqrstuvwxy") {
		t.Errorf("expected the tail of the input, got %q", c.PlainText())
	}
}

func TestDrawModalBottom(t *testing.T) {
	c := render.NewCanvas(30, 10)
	row, _ := DrawModal(c, theme.Default, InputRequest{Title: "Address", Bottom: true}, lineedit.New(0))
	if row != 7 {
		t.Errorf("got field row %d, expected 7", row)
	}
}
