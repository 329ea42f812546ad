package html

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func convert(t *testing.T, markup string, opts TextOptions) string {
	t.Helper()
	doc, err := ParseString(markup)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return Text(doc.Selection, opts)
}

func TestTextStructure(t *testing.T) {
	input := `<!DOCTYPE html>
<html>
<head><title>Ignored</title><style>p { color: red }</style></head>
<body>
<h1>Test Title</h1>
<p>This is a paragraph with <strong>bold</strong> and <em>italic</em> text.</p>
<h2>Section</h2>
<ul>
	<li>Item one</li>
	<li>Item two</li>
</ul>
<blockquote><p>A quote</p></blockquote>
<pre>
line one
  indented
</pre>
</body>
</html>`

	expected := strings.Join([]string{
		"# Test Title",
		"",
		"This is a paragraph with **bold** and _italic_ text.",
		"",
		"## Section",
		"",
		"  * Item one",
		"  * Item two",
		"",
		"> A quote",
		"",
		"[code]",
		"line one",
		"  indented",
		"[/code]",
	}, "\n")

	got := convert(t, input, TextOptions{})
	if got != expected {
		t.Errorf("got:\n%s\n\nexpected:\n%s", got, expected)
	}
}

func TestTextWrapKeepsGluedWords(t *testing.T) {
	tests := []struct {
		name     string
		sep      string
		expected []string
	}{
		{"plain space", " ", []string{"alpha beta [1]", "gamma delta"}},
		{"glued", string(Glue), []string{"alpha beta", "[1] gamma", "delta"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert(t, "<p>alpha beta [1]"+tt.sep+"gamma delta</p>", TextOptions{Width: 14})
			if got != strings.Join(tt.expected, "\n") {
				t.Errorf("got %q, expected %q", got, tt.expected)
			}
			if strings.ContainsRune(got, Glue) {
				t.Error("glue must not leak into output")
			}
		})
	}
}

func TestTextLinkTargets(t *testing.T) {
	input := `<p>Go to <a href="/x">home page</a> now. <a href="#top">top</a></p>`
	tests := []struct {
		keep     bool
		expected string
	}{
		{false, "Go to home page now. top"},
		{true, "Go to [home page](/x) now. top"},
	}
	for _, tt := range tests {
		got := convert(t, input, TextOptions{KeepLinkTargets: tt.keep})
		if got != tt.expected {
			t.Errorf("keep=%v: got %q, expected %q", tt.keep, got, tt.expected)
		}
	}
}

func TestTextListsAndTables(t *testing.T) {
	input := `<ol><li>one</li><li>two<ul><li>inner</li></ul></li></ol>` +
		`<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>`
	expected := strings.Join([]string{
		"  1. one",
		"  2. two",
		"       * inner",
		"",
		"A | B",
		"1 | 2",
	}, "\n")
	got := convert(t, input, TextOptions{})
	if got != expected {
		t.Errorf("got:\n%s\n\nexpected:\n%s", got, expected)
	}
}

func TestTextDropsScriptsAndRules(t *testing.T) {
	got := convert(t, `<p>a</p><script>bad()</script><noscript><p>enable js</p></noscript><hr><p>x <b> </b>y</p>`, TextOptions{})
	expected := "a\n\n" + rule + "\n\nx y"
	if got != expected {
		t.Errorf("got %q, expected %q", got, expected)
	}
}

func TestParseReadError(t *testing.T) {
	_, err := StdParser{}.Parse(iotest.ErrReader(errors.New("boom")))
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, expected ErrParse", err)
	}
}
