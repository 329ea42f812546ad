package html

import (
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"textbrowser/render"
)

// Glue joins two words so that wrapping never separates them. It comes out
// of Text as an ordinary space.
const Glue = '\u00a0'

// TextOptions controls conversion to text.
type TextOptions struct {
	// Width is the wrap column. Zero disables wrapping.
	Width int
	// KeepLinkTargets writes anchors as [text](href).
	KeepLinkTargets bool
}

// Dropped lists the elements whose whole subtree is left out of the text.
var Dropped = []string{
	"script", "style", "head", "title", "noscript", "template",
	"img", "svg", "iframe", "object", "embed", "input", "select",
}

// DroppedSelector matches any element in Dropped.
var DroppedSelector = strings.Join(Dropped, ", ")

const (
	minWrap = 10
	rule    = "--------------------"
)

// Text flattens the selection into wrapped lines of plain text joined by
// newlines. Headings are prefixed with '#', bold and italic runs are
// wrapped in ** and _, list items get bullets, quotes get "> ", and
// preformatted blocks are kept verbatim between [code] and [/code]. Images
// and scripting elements are dropped.
func Text(sel *goquery.Selection, opts TextOptions) string {
	c := &converter{opts: opts}
	for _, n := range sel.Nodes {
		c.walk(n)
	}
	c.flush()
	return c.result()
}

type list struct {
	ordered bool
	n       int
}

type converter struct {
	opts  TextOptions
	lines []string

	buf   strings.Builder
	space bool // whitespace seen since the last word
	open  bool // an opening marker was just written

	prefixes []string
	marker   string // first-line prefix for a pending list item
	lists    []list
}

func (c *converter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		c.text(n.Data)
		return
	case html.DocumentNode:
		c.children(n)
		return
	case html.ElementNode:
	default:
		return
	}

	if slices.Contains(Dropped, n.Data) {
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		c.heading(n, int(n.Data[1]-'0'))

	case "p":
		c.paragraph()
		c.children(n)
		c.paragraph()

	case "br":
		c.flush()

	case "hr":
		c.paragraph()
		c.lines = append(c.lines, c.prefix()+rule)
		c.blank()

	case "blockquote":
		c.paragraph()
		c.prefixes = append(c.prefixes, "> ")
		c.children(n)
		c.flush()
		c.prefixes = c.prefixes[:len(c.prefixes)-1]
		c.blank()

	case "pre":
		c.pre(n)

	case "ul", "ol":
		c.list(n, n.Data == "ol")

	case "li":
		c.item(n)

	case "dd":
		c.flush()
		c.prefixes = append(c.prefixes, "    ")
		c.children(n)
		c.flush()
		c.prefixes = c.prefixes[:len(c.prefixes)-1]

	case "table":
		c.paragraph()
		c.children(n)
		c.paragraph()

	case "td", "th":
		if c.buf.Len() > 0 {
			c.space = true
			c.word("|")
			c.space = true
		}
		c.children(n)

	case "div", "section", "article", "header", "footer", "main", "nav",
		"aside", "form", "fieldset", "figure", "figcaption", "address",
		"details", "summary", "center", "caption", "legend", "dl", "dt",
		"tr", "textarea", "body", "html":
		c.flush()
		c.children(n)
		c.flush()

	case "b", "strong":
		c.inline(n, "**", "**")

	case "i", "em":
		c.inline(n, "_", "_")

	case "code", "kbd", "samp", "tt":
		c.inline(n, "`", "`")

	case "a":
		href := strings.TrimSpace(getAttr(n, "href"))
		if c.opts.KeepLinkTargets && href != "" && !strings.HasPrefix(href, "#") {
			c.inline(n, "[", "]("+href+")")
			return
		}
		c.children(n)

	default:
		c.children(n)
	}
}

func (c *converter) children(n *html.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.walk(ch)
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

func (c *converter) text(s string) {
	for _, r := range s {
		if isSpace(r) {
			if c.buf.Len() > 0 && !c.open {
				c.space = true
			}
			continue
		}
		if c.space {
			c.buf.WriteByte(' ')
			c.space = false
		}
		c.open = false
		c.buf.WriteRune(r)
	}
}

// word writes s as the start of a new token.
func (c *converter) word(s string) {
	if c.space && c.buf.Len() > 0 {
		c.buf.WriteByte(' ')
	}
	c.space = false
	c.buf.WriteString(s)
}

// inline wraps the children of n in markers. Empty runs get no markers.
func (c *converter) inline(n *html.Node, before, after string) {
	if strings.TrimSpace(textContent(n)) == "" {
		c.children(n)
		return
	}
	c.word(before)
	c.open = true
	c.children(n)
	c.open = false
	c.buf.WriteString(after)
}

func (c *converter) heading(n *html.Node, level int) {
	c.paragraph()
	c.children(n)
	text := strings.TrimSpace(c.buf.String())
	c.reset()
	if text != "" {
		c.lines = append(c.lines, c.prefix()+strings.Repeat("#", level)+" "+text)
	}
	c.blank()
}

func (c *converter) pre(n *html.Node) {
	c.paragraph()
	raw := strings.TrimPrefix(textContent(n), "\n")
	raw = strings.TrimRight(raw, " \t\r\n")
	p := c.prefix()
	c.lines = append(c.lines, p+"[code]")
	for _, line := range strings.Split(raw, "\n") {
		c.lines = append(c.lines, strings.TrimRight(p+line, " \t\r"))
	}
	c.lines = append(c.lines, p+"[/code]")
	c.blank()
}

func (c *converter) list(n *html.Node, ordered bool) {
	top := len(c.lists) == 0
	if top {
		c.paragraph()
	} else {
		c.flush()
	}
	c.lists = append(c.lists, list{ordered: ordered})
	c.prefixes = append(c.prefixes, "  ")
	c.children(n)
	c.flush()
	c.prefixes = c.prefixes[:len(c.prefixes)-1]
	c.lists = c.lists[:len(c.lists)-1]
	if top {
		c.blank()
	}
}

func (c *converter) item(n *html.Node) {
	c.flush()
	bullet := "* "
	if len(c.lists) > 0 {
		l := &c.lists[len(c.lists)-1]
		l.n++
		if l.ordered {
			bullet = fmt.Sprintf("%d. ", l.n)
		}
	}
	c.marker = c.prefix() + bullet
	c.prefixes = append(c.prefixes, strings.Repeat(" ", len(bullet)))
	c.children(n)
	c.flush()
	c.prefixes = c.prefixes[:len(c.prefixes)-1]
	c.marker = ""
}

func (c *converter) prefix() string {
	return strings.Join(c.prefixes, "")
}

func (c *converter) reset() {
	c.buf.Reset()
	c.space = false
	c.open = false
}

// flush wraps pending inline text into lines.
func (c *converter) flush() {
	text := c.buf.String()
	c.reset()
	if strings.TrimSpace(text) == "" {
		return
	}

	rest := c.prefix()
	first := rest
	if c.marker != "" {
		first = c.marker
		c.marker = ""
	}

	width := 0
	if c.opts.Width > 0 {
		width = max(c.opts.Width-render.StringWidth(rest), minWrap)
	}
	for i, line := range wrap(text, width) {
		p := rest
		if i == 0 {
			p = first
		}
		c.lines = append(c.lines, p+line)
	}
}

// paragraph ends the current block and leaves a blank line.
func (c *converter) paragraph() {
	c.flush()
	c.blank()
}

func (c *converter) blank() {
	if n := len(c.lines); n > 0 && c.lines[n-1] != "" {
		c.lines = append(c.lines, "")
	}
}

func (c *converter) result() string {
	lines := c.lines
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimRight(strings.ReplaceAll(line, string(Glue), " "), " ")
	}
	return strings.Join(out, "\n")
}

// wrap splits text on single spaces into lines no wider than width. Words
// are never broken. Width zero returns text as one line.
func wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, w := range strings.Split(text, " ") {
		if w == "" {
			continue
		}
		ww := render.StringWidth(w)
		if curWidth > 0 && curWidth+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(w)
		curWidth += ww
	}
	if curWidth > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
