// Package document builds the text model of a web page: wrapped body lines
// with inline link numbers, plus the link and form tables those numbers and
// form indices refer to.
package document

import (
	"errors"
	"strings"

	"textbrowser/colorcode"
)

// ErrDegenerateContent marks a page whose markup produced too little
// readable text, usually because it is rendered by JavaScript.
var ErrDegenerateContent = errors.New("too little readable content")

// Link is one navigable anchor. Index matches the "[i]" printed in the body.
type Link struct {
	Index int
	URL   string
	Label string
}

// FormField is one fillable control of a form.
type FormField struct {
	Name        string
	Kind        string // input type, or "textarea" / "select"
	Placeholder string
	Default     string
}

// Form is a fillable form. Action is the raw attribute value and is empty
// when the form submits to the page it came from.
type Form struct {
	Index  int
	Action string
	Method string // GET or POST
	Fields []FormField
}

// Target is the action as shown to the user.
func (f Form) Target() string {
	if f.Action == "" {
		return "(same page)"
	}
	return f.Action
}

// Page is the current document model.
type Page struct {
	URL   string
	Body  []string
	Links []Link
	Forms []Form

	// Degenerate is set when the body is the dynamic-rendering explanation
	// rather than the document's own text.
	Degenerate bool
	// Extracted keeps the document's own text when Degenerate is set.
	Extracted []string
}

// Text returns the body joined with newlines.
func (p *Page) Text() string {
	return strings.Join(p.Body, "\n")
}

// Context returns the document's text without color markers. A
// degenerate page answers with the text extracted before it was replaced.
func (p *Page) Context() string {
	lines := p.Body
	if p.Degenerate {
		lines = p.Extracted
	}
	plain := make([]string, len(lines))
	for i, l := range lines {
		plain[i] = colorcode.Strip(l)
	}
	return strings.Join(plain, "\n")
}

// Link returns the link with index i.
func (p *Page) Link(i int) (Link, bool) {
	if i < 0 || i >= len(p.Links) {
		return Link{}, false
	}
	return p.Links[i], true
}
