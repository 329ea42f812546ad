// Package html parses markup into a queryable tree and flattens trees into
// wrapped, lightly annotated plain text.
package html

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrParse reports markup that could not be read or parsed.
var ErrParse = errors.New("parse error")

// Parser turns markup into a document tree.
type Parser interface {
	Parse(r io.Reader) (*goquery.Document, error)
}

// StdParser parses with the HTML5 tokenizer from x/net/html. It accepts
// malformed markup the way browsers do.
type StdParser struct{}

// Parse implements Parser.
func (StdParser) Parse(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// ParseString parses HTML from a string.
func ParseString(s string) (*goquery.Document, error) {
	return StdParser{}.Parse(strings.NewReader(s))
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return sb.String()
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
