package document

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"textbrowser/colorcode"
	"textbrowser/html"
	"textbrowser/render"
)

const (
	labelLimit      = 50
	trailerLinks    = 20
	minContentLines = 10
	rawPreviewLines = 50
)

// Banner separates trailer sections.
var Banner = strings.Repeat("=", 60)

// excludedKinds are form controls that take no user input.
var excludedKinds = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
}

var styleColorRE = regexp.MustCompile(`(?i)(?:^|;)\s*color\s*:\s*([a-z]+)`)

// Options controls page building.
type Options struct {
	// Width is the wrap column for body text.
	Width int
	// KeepLinkTargets keeps link destinations inline as [text](href).
	// Form responses use it so search results stay navigable.
	KeepLinkTargets bool
}

// Builder parses markup and builds pages from it.
type Builder struct {
	Parser html.Parser
	Opts   Options
}

// NewBuilder returns a builder using the standard parser.
func NewBuilder(opts Options) *Builder {
	return &Builder{Parser: html.StdParser{}, Opts: opts}
}

// Load parses r and builds the page for pageURL. Parse failures produce an
// error page, so the result is always usable. The error is returned for
// logging.
func (b *Builder) Load(pageURL string, r io.Reader) (*Page, error) {
	doc, err := b.Parser.Parse(r)
	if err != nil {
		return ErrorPage(pageURL, err), err
	}
	p := Build(doc, pageURL, b.Opts)
	if p.Degenerate {
		return p, ErrDegenerateContent
	}
	return p, nil
}

// Build converts a parsed document into a Page. The document is modified:
// scripts are removed and anchor text is rewritten with link numbers.
func Build(doc *goquery.Document, pageURL string, opts Options) *Page {
	doc.Find("script, style, noscript, template").Remove()

	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	links := collectLinks(doc, base)
	forms := collectForms(doc)
	applyColors(doc)

	text := html.Text(doc.Selection, html.TextOptions{
		Width:           opts.Width,
		KeepLinkTargets: opts.KeepLinkTargets,
	})
	var content []string
	if text != "" {
		content = strings.Split(text, "\n")
	}
	body := append(content, trailer(links, forms)...)

	if countContent(content) < minContentLines {
		return &Page{
			URL:        pageURL,
			Body:       degenerateBody(pageURL, body),
			Degenerate: true,
			Extracted:  body,
		}
	}

	return &Page{URL: pageURL, Body: body, Links: links, Forms: forms}
}

// collectLinks numbers qualifying anchors and rewrites their text to
// "[i] label" in the same pass, so the body and the table cannot disagree.
func collectLinks(doc *goquery.Document, base *url.URL) []Link {
	var links []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if !followable(href) {
			return
		}
		// Anchors the text conversion drops would have no inline number.
		if s.ParentsFiltered(html.DroppedSelector).Length() > 0 {
			return
		}
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}

		label := truncateRunes(text, labelLimit)
		i := len(links)
		links = append(links, Link{Index: i, URL: resolve(base, href), Label: label})

		// The number and label are glued so wrapping cannot split them.
		glued := strings.ReplaceAll(label, " ", string(html.Glue))
		s.SetText(fmt.Sprintf("[%d]%c%s%s", i, html.Glue, glued, text[len(label):]))
	})
	return links
}

func followable(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	lower := strings.ToLower(href)
	return !strings.HasPrefix(lower, "javascript:") && !strings.HasPrefix(lower, "mailto:")
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func collectForms(doc *goquery.Document) []Form {
	var forms []Form
	doc.Find("form").Each(func(_ int, s *goquery.Selection) {
		var fields []FormField
		s.Find("input, textarea, select").Each(func(_ int, in *goquery.Selection) {
			f := field(in)
			if excludedKinds[f.Kind] {
				return
			}
			fields = append(fields, f)
		})
		if len(fields) == 0 {
			return
		}

		method := "GET"
		if strings.EqualFold(strings.TrimSpace(s.AttrOr("method", "")), "post") {
			method = "POST"
		}
		forms = append(forms, Form{
			Index:  len(forms),
			Action: strings.TrimSpace(s.AttrOr("action", "")),
			Method: method,
			Fields: fields,
		})
	})
	return forms
}

func field(in *goquery.Selection) FormField {
	f := FormField{
		Name:        in.AttrOr("name", ""),
		Placeholder: in.AttrOr("placeholder", ""),
	}
	switch goquery.NodeName(in) {
	case "textarea":
		f.Kind = "textarea"
		f.Default = in.Text()
	case "select":
		f.Kind = "select"
		opt := in.Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = in.Find("option").First()
		}
		f.Default = opt.AttrOr("value", strings.TrimSpace(opt.Text()))
	default:
		f.Kind = strings.ToLower(strings.TrimSpace(in.AttrOr("type", "")))
		if f.Kind == "" {
			f.Kind = "text"
		}
		f.Default = in.AttrOr("value", "")
	}
	return f
}

// colorSelector limits inline color styles to phrasing elements. Encoding
// flattens an element to its text, which would erase block structure.
const colorSelector = "font[color], font[style], span[style], b[style], strong[style], " +
	"i[style], em[style], u[style], mark[style], small[style]"

// applyColors encodes <font color> and inline color styles as color
// markers. Only recognized color names are encoded.
func applyColors(doc *goquery.Document) {
	doc.Find(colorSelector).Each(func(_ int, s *goquery.Selection) {
		color := s.AttrOr("color", "")
		if goquery.NodeName(s) != "font" || color == "" {
			m := styleColorRE.FindStringSubmatch(s.AttrOr("style", ""))
			if m == nil {
				return
			}
			color = m[1]
		}
		if !colorcode.Known(color) {
			return
		}
		text := s.Text()
		if strings.TrimSpace(text) == "" {
			return
		}
		s.SetText(colorcode.Encode(color, text))
	})
}

func trailer(links []Link, forms []Form) []string {
	var out []string
	if len(links) > 0 {
		out = append(out,
			"",
			Banner,
			fmt.Sprintf("LINKS: %d link(s) found", len(links)),
			Banner,
			fmt.Sprintf("Type a number (0-%d) to follow a link", len(links)-1),
			"",
		)
		for _, l := range links[:min(len(links), trailerLinks)] {
			out = append(out, fmt.Sprintf("[%d] %s", l.Index, l.Label))
		}
		if extra := len(links) - trailerLinks; extra > 0 {
			out = append(out, "", fmt.Sprintf("... and %d more links (see inline numbers)", extra))
		}
	}

	if len(forms) > 0 {
		out = append(out,
			"",
			Banner,
			fmt.Sprintf("FORMS DETECTED: %d form(s) found", len(forms)),
			Banner,
		)
		for _, f := range forms {
			out = append(out, "", fmt.Sprintf("[Form %d] %s → %s", f.Index, f.Method, f.Target()))
			for _, fld := range f.Fields {
				line := fmt.Sprintf("  - %s: %s", fld.Name, fld.Kind)
				if fld.Placeholder != "" {
					line += " (" + fld.Placeholder + ")"
				}
				out = append(out, line)
			}
		}
		out = append(out, "", "Press 'F' to fill out a form")
	}
	return out
}

func countContent(lines []string) int {
	n := 0
	for _, l := range lines {
		if !render.IsBlank(l) {
			n++
		}
	}
	return n
}
