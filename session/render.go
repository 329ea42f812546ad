package session

import (
	"fmt"
	"strings"
	"unicode"

	"textbrowser/document"
	"textbrowser/render"
	"textbrowser/view"
)

// Render draws the current page.
func (s *Session) Render() error {
	_, height := s.term.Size()
	s.scrollTo(s.scroll, height)
	s.draw(s.page, s.scroll)
	return s.term.Refresh()
}

// flash draws p in place of the current page without replacing it, so the
// user sees feedback before a blocking call.
func (s *Session) flash(p *document.Page) {
	s.draw(p, 0)
	if err := s.term.Refresh(); err != nil {
		s.log.Warn("refresh failed", "err", err)
	}
}

func (s *Session) draw(p *document.Page, scroll int) {
	s.term.Clear()
	view.Render(s.term, s.opts.Theme, view.Frame{
		Status:      s.statusLine(p),
		Help:        s.helpLine(p),
		Body:        p.Body,
		Scroll:      scroll,
		ShowPercent: s.opts.ShowPercent,
	})
}

func (s *Session) statusLine(p *document.Page) string {
	title := s.opts.Title
	if title == "" {
		title = "TextBrowser"
	}
	where := p.URL
	if where == "" {
		where = "No page loaded"
	}
	width, _ := s.term.Size()
	where = render.Truncate(where, max(width-render.StringWidth(title)-5, 10))
	return fmt.Sprintf(" %s | %s ", title, where)
}

func (s *Session) helpLine(p *document.Page) string {
	keys := s.opts.Keys
	var sb strings.Builder
	fmt.Fprintf(&sb, " %s: URL/AI", keyLabel(keys.Omnibox))
	if len(p.Links) > 0 {
		fmt.Fprintf(&sb, " | 0-9/%s: Links", keyLabel(keys.GotoLink))
	}
	if len(p.Forms) > 0 {
		fmt.Fprintf(&sb, " | %s: Form", keyLabel(keys.FillForm))
	}
	fmt.Fprintf(&sb, " | %s: Help | %s: Quit ", keyLabel(keys.Help), keyLabel(keys.Quit))
	return sb.String()
}

// keyLabel formats a binding for the help bar: "ctrl-k" as "Ctrl-K",
// letters in upper case.
func keyLabel(binding string) string {
	b := strings.TrimSpace(binding)
	if rest, ok := strings.CutPrefix(strings.ToLower(b), "ctrl-"); ok {
		return "Ctrl-" + strings.ToUpper(rest)
	}
	return strings.Map(unicode.ToUpper, b)
}
