package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"textbrowser/config"
	"textbrowser/document"
	"textbrowser/formfill"
	"textbrowser/screen"
	"textbrowser/view"
)

// HandleKey applies one key press to a loaded session.
func (s *Session) HandleKey(ctx context.Context, k screen.Key) {
	if s.state != Loaded {
		return
	}
	keys := s.opts.Keys
	_, height := s.term.Size()
	n := len(s.page.Body)
	page := view.ContentHeight(height)

	switch k.Code {
	case screen.KeyRune:
		switch r := k.Rune; {
		case config.Match(r, keys.Omnibox):
			s.Omnibox(ctx)
		case config.Match(r, keys.FillForm):
			s.FillForm(ctx)
		case config.Match(r, keys.Help):
			s.ShowHelp()
		case config.Match(r, keys.GotoLink):
			s.GotoLink(ctx)
		case r >= '0' && r <= '9':
			if link, ok := s.page.Link(int(r - '0')); ok {
				s.Navigate(ctx, link.URL)
			}
		case config.Match(r, keys.Quit):
			s.Quit()
		}
	case screen.KeyUp:
		s.scrollTo(s.scroll-1, height)
	case screen.KeyDown:
		s.scrollTo(s.scroll+1, height)
	case screen.KeyPageUp:
		s.scrollTo(s.scroll-page, height)
	case screen.KeyPageDown:
		s.scrollTo(s.scroll+page, height)
	case screen.KeyHome:
		s.scrollTo(0, height)
	case screen.KeyEnd:
		s.scrollTo(view.MaxScroll(n, height), height)
	case screen.KeyResize:
		s.scrollTo(s.scroll, height)
	}
}

func (s *Session) scrollTo(offset, height int) {
	s.scroll = view.Clamp(offset, len(s.page.Body), height)
}

// input runs a modal capture. Normal input resumes whatever the outcome.
func (s *Session) input(req screen.InputRequest) (string, error) {
	s.state = AwaitingInput
	defer func() {
		if s.state == AwaitingInput {
			s.state = Loaded
		}
	}()
	answer, err := s.term.Input(req)
	if err != nil && !errors.Is(err, screen.ErrCancelled) {
		s.log.Error("input failed", "err", err)
		return "", fmt.Errorf("%w: %w", screen.ErrCancelled, err)
	}
	return answer, err
}

// prompter lets formfill capture through the session.
type prompter struct{ s *Session }

func (p prompter) Input(req screen.InputRequest) (string, error) {
	return p.s.input(req)
}

// Omnibox opens the address box and dispatches what was typed.
func (s *Session) Omnibox(ctx context.Context) {
	width, _ := s.term.Size()
	answer, err := s.input(screen.InputRequest{
		Title:  "Address / AI Command",
		MaxLen: max(width-8, 1),
		Bottom: true,
	})
	if err != nil {
		return
	}
	s.Dispatch(ctx, answer)
}

// GotoLink asks for a link number and follows it. Anything but a valid
// number does nothing.
func (s *Session) GotoLink(ctx context.Context) {
	links := s.page.Links
	if len(links) == 0 {
		s.setPage(document.NoLinksPage(s.url()))
		return
	}
	answer, err := s.input(screen.InputRequest{
		Title:  "Go to Link",
		Lines:  []string{fmt.Sprintf("Enter link number (0-%d):", len(links)-1)},
		Prompt: "> ",
		MaxLen: 10,
	})
	if err != nil {
		return
	}
	i, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return
	}
	if link, ok := s.page.Link(i); ok {
		s.Navigate(ctx, link.URL)
	}
}

// FillForm captures a form and submits it. Cancelling at any prompt
// leaves the session untouched.
func (s *Session) FillForm(ctx context.Context) {
	if len(s.page.Forms) == 0 {
		s.setPage(document.NoFormsPage(s.url()))
		return
	}
	sub, err := formfill.Fill(prompter{s}, s.page.Forms)
	if err != nil {
		s.log.Info("form fill abandoned", "kind", Kind(err), "err", err)
		return
	}
	s.Submit(ctx, sub)
}

// Submit sends a filled form from the current page and shows the response
// with link targets kept inline.
func (s *Session) Submit(ctx context.Context, sub *formfill.Submission) {
	pageURL := s.url()
	req, err := sub.Request(pageURL)
	if err != nil {
		s.setPage(document.SubmitErrorPage(pageURL, err))
		return
	}
	s.flash(document.SubmittingPage(pageURL, req.URL))
	s.show(s.load(ctx, req, true, document.SubmitErrorPage))
}
