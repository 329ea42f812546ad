package session

import (
	"context"
	"fmt"
	"strings"

	"textbrowser/document"
	"textbrowser/fetcher"
	"textbrowser/llm"
	"textbrowser/omnibox"
)

// systemPrompt frames every assistant request.
const systemPrompt = "You are a helpful assistant for a text-mode web browser. " +
	"You can navigate to URLs using the navigate_to_url function when appropriate. " +
	"Provide clear, concise responses formatted for a terminal browser."

// truncationMarker ends page context that was cut to the budget.
const truncationMarker = "\n\n[Content truncated...]"

// Dispatch routes an address-box line: destinations are opened, anything
// else goes to the assistant.
func (s *Session) Dispatch(ctx context.Context, input string) {
	r := omnibox.Parse(input)
	switch r.Kind {
	case omnibox.Navigate:
		s.Navigate(ctx, r.URL)
	case omnibox.Command:
		s.Ask(ctx, r.Command)
	}
}

// BuildPrompt is the user message for command: the page URL and up to
// maxChars characters of its text, then the request itself.
func BuildPrompt(page *document.Page, command string, maxChars int) string {
	var sb strings.Builder
	if page != nil {
		if text := page.Context(); strings.TrimSpace(text) != "" {
			if r := []rune(text); maxChars > 0 && len(r) > maxChars {
				text = string(r[:maxChars]) + truncationMarker
			}
			fmt.Fprintf(&sb, "Current page URL: %s\n\nPage content:\n%s\n\n", page.URL, text)
		}
	}
	sb.WriteString("User request: ")
	sb.WriteString(command)
	return sb.String()
}

// Ask sends command to the assistant. The answer is shown as a page, or,
// when the assistant asks to navigate, the destination is opened exactly
// as if it had been typed.
func (s *Session) Ask(ctx context.Context, command string) {
	pageURL := s.url()
	log := s.log.With("command", command)

	if !s.aiEnabled() {
		log.Info("assistant disabled")
		s.setPage(document.AIDisabledPage(pageURL))
		return
	}

	s.flash(document.AIProcessingPage(pageURL, command))
	reply, err := s.ai.Ask(ctx, llm.Request{
		System:    systemPrompt,
		Prompt:    BuildPrompt(s.doc, command, s.opts.MaxContextChars),
		Tools:     []llm.Tool{llm.NavigateTool()},
		MaxTokens: s.opts.MaxCompletionTokens,
	})
	if err != nil {
		log.Warn("assistant failed", "kind", Kind(err), "err", err)
		s.setPage(document.AIErrorPage(pageURL, err))
		return
	}

	nav, ok, err := reply.Navigation()
	switch {
	case err != nil:
		log.Warn("bad navigation request", "kind", Kind(err), "err", err)
		s.setPage(document.AIErrorPage(pageURL, err))
	case ok:
		target := fetcher.Normalize(nav.URL)
		log.Info("assistant navigation", "url", target, "reason", nav.Reason)
		s.open(ctx, target, document.AINavigatingPage(pageURL, target, nav.Reason))
	default:
		log.Info("assistant answered", "chars", len(reply.Content))
		s.setPage(document.AIResponsePage(pageURL, command, reply.Content, s.wrapWidth()))
	}
}
