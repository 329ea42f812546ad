package document

import (
	"fmt"
	"strings"

	"textbrowser/render"
)

// Static pages shown when there is no document to build, or when building
// one failed.

// TextPage returns a page with the given body and no links or forms.
func TextPage(pageURL string, lines ...string) *Page {
	return &Page{URL: pageURL, Body: lines}
}

// ErrorPage explains a failed load.
func ErrorPage(pageURL string, err error) *Page {
	return TextPage(pageURL,
		fmt.Sprintf("Error loading page: %v", err),
		"",
		"Press Ctrl-K to enter a new URL",
	)
}

// SubmitErrorPage explains a failed form submission.
func SubmitErrorPage(pageURL string, err error) *Page {
	return TextPage(pageURL,
		"Form submission error!",
		"",
		fmt.Sprintf("Error: %v", err),
		"",
		"Press Ctrl-K to continue",
	)
}

func degenerateBody(pageURL string, raw []string) []string {
	body := []string{
		"JAVASCRIPT-HEAVY SITE DETECTED",
		"",
		"URL: " + pageURL,
		"",
		"This site appears to require JavaScript to display content.",
		"Text browsers cannot execute JavaScript.",
		"",
		"Possible solutions:",
		"",
		"1. Ask AI for help (Ctrl-K):",
		"   - 'find a text-friendly alternative to this site'",
		"   - 'search for [topic] on a simpler site'",
		"   - 'what is this site about?'",
		"",
		"2. Try alternative sites:",
		"   - YouTube → Invidious instances (yewtu.be, inv.riverside.rocks)",
		"   - Twitter → Nitter instances (nitter.net)",
		"   - Reddit → old.reddit.com or teddit instances",
		"   - Instagram → bibliogram instances",
		"",
		"3. Use yt-dlp for YouTube:",
		"   - Command line tool to download/stream videos",
		"",
		"Press Ctrl-K to try a different site or ask AI for alternatives.",
		"",
		Banner,
		"",
		"Raw content detected:",
		"",
	}
	return append(body, raw[:min(len(raw), rawPreviewLines)]...)
}

// LoadingPage is shown while a page is fetched.
func LoadingPage(pageURL string) *Page {
	return TextPage(pageURL, "Loading "+pageURL+" ...")
}

// SubmittingPage is shown while a form is submitted.
func SubmittingPage(pageURL, target string) *Page {
	return TextPage(pageURL, "Submitting form...", "", "Target: "+target)
}

// NoLinksPage replaces the page when link selection is asked for on a page
// without links.
func NoLinksPage(pageURL string) *Page {
	return TextPage(pageURL, "No links found on this page!")
}

// NoFormsPage is the form counterpart of NoLinksPage.
func NoFormsPage(pageURL string) *Page {
	return TextPage(pageURL, "No forms found on this page!")
}

// AIDisabledPage is shown for commands when no assistant is configured.
func AIDisabledPage(pageURL string) *Page {
	return TextPage(pageURL,
		"AI features are not enabled!",
		"",
		"To enable AI features, set your OpenAI API key:",
		"  export OPENAI_API_KEY=your-key-here",
		"",
		"or your Anthropic API key:",
		"  export ANTHROPIC_API_KEY=your-key-here",
		"",
		"Then restart the browser.",
		"",
		"Press Ctrl-K to continue browsing.",
	)
}

// AIProcessingPage is shown while the assistant works on command.
func AIProcessingPage(pageURL, command string) *Page {
	return TextPage(pageURL, "AI Processing: "+command, "", "Please wait...")
}

// AINavigatingPage is shown when the assistant asked to open a URL.
func AINavigatingPage(pageURL, target, reason string) *Page {
	return TextPage(pageURL,
		"AI Action: Navigating to URL",
		"",
		"Reason: "+reason,
		"URL: "+target,
		"",
		"Loading page...",
	)
}

// AIErrorPage explains a failed assistant call.
func AIErrorPage(pageURL string, err error) *Page {
	return TextPage(pageURL,
		"AI Error!",
		"",
		fmt.Sprintf("Error: %v", err),
		"",
		"Press Ctrl-K to try again.",
	)
}

// AIResponsePage shows the assistant's answer wrapped to width.
func AIResponsePage(pageURL, command, response string, width int) *Page {
	if strings.TrimSpace(response) == "" {
		response = "No response from AI."
	}
	body := []string{"AI Response to: " + command}
	if pageURL != "" {
		body = append(body, "Page: "+pageURL)
	}
	body = append(body, Banner, "")
	if width > 0 {
		body = append(body, render.WrapText(response, width)...)
	} else {
		body = append(body, strings.Split(response, "\n")...)
	}
	body = append(body, "", Banner, "Press Ctrl-K to enter a new command or URL")
	return TextPage(pageURL, body...)
}

// WelcomePage is the start page when no homepage document is available.
func WelcomePage(aiEnabled bool) *Page {
	status := "DISABLED (set OPENAI_API_KEY or ANTHROPIC_API_KEY to enable)"
	if aiEnabled {
		status = "ENABLED"
	}
	return TextPage("",
		"Welcome to TextBrowser!",
		"",
		"A text-mode web browser with AI assistance.",
		"AI Features: "+status,
		"",
		"Press Ctrl-K to enter a URL or AI command.",
		"",
		"Controls:",
		"  Ctrl-K    - Open address/AI command box",
		"  0-9/G     - Follow numbered links",
		"  F         - Fill forms",
		"  ↑ ↓       - Scroll up/down",
		"  PgUp/PgDn - Scroll page up/down",
		"  Home/End  - Jump to top/bottom",
		"  Q         - Quit",
	)
}

// HelpPage is the help text when no help document is available.
func HelpPage() *Page {
	return TextPage("",
		"TextBrowser Help",
		"",
		"Keyboard Controls:",
		"  Ctrl-K    - Address/AI command box",
		"  0-9       - Follow numbered links",
		"  G         - Go to link by number",
		"  F         - Fill out forms",
		"  H         - Show this help",
		"  Q         - Quit",
		"",
		"AI Commands (Ctrl-K):",
		"  summarize this page",
		"  what are the main points?",
		"  go to wikipedia for [topic]",
		"  translate to [language]",
		"",
		"help.html not found - reinstall browser",
	)
}
