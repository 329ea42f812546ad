// Package session is the interactive browser: it owns the current page and
// scroll position and drives the fetch, build, render and input cycle.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"textbrowser/config"
	"textbrowser/document"
	"textbrowser/fetcher"
	"textbrowser/html"
	"textbrowser/llm"
	"textbrowser/logging"
	"textbrowser/screen"
	"textbrowser/theme"
	"textbrowser/view"
)

// State is the session's position in its lifecycle.
type State int

const (
	Idle          State = iota // nothing loaded yet
	Loaded                     // a page is shown and keys are handled
	AwaitingInput              // a modal capture is open
	Stopped                    // quit; no more input is read
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case AwaitingInput:
		return "awaiting-input"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Terminal is what the session draws on and reads from.
type Terminal interface {
	view.Surface
	Clear()
	Refresh() error
	ReadKey() (screen.Key, error)
	Input(req screen.InputRequest) (string, error)
}

// Assistant answers natural-language commands. *llm.Client implements it.
type Assistant interface {
	Available() bool
	Ask(ctx context.Context, req llm.Request) (*llm.Reply, error)
}

// Options configures a session.
type Options struct {
	Title               string
	Theme               *theme.Theme
	Keys                config.Keybindings
	ShowPercent         bool
	WrapMargin          int
	MaxContextChars     int
	MaxCompletionTokens int

	// StartURL is opened instead of the homepage when set.
	StartURL string

	// Docs holds homepage.html and help.html. Nil means the static
	// fallback pages.
	Docs   fs.FS
	Parser html.Parser
	Logger *slog.Logger
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	cfg := config.Default()
	return Options{
		Title:               cfg.Display.StatusTitle,
		Theme:               theme.Default,
		Keys:                cfg.Keybindings,
		ShowPercent:         cfg.Display.ShowScrollPercentage,
		WrapMargin:          cfg.Display.WrapMargin,
		MaxContextChars:     cfg.AI.MaxContextChars,
		MaxCompletionTokens: cfg.AI.MaxCompletionTokens,
	}
}

// Session is one browsing session.
type Session struct {
	term  Terminal
	fetch fetcher.Fetcher
	ai    Assistant
	opts  Options
	log   *slog.Logger

	page   *document.Page
	doc    *document.Page // last built document, the assistant's context
	scroll int
	state  State
}

// New creates a session. ai may be nil.
func New(term Terminal, f fetcher.Fetcher, ai Assistant, opts Options) *Session {
	if opts.Theme == nil {
		opts.Theme = theme.Default
	}
	if opts.Parser == nil {
		opts.Parser = html.StdParser{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Session{
		term:  term,
		fetch: f,
		ai:    ai,
		opts:  opts,
		log:   opts.Logger.With("session_id", uuid.NewString()),
		page:  &document.Page{},
	}
}

// Page returns the current page.
func (s *Session) Page() *document.Page { return s.page }

// Scroll returns the scroll offset.
func (s *Session) Scroll() int { return s.scroll }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

func (s *Session) aiEnabled() bool {
	return s.ai != nil && s.ai.Available()
}

// Run shows the start page and handles keys until quit. It returns only
// on quit or a terminal failure.
func (s *Session) Run(ctx context.Context) error {
	s.Start(ctx)
	for s.state != Stopped {
		if err := s.Render(); err != nil {
			return err
		}
		k, err := s.term.ReadKey()
		if err != nil {
			return err
		}
		s.HandleKey(ctx, k)
	}
	return nil
}

// Start opens StartURL, or else the bundled homepage, or else the welcome
// page.
func (s *Session) Start(ctx context.Context) {
	s.log.Info("session started", "ai", s.aiEnabled())
	if s.opts.StartURL != "" {
		s.Navigate(ctx, s.opts.StartURL)
		return
	}
	s.showDoc("homepage.html", document.WelcomePage(s.aiEnabled()))
}

// ShowHelp loads the bundled help document.
func (s *Session) ShowHelp() {
	s.showDoc("help.html", document.HelpPage())
}

func (s *Session) showDoc(name string, fallback *document.Page) {
	if s.opts.Docs == nil {
		s.setPage(fallback)
		return
	}
	f, err := s.opts.Docs.Open(name)
	if err != nil {
		s.log.Debug("bundled document missing", "name", name, "err", err)
		s.setPage(fallback)
		return
	}
	defer f.Close()

	page, err := s.builder(false).Load("about:"+strings.TrimSuffix(name, ".html"), f)
	if err != nil {
		s.log.Warn("bundled document failed", "name", name, "kind", Kind(err), "err", err)
	}
	s.show(page, err)
}

// Quit stops the session.
func (s *Session) Quit() {
	s.state = Stopped
	s.log.Info("session stopped")
}

// Navigate fetches target and shows it. Failures show an error page.
func (s *Session) Navigate(ctx context.Context, target string) {
	target = fetcher.Normalize(target)
	s.open(ctx, target, document.LoadingPage(target))
}

func (s *Session) open(ctx context.Context, target string, placeholder *document.Page) {
	s.flash(placeholder)
	s.show(s.load(ctx, fetcher.Request{URL: target, Method: "GET"}, false, document.ErrorPage))
}

// show displays the result of load. Error pages are not kept as the
// assistant's context.
func (s *Session) show(page *document.Page, err error) {
	if err != nil && !errors.Is(err, document.ErrDegenerateContent) {
		s.setPage(page)
		return
	}
	s.setDocument(page)
}

// load fetches and builds one page. Every failure is turned into a page
// by errPage; the error is returned for callers that care.
func (s *Session) load(ctx context.Context, req fetcher.Request, keepTargets bool, errPage func(string, error) *document.Page) (*document.Page, error) {
	start := time.Now()
	log := s.log.With("url", req.URL, "method", req.Method)

	res, err := s.fetch.Fetch(ctx, req)
	if err != nil {
		log.Warn("fetch failed", "kind", Kind(err), "err", err, "duration", time.Since(start))
		return errPage(req.URL, err), err
	}

	page, err := s.builder(keepTargets).Load(res.FinalURL, strings.NewReader(res.HTML))
	if err != nil {
		log.Warn("page degraded", "kind", Kind(err), "err", err, "duration", time.Since(start))
		if !errors.Is(err, document.ErrDegenerateContent) {
			page = errPage(res.FinalURL, err)
		}
		return page, err
	}

	log.Info("page loaded",
		"final_url", res.FinalURL,
		"duration", time.Since(start),
		"fetch_time", res.FetchTime,
		"lines", len(page.Body),
		"links", len(page.Links),
		"forms", len(page.Forms),
	)
	return page, nil
}

func (s *Session) builder(keepTargets bool) *document.Builder {
	return &document.Builder{
		Parser: s.opts.Parser,
		Opts:   document.Options{Width: s.wrapWidth(), KeepLinkTargets: keepTargets},
	}
}

// wrapWidth is the column body text is wrapped at.
func (s *Session) wrapWidth() int {
	width, _ := s.term.Size()
	if width <= 0 {
		return 78
	}
	return max(width-s.opts.WrapMargin, 20)
}

// setPage replaces the current page and resets scrolling.
func (s *Session) setPage(p *document.Page) {
	s.page = p
	s.scroll = 0
	s.state = Loaded
}

// setDocument is setPage for pages built from markup, which also become
// the assistant's context.
func (s *Session) setDocument(p *document.Page) {
	s.setPage(p)
	s.doc = p
}

// url is the address shown for the current page.
func (s *Session) url() string {
	return s.page.URL
}

// Kind names the failure class of err for logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, screen.ErrCancelled):
		return "InputCancelled"
	case errors.Is(err, document.ErrDegenerateContent):
		return "DegenerateContent"
	case errors.Is(err, html.ErrParse), errors.Is(err, fetcher.ErrRead):
		return "ParseError"
	case errors.Is(err, fetcher.ErrFetch):
		return "FetchError"
	case errors.Is(err, llm.ErrNoProvider):
		return "AIDisabled"
	case errors.Is(err, llm.ErrAI):
		return "AIError"
	}
	return fmt.Sprintf("%T", err)
}
