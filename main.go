// TextBrowser is a terminal web browser with numbered links, form filling
// and an AI assistant that can answer questions about the page or open
// pages for you.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"textbrowser/assets"
	"textbrowser/config"
	"textbrowser/document"
	"textbrowser/fetcher"
	"textbrowser/llm"
	"textbrowser/logging"
	"textbrowser/render"
	"textbrowser/screen"
	"textbrowser/session"
	"textbrowser/theme"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		printMode  bool
		initConfig bool
		width      int
	)

	cmd := &cobra.Command{
		Use:   "textbrowser [url]",
		Short: "TextBrowser - terminal web browser with an AI assistant",
		Long: `TextBrowser shows web pages as plain text with numbered links.

Press Ctrl-K to type an address or ask the assistant about the page.
The assistant needs OPENAI_API_KEY or ANTHROPIC_API_KEY in the environment.

Configuration:
  Config file: ` + config.ConfigPath() + `
  Generate with: textbrowser --init-config > ` + config.ConfigPath(),
		Example: `  textbrowser                          Open the start page
  textbrowser example.com              Open a URL
  textbrowser -p https://example.com   Print the page text to stdout`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if initConfig {
				_, err := io.WriteString(cmd.OutOrStdout(), config.DefaultTOML())
				return err
			}

			url := ""
			if len(args) > 0 {
				url = args[0]
			}

			cfg, err := config.Load()
			if err != nil {
				return errors.New(config.FormatError(err))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if printMode {
				return runPrint(ctx, cmd.OutOrStdout(), cfg, url, width)
			}
			return run(ctx, cfg, url)
		},
	}

	cmd.Flags().BoolVarP(&printMode, "print", "p", false, "print the page text to stdout (one-shot mode)")
	cmd.Flags().BoolVar(&initConfig, "init-config", false, "print the default configuration")
	cmd.Flags().IntVar(&width, "width", 0, "wrap width for --print (default: terminal width or 80)")
	return cmd
}

func newFetcher(cfg *config.Config) fetcher.Fetcher {
	return &fetcher.Mux{
		Remote: fetcher.NewHTTP(fetcher.Options{
			UserAgent:      cfg.Fetcher.UserAgent,
			TimeoutSeconds: cfg.Fetcher.TimeoutSeconds,
		}),
		Local: &fetcher.Local{},
	}
}

func newAssistant(cfg *config.Config, logger *slog.Logger) *llm.Client {
	openai := llm.NewOpenAI("").WithModel(cfg.AI.Model)
	if cfg.AI.BaseURL != "" {
		openai = openai.WithBaseURL(cfg.AI.BaseURL)
	}
	claude := llm.NewClaudeAPI("").WithModel(cfg.AI.AnthropicModel)

	client := llm.NewClient(openai, claude)
	if p := strings.ToLower(cfg.AI.Provider); p != "" && p != "auto" {
		if !client.SetPreferred(p) {
			logger.Warn("preferred AI provider unavailable", "provider", p)
		}
	}
	for _, info := range client.ListProviders() {
		logger.Debug("AI provider", "name", info.Name, "available", info.Available)
	}
	return client
}

// docs returns the homepage and help documents, from DocsDir when it is
// set.
func docs(cfg *config.Config) fs.FS {
	if cfg.Fetcher.DocsDir != "" {
		return os.DirFS(cfg.Fetcher.DocsDir)
	}
	return assets.FS
}

func pickTheme(cfg *config.Config) *theme.Theme {
	if os.Getenv("NO_COLOR") != "" {
		return theme.Mono
	}
	return theme.ByName(cfg.Display.Theme)
}

func runPrint(ctx context.Context, w io.Writer, cfg *config.Config, url string, width int) error {
	if width <= 0 {
		width = 80
		if tw, _, err := render.TerminalSize(os.Stdout); err == nil {
			width = tw
		}
	}
	b := document.NewBuilder(document.Options{Width: max(width-cfg.Display.WrapMargin, 20)})

	var page *document.Page
	if url == "" {
		f, err := docs(cfg).Open(assets.Homepage)
		if err != nil {
			return err
		}
		defer f.Close()
		page, err = b.Load("about:homepage", f)
		if err != nil {
			return err
		}
	} else {
		res, err := newFetcher(cfg).Fetch(ctx, fetcher.Request{URL: url})
		if err != nil {
			return err
		}
		// A JavaScript-heavy page still prints its explanation.
		page, _ = b.Load(res.FinalURL, strings.NewReader(res.HTML))
	}

	_, err := fmt.Fprintln(w, page.Text())
	return err
}

func run(ctx context.Context, cfg *config.Config, url string) error {
	logger, closer, err := logging.Open(cfg.Log.File, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}

	th := pickTheme(cfg)
	scr, err := screen.Open(os.Stdin, os.Stdout, th)
	if err != nil {
		return err
	}
	defer scr.Close()

	s := session.New(scr, newFetcher(cfg), newAssistant(cfg, logger), session.Options{
		Title:               cfg.Display.StatusTitle,
		Theme:               th,
		Keys:                cfg.Keybindings,
		ShowPercent:         cfg.Display.ShowScrollPercentage,
		WrapMargin:          cfg.Display.WrapMargin,
		MaxContextChars:     cfg.AI.MaxContextChars,
		MaxCompletionTokens: cfg.AI.MaxCompletionTokens,
		StartURL:            url,
		Docs:                docs(cfg),
		Logger:              logger,
	})
	return s.Run(ctx)
}
