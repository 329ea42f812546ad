// Package config provides configuration loading for the browser using TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// AppName names the XDG subdirectories.
const AppName = "textbrowser"

// Display settings
type Display struct {
	ShowScrollPercentage bool   `toml:"showScrollPercentage"`
	StatusTitle          string `toml:"statusTitle"`
	WrapMargin           int    `toml:"wrapMargin"` // columns left free when wrapping page text
	Theme                string `toml:"theme"`      // "default" or "mono"
}

// HTTP fetching settings
type Fetcher struct {
	UserAgent      string `toml:"userAgent"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	DocsDir        string `toml:"docsDir"` // bundled homepage/help override
}

// AI assistant settings. Credentials come from the environment only.
type AI struct {
	Provider            string `toml:"provider"` // "auto", "openai" or "anthropic"
	Model               string `toml:"model"`
	AnthropicModel      string `toml:"anthropicModel"`
	MaxContextChars     int    `toml:"maxContextChars"`
	MaxCompletionTokens int    `toml:"maxCompletionTokens"`
	BaseURL             string `toml:"baseURL"`
}

// Log settings
type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty = XDG state directory
}

// Keybindings configuration. Each binding is a single key; "ctrl-x"
// names a control key. Letters match in either case.
type Keybindings struct {
	Omnibox  string `toml:"omnibox"`
	FillForm string `toml:"fillForm"`
	Help     string `toml:"help"`
	GotoLink string `toml:"gotoLink"`
	Quit     string `toml:"quit"`
}

// Config is the main configuration struct
type Config struct {
	Display     Display     `toml:"display"`
	Fetcher     Fetcher     `toml:"fetcher"`
	AI          AI          `toml:"ai"`
	Log         Log         `toml:"log"`
	Keybindings Keybindings `toml:"keybindings"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Display: Display{
			ShowScrollPercentage: true,
			StatusTitle:          "TextBrowser",
			WrapMargin:           4,
			Theme:                "default",
		},
		Fetcher: Fetcher{
			UserAgent:      "Lynx/2.9.0dev.6 libwww-FM/2.14 SSL-MM/1.4.1",
			TimeoutSeconds: 10,
		},
		AI: AI{
			Provider:            "auto",
			Model:               "gpt-5-nano",
			AnthropicModel:      "claude-sonnet-4-20250514",
			MaxContextChars:     12000,
			MaxCompletionTokens: 2000,
		},
		Log: Log{
			Level: "info",
		},
		Keybindings: Keybindings{
			Omnibox:  "ctrl-k",
			FillForm: "f",
			Help:     "h",
			GotoLink: "g",
			Quit:     "q",
		},
	}
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// Load loads configuration, layering the user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	userCfg, md, err := loadFromTOML(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	return merge(cfg, userCfg, md), nil
}

// loadFromTOML loads a TOML config file and returns the config.
func loadFromTOML(path string) (*Config, toml.MetaData, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, md, fmt.Errorf("parsing config TOML: %w", err)
	}
	return &cfg, md, nil
}

// merge layers user config on top of defaults.
// Strings and numbers override when non-zero; booleans override when the
// key is present in the file.
func merge(defaults, user *Config, md toml.MetaData) *Config {
	result := *defaults

	// Display
	if md.IsDefined("display", "showScrollPercentage") {
		result.Display.ShowScrollPercentage = user.Display.ShowScrollPercentage
	}
	mergeString(&result.Display.StatusTitle, user.Display.StatusTitle)
	mergeInt(&result.Display.WrapMargin, user.Display.WrapMargin)
	mergeString(&result.Display.Theme, user.Display.Theme)

	// Fetcher
	mergeString(&result.Fetcher.UserAgent, user.Fetcher.UserAgent)
	mergeInt(&result.Fetcher.TimeoutSeconds, user.Fetcher.TimeoutSeconds)
	mergeString(&result.Fetcher.DocsDir, user.Fetcher.DocsDir)

	// AI
	mergeString(&result.AI.Provider, user.AI.Provider)
	mergeString(&result.AI.Model, user.AI.Model)
	mergeString(&result.AI.AnthropicModel, user.AI.AnthropicModel)
	mergeInt(&result.AI.MaxContextChars, user.AI.MaxContextChars)
	mergeInt(&result.AI.MaxCompletionTokens, user.AI.MaxCompletionTokens)
	mergeString(&result.AI.BaseURL, user.AI.BaseURL)

	// Log
	mergeString(&result.Log.Level, user.Log.Level)
	mergeString(&result.Log.File, user.Log.File)

	// Keybindings - override each if set
	mergeString(&result.Keybindings.Omnibox, user.Keybindings.Omnibox)
	mergeString(&result.Keybindings.FillForm, user.Keybindings.FillForm)
	mergeString(&result.Keybindings.Help, user.Keybindings.Help)
	mergeString(&result.Keybindings.GotoLink, user.Keybindings.GotoLink)
	mergeString(&result.Keybindings.Quit, user.Keybindings.Quit)

	return &result
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# TextBrowser configuration
# Save to ~/.config/textbrowser/config.toml and customize
# Only include settings you want to change from defaults

# Display settings
[display]
showScrollPercentage = true   # Show [N%] in the help bar on long pages
statusTitle = "TextBrowser"   # Name shown in the status bar
wrapMargin = 4                # Columns left free when wrapping page text
theme = "default"             # "default" or "mono"

# HTTP fetching settings
[fetcher]
userAgent = "Lynx/2.9.0dev.6 libwww-FM/2.14 SSL-MM/1.4.1"
timeoutSeconds = 10
docsDir = ""                  # Directory with homepage.html/help.html (empty = built in)

# AI assistant. Keys are read from OPENAI_API_KEY / ANTHROPIC_API_KEY.
[ai]
provider = "auto"             # "auto", "openai" or "anthropic"
model = "gpt-5-nano"
anthropicModel = "claude-sonnet-4-20250514"
maxContextChars = 12000       # Page text sent along with each command
maxCompletionTokens = 2000
baseURL = ""                  # OpenAI-compatible endpoint (empty = api.openai.com)

# Logging
[log]
level = "info"                # "debug", "info", "warn" or "error"
file = ""                     # Empty = ~/.local/state/textbrowser/textbrowser.log

# Keybindings - single keys; "ctrl-k" style names for control keys
[keybindings]
omnibox = "ctrl-k"            # Address / AI command box
fillForm = "f"
help = "h"
gotoLink = "g"
quit = "q"
`
}

// Key resolves a binding to the rune a terminal sends for it.
// It returns 0 for an empty or malformed binding.
func Key(binding string) rune {
	b := strings.TrimSpace(binding)
	lower := strings.ToLower(b)
	if rest, ok := strings.CutPrefix(lower, "ctrl-"); ok && len(rest) == 1 {
		c := rest[0]
		if c >= 'a' && c <= 'z' {
			return rune(c-'a') + 1
		}
		return 0
	}
	r := []rune(b)
	if len(r) != 1 {
		return 0
	}
	return r[0]
}

// Match reports whether input triggers binding. Letter bindings match
// both cases.
func Match(input rune, binding string) bool {
	k := Key(binding)
	if k == 0 {
		return false
	}
	if input == k {
		return true
	}
	return k >= 'a' && k <= 'z' && input == k-'a'+'A' ||
		k >= 'A' && k <= 'Z' && input == k-'A'+'a'
}

// FormatError formats a configuration error for user display.
func FormatError(err error) string {
	return fmt.Sprintf("Configuration error:\n\n%s", err.Error())
}
