// Package omnibox classifies address-box input as either a destination to
// open or a natural-language command for the assistant.
package omnibox

import (
	"regexp"
	"strings"

	"textbrowser/fetcher"
)

// Kind is the classification of an input line.
type Kind int

const (
	Empty Kind = iota
	Navigate
	Command
)

// Result represents the parsed omnibox input.
type Result struct {
	Kind    Kind
	URL     string // destination for Navigate
	Command string // text for Command
}

// urlPattern accepts an optional scheme, one or more "label." segments, a
// final alphabetic label of two or more letters, and an optional path. It
// looks like a domain, so prose never matches.
var urlPattern = regexp.MustCompile(`^(https?://)?([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}(/.*)?$`)

// LooksLikeURL reports whether input names a web destination.
func LooksLikeURL(input string) bool {
	return urlPattern.MatchString(strings.TrimSpace(input))
}

// IsLocal reports whether input names a local document: a file:// URL or a
// bare relative .html path.
func IsLocal(input string) bool {
	input = strings.TrimSpace(input)
	return fetcher.IsLocal(input) && !strings.ContainsAny(input, " \t")
}

// Parse classifies input.
func Parse(input string) Result {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return Result{Kind: Empty}
	case LooksLikeURL(input), IsLocal(input):
		return Result{Kind: Navigate, URL: input}
	}
	return Result{Kind: Command, Command: input}
}
