// Package llm provides an abstraction layer for language model providers.
package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoProvider is returned when no LLM provider is configured or available.
	ErrNoProvider = errors.New("no LLM provider available")
	// ErrAI wraps failures reported by a provider or its transport.
	ErrAI = errors.New("assistant request failed")
)

// Tool describes a function the model may call.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON schema of the arguments object
}

// ToolCall is a model's request to invoke a tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // JSON object
}

// Request is a single-turn exchange.
type Request struct {
	System    string
	Prompt    string
	Tools     []Tool
	MaxTokens int
}

// Reply is the model's answer: text, tool calls, or both.
type Reply struct {
	Content   string
	ToolCalls []ToolCall
}

// Provider defines the interface for language model backends.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Available checks if this provider is ready to use.
	Available() bool

	// Ask sends the request and returns the reply.
	Ask(ctx context.Context, req Request) (*Reply, error)
}

// Client manages LLM providers and selects the best available one.
type Client struct {
	providers []Provider
	preferred Provider
}

// NewClient creates a new LLM client with the given providers.
// Providers are tried in order of preference.
func NewClient(providers ...Provider) *Client {
	return &Client{
		providers: providers,
	}
}

// SetPreferred sets a specific provider to use, bypassing auto-selection.
func (c *Client) SetPreferred(name string) bool {
	for _, p := range c.providers {
		if p.Name() == name && p.Available() {
			c.preferred = p
			return true
		}
	}
	return false
}

// Provider returns the currently active provider, or nil if none available.
func (c *Client) Provider() Provider {
	if c.preferred != nil && c.preferred.Available() {
		return c.preferred
	}

	for _, p := range c.providers {
		if p.Available() {
			return p
		}
	}
	return nil
}

// Available returns true if any provider is available.
func (c *Client) Available() bool {
	return c.Provider() != nil
}

// Ask sends the request to the best available provider. Provider failures
// match ErrAI.
func (c *Client) Ask(ctx context.Context, req Request) (*Reply, error) {
	p := c.Provider()
	if p == nil {
		return nil, ErrNoProvider
	}
	reply, err := p.Ask(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAI, p.Name(), err)
	}
	return reply, nil
}

// ListProviders returns info about all configured providers.
func (c *Client) ListProviders() []ProviderInfo {
	var infos []ProviderInfo
	for _, p := range c.providers {
		infos = append(infos, ProviderInfo{
			Name:      p.Name(),
			Available: p.Available(),
		})
	}
	return infos
}

// ProviderInfo describes a provider's status.
type ProviderInfo struct {
	Name      string
	Available bool
}
