package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

const (
	anthropicAPIURL     = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion = "2023-06-01"
	defaultClaudeModel  = "claude-sonnet-4-20250514"
)

// ClaudeAPI implements Provider using the Anthropic API directly.
type ClaudeAPI struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

// NewClaudeAPI creates a new Claude API provider.
// If apiKey is empty, it reads from ANTHROPIC_API_KEY environment variable.
func NewClaudeAPI(apiKey string) *ClaudeAPI {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	return &ClaudeAPI{
		apiKey: apiKey,
		model:  defaultClaudeModel,
		url:    anthropicAPIURL,
		client: &http.Client{},
	}
}

// WithModel sets a specific model to use.
func (c *ClaudeAPI) WithModel(model string) *ClaudeAPI {
	if model != "" {
		c.model = model
	}
	return c
}

// WithURL overrides the messages endpoint.
func (c *ClaudeAPI) WithURL(url string) *ClaudeAPI {
	c.url = url
	return c
}

// Name returns the provider name.
func (c *ClaudeAPI) Name() string {
	return "anthropic"
}

// Available checks if an API key is configured.
func (c *ClaudeAPI) Available() bool {
	return c.apiKey != ""
}

// Ask sends the request to the Anthropic messages API.
func (c *ClaudeAPI) Ask(ctx context.Context, r Request) (*Reply, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: r.MaxTokens,
		System:    r.System,
		Messages:  []apiMessage{{Role: "user", Content: r.Prompt}},
	}
	if reqBody.MaxTokens <= 0 {
		reqBody.MaxTokens = 4096
	}
	for _, t := range r.Tools {
		reqBody.Tools = append(reqBody.Tools, apiTool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.Parameters,
		})
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	reply := &Reply{}
	for _, block := range apiResp.Content {
		switch block.Type {
		case "text":
			reply.Content += block.Text
		case "tool_use":
			reply.ToolCalls = append(reply.ToolCalls, ToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: string(block.Input),
			})
		}
	}

	return reply, nil
}

// API request/response types

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system,omitempty"`
	Messages  []apiMessage `json:"messages"`
	Tools     []apiTool    `json:"tools,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema"`
}

type apiResponse struct {
	Content []apiContentBlock `json:"content"`
}

type apiContentBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
