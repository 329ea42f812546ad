package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NavigateToolName is the tool the browser offers to the model.
const NavigateToolName = "navigate_to_url"

// NavigateTool lets the model send the browser to a URL.
func NavigateTool() Tool {
	return Tool{
		Name: NavigateToolName,
		Description: "Navigate the browser to a specific URL. Use this when the user wants to visit a website " +
			"or when you need to look up information that requires visiting a specific page.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"url": map[string]any{
					"type":        "string",
					"description": "The full URL to navigate to (e.g., 'https://en.wikipedia.org/wiki/WebDAV')",
				},
				"reason": map[string]any{
					"type":        "string",
					"description": "Brief explanation of why navigating to this URL",
				},
			},
			"required": []string{"url", "reason"},
		},
	}
}

// Navigation is a decoded navigate_to_url call.
type Navigation struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// Navigation returns the first navigate_to_url call in the reply. ok is
// false when the model did not ask to navigate.
func (r *Reply) Navigation() (nav Navigation, ok bool, err error) {
	for _, tc := range r.ToolCalls {
		if tc.Name != NavigateToolName {
			continue
		}
		if err := json.Unmarshal([]byte(tc.Arguments), &nav); err != nil {
			return Navigation{}, false, fmt.Errorf("decoding %s arguments: %w", NavigateToolName, err)
		}
		nav.URL = strings.TrimSpace(nav.URL)
		if nav.URL == "" {
			return Navigation{}, false, fmt.Errorf("%s called without a url", NavigateToolName)
		}
		if nav.Reason == "" {
			nav.Reason = "AI navigation"
		}
		return nav, true, nil
	}
	return Navigation{}, false, nil
}
