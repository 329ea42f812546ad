package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubProvider struct {
	name      string
	available bool
	reply     *Reply
	err       error
	calls     int
}

func (s *stubProvider) Name() string    { return s.name }
func (s *stubProvider) Available() bool { return s.available }

func (s *stubProvider) Ask(context.Context, Request) (*Reply, error) {
	s.calls++
	return s.reply, s.err
}

func TestClientSelection(t *testing.T) {
	off := &stubProvider{name: "off"}
	a := &stubProvider{name: "a", available: true, reply: &Reply{Content: "from a"}}
	b := &stubProvider{name: "b", available: true, reply: &Reply{Content: "from b"}}

	c := NewClient(off, a, b)
	reply, err := c.Ask(context.Background(), Request{Prompt: "hi"})
	if err != nil || reply.Content != "from a" {
		t.Fatalf("got %v, %v", reply, err)
	}

	if !c.SetPreferred("b") {
		t.Fatal("SetPreferred(b) failed")
	}
	if c.SetPreferred("off") {
		t.Error("unavailable provider should not be preferred")
	}
	reply, _ = c.Ask(context.Background(), Request{})
	if reply.Content != "from b" {
		t.Errorf("got %q, expected %q", reply.Content, "from b")
	}
}

func TestClientNoProvider(t *testing.T) {
	off := &stubProvider{name: "off"}
	c := NewClient(off)
	if c.Available() {
		t.Error("client should be unavailable")
	}
	_, err := c.Ask(context.Background(), Request{})
	if !errors.Is(err, ErrNoProvider) {
		t.Errorf("got %v, expected ErrNoProvider", err)
	}
	if off.calls != 0 {
		t.Error("unavailable provider must not be called")
	}
}

func TestClientWrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	c := NewClient(&stubProvider{name: "x", available: true, err: boom})
	_, err := c.Ask(context.Background(), Request{})
	if !errors.Is(err, ErrAI) || !errors.Is(err, boom) {
		t.Errorf("got %v, expected ErrAI wrapping boom", err)
	}
}

func TestReplyNavigation(t *testing.T) {
	tests := []struct {
		name    string
		calls   []ToolCall
		want    Navigation
		ok      bool
		wantErr bool
	}{
		{"no calls", nil, Navigation{}, false, false},
		{
			"navigate",
			[]ToolCall{{Name: NavigateToolName, Arguments: `{"url":" https://go.dev ","reason":"docs"}`}},
			Navigation{URL: "https://go.dev", Reason: "docs"},
			true, false,
		},
		{
			"default reason",
			[]ToolCall{{Name: "other"}, {Name: NavigateToolName, Arguments: `{"url":"go.dev"}`}},
			Navigation{URL: "go.dev", Reason: "AI navigation"},
			true, false,
		},
		{"bad json", []ToolCall{{Name: NavigateToolName, Arguments: `{`}}, Navigation{}, false, true},
		{"missing url", []ToolCall{{Name: NavigateToolName, Arguments: `{}`}}, Navigation{}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Reply{ToolCalls: tt.calls}
			got, ok, err := r.Navigation()
			if (err != nil) != tt.wantErr || ok != tt.ok || got != tt.want {
				t.Errorf("got (%+v, %v, %v), want (%+v, %v, err=%v)", got, ok, err, tt.want, tt.ok, tt.wantErr)
			}
		})
	}
}

func TestClaudeAPIToolUse(t *testing.T) {
	var got apiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		io.WriteString(w, `{"content":[
			{"type":"text","text":"Opening it."},
			{"type":"tool_use","id":"tu_1","name":"navigate_to_url","input":{"url":"https://go.dev","reason":"docs"}}
		]}`)
	}))
	defer srv.Close()

	p := NewClaudeAPI("test-key").WithURL(srv.URL)
	reply, err := p.Ask(context.Background(), Request{
		System:    "sys",
		Prompt:    "open go docs",
		Tools:     []Tool{NavigateTool()},
		MaxTokens: 2000,
	})
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if got.System != "sys" || got.MaxTokens != 2000 || len(got.Tools) != 1 || got.Tools[0].Name != NavigateToolName {
		t.Errorf("unexpected request: %+v", got)
	}
	if reply.Content != "Opening it." {
		t.Errorf("got content %q", reply.Content)
	}
	nav, ok, err := reply.Navigation()
	if err != nil || !ok || nav.URL != "https://go.dev" {
		t.Errorf("got (%+v, %v, %v)", nav, ok, err)
	}
}

func TestClaudeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"invalid x-api-key"}}`)
	}))
	defer srv.Close()

	_, err := NewClaudeAPI("bad").WithURL(srv.URL).Ask(context.Background(), Request{Prompt: "hi"})
	if err == nil || err.Error() != "API error (401): invalid x-api-key" {
		t.Errorf("got %v", err)
	}
}

func TestOpenAIAsk(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-5-nano",
			"choices": [{
				"index": 0,
				"finish_reason": "tool_calls",
				"message": {
					"role": "assistant",
					"content": null,
					"tool_calls": [{
						"id": "call_1",
						"type": "function",
						"function": {"name": "navigate_to_url", "arguments": "{\"url\":\"https://go.dev\",\"reason\":\"docs\"}"}
					}]
				}
			}]
		}`)
	}))
	defer srv.Close()

	p := NewOpenAI("sk-test").WithBaseURL(srv.URL + "/")
	reply, err := p.Ask(context.Background(), Request{
		System:    "sys",
		Prompt:    "open go docs",
		Tools:     []Tool{NavigateTool()},
		MaxTokens: 2000,
	})
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if got["model"] != "gpt-5-nano" || got["max_completion_tokens"] != float64(2000) {
		t.Errorf("unexpected request body: %v", got)
	}
	if msgs, _ := got["messages"].([]any); len(msgs) != 2 {
		t.Errorf("got %d messages, expected 2", len(msgs))
	}
	nav, ok, err := reply.Navigation()
	if err != nil || !ok || nav.URL != "https://go.dev" || nav.Reason != "docs" {
		t.Errorf("got (%+v, %v, %v)", nav, ok, err)
	}
}

func TestOpenAIAvailable(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if NewOpenAI("").Available() {
		t.Error("provider without key should be unavailable")
	}
	if !NewOpenAI("sk-x").Available() {
		t.Error("provider with key should be available")
	}
}
