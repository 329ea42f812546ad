package formfill

import (
	"errors"
	"net/url"
	"testing"

	"textbrowser/document"
	"textbrowser/screen"
)

// scripted answers prompts from a fixed list and records what it was asked.
type scripted struct {
	answers []string
	cancel  int // prompt number to cancel at, -1 for never
	asked   []screen.InputRequest
}

func (s *scripted) Input(req screen.InputRequest) (string, error) {
	s.asked = append(s.asked, req)
	n := len(s.asked) - 1
	if n == s.cancel {
		return "", screen.ErrCancelled
	}
	if n >= len(s.answers) {
		return "", nil
	}
	return s.answers[n], nil
}

var searchForm = document.Form{
	Action: "/search",
	Method: "GET",
	Fields: []document.FormField{
		{Name: "q", Kind: "text", Placeholder: "Search..."},
		{Name: "lang", Kind: "select", Default: "en"},
	},
}

var loginForm = document.Form{
	Index:  1,
	Action: "https://auth.example.org/login",
	Method: "POST",
	Fields: []document.FormField{
		{Name: "user", Kind: "text"},
		{Name: "pass", Kind: "password"},
	},
}

func TestFillSingleForm(t *testing.T) {
	p := &scripted{answers: []string{"cats", ""}, cancel: -1}
	sub, err := Fill(p, []document.Form{searchForm})
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if len(p.asked) != 2 {
		t.Fatalf("got %d prompts, expected 2 (no selection step)", len(p.asked))
	}
	if got := sub.Values.Encode(); got != "q=cats" {
		t.Errorf("got %q, expected %q", got, "q=cats")
	}
	if p.asked[0].Title != "q (Search...)" || p.asked[0].Lines[0] != "Type: text" {
		t.Errorf("got prompt %+v", p.asked[0])
	}
}

func TestFillRequest(t *testing.T) {
	sub := &Submission{Form: searchForm, Values: url.Values{"q": {"cats"}}}
	req, err := sub.Request("https://x.com/page?old=1")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if req.URL != "https://x.com/search" || req.Method != "GET" || req.Values.Get("q") != "cats" {
		t.Errorf("got %+v", req)
	}
}

func TestFillSkipsUnnamedFields(t *testing.T) {
	form := document.Form{Method: "GET", Fields: []document.FormField{
		{Kind: "text"},
		{Name: "q", Kind: "text"},
	}}
	p := &scripted{answers: []string{"secret", "cats"}, cancel: -1}
	sub, err := Fill(p, []document.Form{form})
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if len(p.asked) != 2 {
		t.Errorf("got %d prompts, expected 2", len(p.asked))
	}
	if got := sub.Values.Encode(); got != "q=cats" {
		t.Errorf("got %q, expected %q", got, "q=cats")
	}
}

func TestFillRequestPOST(t *testing.T) {
	tests := []struct {
		method   string
		expected string
	}{
		{"POST", "POST"},
		{"post", "POST"},
		{"", "GET"},
		{"PUT", "GET"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			form := loginForm
			form.Method = tt.method
			sub := &Submission{Form: form, Values: url.Values{"user": {"ann"}, "pass": {"p w"}}}
			req, err := sub.Request("https://x.com/")
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			if req.Method != tt.expected {
				t.Errorf("got %q, expected %q", req.Method, tt.expected)
			}
			if req.URL != "https://auth.example.org/login" {
				t.Errorf("got %q", req.URL)
			}
			if got := req.Values.Encode(); got != "pass=p+w&user=ann" {
				t.Errorf("got %q, expected %q", got, "pass=p+w&user=ann")
			}
		})
	}
}

func TestTarget(t *testing.T) {
	tests := []struct {
		action   string
		expected string
	}{
		{"", "https://x.com/a/b"},
		{"/search", "https://x.com/search"},
		{"c", "https://x.com/a/c"},
		{"https://y.org/s", "https://y.org/s"},
	}
	for _, tt := range tests {
		sub := &Submission{Form: document.Form{Action: tt.action}}
		got, err := sub.Target("https://x.com/a/b")
		if err != nil {
			t.Fatalf("Target(%q) failed: %v", tt.action, err)
		}
		if got != tt.expected {
			t.Errorf("Target(%q): got %q, expected %q", tt.action, got, tt.expected)
		}
	}
}

func TestChooseAmongForms(t *testing.T) {
	forms := []document.Form{searchForm, loginForm}
	p := &scripted{answers: []string{"1", "ann", "pw"}, cancel: -1}
	sub, err := Fill(p, forms)
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if sub.Form.Index != 1 {
		t.Errorf("got form %d, expected 1", sub.Form.Index)
	}
	if got := p.asked[0].Lines; len(got) != 2 || got[1] != "1: POST → https://auth.example.org/login" {
		t.Errorf("got selection lines %q", got)
	}
	if !p.asked[2].Secret {
		t.Error("password field should be captured without echo")
	}
	req, _ := sub.Request("https://x.com/")
	if req.Method != "POST" || req.Values.Get("pass") != "pw" {
		t.Errorf("got %+v", req)
	}
}

func TestChooseInvalid(t *testing.T) {
	forms := []document.Form{searchForm, loginForm}
	for _, answer := range []string{"2", "-1", "one", ""} {
		t.Run(answer, func(t *testing.T) {
			p := &scripted{answers: []string{answer}, cancel: -1}
			_, err := Fill(p, forms)
			if !errors.Is(err, screen.ErrCancelled) {
				t.Errorf("got %v, expected ErrCancelled", err)
			}
			if len(p.asked) != 1 {
				t.Errorf("got %d prompts, expected only the selection", len(p.asked))
			}
		})
	}
}

func TestCaptureCancelled(t *testing.T) {
	p := &scripted{answers: []string{"ann"}, cancel: 1}
	_, err := Fill(p, []document.Form{loginForm})
	if !errors.Is(err, screen.ErrCancelled) {
		t.Errorf("got %v, expected ErrCancelled", err)
	}
}
