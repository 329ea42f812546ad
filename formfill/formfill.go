// Package formfill walks the user through a form one field at a time and
// turns the answers into a fetch request.
package formfill

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"textbrowser/document"
	"textbrowser/fetcher"
	"textbrowser/screen"
)

// maxValueLen bounds a single field value.
const maxValueLen = 1024

// Prompter captures one line of input. An error wrapping
// screen.ErrCancelled means the user aborted.
type Prompter interface {
	Input(req screen.InputRequest) (string, error)
}

// Submission is a filled form ready to send.
type Submission struct {
	Form   document.Form
	Values url.Values
}

// Fill selects a form, when there is more than one, and captures its
// fields. Any cancellation aborts the whole fill.
func Fill(p Prompter, forms []document.Form) (*Submission, error) {
	idx, err := Choose(p, forms)
	if err != nil {
		return nil, err
	}
	values, err := Capture(p, forms[idx])
	if err != nil {
		return nil, err
	}
	return &Submission{Form: forms[idx], Values: values}, nil
}

// Choose returns the index of the form to fill. A single form is chosen
// without asking. Input that is not an in-range number cancels.
func Choose(p Prompter, forms []document.Form) (int, error) {
	switch len(forms) {
	case 0:
		return 0, fmt.Errorf("%w: no forms", screen.ErrCancelled)
	case 1:
		return 0, nil
	}

	lines := make([]string, len(forms))
	for i, f := range forms {
		lines[i] = fmt.Sprintf("%d: %s → %s", i, f.Method, f.Target())
	}
	answer, err := p.Input(screen.InputRequest{
		Title:  "Select Form",
		Lines:  lines,
		Prompt: "Enter form number: ",
		MaxLen: 10,
	})
	if err != nil {
		return 0, err
	}
	idx, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || idx < 0 || idx >= len(forms) {
		return 0, fmt.Errorf("%w: no form %q", screen.ErrCancelled, answer)
	}
	return idx, nil
}

// Capture asks for each field in order. Empty answers leave the field
// out of the submission, and fields without a name are asked for but
// never sent.
func Capture(p Prompter, form document.Form) (url.Values, error) {
	values := url.Values{}
	for _, f := range form.Fields {
		value, err := p.Input(fieldRequest(f))
		if err != nil {
			return nil, err
		}
		if value != "" && f.Name != "" {
			values.Add(f.Name, value)
		}
	}
	return values, nil
}

func fieldRequest(f document.FormField) screen.InputRequest {
	title := f.Name
	if f.Placeholder != "" {
		title += " (" + f.Placeholder + ")"
	}
	return screen.InputRequest{
		Title:  title,
		Lines:  []string{"Type: " + f.Kind},
		Prompt: "Value: ",
		MaxLen: maxValueLen,
		Secret: f.Kind == "password",
	}
}

// Target resolves the form action against the page it came from. An empty
// action submits to the page itself.
func (s *Submission) Target(pageURL string) (string, error) {
	if s.Form.Action == "" {
		return pageURL, nil
	}
	action, err := url.Parse(s.Form.Action)
	if err != nil {
		return "", fmt.Errorf("%w: bad form action %q: %v", fetcher.ErrFetch, s.Form.Action, err)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return action.String(), nil
	}
	return base.ResolveReference(action).String(), nil
}

// Request builds the fetch for this submission.
func (s *Submission) Request(pageURL string) (fetcher.Request, error) {
	target, err := s.Target(pageURL)
	if err != nil {
		return fetcher.Request{}, err
	}
	method := strings.ToUpper(s.Form.Method)
	if method != "POST" {
		method = "GET"
	}
	return fetcher.Request{URL: target, Method: method, Values: s.Values}, nil
}
