package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTP fetches documents from the network.
type HTTP struct {
	opts   Options
	client *http.Client
}

// NewHTTP creates an HTTP fetcher. A zero option keeps its default.
func NewHTTP(o Options) *HTTP {
	opts := DefaultOptions()
	if o.UserAgent != "" {
		opts.UserAgent = o.UserAgent
	}
	if o.TimeoutSeconds > 0 {
		opts.TimeoutSeconds = o.TimeoutSeconds
	}
	return &HTTP{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout()},
	}
}

// UserAgent returns the identification header value sent with requests.
func (h *HTTP) UserAgent() string { return h.opts.UserAgent }

// Fetch implements Fetcher. GET values are merged into the URL's existing
// query; POST values are sent form-encoded.
func (h *HTTP) Fetch(ctx context.Context, r Request) (*FetchResult, error) {
	start := time.Now()

	req, err := h.newRequest(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", h.opts.UserAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &StatusError{URL: req.URL.String(), Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := decode(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrFetch, err)
	}

	return &FetchResult{
		HTML:      body,
		FinalURL:  resp.Request.URL.String(),
		FetchTime: time.Since(start),
	}, nil
}

func (h *HTTP) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	if strings.EqualFold(r.Method, http.MethodPost) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, strings.NewReader(r.Values.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}

	target := r.URL
	if len(r.Values) > 0 {
		u, err := url.Parse(r.URL)
		if err != nil {
			return nil, err
		}
		q := u.Query()
		for k, vs := range r.Values {
			q.Del(k)
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}
	return http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
}
