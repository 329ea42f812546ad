// Package fetcher retrieves documents over HTTP or from the local
// filesystem and returns them decoded to UTF-8.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

var (
	// ErrFetch covers network failures, timeouts and HTTP error statuses.
	ErrFetch = errors.New("fetch failed")
	// ErrRead covers local documents that cannot be read.
	ErrRead = errors.New("read failed")
)

// StatusError reports an HTTP response with status 400 or above.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s for url: %s", e.Status, e.URL)
}

// Unwrap makes StatusError match ErrFetch.
func (e *StatusError) Unwrap() error { return ErrFetch }

// Request describes one document retrieval.
type Request struct {
	URL    string
	Method string     // GET when empty
	Values url.Values // query parameters for GET, form body for POST
}

// FetchResult contains the fetched HTML and metadata.
type FetchResult struct {
	HTML      string
	FinalURL  string // URL after following redirects
	FetchTime time.Duration
}

// Fetcher retrieves documents.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (*FetchResult, error)
}

// Options configures the fetcher behavior.
type Options struct {
	UserAgent      string
	TimeoutSeconds int
}

// DefaultOptions returns the defaults: a Lynx identification string, which
// many sites answer with their lightest markup, and a ten second timeout.
func DefaultOptions() Options {
	return Options{
		UserAgent:      "Lynx/2.9.0dev.6 libwww-FM/2.14 SSL-MM/1.4.1",
		TimeoutSeconds: 10,
	}
}

// Timeout returns the timeout as a duration.
func (o Options) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// Normalize prepends https:// to destinations typed without a scheme.
// Local documents are returned unchanged.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || IsLocal(raw) || strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}

// IsLocal reports whether raw names a local document: a file:// URL or a
// bare relative .html path.
func IsLocal(raw string) bool {
	if strings.HasPrefix(raw, "file://") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(raw), ".html") && !strings.Contains(raw, "://")
}

// Mux sends local documents to Local and everything else to Remote.
type Mux struct {
	Remote Fetcher
	Local  Fetcher
}

// Fetch implements Fetcher.
func (m *Mux) Fetch(ctx context.Context, req Request) (*FetchResult, error) {
	req.URL = Normalize(req.URL)
	if IsLocal(req.URL) {
		return m.Local.Fetch(ctx, req)
	}
	return m.Remote.Fetch(ctx, req)
}

// decode converts body to UTF-8 using the declared content type, falling
// back to sniffing the markup.
func decode(body io.Reader, contentType string) (string, error) {
	r, err := charset.NewReader(body, contentType)
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
