package fetcher

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"example.com", "https://example.com"},
		{" example.com/a ", "https://example.com/a"},
		{"http://example.com", "http://example.com"},
		{"file:///tmp/a.html", "file:///tmp/a.html"},
		{"help.html", "help.html"},
		{"example.com/page.html", "example.com/page.html"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestHTTPGet(t *testing.T) {
	var gotUA, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new?"+r.URL.RawQuery, http.StatusFound)
			return
		}
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, "<p>hello</p>")
	}))
	defer srv.Close()

	f := NewHTTP(Options{})
	res, err := f.Fetch(context.Background(), Request{
		URL:    srv.URL + "/old?lang=en&q=old",
		Values: url.Values{"q": {"cats"}},
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if res.HTML != "<p>hello</p>" {
		t.Errorf("got %q", res.HTML)
	}
	if res.FinalURL != srv.URL+"/new?lang=en&q=cats" {
		t.Errorf("got final URL %q", res.FinalURL)
	}
	if gotQuery != "lang=en&q=cats" {
		t.Errorf("got query %q, expected %q", gotQuery, "lang=en&q=cats")
	}
	if gotUA != DefaultOptions().UserAgent {
		t.Errorf("got user agent %q", gotUA)
	}
}

func TestHTTPPost(t *testing.T) {
	var method, contentType, user string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		r.ParseForm()
		user = r.PostForm.Get("user")
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	_, err := NewHTTP(Options{}).Fetch(context.Background(), Request{
		URL:    srv.URL + "/login",
		Method: "post",
		Values: url.Values{"user": {"ada"}},
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if method != http.MethodPost || contentType != "application/x-www-form-urlencoded" || user != "ada" {
		t.Errorf("got %s %q user=%q", method, contentType, user)
	}
}

func TestHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewHTTP(Options{}).Fetch(context.Background(), Request{URL: srv.URL + "/missing"})
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("got %v, expected 404 StatusError", err)
	}
	if !errors.Is(err, ErrFetch) {
		t.Error("StatusError should match ErrFetch")
	}
}

func TestHTTPNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewHTTP(Options{TimeoutSeconds: 1}).Fetch(context.Background(), Request{URL: addr})
	if !errors.Is(err, ErrFetch) {
		t.Errorf("got %v, expected ErrFetch", err)
	}
}

func TestHTTPDecodesCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("caf\xe9"))
	}))
	defer srv.Close()

	res, err := NewHTTP(Options{}).Fetch(context.Background(), Request{URL: srv.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if res.HTML != "café" {
		t.Errorf("got %q, expected %q", res.HTML, "café")
	}
}

func TestLocal(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.html"), []byte("<h1>local</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := &Local{Dir: dir}
	for _, raw := range []string{"page.html", "file://" + filepath.ToSlash(filepath.Join(dir, "page.html"))} {
		res, err := l.Fetch(context.Background(), Request{URL: raw})
		if err != nil {
			t.Fatalf("Fetch(%q) failed: %v", raw, err)
		}
		if res.HTML != "<h1>local</h1>" || !strings.HasPrefix(res.FinalURL, "file://") {
			t.Errorf("got %+v", res)
		}
	}

	_, err := l.Fetch(context.Background(), Request{URL: "missing.html"})
	if !errors.Is(err, ErrRead) {
		t.Errorf("got %v, expected ErrRead", err)
	}
}

type recorder struct {
	urls []string
}

func (r *recorder) Fetch(_ context.Context, req Request) (*FetchResult, error) {
	r.urls = append(r.urls, req.URL)
	return &FetchResult{FinalURL: req.URL}, nil
}

func TestMux(t *testing.T) {
	remote, local := &recorder{}, &recorder{}
	m := &Mux{Remote: remote, Local: local}
	for _, u := range []string{"example.com", "help.html", "file:///x.html", "http://a.io/b.html"} {
		if _, err := m.Fetch(context.Background(), Request{URL: u}); err != nil {
			t.Fatal(err)
		}
	}
	if strings.Join(remote.urls, " ") != "https://example.com http://a.io/b.html" {
		t.Errorf("remote got %v", remote.urls)
	}
	if strings.Join(local.urls, " ") != "help.html file:///x.html" {
		t.Errorf("local got %v", local.urls)
	}
}
