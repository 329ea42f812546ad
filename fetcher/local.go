package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Local reads documents from disk. Relative paths resolve against Dir, or
// the working directory when Dir is empty.
type Local struct {
	Dir string
}

// Fetch implements Fetcher. Form values are ignored.
func (l *Local) Fetch(_ context.Context, r Request) (*FetchResult, error) {
	start := time.Now()

	path, err := l.path(r.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer f.Close()

	body, err := decode(f, "text/html")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}

	return &FetchResult{
		HTML:      body,
		FinalURL:  "file://" + filepath.ToSlash(path),
		FetchTime: time.Since(start),
	}, nil
}

func (l *Local) path(raw string) (string, error) {
	p := raw
	if strings.HasPrefix(raw, "file://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", err
		}
		p = u.Path
	}
	if !filepath.IsAbs(p) && l.Dir != "" {
		p = filepath.Join(l.Dir, p)
	}
	return filepath.Abs(p)
}
