// Package fragment fetches the static resources the router and the listing
// pages depend on: HTML fragments and JSON seed files.
package fragment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"connectong/internal/domain"
)

// maxResourceBytes caps a single fetched resource.
const maxResourceBytes = 2 << 20

// Source resolves a resource name such as "home.html" to its bytes. Missing
// resources wrap domain.ErrFragmentNotFound, every other failure wraps
// domain.ErrFetch.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FSSource reads resources from a file system tree.
type FSSource struct {
	fsys fs.FS
}

func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	clean, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, clean)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrFragmentNotFound, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetch, clean, err)
	}
	return data, nil
}

// HTTPSource fetches resources relative to a base URL.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) (*HTTPSource, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("fragment: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("fragment: unsupported scheme %q", base.Scheme)
	}
	return &HTTPSource{base: base, client: &http.Client{Timeout: timeout}}, nil
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	clean, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	target := s.base.ResolveReference(&url.URL{Path: clean})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetch, clean, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s: status %d", domain.ErrFragmentNotFound, clean, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetch, clean, err)
	}
	return data, nil
}

// Open picks a source for root: an http(s) URL, a directory, or the embedded
// fallback tree when root is empty. The returned fs.FS is nil for remote
// roots, since those are not served locally.
func Open(root string, fallback fs.FS, timeout time.Duration) (Source, fs.FS, error) {
	root = strings.TrimSpace(root)
	switch {
	case root == "":
		return NewFSSource(fallback), fallback, nil
	case strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://"):
		src, err := NewHTTPSource(root, timeout)
		return src, nil, err
	default:
		info, err := os.Stat(root)
		if err != nil {
			return nil, nil, fmt.Errorf("fragment: root %s: %w", root, err)
		}
		if !info.IsDir() {
			return nil, nil, fmt.Errorf("fragment: root %s is not a directory", root)
		}
		fsys := os.DirFS(root)
		return NewFSSource(fsys), fsys, nil
	}
}

// cleanName keeps names inside the resource root.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimLeft(name, "/")
	cleaned := path.Clean(name)
	if name == "" || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidKey, name)
	}
	return cleaned, nil
}
