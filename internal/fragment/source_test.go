package fragment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"connectong/internal/domain"
)

func TestFSSource(t *testing.T) {
	src := NewFSSource(fstest.MapFS{
		"home.html": &fstest.MapFile{Data: []byte("<h1>home</h1>")},
	})
	ctx := context.Background()

	got, err := src.Fetch(ctx, "home.html")
	if err != nil || string(got) != "<h1>home</h1>" {
		t.Fatalf("Fetch(home.html) = %q, %v", got, err)
	}

	if _, err := src.Fetch(ctx, "missing.html"); !errors.Is(err, domain.ErrFragmentNotFound) {
		t.Fatalf("expected ErrFragmentNotFound, got %v", err)
	}
	if _, err := src.Fetch(ctx, "../etc/passwd"); !errors.Is(err, domain.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for traversal, got %v", err)
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pages/home.html":
			_, _ = w.Write([]byte("<p>remote</p>"))
		case "/pages/broken.html":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL+"/pages", time.Second)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}
	ctx := context.Background()

	got, err := src.Fetch(ctx, "home.html")
	if err != nil || string(got) != "<p>remote</p>" {
		t.Fatalf("Fetch(home.html) = %q, %v", got, err)
	}
	if _, err := src.Fetch(ctx, "nope.html"); !errors.Is(err, domain.ErrFragmentNotFound) {
		t.Fatalf("expected ErrFragmentNotFound for 404, got %v", err)
	}
	if _, err := src.Fetch(ctx, "broken.html"); !errors.Is(err, domain.ErrFragmentNotFound) {
		t.Fatalf("expected non-success status to be reported as not found, got %v", err)
	}
}

func TestHTTPSourceTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	src, err := NewHTTPSource(url, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}
	if _, err := src.Fetch(context.Background(), "home.html"); !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	fallback := fstest.MapFS{"a.html": &fstest.MapFile{Data: []byte("a")}}

	src, fsys, err := Open("", fallback, time.Second)
	if err != nil || fsys == nil {
		t.Fatalf("Open(empty) = %v, %v", fsys, err)
	}
	if _, err := src.Fetch(context.Background(), "a.html"); err != nil {
		t.Fatalf("fallback fetch: %v", err)
	}

	if _, fsys, err := Open("https://cdn.example.com/pages", fallback, time.Second); err != nil || fsys != nil {
		t.Fatalf("Open(url) = %v, %v", fsys, err)
	}

	if _, _, err := Open(t.TempDir(), fallback, time.Second); err != nil {
		t.Fatalf("Open(dir): %v", err)
	}
	if _, _, err := Open("/definitely/not/here", fallback, time.Second); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
