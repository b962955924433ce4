// Package source retrieves grimoire resources (the manifest and the spell
// template texts) by path relative to a grimoire root. A root is either a
// local directory or the base URL of a plain file server; either way the
// content is returned as opaque bytes, never parsed.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Source fetches one resource per call. Implementations report failures as
// plain errors whose text is suitable for embedding in a card's failure
// message.
type Source interface {
	// Fetch returns the content of the resource at relpath, a
	// slash-separated path relative to the grimoire root.
	Fetch(ctx context.Context, relpath string) ([]byte, error)

	// Root describes the origin (directory path or base URL) for messages.
	Root() string
}

// ForTarget returns an HTTP source for http(s) URLs and a directory source
// for anything else.
func ForTarget(target string) Source {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return NewHTTPSource(target)
	}
	return NewDirSource(target)
}

// DirSource serves resources from a local grimoire directory.
type DirSource struct {
	dir string
}

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Fetch reads the file at relpath under the source directory.
func (s *DirSource) Fetch(_ context.Context, relpath string) ([]byte, error) {
	if !filepath.IsLocal(filepath.FromSlash(relpath)) {
		return nil, fmt.Errorf("path escapes the grimoire root: %s", relpath)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(relpath)))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Root returns the directory path.
func (s *DirSource) Root() string {
	return s.dir
}

// HTTPSource serves resources from a plain HTTP file server. The client has
// no timeout and requests are never retried: a stalled or failed fetch is
// surfaced to the caller as-is.
type HTTPSource struct {
	base   string
	client *http.Client
}

// NewHTTPSource creates a source rooted at the given base URL.
func NewHTTPSource(base string) *HTTPSource {
	return &HTTPSource{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{},
	}
}

// Fetch issues a GET for the resource and returns the body on a success
// status. Non-success statuses become errors embedding the status text.
func (s *HTTPSource) Fetch(ctx context.Context, relpath string) ([]byte, error) {
	target, err := url.JoinPath(s.base, relpath)
	if err != nil {
		return nil, fmt.Errorf("building resource URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return data, nil
}

// Root returns the base URL.
func (s *HTTPSource) Root() string {
	return s.base
}
