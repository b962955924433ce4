package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/arcanaland/grimoire/internal/grimoire"
	"github.com/arcanaland/grimoire/internal/source"
)

const testManifest = `
[grimoire]
id = "test.served"
name = "Served Grimoire"
version = "1.0.0"
schema_version = "1.0"

[[spells]]
id = "hello"
title = "Hello"
path = "spells/hello.md"
`

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(dir, "spells"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "grimoire.toml"), []byte(testManifest), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "spells", "hello.md"), []byte("Hello, world."), 0644); err != nil {
		t.Fatalf("writing spell: %v", err)
	}

	return New(Config{Port: 0}, dir, nil), dir
}

func TestServeFile(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/spells/hello.md")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("expected plain text content type, got %q", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(body) != "Hello, world." {
		t.Errorf("expected file served verbatim, got %q", body)
	}
}

func TestMissingFileIs404(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/spells/nope.md")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestEscapingPathRejected(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/spells/../../etc/passwd", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest && rec.Code != http.StatusNotFound {
		t.Errorf("expected traversal rejected, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestGrimoireLoadsOverHTTP(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	src := source.ForTarget(ts.URL)
	g, err := grimoire.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Load over HTTP: %v", err)
	}

	if g.Name != "Served Grimoire" {
		t.Errorf("expected grimoire name from served manifest, got %q", g.Name)
	}
	if len(g.Spells) != 1 || g.Spells[0].ID != "hello" {
		t.Fatalf("unexpected spells: %+v", g.Spells)
	}

	body, err := src.Fetch(context.Background(), g.Spells[0].Path)
	if err != nil {
		t.Fatalf("fetching spell over HTTP: %v", err)
	}
	if string(body) != "Hello, world." {
		t.Errorf("expected spell body verbatim, got %q", body)
	}
}
