package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/goliatone/go-sitegen"
	"github.com/goliatone/go-sitegen/commands/bootstrap"
)

const document = `{
  "id": "acme",
  "company": {"name": "Acme"},
  "products": [{"name": "Anvil", "price": 10, "inStock": true}]
}`

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func writeDocument(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "site.json")
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	pages := filepath.Join(dir, "pages")
	if err := os.MkdirAll(pages, 0o755); err != nil {
		t.Fatalf("mkdir pages: %v", err)
	}
	page := "---\ntitle: About\n---\n# Our story\n"
	if err := os.WriteFile(filepath.Join(pages, "about.md"), []byte(page), 0o644); err != nil {
		t.Fatalf("write page: %v", err)
	}
	return path
}

func TestRunRequiresCommand(t *testing.T) {
	if err := run(nil); err == nil || !strings.Contains(err.Error(), "usage") {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := run([]string{"deploy"}); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestGenerateRequiresInput(t *testing.T) {
	if err := run([]string{"generate", "-out", t.TempDir()}); err == nil || !strings.Contains(err.Error(), "-input") {
		t.Fatalf("expected missing input error, got %v", err)
	}
}

func TestGeneratePackAndClean(t *testing.T) {
	out := captureStdout(t)
	root := t.TempDir()
	input := writeDocument(t)
	pages := filepath.Join(filepath.Dir(input), "pages")

	if err := run([]string{"generate", "-out", root, "-input", input, "-pages", pages, "-log-level", "error"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	var result sitegen.BuildResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("decode manifest: %v\n%s", err, out.String())
	}
	if result.SiteID != "acme" || len(result.Files) != 4 {
		t.Fatalf("unexpected manifest %+v", result)
	}
	about, err := os.ReadFile(filepath.Join(root, "acme", "about.html"))
	if err != nil {
		t.Fatalf("read about: %v", err)
	}
	if !strings.Contains(string(about), "Our story") {
		t.Fatal("expected markdown page rendered into about.html")
	}

	archivePath := filepath.Join(t.TempDir(), "out", "acme.zip")
	out.Reset()
	if err := run([]string{"pack", "-out", root, "-site", "acme", "-o", archivePath, "-log-level", "error"}); err != nil {
		t.Fatalf("pack: %v", err)
	}
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(reader.File) != 4 {
		t.Fatalf("expected four entries, got %d", len(reader.File))
	}
	_ = reader.Close()

	if err := run([]string{"clean", "-out", root, "-site", "acme", "-log-level", "error"}); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "acme")); !os.IsNotExist(err) {
		t.Fatalf("expected bundle removed, got %v", err)
	}
}

func TestPackMissingBundleRemovesPartialArchive(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "missing.zip")
	err := run([]string{"pack", "-out", t.TempDir(), "-site", "missing", "-o", archivePath, "-log-level", "error"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if _, statErr := os.Stat(archivePath); !os.IsNotExist(statErr) {
		t.Fatal("expected partial archive to be removed")
	}
}

func TestGenerateDryRunWritesNothing(t *testing.T) {
	captureStdout(t)
	root := t.TempDir()

	if err := run([]string{"generate", "-out", root, "-input", writeDocument(t), "-dry-run", "-log-level", "error"}); err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "acme")); !os.IsNotExist(err) {
		t.Fatalf("expected no bundle directory, got %v", err)
	}
}

func TestNewServerImportsDocument(t *testing.T) {
	resources, err := bootstrap.BuildModule(bootstrap.Options{OutputRoot: t.TempDir(), LogLevel: "error"})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	t.Cleanup(func() { _ = resources.Close() })

	server, err := newServer(context.Background(), resources.Module, ":0", writeDocument(t), "")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sites/acme/generate", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sites/acme/preview/index.html", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Acme") {
		t.Fatalf("expected preview of index.html, got %d", rec.Code)
	}
}
