package archive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/klauspost/compress/zip"

	"github.com/goliatone/go-sitegen/internal/bundle"
	"github.com/goliatone/go-sitegen/internal/site"
)

func generate(t *testing.T, root string) map[string][]byte {
	t.Helper()
	writer := bundle.NewWriter(root, nil, bundle.WithNow(func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}))
	agg := &site.WebsiteAggregate{
		ID:      "acme",
		Company: &site.Company{Name: "Acme"},
		Pages:   []site.Page{{Slug: "about", Title: "About", Content: "<p>About us</p>"}},
	}
	if _, err := writer.Write(context.Background(), agg); err != nil {
		t.Fatalf("generate: %v", err)
	}

	files := map[string][]byte{}
	dir := filepath.Join(root, "acme")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", entry.Name(), err)
		}
		files[entry.Name()] = data
	}
	return files
}

func TestPackRoundTrip(t *testing.T) {
	root := t.TempDir()
	want := generate(t, root)

	var buf bytes.Buffer
	if err := NewPackager(root).Pack(context.Background(), "acme", &buf); err != nil {
		t.Fatalf("pack: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(reader.File) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(reader.File))
	}

	names := make([]string, 0, len(reader.File))
	for _, file := range reader.File {
		names = append(names, file.Name)
		if file.Method != zip.Deflate {
			t.Fatalf("%s: expected deflate, got method %d", file.Name, file.Method)
		}
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open %s: %v", file.Name, err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", file.Name, err)
		}
		if !bytes.Equal(got, want[file.Name]) {
			t.Fatalf("%s: content mismatch", file.Name)
		}
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected lexical entry order, got %v", names)
	}
}

func TestPackPreservesNestedPaths(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "acme", "assets")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "logo.svg"), []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewPackager(root, WithLevel(1)).Pack(context.Background(), "acme", &buf); err != nil {
		t.Fatalf("pack: %v", err)
	}
	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(reader.File) != 1 || reader.File[0].Name != "assets/logo.svg" {
		t.Fatalf("unexpected entries %+v", reader.File)
	}
}

func TestPackMissingBundleIsNotFound(t *testing.T) {
	packager := NewPackager(t.TempDir())

	for _, id := range []string{"never-generated", "../etc", ""} {
		var buf bytes.Buffer
		err := packager.Pack(context.Background(), id, &buf)
		if !errors.Is(err, ErrBundleNotFound) {
			t.Fatalf("%q: expected ErrBundleNotFound, got %v", id, err)
		}
		if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
			t.Fatalf("%q: expected not-found category, got %v", id, err)
		}
		if buf.Len() != 0 {
			t.Fatalf("%q: expected nothing streamed", id)
		}
		if packager.Exists(id) {
			t.Fatalf("%q: expected Exists to be false", id)
		}
	}
}

func TestDownloadName(t *testing.T) {
	if got := DownloadName(""); got != "website.zip" {
		t.Fatalf("expected fallback name, got %s", got)
	}
	if got := DownloadName("  "); got != "website.zip" {
		t.Fatalf("expected fallback name for blank, got %s", got)
	}
	got := DownloadName("Acme Widgets")
	if got == "website.zip" || !strings.HasSuffix(got, ".zip") || strings.ContainsAny(got, " /") {
		t.Fatalf("expected sanitized company name, got %s", got)
	}
}
