package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-sitegen/pkg/storage"
)

func TestStorageWriteReadAndRemove(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := New(root)

	if _, err := s.Exec(ctx, storage.OpWrite, "acme/index.html", strings.NewReader("<h1>hi</h1>")); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "acme", "index.html"))
	if err != nil || string(data) != "<h1>hi</h1>" {
		t.Fatalf("expected file on disk, got %q (%v)", data, err)
	}

	rows, err := s.Query(ctx, storage.OpRead, "acme/index.html")
	if err != nil || rows == nil {
		t.Fatalf("read: %v", err)
	}
	var buf []byte
	if !rows.Next() || rows.Scan(&buf) != nil || string(buf) != "<h1>hi</h1>" {
		t.Fatalf("unexpected read result %q", buf)
	}

	rows, err = s.Query(ctx, storage.OpStat, "acme")
	if err != nil || rows == nil {
		t.Fatalf("stat: %v", err)
	}
	var isDir bool
	if !rows.Next() || rows.Scan(&isDir) != nil || !isDir {
		t.Fatal("expected acme to be a directory")
	}

	if _, err := s.Exec(ctx, storage.OpRemove, "acme"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if rows, _ := s.Query(ctx, storage.OpStat, "acme"); rows != nil {
		t.Fatal("expected removed directory to be missing")
	}
}

func TestStorageOverwriteReplacesContent(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := New(root)

	for _, body := range []string{"first version", "second"} {
		if _, err := s.Exec(ctx, storage.OpWrite, "site/styles.css", strings.NewReader(body)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	data, _ := os.ReadFile(filepath.Join(root, "site", "styles.css"))
	if string(data) != "second" {
		t.Fatalf("expected overwrite, got %q", data)
	}
}

func TestStorageRejectsEscapingPaths(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Exec(context.Background(), storage.OpWrite, "../outside.txt", strings.NewReader("x"))
	if !errors.Is(err, ErrPathEscapesRoot) {
		t.Fatalf("expected ErrPathEscapesRoot, got %v", err)
	}
	if _, err := s.Exec(context.Background(), storage.OpRemove, ""); !errors.Is(err, ErrPathEscapesRoot) {
		t.Fatalf("expected root removal to be refused, got %v", err)
	}
}

func TestStorageMissingReadReturnsNilRows(t *testing.T) {
	rows, err := New(t.TempDir()).Query(context.Background(), storage.OpRead, "nope.txt")
	if err != nil || rows != nil {
		t.Fatalf("expected nil rows, got %v / %v", rows, err)
	}
}

func TestStorageRelativeRoot(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	s := New(".")

	if _, err := s.Exec(context.Background(), storage.OpWrite, "acme/index.html", strings.NewReader("ok")); err != nil {
		t.Fatalf("write under relative root: %v", err)
	}
	if data, err := os.ReadFile(filepath.Join(dir, "acme", "index.html")); err != nil || string(data) != "ok" {
		t.Fatalf("expected file under working directory, got %q (%v)", data, err)
	}
	if _, err := s.Exec(context.Background(), storage.OpWrite, "../outside.txt", strings.NewReader("x")); !errors.Is(err, ErrPathEscapesRoot) {
		t.Fatalf("expected ErrPathEscapesRoot, got %v", err)
	}
	if _, err := s.Exec(context.Background(), storage.OpRemove, "."); !errors.Is(err, ErrPathEscapesRoot) {
		t.Fatalf("expected root removal to be refused, got %v", err)
	}
}

func TestStorageFilesystemRoot(t *testing.T) {
	s := New(string(filepath.Separator))
	target := filepath.Join(t.TempDir(), "bundle.txt")

	full, err := s.abs(filepath.ToSlash(target))
	if err != nil || full != target {
		t.Fatalf("expected %s under filesystem root, got %s (%v)", target, full, err)
	}
	if _, err := s.Exec(context.Background(), storage.OpWrite, filepath.ToSlash(target), strings.NewReader("x")); err != nil {
		t.Fatalf("write under filesystem root: %v", err)
	}
	if data, _ := os.ReadFile(target); string(data) != "x" {
		t.Fatalf("expected written file, got %q", data)
	}
}
