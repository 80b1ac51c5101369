package bundle

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
	"github.com/goliatone/go-sitegen/pkg/storage"
)

// writeFileRequest describes a single bundle file routed through the artifact writer.
type writeFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Kind        string
	ContentType string
	Checksum    string
}

// artifactWriter abstracts storage provider specifics for bundle outputs.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
}

func newArtifactWriter(provider interfaces.StorageProvider) artifactWriter {
	if provider == nil {
		return noopWriter{}
	}
	return &storageWriter{storage: provider}
}

type storageWriter struct {
	storage interfaces.StorageProvider
}

func (w *storageWriter) EnsureDir(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	_, err := w.storage.Exec(ctx, storage.OpEnsureDir, path)
	return err
}

func (w *storageWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if req.Content == nil {
		return errors.New("bundle: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("bundle: write requires path")
	}
	_, err := w.storage.Exec(ctx, storage.OpWrite,
		req.Path,
		req.Content,
		req.Size,
		req.Kind,
		req.ContentType,
		req.Checksum,
	)
	return err
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, writeFileRequest) error { return nil }
