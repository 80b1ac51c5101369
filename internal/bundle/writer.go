package bundle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-sitegen/internal/adapters/filesystem"
	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/internal/render"
	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// FileRecord describes one file written into a bundle.
type FileRecord struct {
	Path        string `json:"path"`
	Kind        string `json:"kind"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Checksum    string `json:"checksum"`
}

// Result reports what a Write produced.
type Result struct {
	SiteID     string        `json:"site_id"`
	OutputPath string        `json:"output_path"`
	Files      []FileRecord  `json:"files"`
	Duration   time.Duration `json:"duration"`
	DryRun     bool          `json:"dry_run,omitempty"`
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger used for write events.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithNow injects the clock used for the footer year and durations.
func WithNow(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithRenderConfig sets the rendering knobs passed to every document.
func WithRenderConfig(cfg render.Config) Option {
	return func(w *Writer) {
		w.render = cfg
	}
}

// WithDryRun renders every document and reports the result without touching storage.
func WithDryRun(enabled bool) Option {
	return func(w *Writer) {
		w.dryRun = enabled
	}
}

// Writer renders a website aggregate and persists the bundle under
// <root>/<site id>. Files from earlier runs that the current aggregate no
// longer implies are left in place.
type Writer struct {
	root    string
	storage interfaces.StorageProvider
	logger  interfaces.Logger
	now     func() time.Time
	render  render.Config
	dryRun  bool
}

// NewWriter builds a Writer. A nil provider defaults to filesystem storage rooted at root.
func NewWriter(root string, provider interfaces.StorageProvider, opts ...Option) *Writer {
	if provider == nil {
		provider = filesystem.New(root)
	}
	w := &Writer{
		root:    root,
		storage: provider,
		logger:  logging.BundleLogger(nil),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Root returns the directory bundles are written under.
func (w *Writer) Root() string {
	return w.root
}

// OutputPath returns the bundle directory for siteID.
func (w *Writer) OutputPath(siteID string) string {
	return filepath.Join(w.root, siteID)
}

// Write renders agg and writes index.html, one file per page, styles.css and
// script.js. Rerunning overwrites every file in place.
func (w *Writer) Write(ctx context.Context, agg *site.WebsiteAggregate) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := site.Validate(agg); err != nil {
		return nil, err
	}

	start := w.now()
	logger := logging.WithSite(w.logger, agg.ID).WithContext(ctx)

	cfg := w.render
	if cfg.Year <= 0 {
		cfg.Year = start.Year()
	}

	docs, err := render.RenderAll(agg, cfg)
	if err != nil {
		logger.Error("bundle.render.failed", "error", err)
		return nil, generationFailed(agg.ID, "render", err)
	}

	result := &Result{
		SiteID:     agg.ID,
		OutputPath: w.OutputPath(agg.ID),
		Files:      make([]FileRecord, 0, len(docs)),
		DryRun:     w.dryRun,
	}

	writer := newArtifactWriter(w.storage)
	if w.dryRun {
		writer = noopWriter{}
	}

	if err := writer.EnsureDir(ctx, agg.ID); err != nil {
		logger.Error("bundle.ensure_dir.failed", "path", agg.ID, "error", err)
		return nil, generationFailed(agg.ID, "ensure_dir", err)
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data := []byte(doc.Body)
		record := FileRecord{
			Path:        doc.Path,
			Kind:        doc.Kind,
			ContentType: doc.ContentType,
			Size:        int64(len(data)),
			Checksum:    computeHash(data),
		}
		target := path.Join(agg.ID, doc.Path)
		if err := writer.WriteFile(ctx, writeFileRequest{
			Path:        target,
			Content:     strings.NewReader(doc.Body),
			Size:        record.Size,
			Kind:        record.Kind,
			ContentType: record.ContentType,
			Checksum:    record.Checksum,
		}); err != nil {
			logger.Error("bundle.write.failed", "path", target, "error", err)
			return nil, generationFailed(agg.ID, "write "+doc.Path, err)
		}
		result.Files = append(result.Files, record)
	}

	result.Duration = w.now().Sub(start)
	logger.Info("bundle.write.success",
		"files", len(result.Files),
		"output", result.OutputPath,
		"duration_ms", result.Duration.Milliseconds(),
		"dry_run", w.dryRun,
	)
	return result, nil
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
