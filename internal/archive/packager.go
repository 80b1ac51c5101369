package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// ErrBundleNotFound reports that no bundle directory exists for a site.
var ErrBundleNotFound = errors.New("archive: bundle not found")

const (
	bundleNotFoundCode = "SITE_BUNDLE_NOT_FOUND"
	packFailedCode     = "SITE_ARCHIVE_FAILED"
)

// ContentType is the media type of the packaged stream.
const ContentType = "application/zip"

// Option configures a Packager.
type Option func(*Packager)

// WithLevel sets the deflate level. Values outside flate's range are ignored.
func WithLevel(level int) Option {
	return func(p *Packager) {
		if level >= flate.HuffmanOnly && level <= flate.BestCompression {
			p.level = level
		}
	}
}

// WithLogger sets the logger used for packaging events.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Packager) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Packager streams a zip archive of a generated bundle. It only reads from
// disk.
type Packager struct {
	root   string
	level  int
	logger interfaces.Logger
}

// NewPackager returns a packager reading bundles under root.
func NewPackager(root string, opts ...Option) *Packager {
	p := &Packager{
		root:   root,
		level:  flate.BestCompression,
		logger: logging.ArchiveLogger(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Exists reports whether a bundle directory exists for siteID.
func (p *Packager) Exists(siteID string) bool {
	dir, err := p.bundleDir(siteID)
	return err == nil && dir != ""
}

// Pack writes the archive of <root>/<siteID> to w. Entry names are relative
// to the bundle directory and appear in lexical order.
func (p *Packager) Pack(ctx context.Context, siteID string, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dir, err := p.bundleDir(siteID)
	if err != nil {
		return err
	}
	logger := logging.WithSite(p.logger, siteID).WithContext(ctx)

	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, p.level)
	})

	count := 0
	walkErr := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if err := addFile(zw, path, filepath.ToSlash(rel), entry); err != nil {
			return err
		}
		count++
		return nil
	})
	if walkErr != nil {
		logger.Error("archive.pack.failed", "error", walkErr)
		return packFailed(siteID, walkErr)
	}
	if err := zw.Close(); err != nil {
		logger.Error("archive.pack.failed", "error", err)
		return packFailed(siteID, err)
	}

	logger.Info("archive.pack.success", "files", count, "level", p.level)
	return nil
}

func (p *Packager) bundleDir(siteID string) (string, error) {
	if err := site.ValidateSiteID(siteID); err != nil {
		return "", bundleNotFound(siteID)
	}
	dir := filepath.Join(p.root, siteID)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", bundleNotFound(siteID)
	}
	return dir, nil
}

func addFile(zw *zip.Writer, path, name string, entry fs.DirEntry) error {
	info, err := entry.Info()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(dst, src)
	return err
}

// DownloadName returns the attachment filename for a bundle, derived from the
// company name with "website" as the fallback.
func DownloadName(companyName string) string {
	name := strings.TrimSpace(companyName)
	if name != "" {
		if normalized, err := slug.Normalize(name); err == nil && normalized != "" {
			return normalized + ".zip"
		}
	}
	return "website.zip"
}

func bundleNotFound(siteID string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s", ErrBundleNotFound, siteID), goerrors.CategoryNotFound, "website files not found").
		WithTextCode(bundleNotFoundCode)
}

func packFailed(siteID string, err error) error {
	return goerrors.Wrap(fmt.Errorf("archive: pack %s: %w", siteID, err), goerrors.CategoryInternal, "website archive failed").
		WithTextCode(packFailedCode)
}
