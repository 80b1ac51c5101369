package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
	"github.com/goliatone/go-sitegen/pkg/storage"
)

// ErrPathEscapesRoot is returned for paths that resolve outside the storage root.
var ErrPathEscapesRoot = errors.New("filesystem storage: path escapes root")

// Option configures the filesystem provider.
type Option func(*Storage)

// WithDirPerm overrides the permission used when creating directories.
func WithDirPerm(perm os.FileMode) Option {
	return func(s *Storage) {
		if perm != 0 {
			s.dirPerm = perm
		}
	}
}

// WithFilePerm overrides the permission applied to written files.
func WithFilePerm(perm os.FileMode) Option {
	return func(s *Storage) {
		if perm != 0 {
			s.filePerm = perm
		}
	}
}

// Storage is a storage.Provider that keeps artifacts under a root directory.
// Files are replaced atomically so readers never observe a half-written file.
type Storage struct {
	root     string
	dirPerm  os.FileMode
	filePerm os.FileMode
}

var _ interfaces.StorageProvider = (*Storage)(nil)

// New returns a provider rooted at root.
func New(root string, opts ...Option) *Storage {
	s := &Storage{
		root:     filepath.Clean(root),
		dirPerm:  0o755,
		filePerm: 0o644,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Root returns the directory the provider writes into.
func (s *Storage) Root() string {
	return s.root
}

// Query supports storage.OpRead (rows scan into *[]byte) and storage.OpStat
// (rows scan into *bool reporting directory existence). Missing targets
// yield nil rows.
func (s *Storage) Query(_ context.Context, query string, args ...any) (interfaces.Rows, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("filesystem storage: %s requires path", query)
	}
	full, err := s.abs(args[0])
	if err != nil {
		return nil, err
	}

	switch query {
	case storage.OpRead:
		data, err := os.ReadFile(full)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &singleRow{value: data}, nil
	case storage.OpStat:
		info, err := os.Stat(full)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &singleRow{value: info.IsDir()}, nil
	default:
		return nil, fmt.Errorf("filesystem storage: unsupported query %q", query)
	}
}

func (s *Storage) Exec(_ context.Context, query string, args ...any) (interfaces.Result, error) {
	if len(args) == 0 {
		return emptyResult{}, fmt.Errorf("filesystem storage: %s requires path", query)
	}
	full, err := s.abs(args[0])
	if err != nil {
		return emptyResult{}, err
	}

	switch query {
	case storage.OpEnsureDir:
		return emptyResult{}, os.MkdirAll(full, s.dirPerm)
	case storage.OpWrite:
		if len(args) < 2 {
			return emptyResult{}, errors.New("filesystem storage: write requires path and reader")
		}
		reader, ok := args[1].(io.Reader)
		if !ok || reader == nil {
			return emptyResult{}, errors.New("filesystem storage: write expects io.Reader content")
		}
		if err := os.MkdirAll(filepath.Dir(full), s.dirPerm); err != nil {
			return emptyResult{}, err
		}
		if err := atomic.WriteFile(full, reader); err != nil {
			return emptyResult{}, err
		}
		return emptyResult{affected: 1}, os.Chmod(full, s.filePerm)
	case storage.OpRemove:
		if full == s.root {
			return emptyResult{}, fmt.Errorf("%w: refusing to remove root", ErrPathEscapesRoot)
		}
		err := os.RemoveAll(full)
		if errors.Is(err, fs.ErrNotExist) {
			return emptyResult{}, nil
		}
		return emptyResult{}, err
	default:
		return emptyResult{}, fmt.Errorf("filesystem storage: unsupported operation %q", query)
	}
}

// Transaction runs fn against the provider itself; filesystem writes are not
// rolled back.
func (s *Storage) Transaction(_ context.Context, fn func(tx interfaces.Transaction) error) error {
	if fn == nil {
		return nil
	}
	return fn(&tx{storage: s})
}

// abs resolves a slash-separated relative path under the root.
func (s *Storage) abs(arg any) (string, error) {
	rel, _ := arg.(string)
	rel = filepath.FromSlash(strings.TrimPrefix(filepath.ToSlash(rel), "/"))
	full := filepath.Join(s.root, rel)
	back, err := filepath.Rel(s.root, full)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapesRoot, rel)
	}
	return full, nil
}

type tx struct {
	storage *Storage
}

func (t *tx) Query(ctx context.Context, query string, args ...any) (interfaces.Rows, error) {
	return t.storage.Query(ctx, query, args...)
}

func (t *tx) Exec(ctx context.Context, query string, args ...any) (interfaces.Result, error) {
	return t.storage.Exec(ctx, query, args...)
}

func (t *tx) Transaction(context.Context, func(interfaces.Transaction) error) error {
	return errors.New("filesystem storage: nested transactions not supported")
}

func (t *tx) Commit() error   { return nil }
func (t *tx) Rollback() error { return nil }

type emptyResult struct {
	affected int64
}

func (r emptyResult) RowsAffected() (int64, error) { return r.affected, nil }
func (emptyResult) LastInsertId() (int64, error)   { return 0, nil }

type singleRow struct {
	value any
	read  bool
}

func (r *singleRow) Next() bool {
	if r.read {
		return false
	}
	r.read = true
	return true
}

func (r *singleRow) Scan(dest ...any) error {
	if len(dest) == 0 {
		return errors.New("filesystem storage: scan requires destination")
	}
	switch target := dest[0].(type) {
	case *[]byte:
		data, ok := r.value.([]byte)
		if !ok {
			return fmt.Errorf("filesystem storage: cannot scan %T into *[]byte", r.value)
		}
		*target = append((*target)[:0], data...)
	case *bool:
		flag, ok := r.value.(bool)
		if !ok {
			return fmt.Errorf("filesystem storage: cannot scan %T into *bool", r.value)
		}
		*target = flag
	default:
		return fmt.Errorf("filesystem storage: unsupported scan destination %T", dest[0])
	}
	return nil
}

func (r *singleRow) Close() error { return nil }
