package fetch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/katalvlaran/timbretag/patch"
)

// Ext is the patch file extension (matched case-insensitively).
const Ext = ".xml"

// Summary describes one Load.
type Summary struct {
	Files       int                    // patch files read
	Tagged      int                    // files placed in at least one category
	Untagged    []string               // files naming no known category
	PerCategory map[patch.Category]int // vectors added per category
}

// Loader reads a patch library directory into a patch.Store.
type Loader struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger routes per-file debug logs to l.
func WithLogger(l *zap.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// NewLoader creates a loader over dir on fs.
// Use afero.NewOsFs() for real libraries, afero.NewMemMapFs() for tests.
func NewLoader(fs afero.Fs, dir string, opts ...Option) *Loader {
	l := &Loader{fs: fs, dir: dir, logger: zap.NewNop()}
	for _, o := range opts {
		o(l)
	}
	return l
}

// NewOsLoader creates a Loader on the operating system filesystem.
func NewOsLoader(dir string) *Loader {
	return NewLoader(afero.NewOsFs(), dir)
}

// Dir returns the library directory.
func (l *Loader) Dir() string { return l.dir }

// Files lists the patch files of the library in name order.
// Subdirectories are not descended into.
func (l *Loader) Files() ([]string, error) {
	exists, err := afero.DirExists(l.fs, l.dir)
	if err != nil {
		return nil, fmt.Errorf("fetch: check library directory: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNoLibrary, l.dir)
	}

	infos, err := afero.ReadDir(l.fs, l.dir)
	if err != nil {
		return nil, fmt.Errorf("fetch: read library directory: %w", err)
	}
	var paths []string
	for _, fi := range infos {
		if fi.IsDir() || !strings.EqualFold(filepath.Ext(fi.Name()), Ext) {
			continue
		}
		paths = append(paths, filepath.Join(l.dir, fi.Name()))
	}
	return paths, nil
}

// LoadFile parses a single patch file.
func (l *Loader) LoadFile(path string) (Patch, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return Patch{}, fmt.Errorf("fetch: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	p, err := ParsePatch(f)
	if err != nil {
		return Patch{}, fmt.Errorf("fetch: %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// Load reads every patch file and files its vectors under each tagged
// category. The context is checked between files.
//
// Errors:
//   - ErrNoLibrary        : dir does not exist.
//   - ErrMalformedPatch   : a file is not a readable patch.
//   - ErrMissingParameter : a tagged domain lacks one of its channels.
//   - ctx.Err()           : cancelled between files.
func (l *Loader) Load(ctx context.Context) (*patch.Store, Summary, error) {
	paths, err := l.Files()
	if err != nil {
		return nil, Summary{}, err
	}

	store := patch.NewStore()
	sum := Summary{PerCategory: make(map[patch.Category]int)}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, sum, err
		}

		p, err := l.LoadFile(path)
		if err != nil {
			return nil, sum, err
		}
		sum.Files++
		if !p.Tagged() {
			sum.Untagged = append(sum.Untagged, filepath.Base(path))
			l.logger.Debug("patch without known tags", zap.String("file", path), zap.String("name", p.Name))
			continue
		}

		for _, c := range p.Categories() {
			v, err := p.VectorFor(c)
			if err != nil {
				return nil, sum, fmt.Errorf("fetch: %s: %w", path, err)
			}
			if err := store.Append(c, v); err != nil {
				return nil, sum, fmt.Errorf("fetch: %s: %w", path, err)
			}
			sum.PerCategory[c]++
		}
		sum.Tagged++
		l.logger.Debug("patch loaded",
			zap.String("file", path),
			zap.String("name", p.Name),
			zap.Stringers("categories", p.Categories()),
		)
	}
	return store, sum, nil
}
