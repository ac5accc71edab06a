// Package filesystem stores catalogs as files below a language directory:
// "<root>/<locale>.json" for the default catalog and
// "<root>/<locale>/<namespace>.php" for namespaced ones. Module namespaces
// written as "vendor::file" resolve through a table of hint paths to
// "<hint>/<locale>/<file>.php".
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"localefinder/internal/domain"
	"localefinder/internal/domain/catalog"
	"localefinder/internal/domain/keytree"
	"localefinder/internal/ports/output"
)

var _ output.CatalogStore = (*CatalogStore)(nil)

type CatalogStore struct {
	fs    afero.Fs
	root  string
	hints map[string]string
}

type Option func(*CatalogStore)

// WithModules enables "vendor::file" namespaces. hints maps a vendor to the
// directory holding its language folders.
func WithModules(hints map[string]string) Option {
	return func(s *CatalogStore) {
		s.hints = make(map[string]string, len(hints))
		for vendor, dir := range hints {
			s.hints[vendor] = dir
		}
	}
}

func NewCatalogStore(fsys afero.Fs, root string, opts ...Option) *CatalogStore {
	s := &CatalogStore{fs: fsys, root: root}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file backing a catalog. The boolean is false when the
// namespace cannot be mapped to a file.
func (s *CatalogStore) Path(locale, namespace string) (string, bool) {
	if !safeSegment(locale) {
		return "", false
	}
	if namespace == keytree.DefaultNamespace {
		return filepath.Join(s.root, locale+".json"), true
	}
	if vendor, file, ok := strings.Cut(namespace, "::"); ok {
		dir, known := s.hints[vendor]
		if !known || !safeSegment(file) {
			return "", false
		}
		return filepath.Join(dir, locale, file+".php"), true
	}
	if !safeSegment(namespace) {
		return "", false
	}
	return filepath.Join(s.root, locale, namespace+".php"), true
}

func safeSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`) && !strings.Contains(s, "::")
}

func (s *CatalogStore) Exists(_ context.Context, locale, namespace string) (bool, error) {
	p, ok := s.Path(locale, namespace)
	if !ok {
		return false, nil
	}
	return afero.Exists(s.fs, p)
}

func (s *CatalogStore) Read(_ context.Context, locale, namespace string) ([]byte, error) {
	p, ok := s.Path(locale, namespace)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNamespaceMissing, domain.CatalogName(locale, namespace))
	}
	data, err := afero.ReadFile(s.fs, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

// Write replaces the catalog file through a temporary file in the same
// directory.
func (s *CatalogStore) Write(ctx context.Context, locale, namespace string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, ok := s.Path(locale, namespace)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNamespaceMissing, domain.CatalogName(locale, namespace))
	}
	if err := s.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", p, err)
	}
	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// ListLocales returns the locales that have a default catalog, sorted by name.
func (s *CatalogStore) ListLocales(_ context.Context) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.root, err)
	}
	var locales []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if locale, ok := strings.CutSuffix(e.Name(), ".json"); ok && locale != "" {
			locales = append(locales, locale)
		}
	}
	return locales, nil
}

// CreateIfMissing writes an empty array literal for a namespace catalog that
// does not exist yet.
func (s *CatalogStore) CreateIfMissing(ctx context.Context, locale, namespace string) error {
	p, ok := s.Path(locale, namespace)
	if !ok || namespace == keytree.DefaultNamespace {
		return fmt.Errorf("%w: %s", domain.ErrNamespaceMissing, domain.CatalogName(locale, namespace))
	}
	exists, err := afero.Exists(s.fs, p)
	if err != nil {
		return fmt.Errorf("stat %s: %w", p, err)
	}
	if exists {
		return nil
	}
	empty, err := catalog.NewEncoder(locale).EncodePHP(keytree.New())
	if err != nil {
		return err
	}
	return s.Write(ctx, locale, namespace, empty)
}
