// Package source resolves the configured search folders into the files the
// key scanner reads.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"

	"localefinder/internal/domain"
	"localefinder/internal/domain/entities"
	"localefinder/internal/ports/output"
)

var _ output.SourceProvider = (*Walker)(nil)

// Config selects the files to scan. Exclude entries are directory paths
// relative to each folder. Patterns are matched against file names.
type Config struct {
	Folders  []string
	Exclude  []string
	Patterns []string
	Files    []string
}

type Walker struct {
	fs       afero.Fs
	cfg      Config
	patterns []glob.Glob
	logger   *slog.Logger
}

func NewWalker(fsys afero.Fs, cfg Config, logger *slog.Logger) (*Walker, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &Walker{fs: fsys, cfg: cfg, logger: logger}
	for _, p := range cfg.Patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: file pattern %q: %v", domain.ErrConfiguration, p, err)
		}
		w.patterns = append(w.patterns, g)
	}
	return w, nil
}

// Files walks every folder and reads the matching files, followed by the
// explicitly listed ones. A path is returned once. Files that cannot be read
// are logged and skipped.
func (w *Walker) Files(ctx context.Context) ([]entities.SourceFile, error) {
	var out []entities.SourceFile
	seen := make(map[string]bool)
	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] {
			return
		}
		seen[path] = true
		content, err := afero.ReadFile(w.fs, path)
		if err != nil {
			w.logger.Warn("skipping unreadable file", "path", path, "error", fmt.Errorf("%w: %v", domain.ErrScanIO, err))
			return
		}
		out = append(out, entities.SourceFile{Path: path, Content: string(content)})
	}

	for _, folder := range w.cfg.Folders {
		if ok, _ := afero.DirExists(w.fs, folder); !ok {
			w.logger.Warn("search folder does not exist", "folder", folder)
			continue
		}
		err := afero.Walk(w.fs, folder, func(path string, info os.FileInfo, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				w.logger.Warn("skipping unreadable path", "path", path, "error", fmt.Errorf("%w: %v", domain.ErrScanIO, err))
				if info != nil && info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if info.IsDir() {
				if path != folder && w.excluded(folder, path) {
					return filepath.SkipDir
				}
				return nil
			}
			if w.matches(info.Name()) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for _, f := range w.cfg.Files {
		add(f)
	}
	return out, nil
}

func (w *Walker) excluded(folder, dir string) bool {
	rel, err := filepath.Rel(folder, dir)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, ex := range w.cfg.Exclude {
		ex = strings.Trim(filepath.ToSlash(ex), "/")
		if rel == ex || strings.HasPrefix(rel, ex+"/") {
			return true
		}
	}
	return false
}

func (w *Walker) matches(name string) bool {
	if len(w.patterns) == 0 {
		return true
	}
	for _, g := range w.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}
