package walk

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/AliceO2Group/eventstat/internal/model"
	"github.com/AliceO2Group/eventstat/internal/stats"

	"github.com/bmatcuk/doublestar/v4"
)

// Pattern matches base file names. The expression is anchored at the start
// of the name only, so `sgn.*_Kine\.root` matches sgn_1_Kine.root.bak too.
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return Pattern{}, fmt.Errorf("compiling pattern %q: %w", expr, err)
	}
	return Pattern{expr: expr, re: re}, nil
}

func (p Pattern) Match(name string) bool {
	return p.re != nil && p.re.MatchString(name)
}

func (p Pattern) String() string {
	return p.expr
}

// Dir is a convenience wrapper around FS for a directory on disk. See FS for details.
// A missing or unreadable dir is not an error, the sequence is empty then.
func Dir(ctx context.Context, counter *stats.Stats, dir string, pattern Pattern, exclude []string) iter.Seq[model.FileMatch] {
	return func(yield func(model.FileMatch) bool) {
		info, err := os.Stat(dir)
		if err != nil {
			slog.WarnContext(ctx, "can't open dir, skipping", "dir", dir, "error", err)
			return
		}
		if !info.IsDir() {
			slog.WarnContext(ctx, "not a directory, skipping", "dir", dir)
			return
		}
		for match := range FS(ctx, counter, os.DirFS(dir), dir, pattern, exclude) {
			if !yield(match) {
				return
			}
		}
	}
}

// FS recursively walks the filesystem rooted at root and yields every regular file
// whose base name matches the pattern. Symlinks to regular files are followed,
// symlinks to directories are not. Entries matching one of exclude doublestar globs
// (relative to root) are skipped, matching directories are not descended into.
// Each model.FileMatch's Path is prefixed with name. Entries which can't be
// accessed are counted as errors and skipped.
func FS(ctx context.Context, counter *stats.Stats, root fs.FS, name string, pattern Pattern, exclude []string) iter.Seq[model.FileMatch] {
	if root == nil {
		slog.WarnContext(ctx, "root is nil: not iterating")
		return nil
	}

	return func(yield func(model.FileMatch) bool) {
		fn := func(path string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return fs.SkipAll
			}
			if err != nil {
				counter.IncErrFiles()
				slog.DebugContext(ctx, "can't access, skipping", "path", filepath.Join(name, path), "error", err)
				return nil
			}
			if path != "." && excluded(exclude, path) {
				counter.IncExcludedFiles()
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}

			counter.IncFiles()
			if !isRegular(root, path, d) {
				counter.IncExcludedFiles()
				return nil
			}
			if !pattern.Match(d.Name()) {
				return nil
			}

			counter.IncMatchedFiles()
			match := model.FileMatch{
				Path:    filepath.Join(name, filepath.FromSlash(path)),
				Pattern: pattern.String(),
			}
			if !yield(match) {
				return fs.SkipAll
			}
			return nil
		}
		_ = fs.WalkDir(root, ".", fn)
	}
}

func excluded(globs []string, path string) bool {
	for _, glob := range globs {
		if ok, _ := doublestar.Match(glob, path); ok {
			return true
		}
	}
	return false
}

func isRegular(root fs.FS, path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(root, path)
	return err == nil && info.Mode().IsRegular()
}
