package workspace

import (
	"context"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

// skipDirs are never treated as workspace members.
var skipDirs = []string{"node_modules", "target", ".git"}

// normalizePattern turns a manifest pattern into an fs.FS pattern.
func normalizePattern(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return "."
	}
	return path.Clean(p)
}

// expandMembers resolves member patterns to directories under root that
// contain manifest. Patterns starting with "!" exclude directories matched
// by earlier or later patterns. The result is sorted and deduplicated.
func expandMembers(ctx context.Context, root string, patterns []string, manifest string, l *log.Logger) ([]string, error) {
	fsys := os.DirFS(root)

	var include, exclude []string
	for _, p := range patterns {
		if err := errs.ValidateGlob(p); err != nil {
			return nil, err
		}
		if neg, ok := strings.CutPrefix(p, "!"); ok {
			exclude = append(exclude, normalizePattern(neg))
			continue
		}
		include = append(include, normalizePattern(p))
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, pattern := range include {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidManifest, err, "bad workspace pattern %q", pattern)
		}
		for _, dir := range matches {
			if seen[dir] || skipped(dir) || excluded(dir, exclude) {
				continue
			}
			seen[dir] = true
			info, err := fs.Stat(fsys, path.Join(dir, manifest))
			if err != nil || info.IsDir() {
				l.Debug("Skipping directory without manifest", "dir", dir, "manifest", manifest)
				continue
			}
			dirs = append(dirs, dir)
		}
	}
	slices.Sort(dirs)
	return dirs, nil
}

func skipped(dir string) bool {
	for _, part := range strings.Split(dir, "/") {
		if slices.Contains(skipDirs, part) {
			return true
		}
	}
	return false
}

func excluded(dir string, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, dir); ok {
			return true
		}
		// "!packages/legacy" also drops everything below it.
		if ok, _ := doublestar.Match(pattern+"/**", dir); ok {
			return true
		}
	}
	return false
}
