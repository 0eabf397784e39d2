// Package matcher decides which files a contract governs. Contracts select
// files with include/exclude glob patterns evaluated against paths relative
// to a workspace root: "**" spans any number of path segments (including
// none), "*" stays within one segment, and matching ignores case.
package matcher

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ariel-frischer/contracts/internal/contract"
	"github.com/bmatcuk/doublestar/v4"
)

// skipDirs are never descended into when enumerating files.
var skipDirs = map[string]bool{
	".git": true,
}

// Matcher evaluates one contract's target patterns.
type Matcher struct {
	include []string
	exclude []string
}

// New builds a Matcher from the contract's target. Patterns are
// normalised once so Match only lower-cases the path.
func New(c *contract.Contract) *Matcher {
	return &Matcher{
		include: normalizePatterns(c.Target.Patterns),
		exclude: normalizePatterns(c.Target.Exclude),
	}
}

// Match reports whether relPath is selected by an include pattern and not
// rejected by an exclude pattern. Invalid patterns never match.
func (m *Matcher) Match(relPath string) bool {
	path := strings.ToLower(toSlash(relPath))
	return matchAny(m.include, path) && !matchAny(m.exclude, path)
}

// Validate reports the first syntactically invalid pattern, if any.
func (m *Matcher) Validate() error {
	for _, p := range append(append([]string{}, m.include...), m.exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

// RelativePath returns the path used for matching filePath. Without a
// root, filePath is used as given. Otherwise both sides are made absolute
// and the result is relative to root when the file sits inside it, or the
// absolute path without its volume and leading separator when it does not.
func RelativePath(filePath, root string) string {
	if root == "" {
		return trimLeadingRoot(filePath)
	}

	absFile, err := filepath.Abs(filePath)
	if err != nil {
		return trimLeadingRoot(filePath)
	}
	if absRoot, err := filepath.Abs(root); err == nil {
		if rel, err := filepath.Rel(absRoot, absFile); err == nil &&
			rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return toSlash(rel)
		}
	}
	return trimLeadingRoot(absFile)
}

// trimLeadingRoot slash-normalises path and drops its volume, a leading
// "./" and leading separators so it lines up with normalised patterns.
func trimLeadingRoot(path string) string {
	path = toSlash(strings.TrimPrefix(path, filepath.VolumeName(path)))
	path = strings.TrimPrefix(path, "./")
	return strings.TrimLeft(path, "/")
}

// FindContract returns the first contract, in iteration order, whose
// target selects filePath. It returns nil when no contract applies.
func FindContract(filePath string, contracts []*contract.Contract, root string) *contract.Contract {
	rel := RelativePath(filePath, root)
	for _, c := range contracts {
		if New(c).Match(rel) {
			return c
		}
	}
	return nil
}

// MatchFiles walks root and returns the absolute paths of regular files
// selected by at least one contract. Each contract's excludes only apply
// to that contract's includes. Results are sorted case-insensitively.
func MatchFiles(ctx context.Context, root string, contracts []*contract.Contract) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}

	matchers := make([]*Matcher, 0, len(contracts))
	for _, c := range contracts {
		matchers = append(matchers, New(c))
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != absRoot && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel := RelativePath(path, absRoot)
		for _, m := range matchers {
			if m.Match(rel) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("matching files under %s: %w", absRoot, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return PathLess(files[i], files[j])
	})
	return files, nil
}

// PathLess orders paths case-insensitively, breaking ties by byte order.
// MatchFiles and batch validation results share this order.
func PathLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}

// normalizePatterns lower-cases patterns, converts separators, and drops
// a leading "./" or "/" so patterns line up with relative paths.
func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = strings.ToLower(strings.ReplaceAll(p, "\\", "/"))
		p = strings.TrimPrefix(p, "./")
		p = strings.TrimPrefix(p, "/")
		out = append(out, p)
	}
	return out
}

func toSlash(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "\\", "/")
}
