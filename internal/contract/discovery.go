package contract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discovery is the outcome of scanning one or more roots for contracts.
type Discovery struct {
	// Contracts holds the successfully loaded contracts.
	Contracts []*Contract
	// Skipped holds contract files that exist but could not be loaded.
	// Discovery never aborts on a bad file; callers decide how loudly to
	// surface these.
	Skipped []*LoadError
}

// Discoverer finds contract definition files beneath root directories.
type Discoverer struct {
	suffix string
	logger *slog.Logger
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithSuffix sets the contract definition suffix (default ".metadata").
func WithSuffix(suffix string) DiscovererOption {
	return func(d *Discoverer) {
		if suffix != "" {
			d.suffix = suffix
		}
	}
}

// WithLogger sets the logger used for skip diagnostics.
func WithLogger(logger *slog.Logger) DiscovererOption {
	return func(d *Discoverer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDiscoverer creates a Discoverer with the given options.
func NewDiscoverer(opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{
		suffix: DefaultSuffix,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Suffix returns the contract definition suffix in use.
func (d *Discoverer) Suffix() string {
	return d.suffix
}

// Discover loads every contract definition under root, in lexical path
// order. A root that does not exist, or holds no definitions, yields an
// empty Discovery and a nil error. The returned error is reserved for
// cancellation and directory traversal failures.
func (d *Discoverer) Discover(ctx context.Context, root string) (*Discovery, error) {
	result := &Discovery{}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d.logger.Debug("contract root does not exist", slog.String("root", root))
			return result, nil
		}
		return nil, fmt.Errorf("checking contract root %s: %w", root, err)
	}
	if !info.IsDir() {
		d.logger.Debug("contract root is not a directory", slog.String("root", root))
		return result, nil
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving contract root %s: %w", root, err)
	}

	paths, err := d.findDefinitions(absRoot)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, err := Load(path)
		if err != nil {
			if errors.Is(err, ErrEmptyContract) {
				d.logger.Debug("skipping empty contract", slog.String("path", path))
				continue
			}
			d.logger.Warn("failed to load contract",
				slog.String("path", path),
				slog.String("error", err.Error()))
			result.Skipped = append(result.Skipped, &LoadError{Path: path, Err: err})
			continue
		}
		result.Contracts = append(result.Contracts, c)
	}

	d.logger.Debug("discovered contracts",
		slog.String("root", absRoot),
		slog.Int("loaded", len(result.Contracts)),
		slog.Int("skipped", len(result.Skipped)))

	return result, nil
}

// DiscoverAndMerge discovers each root in order and merges the results by
// contract identity. Roots are ordered lowest priority first: a contract
// in a later root replaces the earlier one with the same file name
// entirely. The merged list keeps the position at which each identity was
// first seen.
func (d *Discoverer) DiscoverAndMerge(ctx context.Context, roots []string) (*Discovery, error) {
	merged := &Discovery{}
	var order []string
	byIdentity := make(map[string]*Contract)

	for _, root := range roots {
		found, err := d.Discover(ctx, root)
		if err != nil {
			return nil, err
		}
		merged.Skipped = append(merged.Skipped, found.Skipped...)

		for _, c := range found.Contracts {
			id := c.Identity()
			if id == "" {
				continue
			}
			if prev, ok := byIdentity[id]; ok {
				d.logger.Debug("contract overridden",
					slog.String("identity", id),
					slog.String("previous", prev.SourcePath),
					slog.String("override", c.SourcePath))
			} else {
				order = append(order, id)
			}
			byIdentity[id] = c
		}
	}

	merged.Contracts = make([]*Contract, 0, len(order))
	for _, id := range order {
		merged.Contracts = append(merged.Contracts, byIdentity[id])
	}
	return merged, nil
}

// findDefinitions returns absolute paths of definition files under root.
func (d *Discoverer) findDefinitions(root string) ([]string, error) {
	pattern := "**/*" + escapeGlob(d.suffix)

	var paths []string
	err := doublestar.GlobWalk(os.DirFS(root), pattern, func(path string, entry fs.DirEntry) error {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(path)))
		return nil
	}, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scanning %s for contracts: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// escapeGlob escapes glob metacharacters so suffix is matched literally.
func escapeGlob(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
