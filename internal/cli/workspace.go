package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	clierrors "github.com/ariel-frischer/contracts/internal/errors"
)

// target is a resolved --path argument.
type target struct {
	// Workspace is the working directory every path must stay inside.
	Workspace string
	// Path is the absolute target path.
	Path string
	// IsFile is set when the target is a single document.
	IsFile bool
}

// SearchRoot is where contracts are discovered and files enumerated: the
// target directory, or the workspace when the target is a single file.
func (t target) SearchRoot() string {
	if t.IsFile {
		return t.Workspace
	}
	return t.Path
}

// resolveTarget resolves path against the working directory and checks
// that it exists inside it. Symlinks are resolved on both sides so a
// linked temp dir compares equal to its real path.
func resolveTarget(path string) (target, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return target{}, fmt.Errorf("getting working directory: %w", err)
	}
	workspace, err := filepath.EvalSymlinks(cwd)
	if err != nil {
		return target{}, fmt.Errorf("resolving working directory: %w", err)
	}

	if path == "" {
		path = "."
	}
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, abs)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return target{}, clierrors.PathNotFound(path)
		}
		return target{}, fmt.Errorf("checking %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return target{}, fmt.Errorf("resolving %s: %w", path, err)
	}

	if !within(workspace, resolved) {
		return target{}, clierrors.PathOutsideWorkspace(path, workspace)
	}

	return target{Workspace: workspace, Path: resolved, IsFile: !info.IsDir()}, nil
}

// within reports whether path is root or lies beneath it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
