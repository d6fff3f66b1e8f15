// Package repo locates the git repository a manifest belongs to. Relative
// cache roots are resolved against the repository root.
package repo

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository indicates no git repository encloses the start directory
var ErrNotRepository = errors.New("not inside a git repository")

// FindRoot returns the root of the git worktree enclosing start
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	r, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", ErrNotRepository, abs)
		}
		return "", fmt.Errorf("failed to open repository at %s: %w", abs, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return "", fmt.Errorf("repository at %s has no worktree: %w", abs, err)
	}
	return wt.Filesystem.Root(), nil
}

// ManifestPath returns the location of the manifest called name at root
func ManifestPath(root, name string) string {
	return filepath.Join(root, name)
}
