package scaffold

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/teranos/lcapgen/errors"
)

// DirtyGuard reports uncommitted changes inside folders that are about to be
// regenerated. A nil guard reports nothing.
type DirtyGuard struct {
	worktree *git.Worktree
	root     string
}

// OpenDirtyGuard opens the git work tree containing path. Outside a git
// repository it returns a nil guard and no error.
func OpenDirtyGuard(path string) (*DirtyGuard, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to open git repository at %s", path)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to open git worktree")
	}

	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve worktree root")
	}
	return &DirtyGuard{worktree: wt, root: root}, nil
}

// Changes lists tracked files under folder with uncommitted changes, relative
// to the repository root. Untracked files are not reported.
func (g *DirtyGuard) Changes(folder string) ([]string, error) {
	if g == nil {
		return nil, nil
	}

	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", folder)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	rel, err := filepath.Rel(g.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		// folder lies outside this work tree
		return nil, nil
	}
	prefix := filepath.ToSlash(rel) + "/"

	status, err := g.worktree.Status()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read git status")
	}

	var changed []string
	for file, st := range status {
		if !strings.HasPrefix(file, prefix) {
			continue
		}
		if st.Worktree == git.Untracked && st.Staging == git.Untracked {
			continue
		}
		if st.Worktree != git.Unmodified || st.Staging != git.Unmodified {
			changed = append(changed, file)
		}
	}
	sort.Strings(changed)
	return changed, nil
}
