// Package vcs reads the git state shown in prompts. It never writes to the
// repository.
package vcs

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

var (
	// ErrNotRepository is returned by Discover when no repository encloses
	// the directory.
	ErrNotRepository = errors.New("not a git repository")

	// ErrNoBranch means HEAD is detached or points to a branch without
	// commits.
	ErrNoBranch = errors.New("HEAD is not on a branch")

	// ErrNoCommit means HEAD does not resolve to a commit yet.
	ErrNoCommit = errors.New("HEAD has no commit")
)

const (
	stashRef    = plumbing.ReferenceName("refs/stash")
	stashReflog = "logs/refs/stash"

	shortHashLength = 7
)

// Repository is the read access components get through the shared accessor.
type Repository interface {
	Root() string
	Branch() (string, error)
	CommitID() (string, error)
	Status() (Status, error)
}

// StashRepository adds the reads that need exclusive access to the
// repository.
type StashRepository interface {
	Repository
	StashCount() (int, error)
}

// Repo is a repository opened with go-git.
type Repo struct {
	repo *git.Repository
	root string
}

// Discover opens the repository enclosing dir, walking up the parents the
// way git itself does.
func Discover(dir string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotRepository)
		}
		return nil, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}

	r := &Repo{repo: repo}
	// Bare repositories have no worktree and no root to show.
	if wt, err := repo.Worktree(); err == nil {
		r.root = wt.Filesystem.Root()
	}

	return r, nil
}

// Root returns the worktree root, or "" for a bare repository.
func (r *Repo) Root() string {
	return r.root
}

// Branch returns the short name of the checked out branch.
func (r *Repo) Branch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", ErrNoBranch
		}
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", ErrNoBranch
	}
	return head.Name().Short(), nil
}

// CommitID returns the abbreviated hash of the HEAD commit.
func (r *Repo) CommitID() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", ErrNoCommit
		}
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	id := head.Hash().String()
	if len(id) > shortHashLength {
		id = id[:shortHashLength]
	}
	return id, nil
}

// Status summarizes the worktree and index.
func (r *Repo) Status() (Status, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return Status{}, fmt.Errorf("failed to open worktree: %w", err)
	}
	wt.Excludes = append(wt.Excludes, globalExcludes()...)

	files, err := wt.Status()
	if err != nil {
		return Status{}, fmt.Errorf("failed to compute status: %w", err)
	}

	var status Status
	for _, file := range files {
		status.add(file)
	}
	return status, nil
}

// globalExcludes loads the excludes files named by core.excludesFile in the
// system and user git configs. Unreadable files are skipped.
func globalExcludes() []gitignore.Pattern {
	root := osfs.New("/")

	var patterns []gitignore.Pattern
	for _, load := range []func(billy.Filesystem) ([]gitignore.Pattern, error){
		gitignore.LoadSystemPatterns,
		gitignore.LoadGlobalPatterns,
	} {
		ps, err := load(root)
		if err != nil {
			slog.Debug("Failed to load global excludes", "error", err)
			continue
		}
		patterns = append(patterns, ps...)
	}
	return patterns
}

// StashCount returns the number of stash entries. The entries live in the
// reflog of refs/stash.
func (r *Repo) StashCount() (int, error) {
	if _, err := r.repo.Reference(stashRef, true); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read %s: %w", stashRef, err)
	}

	storage, ok := r.repo.Storer.(*filesystem.Storage)
	if !ok {
		return 1, nil
	}

	count, err := countReflogEntries(storage.Filesystem(), stashReflog)
	if err != nil {
		return 0, err
	}

	// A stash ref without a reflog still holds one entry.
	if count == 0 {
		count = 1
	}
	return count, nil
}

// countReflogEntries counts the non-empty lines of the reflog at name inside
// the git directory. A missing reflog has no entries.
func countReflogEntries(fs billy.Filesystem, name string) (int, error) {
	f, err := fs.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if len(scanner.Bytes()) > 0 {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return count, nil
}
