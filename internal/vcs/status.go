package vcs

import (
	"strings"

	"github.com/go-git/go-git/v5"
)

// Status is the union of the per-file states of a repository.
type Status struct {
	Modified  bool // a tracked file differs from the index
	Untracked bool // a file is new in the worktree
	Deleted   bool // a tracked file is missing from the worktree
	Staged    bool // the index differs from HEAD
}

func (s *Status) add(file *git.FileStatus) {
	switch file.Worktree {
	case git.Modified:
		s.Modified = true
	case git.Untracked:
		s.Untracked = true
	case git.Deleted:
		s.Deleted = true
	}

	switch file.Staging {
	case git.Added, git.Modified, git.Deleted, git.Renamed, git.Copied:
		s.Staged = true
	}
}

// Clean reports whether no change was found.
func (s Status) Clean() bool {
	return !s.Modified && !s.Untracked && !s.Deleted && !s.Staged
}

// String returns the status markers in display order:
// * modified, + untracked, - deleted, ^ staged.
func (s Status) String() string {
	var b strings.Builder
	if s.Modified {
		b.WriteByte('*')
	}
	if s.Untracked {
		b.WriteByte('+')
	}
	if s.Deleted {
		b.WriteByte('-')
	}
	if s.Staged {
		b.WriteByte('^')
	}
	return b.String()
}
