// Package session provides the Context of a single prompt render. Values
// that cost a syscall or a repository lookup are computed on first use and
// cached for the rest of the render.
package session

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"

	"github.com/Hanaasagi/promptline/internal/shell"
	"github.com/Hanaasagi/promptline/internal/vcs"
)

// Options describes what the shell passed in for this render.
type Options struct {
	Shell          shell.Kind
	LastExitStatus int
	// Jobs is the job indicator; nil when the shell did not provide one.
	Jobs *string

	// Dir and Home override the working and home directories.
	Dir  string
	Home string
	// LookupEnv replaces os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// Hostname replaces os.Hostname.
	Hostname func() (string, error)
}

// Session implements component.Context.
type Session struct {
	opts Options

	dirOnce sync.Once
	dir     string

	repoOnce sync.Once
	repo     *vcs.Repo
	// repoMu serializes the exclusive accessor.
	repoMu sync.Mutex

	hostOnce sync.Once
	host     string
	hostOK   bool
}

// New returns a session for one render.
func New(opts Options) *Session {
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}
	if opts.Hostname == nil {
		opts.Hostname = os.Hostname
	}
	if opts.Home == "" {
		opts.Home = xdg.Home
	}
	return &Session{opts: opts}
}

// CurrentDir prefers $PWD, which keeps the symlinked path the user cd'ed
// into, over the resolved path from getcwd.
func (s *Session) CurrentDir() string {
	s.dirOnce.Do(func() {
		if s.opts.Dir != "" {
			s.dir = s.opts.Dir
			return
		}
		if pwd, ok := s.opts.LookupEnv("PWD"); ok && filepath.IsAbs(pwd) {
			s.dir = pwd
			return
		}
		dir, err := os.Getwd()
		if err != nil {
			slog.Warn("Failed to get working directory", "error", err)
			return
		}
		s.dir = dir
	})
	return s.dir
}

func (s *Session) HomeDir() string {
	return s.opts.Home
}

func (s *Session) discover() {
	s.repoOnce.Do(func() {
		dir := s.CurrentDir()
		if dir == "" {
			return
		}
		repo, err := vcs.Discover(dir)
		if err != nil {
			if !errors.Is(err, vcs.ErrNotRepository) {
				slog.Debug("Repository discovery failed", "dir", dir, "error", err)
			}
			return
		}
		s.repo = repo
	})
}

// Repository returns the repository enclosing the working directory.
func (s *Session) Repository() (vcs.Repository, bool) {
	s.discover()
	if s.repo == nil {
		return nil, false
	}
	return s.repo, true
}

// ExclusiveRepository locks the repository until release is called.
func (s *Session) ExclusiveRepository() (vcs.StashRepository, func(), bool) {
	s.discover()
	if s.repo == nil {
		return nil, func() {}, false
	}
	s.repoMu.Lock()
	return s.repo, s.repoMu.Unlock, true
}

func (s *Session) LastExitStatus() int {
	return s.opts.LastExitStatus
}

func (s *Session) BackgroundJobs() (string, bool) {
	if s.opts.Jobs == nil {
		return "", false
	}
	return *s.opts.Jobs, true
}

func (s *Session) Shell() shell.Kind {
	return s.opts.Shell
}

func (s *Session) LookupEnv(name string) (string, bool) {
	return s.opts.LookupEnv(name)
}

func (s *Session) Hostname() (string, bool) {
	s.hostOnce.Do(func() {
		host, err := s.opts.Hostname()
		if err != nil {
			slog.Debug("Failed to get hostname", "error", err)
			return
		}
		s.host, s.hostOK = host, true
	})
	return s.host, s.hostOK
}
