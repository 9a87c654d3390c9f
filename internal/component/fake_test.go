package component

import (
	"github.com/Hanaasagi/promptline/internal/shell"
	"github.com/Hanaasagi/promptline/internal/vcs"
)

type fakeRepo struct {
	root      string
	branch    string
	branchErr error
	commit    string
	status    vcs.Status
	stash     int
}

func (r *fakeRepo) Root() string { return r.root }

func (r *fakeRepo) Branch() (string, error) {
	if r.branchErr != nil {
		return "", r.branchErr
	}
	return r.branch, nil
}

func (r *fakeRepo) CommitID() (string, error) {
	if r.commit == "" {
		return "", vcs.ErrNoCommit
	}
	return r.commit, nil
}

func (r *fakeRepo) Status() (vcs.Status, error) { return r.status, nil }
func (r *fakeRepo) StashCount() (int, error)    { return r.stash, nil }

type fakeContext struct {
	dir      string
	home     string
	repo     *fakeRepo
	status   int
	jobs     string
	hasJobs  bool
	kind     shell.Kind
	env      map[string]string
	host     string
	released int
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		dir:  "/home/alice/proj",
		home: "/home/alice",
		kind: shell.NoWrap,
		env:  map[string]string{},
	}
}

func (c *fakeContext) CurrentDir() string { return c.dir }
func (c *fakeContext) HomeDir() string    { return c.home }

func (c *fakeContext) Repository() (vcs.Repository, bool) {
	if c.repo == nil {
		return nil, false
	}
	return c.repo, true
}

func (c *fakeContext) ExclusiveRepository() (vcs.StashRepository, func(), bool) {
	if c.repo == nil {
		return nil, func() {}, false
	}
	return c.repo, func() { c.released++ }, true
}

func (c *fakeContext) LastExitStatus() int            { return c.status }
func (c *fakeContext) BackgroundJobs() (string, bool) { return c.jobs, c.hasJobs }
func (c *fakeContext) Shell() shell.Kind              { return c.kind }
func (c *fakeContext) Hostname() (string, bool)       { return c.host, c.host != "" }

func (c *fakeContext) LookupEnv(name string) (string, bool) {
	value, ok := c.env[name]
	return value, ok
}
