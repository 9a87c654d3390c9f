// Package component resolves parsed template tokens into render items,
// reading runtime state through a Context.
package component

import (
	"github.com/Hanaasagi/promptline/internal/shell"
	"github.com/Hanaasagi/promptline/internal/vcs"
)

// Context is the runtime state a render consults. Implementations compute
// expensive values lazily and at most once per render.
type Context interface {
	CurrentDir() string
	HomeDir() string

	// Repository returns the repository enclosing CurrentDir.
	Repository() (vcs.Repository, bool)
	// ExclusiveRepository returns the repository for reads that need
	// exclusive access. The caller must call release when done.
	ExclusiveRepository() (repo vcs.StashRepository, release func(), ok bool)

	LastExitStatus() int
	// BackgroundJobs returns the job indicator passed in by the shell.
	BackgroundJobs() (string, bool)
	Shell() shell.Kind

	LookupEnv(name string) (string, bool)
	Hostname() (string, bool)
}
