package component

import (
	"fmt"

	"github.com/Hanaasagi/promptline/internal/render"
)

func gitBranch(ctx Context, _ *Options) (render.Item, error) {
	repo, ok := ctx.Repository()
	if !ok {
		return render.Absent(), nil
	}

	branch, err := repo.Branch()
	if err != nil {
		return unavailable("git_branch", err), nil
	}
	return render.Value(branch), nil
}

func gitCommit(ctx Context, _ *Options) (render.Item, error) {
	repo, ok := ctx.Repository()
	if !ok {
		return render.Absent(), nil
	}

	id, err := repo.CommitID()
	if err != nil {
		return unavailable("git_commit", err), nil
	}
	return render.Value(id), nil
}

// gitStash shows "<n>+" when the stash holds entries.
func gitStash(ctx Context, _ *Options) (render.Item, error) {
	repo, release, ok := ctx.ExclusiveRepository()
	if !ok {
		return render.Absent(), nil
	}
	defer release()

	count, err := repo.StashCount()
	if err != nil {
		return unavailable("git_stash", err), nil
	}
	if count == 0 {
		return render.Absent(), nil
	}
	return render.Value(fmt.Sprintf("%d+", count)), nil
}

func gitStatus(ctx Context, _ *Options) (render.Item, error) {
	repo, ok := ctx.Repository()
	if !ok {
		return render.Absent(), nil
	}

	status, err := repo.Status()
	if err != nil {
		return unavailable("git_status", err), nil
	}
	if status.Clean() {
		return render.Absent(), nil
	}
	return render.Value(status.String()), nil
}
