package component

import "github.com/Hanaasagi/promptline/internal/render"

func hostname(ctx Context, _ *Options) (render.Item, error) {
	name, ok := ctx.Hostname()
	if !ok || name == "" {
		return render.Absent(), nil
	}
	return render.Value(name), nil
}

func jobs(ctx Context, _ *Options) (render.Item, error) {
	count, ok := ctx.BackgroundJobs()
	if !ok || count == "" {
		return render.Absent(), nil
	}
	return render.Value(count), nil
}

func env(ctx Context, opts *Options) (render.Item, error) {
	name, err := opts.Require("name")
	if err != nil {
		return render.Item{}, err
	}

	value, ok := ctx.LookupEnv(name)
	if !ok {
		return render.Absent(), nil
	}
	return render.Value(value), nil
}

func user(ctx Context, _ *Options) (render.Item, error) {
	name, ok := ctx.LookupEnv("USER")
	if !ok {
		return render.Absent(), nil
	}
	return render.Value(name), nil
}
