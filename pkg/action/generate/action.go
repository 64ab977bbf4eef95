// Package generate runs one or more generator targets and writes their output.
package generate

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/cmmoran/propkeygen/pkg/generator"
	"github.com/cmmoran/propkeygen/pkg/generr"
)

// Outcome is the result of a single target.
type Outcome struct {
	Class   string // qualified class name of the target
	Result  *generator.Result
	Written bool // false when the file already held the same bytes or nothing was written
}

// Generate renders every target and writes the files that changed.
func Generate(ctx context.Context, targets []*generator.Options) ([]Outcome, error) {
	return run(ctx, targets, true)
}

// Render renders every target without touching the file system.
func Render(ctx context.Context, targets []*generator.Options) ([]Outcome, error) {
	return run(ctx, targets, false)
}

// Plan normalizes every target and rejects targets that share an output path.
func Plan(targets []*generator.Options) ([]*generator.Generator, error) {
	if len(targets) == 0 {
		return nil, &generr.ConfigError{Option: "targets", Message: "nothing to generate"}
	}
	gens := make([]*generator.Generator, 0, len(targets))
	seen := make(map[string]string, len(targets))
	for i, t := range targets {
		g, err := generator.NewWithOpts(t)
		if err != nil {
			return nil, errors.Wrapf(err, "target %d", i+1)
		}
		out := g.OutputPath()
		name := qualified(g)
		if prev, ok := seen[out]; ok {
			return nil, &generr.ConfigError{
				Option:  "out_dir",
				Value:   out,
				Message: "targets " + prev + " and " + name + " write the same file",
			}
		}
		seen[out] = name
		gens = append(gens, g)
	}
	return gens, nil
}

func run(ctx context.Context, targets []*generator.Options, write bool) ([]Outcome, error) {
	gens, err := Plan(targets)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(gens))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, g := range gens {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			name := qualified(g)
			res, err := g.Generate()
			if err != nil {
				return errors.Wrapf(err, "generate %s", name)
			}
			o := Outcome{Class: name, Result: res}
			if write {
				if o.Written, err = res.Write(); err != nil {
					return errors.Wrapf(err, "write %s", name)
				}
			}
			slog.Debug("target done", "class", name, "path", res.Path, "written", o.Written)
			outcomes[i] = o
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func qualified(g *generator.Generator) string {
	if g.Opts.PackageName == "" {
		return g.Opts.ClassName
	}
	return g.Opts.PackageName + "." + g.Opts.ClassName
}
