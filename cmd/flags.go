package cmd

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmmoran/propkeygen/internal/model"
	"github.com/cmmoran/propkeygen/pkg/generator"
	"github.com/cmmoran/propkeygen/pkg/manifest"
)

// enumValue is a pflag.Value restricted to a fixed set of strings.
type enumValue[T ~string] struct {
	target  *T
	allowed []T
}

var _ pflag.Value = (*enumValue[generator.Language])(nil)

func newEnum[T ~string](target *T, allowed []T) *enumValue[T] {
	return &enumValue[T]{target: target, allowed: allowed}
}

func (e *enumValue[T]) String() string {
	if e.target == nil {
		return ""
	}
	return string(*e.target)
}

func (e *enumValue[T]) Set(s string) error {
	v := T(strings.ToLower(s))
	if !slices.Contains(e.allowed, v) {
		return errors.Newf("must be one of %s", e.names())
	}
	*e.target = v
	return nil
}

func (e *enumValue[T]) Type() string { return "string" }

func (e *enumValue[T]) names() string {
	names := make([]string, 0, len(e.allowed))
	for _, a := range e.allowed {
		names = append(names, string(a))
	}
	return strings.Join(names, "|")
}

// targetFlags selects what a command works on: a single target described by
// flags, or every target of the manifest.
type targetFlags struct {
	options *generator.Options
	sources []string
}

func (f *targetFlags) bind(c *cobra.Command) {
	f.options = generator.NewOptions()
	o := f.options

	fs := c.Flags()
	fs.StringVarP(&o.ClassName, "class", "c", "", "class name of the generated constants, may be fully qualified (org.example.Keys)")
	fs.StringVarP(&o.PackageName, "package", "p", "", "package of the generated class, or go import path")
	layout := newEnum(&o.SourceLayout, model.Layouts)
	fs.Var(layout, "layout", "source layout ("+layout.names()+")")
	access := newEnum(&o.SourceAccess, model.Accesses)
	fs.Var(access, "access", "access of generated classes ("+access.names()+")")
	lang := newEnum(&o.Language, model.Languages)
	fs.Var(lang, "language", "generated language ("+lang.names()+")")
	policy := newEnum(&o.CollisionPolicy, model.Policies)
	fs.Var(policy, "collision-policy", "handling of identical identifiers from different files ("+policy.names()+")")
	fs.BoolVar(&o.AllowEmpty, "allow-empty", false, "generate an empty class when no keys are found")
	fs.StringVar(&o.Header, "header", "", "banner text placed at the top of the generated file")
	fs.StringVarP(&o.OutDir, "output-directory", "o", generator.DefaultOutDir, "directory to write generated sources")
	fs.StringSliceVarP(&f.sources, "source", "s", []string{}, "properties file(s) to read, in order (positional arguments are appended)")
}

// targets returns the flag target when a class or source was given on the
// command line, otherwise the targets of the manifest loaded by viper.
func (f *targetFlags) targets(args []string) ([]*generator.Options, error) {
	if f.options.ClassName != "" || len(f.sources) > 0 || len(args) > 0 {
		o := *f.options
		o.SourceFiles = append(append([]string(nil), f.sources...), args...)
		return []*generator.Options{&o}, nil
	}
	m, err := manifest.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return m.Targets, nil
}
