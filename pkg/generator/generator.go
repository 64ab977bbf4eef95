// Package generator turns properties files into a source file of key
// constants.
//
// A run reads the configured files, derives one identifier per key, arranges
// the identifiers in the selected layout and renders the result. Runs hold no
// shared state, so separate Generators may be used concurrently as long as
// they write to different paths.
package generator

import (
	"bytes"
	"log/slog"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/propkeygen/internal/emit"
	"github.com/cmmoran/propkeygen/internal/layout"
	"github.com/cmmoran/propkeygen/internal/model"
	"github.com/cmmoran/propkeygen/internal/properties"
	"github.com/cmmoran/propkeygen/pkg/generr"
)

// Generator produces the file described by Opts.
type Generator struct {
	Opts Options
}

// Source is the content of one properties file, named as it should appear
// in error reports and the generated header.
type Source struct {
	Name    string
	Content []byte
}

// Entry describes one generated constant.
type Entry struct {
	Key        string
	File       string
	Line       int
	Scope      string // qualified enclosing class, e.g. Constants.APP
	Identifier string // constant name inside Scope
}

// Result is the rendered output of one run.
type Result struct {
	Path    string // output file path
	Source  []byte
	Entries []Entry // in declaration order
}

// New builds a Generator from functional options.
func New(opts ...Option) (*Generator, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(o)
}

// NewWithOpts normalizes opts and builds a Generator from a copy of them.
func NewWithOpts(opts *Options) (*Generator, error) {
	o := *opts
	o.SourceFiles = append([]string(nil), opts.SourceFiles...)
	if err := o.Normalize(); err != nil {
		return nil, err
	}
	return &Generator{Opts: o}, nil
}

// Generate reads the configured source files and renders the output. Nothing
// is written.
func (g *Generator) Generate() (*Result, error) {
	keys, err := properties.ReadFiles(g.Opts.SourceFiles)
	if err != nil {
		return nil, err
	}
	return g.build(keys, g.Opts.SourceFiles)
}

// Render is Generate over in-memory content instead of the configured files.
func (g *Generator) Render(sources ...Source) (*Result, error) {
	var (
		keys  []model.PropertyKey
		names = make([]string, 0, len(sources))
	)
	for _, src := range sources {
		fileKeys, err := properties.Parse(src.Name, bytes.NewReader(src.Content))
		if err != nil {
			return nil, err
		}
		keys = append(keys, fileKeys...)
		names = append(names, src.Name)
	}
	return g.build(keys, names)
}

// OutputPath is where the file for these options is written.
func (g *Generator) OutputPath() string {
	return filepath.Join(g.Opts.OutDir, emit.For(g.Opts.Language).RelPath(g.unit(nil, nil)))
}

func (g *Generator) unit(root *model.NamespaceNode, files []string) *emit.Unit {
	if root == nil {
		root = model.NewRoot(g.Opts.ClassName, g.Opts.SourceAccess)
	}
	pkg := g.Opts.PackageName
	if g.Opts.Language == LanguageGo {
		pkg = g.Opts.goPackage()
	}
	return &emit.Unit{
		Root:        root,
		Package:     pkg,
		Header:      g.Opts.Header,
		SourceFiles: files,
	}
}

func (g *Generator) build(keys []model.PropertyKey, files []string) (*Result, error) {
	root, err := layout.Organize(layout.Config{
		ClassName:  g.Opts.ClassName,
		Layout:     g.Opts.SourceLayout,
		Access:     g.Opts.SourceAccess,
		Language:   g.Opts.Language,
		Policy:     g.Opts.CollisionPolicy,
		AllowEmpty: g.Opts.AllowEmpty,
		Files:      files,
	}, keys)
	if err != nil {
		return nil, g.withHint(err)
	}

	emitter := emit.For(g.Opts.Language)
	u := g.unit(root, files)
	src, err := emitter.Emit(u)
	if err != nil {
		return nil, errors.Wrapf(err, "emit %s", g.Opts.ClassName)
	}

	res := &Result{
		Path:    filepath.Join(g.Opts.OutDir, emitter.RelPath(u)),
		Source:  src,
		Entries: entries(root),
	}
	slog.Debug("rendered constants",
		"class", g.Opts.ClassName,
		"language", g.Opts.Language,
		"keys", len(keys),
		"constants", len(res.Entries),
		"path", res.Path)
	return res, nil
}

func (g *Generator) withHint(err error) error {
	var (
		collision *generr.IdentifierCollisionError
		clash     *generr.NamespaceMemberCollisionError
	)
	switch {
	case errors.As(err, &collision):
		if collision.First.File != collision.Second.File && g.Opts.CollisionPolicy == PolicyFail {
			err = errors.WithHint(err, "set collision_policy to last_wins to let the later file win")
		}
		if g.Opts.SourceLayout == LayoutFlatWithoutPrefix {
			err = errors.WithHint(err, "the nested and flat_with_prefix layouts keep the key prefix in the name")
		}
		return errors.WithHint(err, "rename one of the keys")
	case errors.As(err, &clash):
		return errors.WithHint(err, "rename the key or use a flat layout")
	case errors.Is(err, generr.ErrEmptyInput):
		return errors.WithHint(err, "add keys to the properties files or set allow_empty")
	}
	return err
}

func entries(root *model.NamespaceNode) []Entry {
	out := make([]Entry, 0, root.CountMembers())
	root.Walk(func(n *model.NamespaceNode) {
		scope := n.QualifiedName()
		for _, m := range n.Members {
			out = append(out, Entry{
				Key:        m.Key.Raw,
				File:       m.Key.File,
				Line:       m.Key.Line,
				Scope:      scope,
				Identifier: m.Name,
			})
		}
	})
	return out
}
