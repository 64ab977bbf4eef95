// Package layout arranges derived identifiers into a tree of classes.
package layout

import (
	"log/slog"

	"github.com/cmmoran/propkeygen/internal/model"
	"github.com/cmmoran/propkeygen/internal/naming"
	"github.com/cmmoran/propkeygen/pkg/generr"
)

// Config is the subset of generation options the organizer needs.
type Config struct {
	ClassName  string
	Layout     model.SourceLayout
	Access     model.SourceAccess
	Language   model.Language
	Policy     model.CollisionPolicy
	AllowEmpty bool
	Files      []string // reported by EmptyInputError
}

// Organizer builds the namespace tree for one generation run.
type Organizer struct {
	cfg     Config
	deriver *naming.Deriver
	root    *model.NamespaceNode
}

// New returns an Organizer with an empty root class.
func New(cfg Config) *Organizer {
	return &Organizer{
		cfg:     cfg,
		deriver: naming.NewDeriver(cfg.Language),
		root:    model.NewRoot(cfg.ClassName, cfg.Access),
	}
}

// Organize derives and places every key in reading order and returns the
// root of the finished tree. The first failing key, in reading order, is the
// one reported.
func Organize(cfg Config, keys []model.PropertyKey) (*model.NamespaceNode, error) {
	o := New(cfg)
	for _, key := range keys {
		if err := o.Add(key); err != nil {
			return nil, err
		}
	}
	return o.Root()
}

// Add derives the identifier for key and places it in the tree.
func (o *Organizer) Add(key model.PropertyKey) error {
	id, err := o.deriver.Derive(key)
	if err != nil {
		return err
	}

	var (
		scope = o.root
		name  string
	)
	switch o.cfg.Layout {
	case model.LayoutFlatWithPrefix:
		name = id.Name
	case model.LayoutFlatWithoutPrefix:
		name = id.Member()
	default:
		for _, seg := range id.Path() {
			if scope, err = o.enter(scope, seg, key); err != nil {
				return err
			}
		}
		name = id.Member()
	}

	return o.place(scope, &model.Member{Name: name, Identifier: id, Key: key})
}

// Root returns the tree, or EmptyInputError when nothing was added and empty
// output is not allowed.
func (o *Organizer) Root() (*model.NamespaceNode, error) {
	if o.root.CountMembers() == 0 && !o.cfg.AllowEmpty {
		return nil, &generr.EmptyInputError{Files: o.cfg.Files}
	}
	slog.Debug("organized keys",
		"class", o.cfg.ClassName,
		"layout", o.cfg.Layout,
		"constants", o.root.CountMembers())
	return o.root, nil
}

// enter returns the nested class seg below scope, creating it if needed.
func (o *Organizer) enter(scope *model.NamespaceNode, seg string, key model.PropertyKey) (*model.NamespaceNode, error) {
	if child := scope.Child(seg); child != nil {
		return child, nil
	}
	if err := checkNamespace(scope, seg, key); err != nil {
		return nil, err
	}
	return scope.AddChild(seg), nil
}
