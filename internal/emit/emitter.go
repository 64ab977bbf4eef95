// Package emit renders a namespace tree as source text.
package emit

import (
	"path/filepath"
	"sort"

	"github.com/cmmoran/propkeygen/internal/model"
)

// DefaultHeader is the banner placed at the top of every generated file.
const DefaultHeader = "DO NOT EDIT - File generated by propkeygen."

// Unit is everything an emitter needs to produce one file.
type Unit struct {
	Root        *model.NamespaceNode
	Package     string   // empty for the default package
	Header      string   // banner text, DefaultHeader when empty
	SourceFiles []string // properties files the keys came from
}

// Emitter renders a Unit in one target language.
type Emitter interface {
	// Emit returns the complete file content.
	Emit(u *Unit) ([]byte, error)
	// RelPath returns the output path relative to the output directory.
	RelPath(u *Unit) string
}

// For returns the emitter of lang.
func For(lang model.Language) Emitter {
	if lang == model.LanguageGo {
		return &Go{}
	}
	return &Java{}
}

func (u *Unit) header() string {
	if u.Header == "" {
		return DefaultHeader
	}
	return u.Header
}

// sourceNames returns the sorted base names of the source files.
func (u *Unit) sourceNames() []string {
	names := make([]string, 0, len(u.SourceFiles))
	for _, f := range u.SourceFiles {
		names = append(names, filepath.Base(f))
	}
	sort.Strings(names)
	return names
}
