package generator

import (
	"fmt"
	"go/token"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/module"

	"github.com/cmmoran/propkeygen/internal/model"
	"github.com/cmmoran/propkeygen/internal/naming"
	"github.com/cmmoran/propkeygen/pkg/generr"
)

type (
	SourceLayout    = model.SourceLayout
	SourceAccess    = model.SourceAccess
	Language        = model.Language
	CollisionPolicy = model.CollisionPolicy
)

const (
	LayoutNested            = model.LayoutNested
	LayoutFlatWithPrefix    = model.LayoutFlatWithPrefix
	LayoutFlatWithoutPrefix = model.LayoutFlatWithoutPrefix

	AccessPublic  = model.AccessPublic
	AccessPackage = model.AccessPackage

	LanguageJava = model.LanguageJava
	LanguageGo   = model.LanguageGo

	PolicyFail     = model.PolicyFail
	PolicyLastWins = model.PolicyLastWins
)

// DefaultOutDir is where generated files go when no output directory is set.
const DefaultOutDir = "generated-src/propkeygen"

// Options describe one generated file.
//
// ClassName       – name of the generated class; may be fully qualified (org.example.Keys).
// PackageName     – package of the class; taken from ClassName when empty. For the
// go language this is a package name or an import path.
// SourceLayout    – nested, flat_with_prefix or flat_without_prefix (default nested).
// SourceAccess    – public or package (default public).
// Language        – java or go (default java).
// CollisionPolicy – fail or last_wins for keys from different files (default fail).
// AllowEmpty      – emit an empty class instead of failing when no keys are found.
// Header          – banner text replacing the default "DO NOT EDIT" line.
// SourceFiles     – properties files, read in order.
// OutDir          – output root directory.
type Options struct {
	ClassName       string          `json:"class_name,omitempty" yaml:"class_name,omitempty" toml:"class_name,omitempty" mapstructure:"class_name,omitempty"`
	PackageName     string          `json:"package_name,omitempty" yaml:"package_name,omitempty" toml:"package_name,omitempty" mapstructure:"package_name,omitempty"`
	SourceLayout    SourceLayout    `json:"source_layout,omitempty" yaml:"source_layout,omitempty" toml:"source_layout,omitempty" mapstructure:"source_layout,omitempty"`
	SourceAccess    SourceAccess    `json:"source_access,omitempty" yaml:"source_access,omitempty" toml:"source_access,omitempty" mapstructure:"source_access,omitempty"`
	Language        Language        `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty" mapstructure:"language,omitempty"`
	CollisionPolicy CollisionPolicy `json:"collision_policy,omitempty" yaml:"collision_policy,omitempty" toml:"collision_policy,omitempty" mapstructure:"collision_policy,omitempty"`
	AllowEmpty      bool            `json:"allow_empty,omitempty" yaml:"allow_empty,omitempty" toml:"allow_empty,omitempty" mapstructure:"allow_empty,omitempty"`
	Header          string          `json:"header,omitempty" yaml:"header,omitempty" toml:"header,omitempty" mapstructure:"header,omitempty"`
	SourceFiles     []string        `json:"source_files,omitempty" yaml:"source_files,omitempty" toml:"source_files,omitempty" mapstructure:"source_files,omitempty"`
	OutDir          string          `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		SourceLayout:    LayoutNested,
		SourceAccess:    AccessPublic,
		Language:        LanguageJava,
		CollisionPolicy: PolicyFail,
		OutDir:          DefaultOutDir,
	}
}

// Normalize fills defaults, splits a qualified ClassName, resolves source
// files and OutDir to absolute paths and validates everything. It is idempotent.
func (o *Options) Normalize() error {
	if o.SourceLayout == "" {
		o.SourceLayout = LayoutNested
	}
	if o.SourceAccess == "" {
		o.SourceAccess = AccessPublic
	}
	if o.Language == "" {
		o.Language = LanguageJava
	}
	if o.CollisionPolicy == "" {
		o.CollisionPolicy = PolicyFail
	}
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}

	if err := checkEnum("source_layout", o.SourceLayout, model.Layouts); err != nil {
		return err
	}
	if err := checkEnum("source_access", o.SourceAccess, model.Accesses); err != nil {
		return err
	}
	if err := checkEnum("language", o.Language, model.Languages); err != nil {
		return err
	}
	if err := checkEnum("collision_policy", o.CollisionPolicy, model.Policies); err != nil {
		return err
	}

	o.ClassName = strings.TrimSpace(o.ClassName)
	if o.ClassName == "" {
		return &generr.ConfigError{Option: "class_name", Message: "is required"}
	}
	if pos := strings.LastIndex(o.ClassName, "."); pos != -1 {
		if o.PackageName == "" {
			o.PackageName = o.ClassName[:pos]
		}
		o.ClassName = o.ClassName[pos+1:]
	}
	if !token.IsIdentifier(o.ClassName) || naming.ReservedWords(o.Language)[o.ClassName] {
		return &generr.ConfigError{Option: "class_name", Value: o.ClassName, Message: "is not a legal identifier"}
	}

	if err := o.checkPackage(); err != nil {
		return err
	}

	outDir, err := filepath.Abs(o.OutDir)
	if err != nil {
		return &generr.ConfigError{Option: "out_dir", Value: o.OutDir, Message: err.Error()}
	}
	o.OutDir = outDir

	if len(o.SourceFiles) == 0 {
		return &generr.ConfigError{Option: "source_files", Message: "at least one properties file is required"}
	}
	for i, f := range o.SourceFiles {
		abs, err := filepath.Abs(f)
		if err != nil {
			return &generr.ConfigError{Option: "source_files", Value: f, Message: err.Error()}
		}
		o.SourceFiles[i] = abs
	}
	return nil
}

func (o *Options) checkPackage() error {
	if o.PackageName == "" {
		return nil
	}
	if o.Language == LanguageGo {
		if err := module.CheckImportPath(o.PackageName); err != nil {
			return &generr.ConfigError{Option: "package_name", Value: o.PackageName, Message: err.Error()}
		}
		if !token.IsIdentifier(path.Base(o.PackageName)) {
			return &generr.ConfigError{Option: "package_name", Value: o.PackageName, Message: "last path element is not a legal package name"}
		}
		return nil
	}
	reserved := naming.ReservedWords(o.Language)
	for _, part := range strings.Split(o.PackageName, ".") {
		if !token.IsIdentifier(part) || reserved[part] {
			return &generr.ConfigError{Option: "package_name", Value: o.PackageName, Message: "is not a legal package name"}
		}
	}
	return nil
}

// goPackage is the package clause name used by the go language.
func (o *Options) goPackage() string {
	if o.PackageName != "" {
		return path.Base(o.PackageName)
	}
	if base := filepath.Base(o.OutDir); token.IsIdentifier(base) {
		return base
	}
	return "constants"
}

func checkEnum[T ~string](option string, v T, allowed []T) error {
	if slices.Contains(allowed, v) {
		return nil
	}
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		names = append(names, string(a))
	}
	return &generr.ConfigError{
		Option:  option,
		Value:   v,
		Message: fmt.Sprintf("must be one of %s", strings.Join(names, ", ")),
	}
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithClassName(n string) Option          { return func(o *Options) { o.ClassName = n } }
func WithPackageName(p string) Option        { return func(o *Options) { o.PackageName = p } }
func WithSourceLayout(l SourceLayout) Option { return func(o *Options) { o.SourceLayout = l } }
func WithSourceAccess(a SourceAccess) Option { return func(o *Options) { o.SourceAccess = a } }
func WithLanguage(l Language) Option         { return func(o *Options) { o.Language = l } }
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(o *Options) { o.CollisionPolicy = p }
}
func WithAllowEmpty() Option     { return func(o *Options) { o.AllowEmpty = true } }
func WithHeader(h string) Option { return func(o *Options) { o.Header = h } }
func WithOutDir(d string) Option { return func(o *Options) { o.OutDir = d } }
func WithSourceFiles(files ...string) Option {
	return func(o *Options) {
		for _, f := range files {
			o.SourceFiles = append(o.SourceFiles, strings.TrimSpace(f))
		}
	}
}
