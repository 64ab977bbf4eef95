// Package generr defines the failure kinds a generation run can report.
//
// Every kind is a struct carrying the file, line, raw key(s) and derived
// identifier needed to fix the input, and matches its sentinel via errors.Is.
package generr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, one per failure kind.
var (
	ErrMissingFile              = errors.New("propkeygen: missing properties file")
	ErrMalformedProperties      = errors.New("propkeygen: malformed properties file")
	ErrInvalidKey               = errors.New("propkeygen: invalid key")
	ErrIdentifierCollision      = errors.New("propkeygen: identifier collision")
	ErrNamespaceMemberCollision = errors.New("propkeygen: namespace/member collision")
	ErrEmptyInput               = errors.New("propkeygen: no property keys")
	ErrInvalidConfig            = errors.New("propkeygen: invalid configuration")
)

// location formats file and line as "file:line", or just "file" when the line
// is unknown.
func location(file string, line int) string {
	if line > 0 {
		return fmt.Sprintf("%s:%d", file, line)
	}
	return file
}

// MissingFileError is returned when a configured source file cannot be read.
type MissingFileError struct {
	File  string
	Cause error
}

func (e *MissingFileError) Error() string {
	msg := "propkeygen: cannot read properties file " + e.File
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *MissingFileError) Unwrap() error { return e.Cause }

func (e *MissingFileError) Is(target error) bool { return target == ErrMissingFile }

// MalformedPropertiesError reports syntactically invalid properties content.
type MalformedPropertiesError struct {
	File    string
	Line    int
	Message string
}

func (e *MalformedPropertiesError) Error() string {
	return fmt.Sprintf("propkeygen: %s: malformed properties: %s", location(e.File, e.Line), e.Message)
}

func (e *MalformedPropertiesError) Is(target error) bool { return target == ErrMalformedProperties }

// InvalidKeyError reports a key that cannot produce a usable identifier.
type InvalidKeyError struct {
	File    string
	Line    int
	Key     string
	Message string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("propkeygen: %s: invalid key %q: %s", location(e.File, e.Line), e.Key, e.Message)
}

func (e *InvalidKeyError) Is(target error) bool { return target == ErrInvalidKey }

// KeyRef identifies one key occurrence in an error report.
type KeyRef struct {
	Key  string
	File string
	Line int
}

func (r KeyRef) String() string {
	return fmt.Sprintf("%q (%s)", r.Key, location(r.File, r.Line))
}

// IdentifierCollisionError reports two keys that derive the same identifier
// within one namespace scope. First is always the earlier key in reading order.
type IdentifierCollisionError struct {
	Identifier string
	Scope      []string
	First      KeyRef
	Second     KeyRef
}

func (e *IdentifierCollisionError) Error() string {
	var b strings.Builder
	b.WriteString("propkeygen: keys ")
	b.WriteString(e.First.String())
	b.WriteString(" and ")
	b.WriteString(e.Second.String())
	b.WriteString(" both derive identifier ")
	b.WriteString(e.Identifier)
	if len(e.Scope) > 0 {
		b.WriteString(" in ")
		b.WriteString(strings.Join(e.Scope, "."))
	}
	if e.First.File == e.Second.File {
		b.WriteString(" within the same file")
	}
	return b.String()
}

func (e *IdentifierCollisionError) Is(target error) bool { return target == ErrIdentifierCollision }

// NamespaceMemberCollisionError reports a constant or nested class whose name
// clashes with a nested class beside it or with an enclosing class.
type NamespaceMemberCollisionError struct {
	Identifier string
	Scope      []string
	Key        KeyRef
	Message    string
}

func (e *NamespaceMemberCollisionError) Error() string {
	return fmt.Sprintf("propkeygen: key %s: identifier %s in %s %s",
		e.Key, e.Identifier, strings.Join(e.Scope, "."), e.Message)
}

func (e *NamespaceMemberCollisionError) Is(target error) bool {
	return target == ErrNamespaceMemberCollision
}

// EmptyInputError is returned when the source files hold no keys at all.
type EmptyInputError struct {
	Files []string
}

func (e *EmptyInputError) Error() string {
	return "propkeygen: no property keys found in " + strings.Join(e.Files, ", ")
}

func (e *EmptyInputError) Is(target error) bool { return target == ErrEmptyInput }

// ConfigError reports an unusable generation option.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("propkeygen: option %s=%v: %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("propkeygen: option %s: %s", e.Option, e.Message)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }
