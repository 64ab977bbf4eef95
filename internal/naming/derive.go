// Package naming derives constant identifiers from property keys.
package naming

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cmmoran/propkeygen/internal/model"
	"github.com/cmmoran/propkeygen/pkg/generr"
)

// Deriver converts raw keys into identifiers for one target language.
// A Deriver must not be shared between goroutines.
type Deriver struct {
	reserved map[string]bool
	upper    cases.Caser
}

// NewDeriver returns a Deriver that avoids the reserved words of lang.
func NewDeriver(lang model.Language) *Deriver {
	return &Deriver{
		reserved: ReservedWords(lang),
		upper:    cases.Upper(language.Und),
	}
}

// Derive maps key to its identifier. The key is split on '.', and every
// segment is converted with Segment; empty segments are rejected.
func (d *Deriver) Derive(key model.PropertyKey) (model.Identifier, error) {
	if key.Raw == "" {
		return model.Identifier{}, &generr.InvalidKeyError{
			File: key.File, Line: key.Line, Key: key.Raw, Message: "empty key",
		}
	}

	parts := strings.Split(key.Raw, ".")
	segments := make([]string, 0, len(parts))
	for i, part := range parts {
		seg := d.Segment(part)
		if seg == "" {
			return model.Identifier{}, &generr.InvalidKeyError{
				File:    key.File,
				Line:    key.Line,
				Key:     key.Raw,
				Message: "empty segment at position " + strconv.Itoa(i+1),
			}
		}
		segments = append(segments, seg)
	}

	return model.Identifier{
		Name:     strings.Join(segments, "_"),
		Segments: segments,
	}, nil
}

// Segment converts one dot-free piece of a key to SCREAMING_SNAKE_CASE:
// lower-to-upper transitions gain a '_', the result is uppercased, characters
// other than letters, digits and '_' become '_', a leading digit gains a '_'
// prefix, and a result equal to a reserved word gains a '_' suffix.
//
//	fooBar   -> FOO_BAR
//	bar-baz  -> BAR_BAZ
//	17       -> _17
//	-        -> __
func (d *Deriver) Segment(part string) string {
	if part == "" {
		return ""
	}

	var (
		split strings.Builder
		prev  rune
	)
	for i, r := range part {
		if i > 0 && unicode.IsLower(prev) && unicode.IsUpper(r) {
			split.WriteByte('_')
		}
		split.WriteRune(r)
		prev = r
	}

	// Case mapping may expand a letter into several runes, combining marks
	// included, so characters are checked after it.
	upper := d.upper.String(split.String())
	var b strings.Builder
	for _, r := range upper {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			r = '_'
		}
		b.WriteRune(r)
	}

	s := b.String()
	if first := []rune(s)[0]; unicode.IsDigit(first) {
		s = "_" + s
	}
	if d.reserved[s] {
		s += "_"
	}
	return s
}
