package naming

import (
	"math/rand"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/propkeygen/internal/model"
	"github.com/cmmoran/propkeygen/pkg/generr"
)

func TestSegment(t *testing.T) {
	d := NewDeriver(model.LanguageJava)
	tests := map[string]string{
		"h":           "H",
		"hello":       "HELLO",
		"Hello":       "HELLO",
		"HELLO":       "HELLO",
		"helloWorld":  "HELLO_WORLD",
		"HelloWorld":  "HELLO_WORLD",
		"fooBarBaz":   "FOO_BAR_BAZ",
		"hello_world": "HELLO_WORLD",
		"hello-world": "HELLO_WORLD",
		"bar-baz":     "BAR_BAZ",
		"HTTPServer":  "HTTPSERVER",
		"a b":         "A_B",
		"17":          "_17",
		"1st":         "_1ST",
		"v2Api":       "V2API",
		"café":        "CAFÉ",
		"straße":      "STRASSE",
		"ΐ":           "Ι__",
		"aΐb":         "AΙ__B",
		"-":           "__",
		"_":           "__",
		"$x":          "_X",
		"":            "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, d.Segment(in))
		})
	}
}

func TestDerive(t *testing.T) {
	d := NewDeriver(model.LanguageJava)
	tests := []struct {
		key      string
		name     string
		segments []string
	}{
		{key: "timeout", name: "TIMEOUT", segments: []string{"TIMEOUT"}},
		{key: "app.name", name: "APP_NAME", segments: []string{"APP", "NAME"}},
		{key: "foo.bar-baz", name: "FOO_BAR_BAZ", segments: []string{"FOO", "BAR_BAZ"}},
		{key: "fooBarBaz", name: "FOO_BAR_BAZ", segments: []string{"FOO_BAR_BAZ"}},
		{key: "abc.def.17", name: "ABC_DEF__17", segments: []string{"ABC", "DEF", "_17"}},
		{key: "a_b", name: "A_B", segments: []string{"A_B"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			id, err := d.Derive(model.PropertyKey{Raw: tt.key, File: "f.properties", Line: 1})
			require.NoError(t, err)
			assert.Equal(t, tt.name, id.Name)
			assert.Equal(t, tt.segments, id.Segments)
			assert.Equal(t, tt.segments[len(tt.segments)-1], id.Member())
			assert.Equal(t, len(tt.segments)-1, len(id.Path()))
		})
	}
}

func TestDeriveInvalid(t *testing.T) {
	d := NewDeriver(model.LanguageJava)
	for _, key := range []string{"", ".", "a.", ".a", "a..b"} {
		t.Run(key, func(t *testing.T) {
			_, err := d.Derive(model.PropertyKey{Raw: key, File: "f.properties", Line: 3})
			require.ErrorIs(t, err, generr.ErrInvalidKey)
			var kErr *generr.InvalidKeyError
			require.ErrorAs(t, err, &kErr)
			assert.Equal(t, key, kErr.Key)
			assert.Equal(t, 3, kErr.Line)
		})
	}
}

func TestReservedWords(t *testing.T) {
	java := ReservedWords(model.LanguageJava)
	assert.True(t, java["class"])
	assert.True(t, java["_"])
	assert.False(t, java["CLASS"])

	golang := ReservedWords(model.LanguageGo)
	assert.True(t, golang["func"])
	assert.True(t, golang["var"])
	assert.True(t, golang["_"])
	assert.False(t, golang["class"])
}

// Derived identifiers are legal, uppercase and stable for arbitrary input.
func TestDeriveRandomKeys(t *testing.T) {
	const alphabet = "abcXYZ019_-.$ éßΐŉ"
	rng := rand.New(rand.NewSource(42))
	d := NewDeriver(model.LanguageJava)
	other := NewDeriver(model.LanguageJava)

	for i := 0; i < 2000; i++ {
		n := 1 + rng.Intn(12)
		raw := make([]rune, n)
		letters := []rune(alphabet)
		for j := range raw {
			raw[j] = letters[rng.Intn(len(letters))]
		}
		key := model.PropertyKey{Raw: string(raw)}

		id, err := d.Derive(key)
		if err != nil {
			require.ErrorIs(t, err, generr.ErrInvalidKey)
			continue
		}
		again, err := other.Derive(key)
		require.NoError(t, err)
		require.Equal(t, id, again)

		for _, seg := range id.Segments {
			first := []rune(seg)[0]
			require.False(t, unicode.IsDigit(first), "segment %q of %q starts with a digit", seg, key.Raw)
			for _, r := range seg {
				require.True(t, unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_', "segment %q of %q", seg, key.Raw)
				require.False(t, unicode.IsLower(r), "segment %q of %q", seg, key.Raw)
			}
			require.NotEqual(t, "_", seg)
		}
	}
}
