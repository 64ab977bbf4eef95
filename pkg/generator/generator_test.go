package generator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/propkeygen/pkg/generr"
)

const (
	inDir  = "testdata/fixtures"
	outDir = "testdata/expectations"
)

func fixtures(names ...string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, filepath.Join(inDir, n))
	}
	return out
}

func TestGenerate(ttt *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{
			name: "nested-public",
			opts: []Option{WithSourceLayout(LayoutNested), WithSourceAccess(AccessPublic)},
		},
		{
			name: "nested-package",
			opts: []Option{WithSourceLayout(LayoutNested), WithSourceAccess(AccessPackage)},
		},
		{
			name: "flat-with-prefix-public",
			opts: []Option{WithSourceLayout(LayoutFlatWithPrefix)},
		},
		{
			name: "flat-without-prefix-package",
			opts: []Option{WithSourceLayout(LayoutFlatWithoutPrefix), WithSourceAccess(AccessPackage)},
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			opts := append([]Option{
				WithClassName("org.example.Constants"),
				WithSourceFiles(fixtures("app.properties", "messages.properties")...),
				WithOutDir(dir),
			}, tt.opts...)

			g, err := New(opts...)
			require.NoError(t, err)
			got, err := g.Generate()
			require.NoError(t, err)

			expected, err := os.ReadFile(filepath.Join(outDir, tt.name+".java"))
			require.NoError(t, err)
			diff := cmp.Diff(string(expected), string(got.Source))
			require.EqualValuesf(t, string(expected), string(got.Source), "Generate() diff (-want +got):\n%s", diff)

			assert.Equal(t, filepath.Join(dir, "org", "example", "Constants.java"), got.Path)
			assert.Equal(t, got.Path, g.OutputPath())
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	opts := []Option{
		WithClassName("org.example.Constants"),
		WithSourceFiles(fixtures("app.properties", "messages.properties")...),
		WithOutDir(t.TempDir()),
	}
	for _, lang := range []Language{LanguageJava, LanguageGo} {
		first, err := New(append(opts, WithLanguage(lang))...)
		require.NoError(t, err)
		second, err := New(append(opts, WithLanguage(lang))...)
		require.NoError(t, err)

		a, err := first.Generate()
		require.NoError(t, err)
		b, err := second.Generate()
		require.NoError(t, err)
		assert.Equal(t, a.Source, b.Source, "language %s", lang)
	}
}

func TestGenerateEntriesKeepRawKeys(t *testing.T) {
	g, err := New(WithClassName("Keys"), WithSourceFiles("unused.properties"))
	require.NoError(t, err)
	res, err := g.Render(Source{Name: "in.properties", Content: []byte("foo.bar-baz=1\nfooBarBaz=2\nx\\:y=3\n")})
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Key: "fooBarBaz", File: "in.properties", Line: 2, Scope: "Keys", Identifier: "FOO_BAR_BAZ"},
		{Key: "x:y", File: "in.properties", Line: 3, Scope: "Keys", Identifier: "X_Y"},
		{Key: "foo.bar-baz", File: "in.properties", Line: 1, Scope: "Keys.FOO", Identifier: "BAR_BAZ"},
	}, res.Entries)
	assert.Contains(t, string(res.Source), `public static final String BAR_BAZ = "foo.bar-baz";`)
	assert.Contains(t, string(res.Source), `public static final String X_Y = "x:y";`)

	g, err = New(WithClassName("Keys"), WithSourceFiles("unused.properties"), WithSourceLayout(LayoutFlatWithPrefix))
	require.NoError(t, err)
	res, err = g.Render(Source{Name: "in.properties", Content: []byte("foo.bar-baz=1\n")})
	require.NoError(t, err)
	assert.Contains(t, string(res.Source), `public static final String FOO_BAR_BAZ = "foo.bar-baz";`)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		want  error
		hints int
	}{
		{
			name: "missing file",
			opts: []Option{WithSourceFiles(fixtures("nope.properties")...)},
			want: generr.ErrMissingFile,
		},
		{
			name:  "same key in two files",
			opts:  []Option{WithSourceFiles(fixtures("app.properties", "app-copy.properties")...)},
			want:  generr.ErrIdentifierCollision,
			hints: 2,
		},
		{
			name:  "same key twice in one file list entry",
			opts:  []Option{WithSourceFiles(fixtures("app.properties", "app.properties")...)},
			want:  generr.ErrIdentifierCollision,
			hints: 1,
		},
		{
			name: "flat without prefix clash",
			opts: []Option{
				WithSourceFiles(fixtures("app.properties", "other.properties")...),
				WithSourceLayout(LayoutFlatWithoutPrefix),
				WithCollisionPolicy(PolicyLastWins),
			},
			want:  generr.ErrIdentifierCollision,
			hints: 2,
		},
		{
			name:  "empty input",
			opts:  []Option{WithSourceFiles(fixtures("empty.properties")...)},
			want:  generr.ErrEmptyInput,
			hints: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(append([]Option{WithClassName("Constants"), WithOutDir(t.TempDir())}, tt.opts...)...)
			require.NoError(t, err)
			_, err = g.Generate()
			require.ErrorIs(t, err, tt.want)
			assert.Len(t, errors.GetAllHints(err), tt.hints)
		})
	}
}

func TestGenerateGoAcceptsCaseExpandingKeys(t *testing.T) {
	g, err := New(WithClassName("Keys"), WithLanguage(LanguageGo), WithSourceFiles("unused.properties"))
	require.NoError(t, err)
	res, err := g.Render(Source{Name: "in.properties", Content: []byte("\u0390=1\nstra\u00dfe=2\n")})
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "\u0399__", res.Entries[0].Identifier)
	assert.Equal(t, "STRASSE", res.Entries[1].Identifier)
	assert.Contains(t, string(res.Source), "\"\u0390\"")
}

func TestGenerateAllowEmpty(t *testing.T) {
	g, err := New(WithClassName("p.Empty"), WithSourceFiles(fixtures("empty.properties")...), WithAllowEmpty())
	require.NoError(t, err)
	res, err := g.Generate()
	require.NoError(t, err)
	assert.Empty(t, res.Entries)
	assert.Contains(t, string(res.Source), "public final class Empty {\n\n    private Empty() { }\n}\n")
}

func TestGenerateGo(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keys")
	g, err := New(
		WithClassName("Constants"),
		WithLanguage(LanguageGo),
		WithSourceFiles(fixtures("app.properties")...),
		WithOutDir(dir),
	)
	require.NoError(t, err)
	res, err := g.Generate()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "constants_gen.go"), res.Path)
	assert.Contains(t, string(res.Source), "package keys\n")
	assert.Contains(t, string(res.Source), "var Constants = constantsKeys{")

	g, err = New(
		WithClassName("Constants"),
		WithPackageName("github.com/example/app/propkeys"),
		WithLanguage(LanguageGo),
		WithSourceAccess(AccessPackage),
		WithSourceFiles(fixtures("app.properties")...),
	)
	require.NoError(t, err)
	res, err = g.Generate()
	require.NoError(t, err)
	assert.Contains(t, string(res.Source), "package propkeys\n")
	assert.Contains(t, string(res.Source), "var constants = constantsKeys{")
}

func TestResultWrite(t *testing.T) {
	dir := t.TempDir()
	g, err := New(
		WithClassName("org.example.Constants"),
		WithSourceFiles(fixtures("app.properties")...),
		WithOutDir(dir),
	)
	require.NoError(t, err)
	res, err := g.Generate()
	require.NoError(t, err)

	written, err := res.Write()
	require.NoError(t, err)
	assert.True(t, written)
	onDisk, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, res.Source, onDisk)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(res.Path, old, old))

	again, err := g.Generate()
	require.NoError(t, err)
	written, err = again.Write()
	require.NoError(t, err)
	assert.False(t, written)
	fi, err := os.Stat(res.Path)
	require.NoError(t, err)
	assert.True(t, fi.ModTime().Equal(old), "unchanged output must not be rewritten")

	entries, err := os.ReadDir(filepath.Dir(res.Path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestResultWriteReplacesChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Out.java")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	written, err := (&Result{Path: path, Source: []byte("fresh")}).Write()
	require.NoError(t, err)
	assert.True(t, written)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(got))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
		check   func(t *testing.T, o *Options)
	}{
		{
			name: "qualified class name",
			opts: Options{ClassName: "org.cthing.test.Constants", SourceFiles: []string{"a.properties"}},
			check: func(t *testing.T, o *Options) {
				assert.Equal(t, "Constants", o.ClassName)
				assert.Equal(t, "org.cthing.test", o.PackageName)
				assert.Equal(t, LayoutNested, o.SourceLayout)
				assert.Equal(t, AccessPublic, o.SourceAccess)
				assert.Equal(t, LanguageJava, o.Language)
				assert.Equal(t, PolicyFail, o.CollisionPolicy)
				wantOut, err := filepath.Abs(DefaultOutDir)
				require.NoError(t, err)
				assert.Equal(t, wantOut, o.OutDir)
				assert.True(t, filepath.IsAbs(o.SourceFiles[0]))
			},
		},
		{
			name: "explicit package wins",
			opts: Options{ClassName: "a.Keys", PackageName: "b.c", SourceFiles: []string{"a.properties"}},
			check: func(t *testing.T, o *Options) {
				assert.Equal(t, "b.c", o.PackageName)
				assert.Equal(t, "Keys", o.ClassName)
			},
		},
		{
			name: "relative output directory",
			opts: Options{ClassName: "K", OutDir: "out/../gen", SourceFiles: []string{"a.properties"}},
			check: func(t *testing.T, o *Options) {
				assert.True(t, filepath.IsAbs(o.OutDir))
				assert.Equal(t, "gen", filepath.Base(o.OutDir))
			},
		},
		{name: "reserved package part", opts: Options{ClassName: "org.class.Keys", SourceFiles: []string{"a.properties"}}, wantErr: true},
		{name: "reserved explicit package", opts: Options{ClassName: "K", PackageName: "org.enum", SourceFiles: []string{"a.properties"}}, wantErr: true},
		{name: "missing class", opts: Options{SourceFiles: []string{"a.properties"}}, wantErr: true},
		{name: "illegal class", opts: Options{ClassName: "1Bad", SourceFiles: []string{"a.properties"}}, wantErr: true},
		{name: "reserved class", opts: Options{ClassName: "class", SourceFiles: []string{"a.properties"}}, wantErr: true},
		{name: "illegal package", opts: Options{ClassName: "K", PackageName: "a.1b", SourceFiles: []string{"a.properties"}}, wantErr: true},
		{name: "no sources", opts: Options{ClassName: "K"}, wantErr: true},
		{name: "bad layout", opts: Options{ClassName: "K", SourceLayout: "sideways", SourceFiles: []string{"a"}}, wantErr: true},
		{name: "bad access", opts: Options{ClassName: "K", SourceAccess: "private", SourceFiles: []string{"a"}}, wantErr: true},
		{name: "bad language", opts: Options{ClassName: "K", Language: "cobol", SourceFiles: []string{"a"}}, wantErr: true},
		{name: "bad policy", opts: Options{ClassName: "K", CollisionPolicy: "first_wins", SourceFiles: []string{"a"}}, wantErr: true},
		{
			name:    "bad go import path",
			opts:    Options{ClassName: "K", Language: LanguageGo, PackageName: "github.com/x/my-keys", SourceFiles: []string{"a"}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.opts
			err := o.Normalize()
			if tt.wantErr {
				require.ErrorIs(t, err, generr.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			tt.check(t, &o)
			require.NoError(t, o.Normalize(), "normalize is idempotent")
		})
	}
}
