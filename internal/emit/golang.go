package emit

import (
	"bytes"
	"go/token"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/cmmoran/propkeygen/internal/model"
)

// Go renders the tree as a package-level variable whose struct type mirrors
// the namespace nesting: Constants.APP.NAME == "app.name". The variable is
// exported for public access and unexported for package access.
type Go struct{}

func (g *Go) RelPath(u *Unit) string {
	return snakeCase(u.Root.Name) + "_gen.go"
}

func (g *Go) Emit(u *Unit) ([]byte, error) {
	pkg := u.Package
	if pkg == "" {
		pkg = "constants"
	}

	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by propkeygen. DO NOT EDIT.")
	if u.Header != "" {
		for _, line := range strings.Split(u.Header, "\n") {
			f.HeaderComment(line)
		}
	}

	typeNames := goTypeNames(u.Root)
	varName := goVarName(u.Root)

	f.Comment(varName + " holds the property keys of:")
	for _, name := range u.sourceNames() {
		f.Comment("  - " + name)
	}
	f.Var().Id(varName).Op("=").Id(typeNames[u.Root]).Values(goValues(u.Root, typeNames))

	u.Root.Walk(func(n *model.NamespaceNode) {
		fields := make([]jen.Code, 0, len(n.Members)+len(n.Children))
		for _, m := range n.Members {
			fields = append(fields, jen.Id(m.Name).String())
		}
		for _, c := range n.Children {
			fields = append(fields, jen.Id(c.Name).Id(typeNames[c]))
		}
		f.Line()
		f.Type().Id(typeNames[n]).Struct(fields...)
	})

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, errors.Wrap(err, "render go source")
	}
	out, err := imports.Process(g.RelPath(u), buf.Bytes(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "format go source")
	}
	return out, nil
}

// goValues builds the composite literal of n. jen.Dict orders its entries,
// so the output is stable.
func goValues(n *model.NamespaceNode, typeNames map[*model.NamespaceNode]string) jen.Dict {
	d := jen.Dict{}
	for _, m := range n.Members {
		d[jen.Id(m.Name)] = jen.Lit(m.Key.Raw)
	}
	for _, c := range n.Children {
		d[jen.Id(c.Name)] = jen.Id(typeNames[c]).Values(goValues(c, typeNames))
	}
	return d
}

// goTypeNames numbers nested struct types in walk order after the root type.
func goTypeNames(root *model.NamespaceNode) map[*model.NamespaceNode]string {
	base := lowerFirst(root.Name) + "Keys"
	names := make(map[*model.NamespaceNode]string)
	i := 0
	root.Walk(func(n *model.NamespaceNode) {
		if i == 0 {
			names[n] = base
		} else {
			names[n] = base + strconv.Itoa(i)
		}
		i++
	})
	return names
}

func goVarName(root *model.NamespaceNode) string {
	name := lowerFirst(root.Name)
	if root.Access == model.AccessPublic {
		name = upperFirst(root.Name)
	}
	if token.IsKeyword(name) {
		name += "_"
	}
	return name
}

func upperFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// snakeCase converts a class name to a file name stem:
// PropertyKeys -> property_keys.
func snakeCase(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return b.String()
}
