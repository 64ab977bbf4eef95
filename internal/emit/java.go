package emit

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/cmmoran/propkeygen/internal/model"
)

const javaIndent = "    "

// Java renders a final, non-instantiable Java class per namespace node.
// Constants are always public static final; the class access follows the
// node.
type Java struct{}

func (j *Java) RelPath(u *Unit) string {
	dir := filepath.FromSlash(strings.ReplaceAll(u.Package, ".", "/"))
	return filepath.Join(dir, u.Root.Name+".java")
}

func (j *Java) Emit(u *Unit) ([]byte, error) {
	var b bytes.Buffer

	b.WriteString("//\n")
	for _, line := range strings.Split(u.header(), "\n") {
		if line == "" {
			b.WriteString("//\n")
			continue
		}
		b.WriteString("// " + line + "\n")
	}
	b.WriteString("//\n\n")

	if u.Package != "" {
		fmt.Fprintf(&b, "package %s;\n\n", u.Package)
	}

	b.WriteString("/**\n * Constants for property keys in:\n * <ul>\n")
	for _, name := range u.sourceNames() {
		fmt.Fprintf(&b, " *   <li>%s</li>\n", strings.ReplaceAll(name, "*/", "*&#47;"))
	}
	b.WriteString(" * </ul>\n */\n")
	b.WriteString("@SuppressWarnings(\"all\")\n")

	writeJavaClass(&b, u.Root, 0)
	return b.Bytes(), nil
}

func writeJavaClass(b *bytes.Buffer, n *model.NamespaceNode, depth int) {
	indent := strings.Repeat(javaIndent, depth)
	inner := indent + javaIndent

	modifier := ""
	if n.Access == model.AccessPublic {
		modifier = "public "
	}
	if depth > 0 {
		modifier += "static "
	}
	fmt.Fprintf(b, "%s%sfinal class %s {\n", indent, modifier, n.Name)

	if len(n.Members) > 0 {
		b.WriteString("\n")
		for _, m := range n.Members {
			fmt.Fprintf(b, "%spublic static final String %s = %s;\n", inner, m.Name, javaString(m.Key.Raw))
		}
	}
	for _, c := range n.Children {
		b.WriteString("\n")
		writeJavaClass(b, c, depth+1)
	}

	fmt.Fprintf(b, "\n%sprivate %s() { }\n%s}\n", inner, n.Name, indent)
}

// javaString quotes s as a Java string literal. Control and non-printable
// characters are written as \uXXXX escapes, using surrogate pairs outside
// the BMP.
func javaString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if unicode.IsPrint(r) {
				b.WriteRune(r)
				continue
			}
			for _, unit := range utf16.Encode([]rune{r}) {
				fmt.Fprintf(&b, `\u%04x`, unit)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
