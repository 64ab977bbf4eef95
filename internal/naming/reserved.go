package naming

import (
	"go/token"

	"github.com/cmmoran/propkeygen/internal/model"
)

var javaReserved = []string{
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
	"class", "const", "continue", "default", "do", "double", "else", "enum",
	"extends", "final", "finally", "float", "for", "goto", "if", "implements",
	"import", "instanceof", "int", "interface", "long", "native", "new",
	"package", "private", "protected", "public", "return", "short", "static",
	"strictfp", "super", "switch", "synchronized", "this", "throw", "throws",
	"transient", "try", "void", "volatile", "while",
	"true", "false", "null",
	"_",
}

// ReservedWords returns the identifiers a generated name must not equal in
// lang. Comparison is case-sensitive.
func ReservedWords(lang model.Language) map[string]bool {
	out := map[string]bool{}
	switch lang {
	case model.LanguageGo:
		for tok := token.BREAK; tok <= token.VAR; tok++ {
			if tok.IsKeyword() {
				out[tok.String()] = true
			}
		}
		out["_"] = true
	default:
		for _, w := range javaReserved {
			out[w] = true
		}
	}
	return out
}
