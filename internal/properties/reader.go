// Package properties reads the keys of Java-style properties files.
package properties

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/cmmoran/propkeygen/internal/model"
	"github.com/cmmoran/propkeygen/pkg/generr"
)

// ReadFiles reads every file in order and returns their keys in first-seen
// order. Keys repeated across files are all returned; keys repeated inside
// one file are reported once, at their first line.
func ReadFiles(files []string) ([]model.PropertyKey, error) {
	var keys []model.PropertyKey
	for _, file := range files {
		fileKeys, err := ReadFile(file)
		if err != nil {
			return nil, err
		}
		keys = append(keys, fileKeys...)
	}
	return keys, nil
}

// ReadFile reads the keys of a single file.
func ReadFile(file string) ([]model.PropertyKey, error) {
	fi, err := os.Stat(file)
	if err != nil {
		return nil, &generr.MissingFileError{File: file, Cause: err}
	}
	if fi.IsDir() {
		return nil, &generr.MissingFileError{File: file, Cause: errors.New("is a directory")}
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, &generr.MissingFileError{File: file, Cause: err}
	}
	defer func() { _ = f.Close() }()

	keys, err := Parse(file, f)
	if err != nil {
		return nil, err
	}
	slog.Debug("read properties file", "file", file, "keys", len(keys))
	return keys, nil
}

// Parse reads keys from r, labelling them with name. Content is decoded as
// UTF-8, falling back to ISO-8859-1 when it is not valid UTF-8.
func Parse(name string, r io.Reader) ([]model.PropertyKey, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &generr.MissingFileError{File: name, Cause: err}
	}
	if !utf8.Valid(data) {
		if data, err = charmap.ISO8859_1.NewDecoder().Bytes(data); err != nil {
			return nil, &generr.MalformedPropertiesError{File: name, Message: err.Error()}
		}
	}

	var (
		keys = make([]model.PropertyKey, 0)
		seen = make(map[string]bool)
	)
	sc := &scanner{lines: splitLines(data)}
	for {
		line, lineNo, ok, err := sc.next()
		if err != nil {
			return nil, &generr.MalformedPropertiesError{File: name, Line: lineNo, Message: err.Error()}
		}
		if !ok {
			break
		}
		key, err := parseKey(line)
		if err != nil {
			return nil, &generr.MalformedPropertiesError{File: name, Line: lineNo, Message: err.Error()}
		}
		if seen[key] {
			slog.Debug("duplicate key in file, keeping first", "file", name, "line", lineNo, "key", key)
			continue
		}
		seen[key] = true
		keys = append(keys, model.PropertyKey{Raw: key, File: name, Line: lineNo})
	}
	return keys, nil
}

// splitLines splits on \n, \r and \r\n. Trailing line breaks do not start
// further lines, so a continuation at the end of the file stays unterminated.
func splitLines(data []byte) []string {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	data = bytes.TrimRight(data, "\n")
	if len(data) == 0 {
		return nil
	}
	return strings.Split(string(data), "\n")
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f'
}

// scanner joins natural lines into logical lines.
type scanner struct {
	lines []string
	pos   int
}

// next returns the next logical line that is neither blank nor a comment,
// with leading whitespace removed and continuations joined.
func (s *scanner) next() (string, int, bool, error) {
	for s.pos < len(s.lines) {
		start := s.pos
		line := strings.TrimLeftFunc(s.lines[s.pos], isBlank)
		s.pos++
		if line == "" || line[0] == '#' || line[0] == '!' {
			continue
		}

		var b strings.Builder
		for continues(line) {
			b.WriteString(line[:len(line)-1])
			if s.pos >= len(s.lines) {
				return "", start + 1, false, errors.New("unterminated line continuation")
			}
			line = strings.TrimLeftFunc(s.lines[s.pos], isBlank)
			s.pos++
		}
		b.WriteString(line)
		return b.String(), start + 1, true, nil
	}
	return "", 0, false, nil
}

// continues reports whether line ends in an odd number of backslashes.
func continues(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// parseKey extracts and unescapes the key of a logical line. The key ends at
// the first unescaped '=', ':' or whitespace.
func parseKey(line string) (string, error) {
	var units []uint16
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '=' || r == ':' || isBlank(r) {
			break
		}
		if r != '\\' {
			units = utf16.AppendRune(units, r)
			continue
		}
		i++
		if i >= len(runes) {
			break
		}
		switch c := runes[i]; c {
		case 't':
			units = append(units, '\t')
		case 'n':
			units = append(units, '\n')
		case 'r':
			units = append(units, '\r')
		case 'f':
			units = append(units, '\f')
		case 'u':
			if i+4 >= len(runes) {
				return "", errors.New("malformed \\uxxxx escape in key")
			}
			var v uint16
			for _, h := range runes[i+1 : i+5] {
				d, ok := hexValue(h)
				if !ok {
					return "", errors.New("malformed \\uxxxx escape in key")
				}
				v = v<<4 | uint16(d)
			}
			units = append(units, v)
			i += 4
		default:
			units = utf16.AppendRune(units, c)
		}
	}
	return string(utf16.Decode(units)), nil
}

func hexValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}
