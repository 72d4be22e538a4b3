package interpreter

import (
	"fmt"
	"maps"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

const defKeyword = "def"

// load appends a block of source lines to the line table and registers the
// functions it defines. A block with a bad definition is rejected whole.
func (i *Interpreter) load(lines []string) error {
	base := len(i.lines)
	found := make(map[string]int)

	for n, line := range lines {
		if !isFunctionDef(line) {
			continue
		}

		idx := base + n
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return fmt.Errorf("%w: %q at line %d has no function name", ErrMalformedStatement, line, idx)
		}

		name := fields[1]
		if !i.redefine {
			if prev, ok := i.funcs[name]; ok {
				return fmt.Errorf("%w: %q at line %d, first defined at line %d", ErrDuplicateName, name, idx, prev)
			}
			if prev, ok := found[name]; ok {
				return fmt.Errorf("%w: %q at line %d, first defined at line %d", ErrDuplicateName, name, idx, prev)
			}
		}
		found[name] = idx
	}

	i.lines = append(i.lines, lines...)
	maps.Copy(i.funcs, found)

	log.Debug("Loaded code block", "lines", len(lines), "functions", len(found), "total", len(i.lines))
	return nil
}

// splitLines breaks a submitted code block into lines, dropping CR from CRLF endings
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for n, line := range lines {
		lines[n] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// isBlockLine reports whether line belongs to a function body (starts with whitespace)
func isBlockLine(line string) bool {
	r, size := utf8.DecodeRuneInString(line)
	return size > 0 && unicode.IsSpace(r)
}

// isFunctionDef reports whether line opens a function definition
func isFunctionDef(line string) bool {
	if isBlockLine(line) {
		return false
	}

	name, _ := splitStatement(line)
	return name == defKeyword
}
