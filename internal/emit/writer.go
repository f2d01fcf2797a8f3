package emit

import (
	"fmt"
	"strings"
)

type line struct {
	depth int
	text  string
}

// codeWriter accumulates Go statements and tracks indentation from the
// braces it sees: a line starting with "}" closes a level, a line ending
// with "{" opens one.
type codeWriter struct {
	lines []line
	depth int
}

// Line writes one statement. Text spanning several lines is split, each
// part indented on its own.
func (w *codeWriter) Line(text string) {
	for _, part := range strings.Split(text, "\n") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.HasPrefix(part, "}") {
			w.depth--
		}

		w.lines = append(w.lines, line{depth: w.depth, text: part})

		if strings.HasSuffix(part, "{") {
			w.depth++
		}
	}
}

// Comment writes a line comment at the current level without brace
// tracking.
func (w *codeWriter) Comment(text string) {
	w.lines = append(w.lines, line{depth: w.depth, text: "// " + text})
}

// Linef writes a formatted statement.
func (w *codeWriter) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Append copies the lines of sub, indented relative to the current level.
func (w *codeWriter) Append(sub *codeWriter) {
	for _, l := range sub.lines {
		w.lines = append(w.lines, line{depth: w.depth + l.depth, text: l.text})
	}
}

func (w *codeWriter) Empty() bool { return len(w.lines) == 0 }

// Uses reports whether any written line mentions name as a whole
// identifier, so "i1" does not match inside "i10" or "xi1".
func (w *codeWriter) Uses(name string) bool {
	for _, l := range w.lines {
		text := l.text

		for from := 0; ; {
			k := strings.Index(text[from:], name)
			if k < 0 {
				break
			}

			start, end := from+k, from+k+len(name)
			if (start == 0 || !identByte(text[start-1])) && (end == len(text) || !identByte(text[end])) {
				return true
			}

			from = start + 1
		}
	}

	return false
}

func identByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (w *codeWriter) String() string {
	var sb strings.Builder

	for _, l := range w.lines {
		sb.WriteString(strings.Repeat("\t", max(l.depth, 0)))
		sb.WriteString(l.text)
		sb.WriteByte('\n')
	}

	return sb.String()
}
