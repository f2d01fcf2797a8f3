package regions

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// Sentinels match with or without the space after "//" and the trailing
// "//", so files written with the older "//--BEGIN X CUSTOM CODE--//" form
// (or reformatted by gofmt) still extract.
var (
	beginPattern = regexp.MustCompile(`^\s*// ?--BEGIN (.+?) CUSTOM CODE--(?://)?\s*$`)
	endPattern   = regexp.MustCompile(`^\s*// ?--END CUSTOM CODE--(?://)?\s*$`)
)

// byMarker maps sentinel names back to kinds. PRE-STRING and POST-STRING
// are accepted for files written before Describe regions were renamed.
var byMarker = func() map[string]Kind {
	m := make(map[string]Kind, len(markerNames)+2)
	for k, name := range markerNames {
		m[name] = k
	}

	m["PRE-STRING"] = PreDescribe
	m["POST-STRING"] = PostDescribe

	return m
}()

// Set holds the captured lines of every region of one file.
type Set struct {
	lines map[Kind][]string
	// Unknown lists begin sentinels naming no known region, in file order.
	// Their contents are dropped.
	Unknown []string
	// Unterminated lists regions still open at the end of the file. Their
	// lines up to the end are kept.
	Unterminated []Kind
}

// NewSet returns a Set with every region empty.
func NewSet() *Set {
	return &Set{lines: make(map[Kind][]string)}
}

// Defaults returns the regions of a file generated for the first time:
// a single blank line each.
func Defaults() *Set {
	s := NewSet()
	for _, k := range Kinds {
		s.lines[k] = []string{""}
	}

	return s
}

// Lines returns the captured lines of region k.
func (s *Set) Lines(k Kind) []string {
	return s.lines[k]
}

// Set replaces the lines of region k.
func (s *Set) Set(k Kind, lines []string) {
	s.lines[k] = append([]string(nil), lines...)
}

// Block renders region k with its sentinels, one line each, ending in a
// newline.
func (s *Set) Block(k Kind) string {
	var sb strings.Builder

	sb.WriteString(k.Begin())
	sb.WriteByte('\n')

	for _, l := range s.lines[k] {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}

	sb.WriteString(End)
	sb.WriteByte('\n')

	return sb.String()
}

// Write writes region k with its sentinels to w.
func (s *Set) Write(w io.Writer, k Kind) error {
	_, err := io.WriteString(w, s.Block(k))
	return err
}

// Extract scans previously generated contents for regions. Every line
// strictly between a begin sentinel and the next end sentinel is captured
// verbatim; a region appearing twice accumulates both bodies.
func Extract(r io.Reader) (*Set, error) {
	s := NewSet()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		open    bool
		current Kind
		skip    bool
	)

	for sc.Scan() {
		text := sc.Text()

		if open || skip {
			if endPattern.MatchString(text) {
				open, skip = false, false
				continue
			}

			if open {
				s.lines[current] = append(s.lines[current], text)
			}

			continue
		}

		m := beginPattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		k, ok := byMarker[m[1]]
		if !ok {
			s.Unknown = append(s.Unknown, m[1])
			skip = true

			continue
		}

		open, current = true, k
		if s.lines[k] == nil {
			s.lines[k] = []string{}
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning regions: %w", err)
	}

	if open {
		s.Unterminated = append(s.Unterminated, current)
	}

	return s, nil
}

// ExtractFile extracts the regions of the file at path. A missing file
// yields Defaults.
func ExtractFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	s, err := Extract(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}
