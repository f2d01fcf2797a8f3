// Package naming turns schema names (which may contain spaces, colons and
// other punctuation) into Go identifiers and file names.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Argument is the reserved schema name for a compound's external argument.
const Argument = "ARG"

// words splits a schema name on every character that cannot appear in a Go
// identifier.
func words(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Ident returns the exported Go identifier for a schema name.
// Inner capitals are kept, so "UV Sets" becomes "UVSets" and
// "bhkRigidBody" becomes "BhkRigidBody".
func Ident(name string) string {
	title := cases.Title(language.Und, cases.NoLower)

	var sb strings.Builder
	for _, w := range words(name) {
		sb.WriteString(title.String(w))
	}

	return guardLeadingDigit(sb.String())
}

// ConstName joins an owner and an option name into a Go constant name.
// Option names are conventionally SHOUTING_CASE, so each word is lowered
// before title casing: ("AlphaFormat", "ALPHA_BINARY") -> "AlphaFormatAlphaBinary".
func ConstName(owner, option string) string {
	title := cases.Title(language.Und)

	var sb strings.Builder
	sb.WriteString(Ident(owner))

	for _, w := range words(option) {
		sb.WriteString(title.String(w))
	}

	return guardLeadingDigit(sb.String())
}

// Local returns an unexported identifier for a schema name.
func Local(name string) string {
	id := Ident(name)
	if id == "" {
		return id
	}

	r := []rune(id)
	// Lower the leading acronym: "UVSets" -> "uvSets", "NiNode" -> "niNode".
	i := 0
	for i < len(r) && unicode.IsUpper(r[i]) {
		if i > 0 && i+1 < len(r) && unicode.IsLower(r[i+1]) {
			break
		}

		r[i] = unicode.ToLower(r[i])
		i++
	}

	return string(r)
}

// FileName returns the snake_case Go file name (without extension) for a
// type name. Acronyms stay together: "BSLODTriShape" -> "bslod_tri_shape".
func FileName(name string) string {
	lower := cases.Lower(language.Und)

	var parts []string

	for _, w := range words(name) {
		parts = append(parts, splitCamel(w)...)
	}

	out := lower.String(strings.Join(parts, "_"))
	// Keep the go tool from treating generated files as tests.
	if strings.HasSuffix(out, "_test") {
		out += "_gen"
	}

	return out
}

func splitCamel(w string) []string {
	r := []rune(w)

	var (
		parts []string
		start int
	)

	for i := 1; i < len(r); i++ {
		prev, cur := r[i-1], r[i]
		boundary := unicode.IsUpper(cur) &&
			(unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && i+1 < len(r) && unicode.IsLower(r[i+1])))

		if boundary {
			parts = append(parts, string(r[start:i]))
			start = i
		}
	}

	return append(parts, string(r[start:]))
}

func guardLeadingDigit(id string) string {
	if id != "" && unicode.IsDigit([]rune(id)[0]) {
		return "N" + id
	}

	return id
}
