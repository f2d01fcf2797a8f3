package schema

import "strings"

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind is the variant of an Entity.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindBasic
	KindEnum
	KindFlag
	KindCompound
	KindBlock
)

// HasFields reports whether entities of this kind carry an ordered field list.
func (k Kind) HasFields() bool {
	return k == KindCompound || k == KindBlock
}

//go:generate go tool stringer -type=Family -trimprefix=Family -output=family_string.go

// Family groups types by how they are stored and defaulted.
type Family int

const (
	_ Family = iota // zero value is invalid

	FamilyInteger
	FamilyBool
	FamilyFloat
	FamilyString
	// FamilyRef is an owning reference to another block.
	FamilyRef
	// FamilyPtr is a non-owning reference to another block.
	FamilyPtr
	FamilyEnum
	FamilyStruct
)

// IsLink reports whether values of this family reference another block.
func (f Family) IsLink() bool {
	return f == FamilyRef || f == FamilyPtr
}

// ParseFamily maps a lowercase family name ("integer", "ref", ...) to a Family.
func ParseFamily(s string) (Family, bool) {
	for f := FamilyInteger; f <= FamilyStruct; f++ {
		if strings.EqualFold(f.String(), s) {
			return f, true
		}
	}

	return 0, false
}
