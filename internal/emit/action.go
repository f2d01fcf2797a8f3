package emit

//go:generate go tool stringer -type=Action -output=action_string.go

// Action selects which method body the emitter renders.
type Action int

const (
	_ Action = iota // zero value is invalid

	Read
	Write
	Describe
	FixLinks
	GetRefs
	GetPtrs
)

// Actions lists every action in the order generated files declare them.
var Actions = []Action{Read, Write, Describe, FixLinks, GetRefs, GetPtrs}

// versioned reports whether the action reads or writes a stream and so
// must honour version bounds.
func (a Action) versioned() bool {
	return a == Read || a == Write || a == FixLinks
}

// guarded reports whether the action emits presence-condition guards.
func (a Action) guarded() bool {
	return a.versioned() || a == Describe
}

// collects reports whether the action gathers references into a slice.
func (a Action) collects() bool {
	return a == GetRefs || a == GetPtrs
}
