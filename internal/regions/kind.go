package regions

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind names one preserved region of a generated file.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	Misc
	FileHead
	FileFoot
	PreRead
	PostRead
	PreWrite
	PostWrite
	PreDescribe
	PostDescribe
	PreFixLinks
	PostFixLinks
	Constructor
	Destructor
	Include
)

// Kinds lists every region kind.
var Kinds = []Kind{
	Misc, FileHead, FileFoot,
	PreRead, PostRead, PreWrite, PostWrite,
	PreDescribe, PostDescribe, PreFixLinks, PostFixLinks,
	Constructor, Destructor, Include,
}

// markerNames are the names written into the begin sentinels.
var markerNames = map[Kind]string{
	Misc:         "MISC",
	FileHead:     "FILE HEAD",
	FileFoot:     "FILE FOOT",
	PreRead:      "PRE-READ",
	PostRead:     "POST-READ",
	PreWrite:     "PRE-WRITE",
	PostWrite:    "POST-WRITE",
	PreDescribe:  "PRE-DESCRIBE",
	PostDescribe: "POST-DESCRIBE",
	PreFixLinks:  "PRE-FIXLINKS",
	PostFixLinks: "POST-FIXLINKS",
	Constructor:  "CONSTRUCTOR",
	Destructor:   "DESTRUCTOR",
	Include:      "INCLUDE",
}

// MarkerName returns the name used in the begin sentinel of k.
func (k Kind) MarkerName() string {
	return markerNames[k]
}

// Begin returns the sentinel line opening a region of kind k. Sentinels are
// written in the form gofmt leaves alone, also when they end up in a doc
// comment.
func (k Kind) Begin() string {
	return "// --BEGIN " + k.MarkerName() + " CUSTOM CODE--"
}

// End is the sentinel line closing every region.
const End = "// --END CUSTOM CODE--"
