package schema

// TypeID indexes an Entity inside a Context.
type TypeID int

const (
	// NoType marks an absent type reference (no parent, no template).
	NoType TypeID = -1
	// TemplateParam is the reserved TEMPLATE type: the type argument of the
	// enclosing templated compound.
	TemplateParam TypeID = -2
)

// TemplateName is the reserved schema name for TemplateParam.
const TemplateName = "TEMPLATE"

// Version is one declared file format version.
type Version struct {
	// Num is the packed numeric form.
	Num uint32
	// Text is the version as written in the schema (e.g. "20.0.0.5").
	Text        string
	Description string
}

// Option is one named value of an Enum or Flag.
type Option struct {
	Name string
	// Value is the literal for enums and 1<<Bit for flags.
	Value int64
	// Bit is the bit position (flags only).
	Bit         int
	Description string
}

// Entity is the closed set of schema types: *Basic, *Enum, *Flag, *Compound
// and *Block.
type Entity interface {
	Kind() Kind
	Info() *TypeInfo
	sealed()
}

// TypeInfo is the record shared by every entity.
type TypeInfo struct {
	ID          TypeID
	Name        string
	Description string
	// Native is set when the type is implemented by the runtime rather
	// than generated.
	Native *NativeType
	Family Family
	// Template marks a type taking one type argument.
	Template bool
	Count    string
}

// Info returns the shared record.
func (t *TypeInfo) Info() *TypeInfo { return t }

func (*TypeInfo) sealed() {}

// IsNative reports whether the runtime implements the type.
func (t *TypeInfo) IsNative() bool { return t.Native != nil }

// Basic is a scalar type without fields.
type Basic struct {
	TypeInfo
}

func (*Basic) Kind() Kind { return KindBasic }

// Enum is a Basic with named integer options.
type Enum struct {
	TypeInfo
	// Storage is the Basic holding the value on disk.
	Storage TypeID
	Prefix  string
	Options []Option
}

func (*Enum) Kind() Kind { return KindEnum }

// Flag is an Enum whose option values are bit masks.
type Flag struct {
	Enum
}

func (*Flag) Kind() Kind { return KindFlag }

// Compound is a structured type with ordered fields.
type Compound struct {
	TypeInfo
	Fields []*Field
	// Argument is set when any field consumes ARG.
	Argument bool
}

func (*Compound) Kind() Kind { return KindCompound }

// Block is a polymorphic compound with single inheritance.
type Block struct {
	Compound
	Inherit  TypeID
	Abstract bool
}

func (*Block) Kind() Kind { return KindBlock }

// AsEnum returns the enum part of an *Enum or *Flag.
func AsEnum(e Entity) (*Enum, bool) {
	switch t := e.(type) {
	case *Enum:
		return t, true
	case *Flag:
		return &t.Enum, true
	default:
		return nil, false
	}
}

// AsCompound returns the compound part of a *Compound or *Block.
func AsCompound(e Entity) (*Compound, bool) {
	switch t := e.(type) {
	case *Compound:
		return t, true
	case *Block:
		return &t.Compound, true
	default:
		return nil, false
	}
}

// Field is one declared member of a compound or block.
type Field struct {
	Owner TypeID
	// Index is the position in the owner's field list.
	Index int

	Name   string
	Suffix string

	// Type is the resolved field type, or TemplateParam.
	Type     TypeID
	TypeName string
	// Template is the type argument, NoType when absent.
	Template     TypeID
	TemplateName string

	// Arg names the sibling (or ARG) passed to the field type as its argument.
	Arg string

	// Raw expression text, parsed by the resolver.
	Arr1    string
	Arr2    string
	Cond    string
	VerCond string

	// Ver1 and Ver2 bound the format version; 0 means unbounded.
	Ver1 uint32
	Ver2 uint32
	// UserVer and UserVer2 require an exact user version when set.
	UserVer  *uint32
	UserVer2 *uint32

	Default     string
	Function    string
	Description string

	Public     bool
	Abstract   bool
	Calculated bool
	// ManualUpdate fields are maintained by hand-written code and never
	// recomputed before writing.
	ManualUpdate bool
}

// StorageName is the name used for storage: the name plus the suffix when
// one is declared.
func (f *Field) StorageName() string {
	if f.Suffix == "" {
		return f.Name
	}

	return f.Name + " " + f.Suffix
}

// HasVersionBounds reports whether any literal version bound is set.
func (f *Field) HasVersionBounds() bool {
	return f.Ver1 != 0 || f.Ver2 != 0 || f.UserVer != nil || f.UserVer2 != nil
}
