package schema

// NativeType describes a schema type implemented outside generated code.
type NativeType struct {
	// GoType is the Go type name. When Runtime is set it is qualified with
	// the runtime package alias at generation time.
	GoType  string
	Runtime bool
	Family  Family
}

func builtin(goType string, family Family) *NativeType {
	return &NativeType{GoType: goType, Family: family}
}

func runtime(goType string, family Family) *NativeType {
	return &NativeType{GoType: goType, Runtime: true, Family: family}
}

// nativeTypes lists the schema names with a hand-written implementation.
// Ref and Ptr have no Go type of their own: they render as a pointer to
// their template argument.
var nativeTypes = map[string]*NativeType{
	"bool":           builtin("bool", FamilyBool),
	"byte":           builtin("byte", FamilyInteger),
	"char":           builtin("byte", FamilyInteger),
	"uint":           builtin("uint32", FamilyInteger),
	"ulittle32":      builtin("uint32", FamilyInteger),
	"ushort":         builtin("uint16", FamilyInteger),
	"int":            builtin("int32", FamilyInteger),
	"short":          builtin("int16", FamilyInteger),
	"BlockTypeIndex": builtin("uint16", FamilyInteger),
	"FileVersion":    builtin("uint32", FamilyInteger),
	"Flags":          builtin("uint16", FamilyInteger),
	"StringOffset":   builtin("uint32", FamilyInteger),
	"float":          builtin("float32", FamilyFloat),
	"hfloat":         runtime("HFloat", FamilyFloat),

	"HeaderString": runtime("HeaderString", FamilyString),
	"LineString":   runtime("LineString", FamilyString),
	"ShortString":  runtime("ShortString", FamilyString),
	"SizedString":  runtime("SizedString", FamilyString),
	"string":       runtime("IndexString", FamilyString),
	"StringIndex":  runtime("IndexString", FamilyString),
	"FilePath":     runtime("IndexString", FamilyString),

	"Ref": {Family: FamilyRef},
	"Ptr": {Family: FamilyPtr},

	"Color3":          runtime("Color3", FamilyStruct),
	"Color4":          runtime("Color4", FamilyStruct),
	"ByteColor4":      runtime("ByteColor4", FamilyStruct),
	"Vector3":         runtime("Vector3", FamilyStruct),
	"Vector4":         runtime("Vector4", FamilyStruct),
	"Quaternion":      runtime("Quaternion", FamilyStruct),
	"Matrix22":        runtime("Matrix22", FamilyStruct),
	"Matrix33":        runtime("Matrix33", FamilyStruct),
	"Matrix34":        runtime("Matrix34", FamilyStruct),
	"Matrix44":        runtime("Matrix44", FamilyStruct),
	"hkMatrix3":       runtime("InertiaMatrix", FamilyStruct),
	"Key":             runtime("Key", FamilyStruct),
	"QuatKey":         runtime("Key", FamilyStruct),
	"TexCoord":        runtime("TexCoord", FamilyStruct),
	"Triangle":        runtime("Triangle", FamilyStruct),
	"BSVertexData":    runtime("BSVertexData", FamilyStruct),
	"BSVertexDataSSE": runtime("BSVertexData", FamilyStruct),
}

// LookupNative returns the built-in native implementation for a schema name.
func LookupNative(name string) (*NativeType, bool) {
	nt, ok := nativeTypes[name]
	return nt, ok
}
