// Package schema loads a file format description into a typed registry.
//
// A schema declares versions, basics, enums, bitflags, compounds and blocks
// (niobjects). Every type is registered once in a Context under a name that
// is unique across all categories, and addressed by TypeID afterwards.
// Documents may be written as XML, YAML or HCL; all three decode into the
// same model.
package schema
