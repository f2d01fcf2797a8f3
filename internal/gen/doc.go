// Package gen assembles the Go files of a resolved schema.
//
// Every generated compound and block gets its own file holding the struct
// declaration, a constructor, Release, and the Read, Write, Describe,
// FixLinks, GetRefs and GetPtrs methods. Hand-written code lives in
// marked regions that survive regeneration. Enums, version constants and
// the block registry are written to fully generated files with jennifer.
//
// Per-type files use text/template + go/format.
package gen
