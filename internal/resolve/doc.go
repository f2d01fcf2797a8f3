// Package resolve annotates the compounds and blocks of a loaded schema with
// everything code generation needs but the schema does not state directly.
//
// For every field, in declaration order, it parses the array-size,
// condition, version-condition and argument expressions and derives:
//
//   - duplicate status: an earlier sibling has the same name and neither
//     declares a suffix. Duplicates share the earlier field's storage.
//   - arr2 dynamism: the second dimension is sized by a sibling array, so
//     every outer element has its own inner length.
//   - back-references: the later siblings that use the field, unmasked, as
//     an array size or condition. Writers recompute such fields from the
//     arrays they size.
//   - symbol resolution to an earlier sibling, an inherited field or ARG.
//   - the Go default value.
//
// Per type it derives whether owning references, non-owning references or
// arrays are reachable, and it rejects compounds that contain themselves by
// value.
//
// Problems are recorded as diagnostics on the Plan; Resolve fails when any
// of them is an error.
package resolve
