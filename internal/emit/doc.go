// Package emit renders the Go method bodies, struct declarations and
// default initializers of resolved schema types.
//
// A body is produced by walking the type's fields in order. Fields are
// grouped under the fewest guards that keep them correct: consecutive
// fields with the same version metadata share one version guard, and
// consecutive fields with the same presence condition share one condition
// guard nested inside it. Embedded compounds are emitted inline below an
// extended access path, so their guards and loops nest within those of the
// enclosing field.
//
// Generated code calls into a runtime package (alias "nif" by default):
//
//	nif.Read(in, &v, info)           nif.ReadArg(in, &v, info, arg)
//	nif.Write(out, v, info)          nif.WriteArg(out, v, info, arg)
//	nif.WriteRef(out, v, info, linkMap, missing)
//	nif.FixLink[T](objects, links, missing, info)
//	nif.IsDerivedType(x, TypeNiNode) nif.BoolInt(b)
//	nif.MaxArrayDump
package emit
