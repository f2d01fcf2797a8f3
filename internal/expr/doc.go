// Package expr parses, evaluates and renders the condition and array-size
// expressions attached to schema fields.
//
// The grammar is one binary operation LHS OP RHS or a negation !X, where
// either side may be a bracketed sub-expression:
//
//	Num Vertices
//	(Flags & 1) != 0
//	!Has Normals
//	(Version >= 10.0.1.0) && (User Version == 11)
//
// Operators: == != >= <= && || & | - + > < / *. There is no precedence;
// an unbracketed chain splits at its first operator, so a - b - c groups as
// a - (b - c). Terminals are integer literals (decimal or 0x hex), dotted
// four-part versions, block type names (a type check) and field names.
package expr
