// Package match finds the schema names closest to a misspelled one, for
// "did you mean" hints in diagnostics.
//
// Names are compared after normalization (case folded, punctuation and
// spaces dropped), so "Num Vertices", "NumVertices" and "num_vertices"
// are the same name.
package match
