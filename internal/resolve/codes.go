package resolve

// Diagnostic codes reported by the resolver.
const (
	CodeExpressionSyntax    = "expression_syntax"
	CodeUnresolvedReference = "unresolved_reference"
	CodeForwardReference    = "forward_reference"
	CodeRecursiveCompound   = "recursive_compound"
	CodeUnsupportedDefault  = "unsupported_default"
)
