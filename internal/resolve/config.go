package resolve

// Config holds configuration for the resolution process.
type Config struct {
	// StrictReferences reports symbols naming no sibling, inherited field or
	// ARG as errors instead of warnings.
	StrictReferences bool
	// StrictDefaults reports default literals that cannot be expressed in
	// Go as errors instead of warnings.
	StrictDefaults bool
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() Config {
	return Config{
		StrictReferences: false,
		StrictDefaults:   false,
	}
}
