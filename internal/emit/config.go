package emit

// Config holds configuration for emission.
type Config struct {
	// RuntimeAlias is the package name the generated code uses for the
	// runtime (stream primitives, link stacks, object registry).
	RuntimeAlias string
	// MaxArrayDump caps how many array elements Describe prints when not
	// verbose. Zero uses the runtime's MaxArrayDump constant.
	MaxArrayDump int
}

// DefaultConfig returns the default emission configuration.
func DefaultConfig() Config {
	return Config{
		RuntimeAlias: "nif",
	}
}
