package gen

import "schemagen/internal/emit"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is where unformatted sources are dumped when formatting
	// fails. Empty disables the dump.
	OutputDir string
	// RuntimeImport is the import path of the runtime package.
	RuntimeImport string
	// RuntimeAlias is the name generated code uses for the runtime.
	RuntimeAlias string
	// Source names the schema in the generated file headers.
	Source string
	// MaxArrayDump overrides the runtime's Describe array cap when positive.
	MaxArrayDump int
	// Accessors adds a getter and setter per eligible field.
	Accessors bool
	// Only restricts per-type files to the named types. Empty means all.
	Only []string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:   "nifgen",
		OutputDir:     "./generated",
		RuntimeImport: "nif",
		RuntimeAlias:  emit.DefaultConfig().RuntimeAlias,
	}
}

func (c GeneratorConfig) emitConfig() emit.Config {
	return emit.Config{
		RuntimeAlias: c.RuntimeAlias,
		MaxArrayDump: c.MaxArrayDump,
	}
}
