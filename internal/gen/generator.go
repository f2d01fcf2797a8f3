package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"slices"

	"schemagen/internal/common"
	"schemagen/internal/emit"
	"schemagen/internal/naming"
	"schemagen/internal/regions"
	"schemagen/internal/resolve"
)

// Generator assembles Go source files from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	defaults := DefaultGeneratorConfig()

	if config.PackageName == "" {
		config.PackageName = defaults.PackageName
	}

	if config.RuntimeImport == "" {
		config.RuntimeImport = defaults.RuntimeImport
	}

	config.RuntimeAlias = common.ImportAlias(config.RuntimeAlias, config.RuntimeImport)

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the slash-separated path relative to the output root
	// (e.g. "ni_node.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// PriorFunc returns the custom code regions of the file previously
// generated under filename. A nil PriorFunc means there is none.
type PriorFunc func(filename string) (*regions.Set, error)

// FileName returns the name of the file generated for t.
func FileName(t *resolve.Type) string {
	return naming.FileName(t.Name) + ".go"
}

// Generate renders one file per generated compound and block, then the
// enum, version and registration tables. Nothing is returned when any
// file fails.
func (g *Generator) Generate(plan *resolve.Plan, prior PriorFunc) ([]GeneratedFile, error) {
	if plan == nil {
		return nil, errors.New("plan is required")
	}

	if plan.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("plan has errors: %w", plan.Diagnostics.Error())
	}

	e := emit.New(plan, g.config.emitConfig())

	var files []GeneratedFile

	names := map[string]string{
		enumsFile:    "enum table",
		versionsFile: "version table",
		registerFile: "block registry",
	}

	for _, t := range plan.Types {
		if t.Native || !g.selected(t) {
			continue
		}

		name := FileName(t)
		if other, ok := names[name]; ok {
			return nil, fmt.Errorf("%s: file %s already holds %s", t.Name, name, other)
		}

		names[name] = t.Name

		custom := regions.Defaults()

		if prior != nil {
			set, err := prior(name)
			if err != nil {
				return nil, fmt.Errorf("reading custom code of %s: %w", name, err)
			}

			if set != nil {
				custom = set
			}
		}

		file, err := g.generateType(e, t, name, custom)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", t.Name, err)
		}

		files = append(files, *file)
	}

	tables := []func() (*GeneratedFile, error){
		func() (*GeneratedFile, error) { return g.generateEnums(plan.Context) },
		func() (*GeneratedFile, error) { return g.generateVersions(plan.Context) },
		func() (*GeneratedFile, error) { return g.generateRegister(plan) },
	}

	for _, table := range tables {
		file, err := table()
		if err != nil {
			return nil, err
		}

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) selected(t *resolve.Type) bool {
	return len(g.config.Only) == 0 || slices.Contains(g.config.Only, t.Name)
}

// generateType renders the file of a single compound or block.
func (g *Generator) generateType(e *emit.Emitter, t *resolve.Type, name string, custom *regions.Set) (*GeneratedFile, error) {
	data, err := g.buildTypeFileData(e, t, custom)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := typeFileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, name, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: name,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: name,
		Content:  formatted,
	}, nil
}
