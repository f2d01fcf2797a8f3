package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a schema document syntax.
type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return FormatXML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unsupported schema extension %q", filepath.Ext(path))
	}
}

// Load reads and builds the schema at path.
func Load(path string) (*Context, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, loadErr("", "", "schema "+path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, loadErr("", "", "read "+path, err)
	}

	return Parse(data, format, path)
}

// Parse builds a Context from schema bytes. filename is used in messages.
func Parse(data []byte, format Format, filename string) (*Context, error) {
	var (
		doc *document
		err error
	)

	switch format {
	case FormatXML:
		doc, err = decodeXML(data)
	case FormatYAML:
		doc, err = decodeYAML(data)
	case FormatHCL:
		doc, err = decodeHCL(data, filename)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}

	if err != nil {
		return nil, loadErr("", "", "parse "+filename, err)
	}

	return build(doc)
}

func decodeYAML(data []byte) (*document, error) {
	var doc document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	return &doc, nil
}
