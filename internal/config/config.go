// Package config loads the schemagen configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"schemagen/internal/common"
	"schemagen/internal/gen"
	"schemagen/internal/resolve"
	"schemagen/internal/schema"
)

// Config is the contents of a schemagen.yaml file.
type Config struct {
	// Schema is the schema document (.xml, .yaml or .hcl).
	Schema string `yaml:"schema" validate:"required"`
	// OutDir receives the generated files.
	OutDir  string `yaml:"out_dir" validate:"required"`
	Package string `yaml:"package" validate:"required,goident"`

	RuntimeImport string `yaml:"runtime_import" validate:"required"`
	RuntimeAlias  string `yaml:"runtime_alias" validate:"required,goident"`

	// MaxArrayDump overrides the runtime's Describe array cap when positive.
	MaxArrayDump int `yaml:"max_array_dump" validate:"gte=0"`

	StrictReferences bool `yaml:"strict_references"`
	StrictDefaults   bool `yaml:"strict_defaults"`
	Accessors        bool `yaml:"accessors"`

	// Only limits per-type files to these schema type names.
	Only []string `yaml:"only" validate:"dive,required"`
	// ManualUpdates marks fields maintained by hand-written code.
	ManualUpdates []ManualUpdate `yaml:"manual_updates" validate:"dive"`

	Log LogConfig `yaml:"log"`
}

// ManualUpdate names one field whose value the generated Write must not
// recompute.
type ManualUpdate struct {
	Type  string `yaml:"type" validate:"required"`
	Field string `yaml:"field" validate:"required"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// Load reads and parses a configuration file. A relative schema path or
// output directory is taken relative to the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)

	if c.Schema != "" && !filepath.IsAbs(c.Schema) {
		c.Schema = filepath.Join(dir, c.Schema)
	}

	if !filepath.IsAbs(c.OutDir) {
		c.OutDir = filepath.Join(dir, c.OutDir)
	}

	return c, nil
}

// Parse parses YAML data into a Config with defaults applied. It does not
// validate: flags may still fill in missing values.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	// An empty document decodes to io.EOF and means all defaults.
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	g := gen.DefaultGeneratorConfig()

	if c.OutDir == "" {
		c.OutDir = g.OutputDir
	}

	if c.Package == "" {
		c.Package = g.PackageName
	}

	if c.RuntimeImport == "" {
		c.RuntimeImport = g.RuntimeImport
	}

	c.RuntimeAlias = common.ImportAlias(c.RuntimeAlias, c.RuntimeImport)

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return token.IsIdentifier(fl.Field().String())
	})

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	return v
}()

// Validate checks required values and value ranges.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}

	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, fieldPath(ve)+": "+formatValidationError(ve))
	}

	return fmt.Errorf("invalid config: %s", strings.Join(messages, "; "))
}

// fieldPath drops the root struct name from the namespace:
// "Config.log.level" becomes "log.level".
func fieldPath(ve validator.FieldError) string {
	_, rest, ok := strings.Cut(ve.Namespace(), ".")
	if !ok {
		return ve.Field()
	}

	return rest
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "goident":
		return fmt.Sprintf("%q is not a Go identifier", ve.Value())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(ve.Param(), " ", ", ")
	case "gte":
		return "must be at least " + ve.Param()
	default:
		return "failed " + ve.Tag()
	}
}

// ResolverConfig returns the resolution settings.
func (c *Config) ResolverConfig() resolve.Config {
	return resolve.Config{
		StrictReferences: c.StrictReferences,
		StrictDefaults:   c.StrictDefaults,
	}
}

// GeneratorConfig returns the generation settings.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	return gen.GeneratorConfig{
		PackageName:   c.Package,
		OutputDir:     c.OutDir,
		RuntimeImport: c.RuntimeImport,
		RuntimeAlias:  c.RuntimeAlias,
		Source:        filepath.Base(c.Schema),
		MaxArrayDump:  c.MaxArrayDump,
		Accessors:     c.Accessors,
		Only:          c.Only,
	}
}

// ApplyManualUpdates marks the configured fields of ctx as maintained by
// hand.
func (c *Config) ApplyManualUpdates(ctx *schema.Context) error {
	var errs []error

	for _, mu := range c.ManualUpdates {
		if err := ctx.SetManualUpdate(mu.Type, mu.Field, true); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
