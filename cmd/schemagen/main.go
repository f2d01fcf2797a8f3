// Command schemagen compiles a NIF schema into Go serialization code.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"schemagen/internal/app"
	"schemagen/internal/common"
	"schemagen/internal/config"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate Go files, keeping custom code regions."`
	Check   CheckCmd   `cmd:"" help:"Load and resolve the schema without writing files."`
	Dump    DumpCmd    `cmd:"" help:"Print the resolved schema as JSON."`
}

// Options are shared by every command reading a schema. Flags override
// the configuration file.
type Options struct {
	Config        string   `help:"Configuration file." short:"c" type:"existingfile"`
	Schema        string   `help:"Schema document (.xml, .yaml, .hcl)." short:"s"`
	Out           string   `help:"Output directory." short:"o"`
	Package       string   `help:"Go package name of the generated code."`
	RuntimeImport string   `help:"Import path of the runtime package." name:"runtime-import"`
	RuntimeAlias  string   `help:"Name the generated code uses for the runtime." name:"runtime-alias"`
	Strict        bool     `help:"Treat unresolved references as errors."`
	Accessors     bool     `help:"Generate field getters and setters." short:"a"`
	Only          []string `help:"Only generate files for these types." short:"n"`
	LogLevel      string   `help:"Log level (debug, info, warn, error)." name:"log-level"`
	LogFormat     string   `help:"Log format (text, json)." name:"log-format"`
}

func (o *Options) load() (*config.Config, error) {
	cfg := config.Default()

	if o.Config != "" {
		var err error
		if cfg, err = config.Load(o.Config); err != nil {
			return nil, err
		}
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.Schema, o.Schema)
	set(&cfg.OutDir, o.Out)
	set(&cfg.Package, o.Package)
	if o.RuntimeImport != "" {
		cfg.RuntimeImport = o.RuntimeImport
		cfg.RuntimeAlias = common.ImportAlias(o.RuntimeAlias, o.RuntimeImport)
	}

	set(&cfg.RuntimeAlias, o.RuntimeAlias)
	set(&cfg.Log.Level, o.LogLevel)
	set(&cfg.Log.Format, o.LogFormat)

	cfg.StrictReferences = cfg.StrictReferences || o.Strict
	cfg.Accessors = cfg.Accessors || o.Accessors

	if len(o.Only) > 0 {
		cfg.Only = o.Only
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (o *Options) newApp() (*app.App, context.Context, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, nil, err
	}

	a := app.New(os.Stderr, cfg, nil)

	return a, a.Context(context.Background()), nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type GenCmd struct {
	Options `embed:""`
}

func (c *GenCmd) Run() error {
	a, ctx, err := c.newApp()
	if err != nil {
		return err
	}

	_, err = a.Generate(ctx)

	return err
}

type CheckCmd struct {
	Options `embed:""`
}

func (c *CheckCmd) Run() error {
	a, ctx, err := c.newApp()
	if err != nil {
		return err
	}

	return a.Check(ctx)
}

type DumpCmd struct {
	Options `embed:""`
}

func (c *DumpCmd) Run() error {
	a, ctx, err := c.newApp()
	if err != nil {
		return err
	}

	return a.Dump(ctx, os.Stdout)
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("schemagen"),
		kong.Description("Compile a versioned NIF schema into Go serialization code."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
