package gen

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"schemagen/internal/naming"
	"schemagen/internal/resolve"
	"schemagen/internal/schema"
)

// Fully generated files. They carry no custom code regions.
const (
	enumsFile    = "enums.go"
	versionsFile = "versions.go"
	registerFile = "register.go"
)

func (g *Generator) newJenFile() *jen.File {
	f := jen.NewFile(g.config.PackageName)
	f.HeaderComment("Code generated by schemagen. DO NOT EDIT.")
	f.ImportAlias(g.config.RuntimeImport, g.config.RuntimeAlias)

	return f
}

func render(name string, f *jen.File) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}

	return &GeneratedFile{Filename: name, Content: buf.Bytes()}, nil
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// generateEnums declares every enum and bit flag set with its options and
// a String method.
func (g *Generator) generateEnums(ctx *schema.Context) (*GeneratedFile, error) {
	f := g.newJenFile()
	taken := make(map[string]bool)

	for _, ent := range ctx.Enums() {
		en, _ := schema.AsEnum(ent)
		_, isFlag := ent.(*schema.Flag)

		name := naming.Ident(en.Name)
		storage := storageType(ctx, en)

		if d := oneLine(en.Description); d != "" {
			f.Comment(name + " " + d)
		}

		f.Type().Id(name).Id(storage)

		var (
			defs   []jen.Code
			consts []string
			labels []string
			seen   = make(map[int64]bool)
			cases  []jen.Code
		)

		for _, o := range en.Options {
			if o.Value < 0 && strings.HasPrefix(storage, "u") {
				return nil, fmt.Errorf("%s option %s: value %d does not fit %s", en.Name, o.Name, o.Value, storage)
			}

			cname := naming.ConstName(en.Name, o.Name)
			for taken[cname] {
				cname += "_"
			}

			taken[cname] = true

			def := jen.Id(cname).Id(name).Op("=")
			if isFlag {
				def.Lit(1).Op("<<").Lit(o.Bit)
			} else {
				def.Lit(int(o.Value))
			}

			if d := oneLine(o.Description); d != "" {
				def.Comment(d)
			}

			defs = append(defs, def)
			consts = append(consts, cname)
			labels = append(labels, o.Name)

			if !seen[o.Value] {
				seen[o.Value] = true

				cases = append(cases, jen.Case(jen.Id(cname)).Block(jen.Return(jen.Lit(o.Name))))
			}
		}

		if len(defs) > 0 {
			f.Const().Defs(defs...)
		}

		if isFlag {
			f.Func().Params(jen.Id("v").Id(name)).Id("String").Params().String().Block(flagString(consts, labels)...)
			continue
		}

		var body []jen.Code
		if len(cases) > 0 {
			body = append(body, jen.Switch(jen.Id("v")).Block(cases...))
		}

		body = append(body, jen.Return(
			jen.Lit(name+"(").Op("+").
				Qual("strconv", "FormatInt").Call(jen.Int64().Parens(jen.Id("v")), jen.Lit(10)).
				Op("+").Lit(")")))

		f.Func().Params(jen.Id("v").Id(name)).Id("String").Params().String().Block(body...)
	}

	return render(enumsFile, f)
}

// flagString lists the set bits by option name, then any bits no option
// names in hex.
func flagString(consts, labels []string) []jen.Code {
	body := []jen.Code{jen.Var().Id("names").Index().String()}

	for i, c := range consts {
		body = append(body, jen.If(jen.Id("v").Op("&").Id(c).Op("!=").Lit(0)).Block(
			jen.Id("names").Op("=").Append(jen.Id("names"), jen.Lit(labels[i])),
		))
	}

	rest := jen.Id("v")
	if len(consts) > 0 {
		mask := jen.Id(consts[0])
		for _, c := range consts[1:] {
			mask.Op("|").Id(c)
		}

		rest = jen.Id("v").Op("&^").Parens(mask)
	}

	body = append(body,
		jen.If(jen.Id("rest").Op(":=").Add(rest), jen.Id("rest").Op("!=").Lit(0).Op("||").Len(jen.Id("names")).Op("==").Lit(0)).Block(
			jen.Id("names").Op("=").Append(jen.Id("names"),
				jen.Lit("0x").Op("+").Qual("strconv", "FormatUint").Call(jen.Uint64().Parens(jen.Id("rest")), jen.Lit(16))),
		),
		jen.Return(jen.Qual("strings", "Join").Call(jen.Id("names"), jen.Lit("|"))),
	)

	return body
}

// storageType is the Go type an enum is declared on.
func storageType(ctx *schema.Context, en *schema.Enum) string {
	if en.Storage >= 0 {
		if nt := ctx.Entity(en.Storage).Info().Native; nt != nil && !nt.Runtime && nt.GoType != "" {
			return nt.GoType
		}
	}

	return "uint32"
}

// VersionConst names the constant of a format version: "20.0.0.5" is
// Version20_0_0_5.
func VersionConst(text string) string {
	return "Version" + strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		return '_'
	}, text)
}

// generateVersions declares a constant per known format version and the
// ordered list of them.
func (g *Generator) generateVersions(ctx *schema.Context) (*GeneratedFile, error) {
	f := g.newJenFile()

	var (
		defs  []jen.Code
		names []jen.Code
		seen  = make(map[string]bool)
	)

	for _, v := range ctx.Versions() {
		name := VersionConst(v.Text)
		if seen[name] {
			continue
		}

		seen[name] = true

		def := jen.Id(name).Uint32().Op("=").Op(fmt.Sprintf("0x%08X", v.Num))
		if d := oneLine(v.Description); d != "" {
			def.Comment(d)
		}

		defs = append(defs, def)
		names = append(names, jen.Id(name))
	}

	if len(defs) > 0 {
		f.Const().Defs(defs...)
	}

	f.Comment("Versions lists the known format versions in schema order.")
	f.Var().Id("Versions").Op("=").Index().Uint32().ValuesFunc(func(grp *jen.Group) {
		for _, n := range names {
			grp.Add(n)
		}
	})

	return render(versionsFile, f)
}

// generateRegister declares the runtime type of every block and a Register
// function adding a factory per concrete block to a registry.
func (g *Generator) generateRegister(plan *resolve.Plan) (*GeneratedFile, error) {
	f := g.newJenFile()
	rt := g.config.RuntimeImport

	blocks := plan.Blocks()

	var (
		vars      []jen.Code
		factories []jen.Code
	)

	for _, b := range blocks {
		parent := jen.Nil()
		if b.Parent != nil {
			parent = jen.Id("Type" + b.Parent.GoName)
		}

		vars = append(vars, jen.Id("Type"+b.GoName).Op("=").Qual(rt, "NewType").Call(jen.Lit(b.Name), parent))

		if b.Abstract() {
			continue
		}

		factories = append(factories, jen.Id("r").Dot("Register").Call(
			jen.Id("Type"+b.GoName),
			jen.Func().Params().Qual(rt, "Object").Block(jen.Return(jen.Id("New"+b.GoName).Call())),
		))
	}

	if len(vars) > 0 {
		f.Var().Defs(vars...)
	}

	f.Comment("Register adds a factory for every concrete block type to r.")
	f.Func().Id("Register").Params(jen.Id("r").Op("*").Qual(rt, "Registry")).Block(factories...)

	return render(registerFile, f)
}
