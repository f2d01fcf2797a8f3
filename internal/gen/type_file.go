package gen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"schemagen/internal/emit"
	"schemagen/internal/regions"
	"schemagen/internal/resolve"
)

// typeFileData holds everything the per-type template renders.
type typeFileData struct {
	PackageName string
	Source      string
	Imports     []importSpec
	Runtime     string

	Name       string
	Receiver   string
	TypeParams string
	Parent     string
	Block      bool

	Decl      string
	Defaults  string
	Methods   []methodData
	Accessors string

	Head        string
	Include     string
	Constructor string
	Destructor  string
	Misc        string
	Foot        string
}

// methodData is one action method.
type methodData struct {
	Doc       string
	Signature string
	Pre       string
	Code      string
	Post      string
	Return    string
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// prePost maps the actions with hand-written hooks to their regions.
var prePost = map[emit.Action][2]regions.Kind{
	emit.Read:     {regions.PreRead, regions.PostRead},
	emit.Write:    {regions.PreWrite, regions.PostWrite},
	emit.Describe: {regions.PreDescribe, regions.PostDescribe},
	emit.FixLinks: {regions.PreFixLinks, regions.PostFixLinks},
}

// buildTypeFileData renders the generated parts of t's file and merges the
// preserved regions into them.
func (g *Generator) buildTypeFileData(e *emit.Emitter, t *resolve.Type, custom *regions.Set) (*typeFileData, error) {
	rt := g.config.RuntimeAlias

	data := &typeFileData{
		PackageName: g.config.PackageName,
		Source:      g.config.Source,
		Runtime:     rt,
		Name:        t.GoName,
		Receiver:    emit.Receiver(t),
		TypeParams:  emit.TypeParams(t),
		Block:       t.IsBlock(),
		Head:        custom.Block(regions.FileHead),
		Include:     custom.Block(regions.Include),
		Constructor: custom.Block(regions.Constructor),
		Destructor:  custom.Block(regions.Destructor),
		Misc:        custom.Block(regions.Misc),
		Foot:        custom.Block(regions.FileFoot),
	}

	if t.Parent != nil {
		data.Parent = t.Parent.GoName
	}

	var err error

	if data.Decl, err = e.Declare(t); err != nil {
		return nil, fmt.Errorf("declaring: %w", err)
	}

	if data.Defaults, err = e.Construct(t); err != nil {
		return nil, fmt.Errorf("constructing: %w", err)
	}

	if !t.Templated {
		for _, action := range emit.Actions {
			body, err := e.Body(t, action, "", "")
			if err != nil {
				return nil, fmt.Errorf("emitting %s: %w", action, err)
			}

			m := methodData{
				Doc:       methodDoc(action, t.GoName),
				Signature: signature(action, rt, t.Argument),
				Code:      body.Code,
				Return:    body.Return,
			}

			if kinds, ok := prePost[action]; ok {
				m.Pre = custom.Block(kinds[0])
				m.Post = custom.Block(kinds[1])
			}

			data.Methods = append(data.Methods, m)
		}
	}

	if g.config.Accessors {
		if data.Accessors, err = e.Accessors(t); err != nil {
			return nil, fmt.Errorf("accessors: %w", err)
		}
	}

	data.Imports = g.importsFor(data)

	return data, nil
}

func signature(action emit.Action, rt string, argument bool) string {
	arg := ""
	if argument {
		arg = ", arg uint32"
	}

	switch action {
	case emit.Read:
		return fmt.Sprintf("Read(in io.Reader, links *%[1]s.LinkStack, info %[1]s.Info%[2]s) error", rt, arg)
	case emit.Write:
		return fmt.Sprintf("Write(out io.Writer, linkMap %[1]s.LinkMap, missing *[]%[1]s.Object, info %[1]s.Info%[2]s) error", rt, arg)
	case emit.Describe:
		return fmt.Sprintf("Describe(verbose bool%s) string", arg)
	case emit.FixLinks:
		return fmt.Sprintf("FixLinks(objects %[1]s.ObjectMap, links *%[1]s.LinkStack, missing *[]%[1]s.Object, info %[1]s.Info%[2]s) error", rt, arg)
	case emit.GetRefs:
		return fmt.Sprintf("GetRefs() []%s.Object", rt)
	default:
		return fmt.Sprintf("GetPtrs() []%s.Object", rt)
	}
}

func methodDoc(action emit.Action, name string) string {
	switch action {
	case emit.Read:
		return "Read decodes a " + name + " from in. Block references are pushed onto links until FixLinks."
	case emit.Write:
		return "Write encodes the " + name + " to out."
	case emit.Describe:
		return "Describe lists the field values of the " + name + "."
	case emit.FixLinks:
		return "FixLinks replaces the block indices read by Read with the objects they name."
	case emit.GetRefs:
		return "GetRefs returns the objects the " + name + " owns."
	default:
		return "GetPtrs returns the objects the " + name + " refers to without owning them."
	}
}

var stdImports = []struct {
	path    string
	pattern *regexp.Regexp
}{
	{"fmt", regexp.MustCompile(`\bfmt\.`)},
	{"io", regexp.MustCompile(`\bio\.`)},
	{"strings", regexp.MustCompile(`\bstrings\.`)},
}

// importsFor lists the packages the generated parts of a file use. Region
// content is not scanned: hand-written code brings its own imports through
// the INCLUDE region.
func (g *Generator) importsFor(data *typeFileData) []importSpec {
	var sb strings.Builder

	sb.WriteString(data.Decl)
	sb.WriteString(data.Defaults)
	sb.WriteString(data.Accessors)

	for _, m := range data.Methods {
		sb.WriteString(m.Signature)
		sb.WriteString(m.Code)
	}

	text := sb.String()
	if data.Block {
		text += data.Runtime + ".Type"
	}

	var imports []importSpec

	for _, imp := range stdImports {
		if imp.pattern.MatchString(text) {
			imports = append(imports, importSpec{Path: imp.path})
		}
	}

	if regexp.MustCompile(`\b` + regexp.QuoteMeta(data.Runtime) + `\.`).MatchString(text) {
		imports = append(imports, importSpec{Alias: data.Runtime, Path: g.config.RuntimeImport})
	}

	sort.Slice(imports, func(i, j int) bool {
		return imports[i].Path < imports[j].Path
	})

	return imports
}

var typeFileTemplate = template.Must(template.New("type").Parse(`{{.Head}}
// Code generated by schemagen{{if .Source}} from {{.Source}}{{end}}. Edit only inside CUSTOM CODE regions.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{.Include}}
{{.Decl}}
{{- if .Block}}
// Type returns the runtime type of {{.Name}}.
func (x *{{.Receiver}}) Type() *{{.Runtime}}.Type {
	return Type{{.Name}}
}
{{end}}
// New{{.Name}} creates a {{.Name}} holding its schema defaults.
func New{{.Name}}{{.TypeParams}}() *{{.Receiver}} {
	x := &{{.Receiver}}{}
	x.applyDefaults()
{{.Constructor}}	return x
}

func (x *{{.Receiver}}) applyDefaults() {
{{.Defaults}}}

// Release drops what the {{.Name}} holds before it is discarded.
func (x *{{.Receiver}}) Release() {
{{.Destructor}}{{if .Parent}}	x.{{.Parent}}.Release()
{{end}}}
{{range .Methods}}
// {{.Doc}}
func (x *{{$.Receiver}}) {{.Signature}} {
{{.Pre}}{{.Code}}{{.Post}}	{{.Return}}
}
{{end}}
{{- if .Accessors}}
{{.Accessors}}{{end}}
{{.Misc}}
{{.Foot}}`))
