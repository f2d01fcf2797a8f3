package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// document is the format-independent shape every loader decodes into.
// The YAML format maps onto it directly.
type document struct {
	Versions  []versionDoc  `yaml:"versions"`
	Basics    []basicDoc    `yaml:"basics"`
	Enums     []enumDoc     `yaml:"enums"`
	Bitflags  []enumDoc     `yaml:"bitflags"`
	Compounds []compoundDoc `yaml:"compounds"`
	Blocks    []compoundDoc `yaml:"blocks"`
}

type versionDoc struct {
	Num         string `yaml:"num"`
	Description string `yaml:"description"`
}

type basicDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Count       string `yaml:"count"`
	// GoType and Family declare a basic unknown to the built-in table.
	GoType   string `yaml:"gotype"`
	Family   string `yaml:"family"`
	Template bool   `yaml:"template"`
}

type enumDoc struct {
	Name        string      `yaml:"name"`
	Storage     string      `yaml:"storage"`
	Prefix      string      `yaml:"prefix"`
	Description string      `yaml:"description"`
	Options     []optionDoc `yaml:"options"`
}

type optionDoc struct {
	Name string `yaml:"name"`
	// Value is the literal for enums and the bit position for bitflags.
	Value       string `yaml:"value"`
	Description string `yaml:"description"`
}

type compoundDoc struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Inherit     string     `yaml:"inherit"`
	Abstract    bool       `yaml:"abstract"`
	Template    bool       `yaml:"template"`
	Fields      []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name        string `yaml:"name"`
	Suffix      string `yaml:"suffix"`
	Type        string `yaml:"type"`
	Template    string `yaml:"template"`
	Arg         string `yaml:"arg"`
	Arr1        string `yaml:"arr1"`
	Arr2        string `yaml:"arr2"`
	Cond        string `yaml:"cond"`
	VerCond     string `yaml:"vercond"`
	Ver1        string `yaml:"ver1"`
	Ver2        string `yaml:"ver2"`
	UserVer     string `yaml:"userver"`
	UserVer2    string `yaml:"userver2"`
	Default     string `yaml:"default"`
	Function    string `yaml:"function"`
	Description string `yaml:"description"`
	Public      bool   `yaml:"public"`
	Abstract    bool   `yaml:"abstract"`
	Calculated  bool   `yaml:"calculated"`
}

// build turns a decoded document into a Context. Categories are registered
// in a fixed order (versions, basics, enums, bitflags, compounds, blocks);
// field types are resolved afterwards so compounds may reference each other
// in any order.
func build(doc *document) (*Context, error) {
	c := newContext()

	for _, v := range doc.Versions {
		num, err := ParseVersion(v.Num)
		if err != nil {
			return nil, loadErr("", "", "version", err)
		}

		c.versions = append(c.versions, Version{Num: num, Text: v.Num, Description: v.Description})
	}

	for _, bd := range doc.Basics {
		b, err := newBasic(bd)
		if err != nil {
			return nil, err
		}

		if err := c.add(b); err != nil {
			return nil, err
		}
	}

	for _, ed := range doc.Enums {
		e, err := newEnum(c, ed, false)
		if err != nil {
			return nil, err
		}

		if err := c.add(e); err != nil {
			return nil, err
		}
	}

	for _, ed := range doc.Bitflags {
		e, err := newEnum(c, ed, true)
		if err != nil {
			return nil, err
		}

		if err := c.add(&Flag{Enum: *e}); err != nil {
			return nil, err
		}
	}

	var pending []pendingFields

	for _, cd := range doc.Compounds {
		comp := &Compound{TypeInfo: TypeInfo{
			Name:        cd.Name,
			Description: cd.Description,
			Template:    cd.Template,
			Family:      FamilyStruct,
		}}
		if nt, ok := LookupNative(cd.Name); ok {
			comp.Native = nt
		}

		if err := c.add(comp); err != nil {
			return nil, err
		}

		pending = append(pending, pendingFields{owner: comp.ID, comp: comp, docs: cd.Fields})
	}

	for _, bd := range doc.Blocks {
		blk := &Block{
			Compound: Compound{TypeInfo: TypeInfo{
				Name:        bd.Name,
				Description: bd.Description,
				Family:      FamilyStruct,
			}},
			Inherit:  NoType,
			Abstract: bd.Abstract,
		}

		if bd.Inherit != "" {
			parent, ok := c.Lookup(bd.Inherit)
			if !ok || parent.Kind() != KindBlock {
				return nil, loadErr(bd.Name, "",
					fmt.Sprintf("inherits %q which is not a previously declared block", bd.Inherit), nil)
			}

			blk.Inherit = parent.Info().ID
		}

		if err := c.add(blk); err != nil {
			return nil, err
		}

		pending = append(pending, pendingFields{owner: blk.ID, comp: &blk.Compound, docs: bd.Fields})
	}

	for _, p := range pending {
		if err := p.resolve(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func newBasic(bd basicDoc) (*Basic, error) {
	b := &Basic{TypeInfo: TypeInfo{
		Name:        bd.Name,
		Description: bd.Description,
		Count:       bd.Count,
		Template:    bd.Template,
		Family:      FamilyInteger,
	}}

	if nt, ok := LookupNative(bd.Name); ok {
		b.Native = nt
		b.Family = nt.Family
	}

	if bd.Family != "" {
		f, ok := ParseFamily(bd.Family)
		if !ok {
			return nil, loadErr(bd.Name, "", fmt.Sprintf("unknown family %q", bd.Family), nil)
		}

		b.Family = f
	}

	if bd.GoType != "" {
		b.Native = &NativeType{GoType: bd.GoType, Family: b.Family}
	}

	if b.Native == nil {
		// Unknown basics are stored as plain unsigned integers.
		b.Native = &NativeType{GoType: "uint32", Family: b.Family}
	}

	return b, nil
}

func newEnum(c *Context, ed enumDoc, flags bool) (*Enum, error) {
	storage, ok := c.Lookup(ed.Storage)
	if !ok || storage.Kind() != KindBasic {
		return nil, loadErr(ed.Name, "", fmt.Sprintf("storage %q is not a declared basic", ed.Storage), nil)
	}

	e := &Enum{
		TypeInfo: TypeInfo{Name: ed.Name, Description: ed.Description, Family: FamilyEnum},
		Storage:  storage.Info().ID,
		Prefix:   ed.Prefix,
	}

	for _, od := range ed.Options {
		n, err := strconv.ParseInt(strings.TrimSpace(od.Value), 0, 64)
		if err != nil {
			return nil, loadErr(ed.Name, "", fmt.Sprintf("option %q value", od.Name), err)
		}

		name := od.Name
		if ed.Prefix != "" {
			name = ed.Prefix + "_" + name
		}

		opt := Option{Name: name, Value: n, Description: od.Description}
		if opt.Description == "" {
			opt.Description = od.Name
		}

		if flags {
			if n < 0 || n > 63 {
				return nil, loadErr(ed.Name, "", fmt.Sprintf("option %q bit %d out of range", od.Name, n), nil)
			}

			opt.Bit = int(n)
			opt.Value = 1 << n
		}

		e.Options = append(e.Options, opt)
	}

	return e, nil
}

type pendingFields struct {
	owner TypeID
	comp  *Compound
	docs  []fieldDoc
}

func (p pendingFields) resolve(c *Context) error {
	for i, fd := range p.docs {
		f, err := newField(c, p.comp.Name, fd)
		if err != nil {
			return err
		}

		f.Owner = p.owner
		f.Index = i
		p.comp.Fields = append(p.comp.Fields, f)

		if usesArgument(fd) {
			p.comp.Argument = true
		}
	}

	return nil
}

func newField(c *Context, owner string, fd fieldDoc) (*Field, error) {
	f := &Field{
		Name:         fd.Name,
		Suffix:       fd.Suffix,
		TypeName:     fd.Type,
		TemplateName: fd.Template,
		Template:     NoType,
		Arg:          fd.Arg,
		Arr1:         strings.TrimSpace(fd.Arr1),
		Arr2:         strings.TrimSpace(fd.Arr2),
		Cond:         strings.TrimSpace(fd.Cond),
		VerCond:      strings.TrimSpace(fd.VerCond),
		Default:      fd.Default,
		Function:     fd.Function,
		Description:  strings.TrimSpace(fd.Description),
		Public:       fd.Public,
		Abstract:     fd.Abstract,
		Calculated:   fd.Calculated,
	}

	if f.Name == "" {
		return nil, loadErr(owner, "", "field without a name", nil)
	}

	var err error

	if f.Type, err = resolveTypeRef(c, fd.Type); err != nil {
		return nil, loadErr(owner, f.Name, "type", err)
	}

	if fd.Template != "" {
		if f.Template, err = resolveTypeRef(c, fd.Template); err != nil {
			return nil, loadErr(owner, f.Name, "template", err)
		}
	}

	if fd.Ver1 != "" {
		if f.Ver1, err = ParseVersion(fd.Ver1); err != nil {
			return nil, loadErr(owner, f.Name, "ver1", err)
		}
	}

	if fd.Ver2 != "" {
		if f.Ver2, err = ParseVersion(fd.Ver2); err != nil {
			return nil, loadErr(owner, f.Name, "ver2", err)
		}
	}

	if f.UserVer, err = ParseUserVersion(fd.UserVer); err != nil {
		return nil, loadErr(owner, f.Name, "userver", err)
	}

	if f.UserVer2, err = ParseUserVersion(fd.UserVer2); err != nil {
		return nil, loadErr(owner, f.Name, "userver2", err)
	}

	if f.Description == "" && strings.HasPrefix(strings.ToLower(f.Name), "unk") {
		f.Description = "Unknown."
	}

	return f, nil
}

func resolveTypeRef(c *Context, name string) (TypeID, error) {
	if name == TemplateName {
		return TemplateParam, nil
	}

	e, ok := c.Lookup(name)
	if !ok {
		return NoType, fmt.Errorf("unknown type %q", name)
	}

	return e.Info().ID, nil
}

// usesArgument reports whether a field's sizing or condition reads ARG.
func usesArgument(fd fieldDoc) bool {
	for _, s := range []string{fd.Arr1, fd.Arr2, fd.Cond} {
		if mentionsArg(s) {
			return true
		}
	}

	return false
}

func mentionsArg(s string) bool {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune("()!=<>&|+-*/", r)
	})

	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "ARG" {
			return true
		}
	}

	return false
}
