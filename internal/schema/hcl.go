package schema

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// HCL schema layout:
//
//	version "20.0.0.5" { description = "..." }
//	basic "ushort" { description = "..." }
//	enum "AlphaFormat" {
//	  storage = "uint"
//	  option "ALPHA_NONE" { value = 0 }
//	}
//	niobject "NiNode" {
//	  inherit = "NiAVObject"
//	  field "Num Children" { type = "uint" }
//	  field "Children" {
//	    type     = "Ref"
//	    template = "NiAVObject"
//	    arr1     = "Num Children"
//	  }
//	}

type hclFile struct {
	Versions  []*hclVersion  `hcl:"version,block"`
	Basics    []*hclBasic    `hcl:"basic,block"`
	Enums     []*hclEnum     `hcl:"enum,block"`
	Bitflags  []*hclEnum     `hcl:"bitflags,block"`
	Compounds []*hclCompound `hcl:"compound,block"`
	Blocks    []*hclCompound `hcl:"niobject,block"`
}

type hclVersion struct {
	Num         string `hcl:"num,label"`
	Description string `hcl:"description,optional"`
}

type hclBasic struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
	Count       string `hcl:"count,optional"`
	GoType      string `hcl:"gotype,optional"`
	Family      string `hcl:"family,optional"`
	Template    bool   `hcl:"template,optional"`
}

type hclEnum struct {
	Name        string       `hcl:"name,label"`
	Storage     string       `hcl:"storage"`
	Prefix      string       `hcl:"prefix,optional"`
	Description string       `hcl:"description,optional"`
	Options     []*hclOption `hcl:"option,block"`
}

type hclOption struct {
	Name        string `hcl:"name,label"`
	Value       string `hcl:"value"`
	Description string `hcl:"description,optional"`
}

type hclCompound struct {
	Name        string      `hcl:"name,label"`
	Description string      `hcl:"description,optional"`
	Inherit     string      `hcl:"inherit,optional"`
	Abstract    bool        `hcl:"abstract,optional"`
	Template    bool        `hcl:"template,optional"`
	Fields      []*hclField `hcl:"field,block"`
}

type hclField struct {
	Name        string `hcl:"name,label"`
	Type        string `hcl:"type"`
	Suffix      string `hcl:"suffix,optional"`
	Template    string `hcl:"template,optional"`
	Arg         string `hcl:"arg,optional"`
	Arr1        string `hcl:"arr1,optional"`
	Arr2        string `hcl:"arr2,optional"`
	Cond        string `hcl:"cond,optional"`
	VerCond     string `hcl:"vercond,optional"`
	Ver1        string `hcl:"ver1,optional"`
	Ver2        string `hcl:"ver2,optional"`
	UserVer     string `hcl:"userver,optional"`
	UserVer2    string `hcl:"userver2,optional"`
	Default     string `hcl:"default,optional"`
	Function    string `hcl:"function,optional"`
	Description string `hcl:"description,optional"`
	Public      bool   `hcl:"public,optional"`
	Abstract    bool   `hcl:"abstract,optional"`
	Calculated  bool   `hcl:"calculated,optional"`
}

func decodeHCL(data []byte, filename string) (*document, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclFile

	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	doc := &document{}

	for _, v := range parsed.Versions {
		doc.Versions = append(doc.Versions, versionDoc{Num: v.Num, Description: v.Description})
	}

	for _, b := range parsed.Basics {
		doc.Basics = append(doc.Basics, basicDoc{
			Name:        b.Name,
			Description: b.Description,
			Count:       b.Count,
			GoType:      b.GoType,
			Family:      b.Family,
			Template:    b.Template,
		})
	}

	doc.Enums = hclEnums(parsed.Enums)
	doc.Bitflags = hclEnums(parsed.Bitflags)
	doc.Compounds = hclCompounds(parsed.Compounds)
	doc.Blocks = hclCompounds(parsed.Blocks)

	return doc, nil
}

func hclEnums(in []*hclEnum) []enumDoc {
	out := make([]enumDoc, 0, len(in))

	for _, e := range in {
		ed := enumDoc{Name: e.Name, Storage: e.Storage, Prefix: e.Prefix, Description: e.Description}
		for _, o := range e.Options {
			ed.Options = append(ed.Options, optionDoc{Name: o.Name, Value: o.Value, Description: o.Description})
		}

		out = append(out, ed)
	}

	return out
}

func hclCompounds(in []*hclCompound) []compoundDoc {
	out := make([]compoundDoc, 0, len(in))

	for _, c := range in {
		cd := compoundDoc{
			Name:        c.Name,
			Description: c.Description,
			Inherit:     c.Inherit,
			Abstract:    c.Abstract,
			Template:    c.Template,
		}

		for _, f := range c.Fields {
			cd.Fields = append(cd.Fields, fieldDoc{
				Name:        f.Name,
				Suffix:      f.Suffix,
				Type:        f.Type,
				Template:    f.Template,
				Arg:         f.Arg,
				Arr1:        f.Arr1,
				Arr2:        f.Arr2,
				Cond:        f.Cond,
				VerCond:     f.VerCond,
				Ver1:        f.Ver1,
				Ver2:        f.Ver2,
				UserVer:     f.UserVer,
				UserVer2:    f.UserVer2,
				Default:     f.Default,
				Function:    f.Function,
				Description: f.Description,
				Public:      f.Public,
				Abstract:    f.Abstract,
				Calculated:  f.Calculated,
			})
		}

		out = append(out, cd)
	}

	return out
}
