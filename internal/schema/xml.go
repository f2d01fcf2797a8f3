package schema

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// XML schema layout: <version>, <basic>, <enum>, <bitflags>, <compound>
// and <niobject> elements under one root, with <option> and <add> children.

type xmlFile struct {
	Versions  []xmlVersion  `xml:"version"`
	Basics    []xmlBasic    `xml:"basic"`
	Enums     []xmlEnum     `xml:"enum"`
	Bitflags  []xmlEnum     `xml:"bitflags"`
	Compounds []xmlCompound `xml:"compound"`
	Blocks    []xmlCompound `xml:"niobject"`
}

type xmlVersion struct {
	Num  string `xml:"num,attr"`
	Text string `xml:",chardata"`
}

type xmlBasic struct {
	Name     string `xml:"name,attr"`
	Count    string `xml:"count,attr"`
	Template string `xml:"istemplate,attr"`
	GoType   string `xml:"gotype,attr"`
	Family   string `xml:"family,attr"`
	Text     string `xml:",chardata"`
}

type xmlEnum struct {
	Name    string      `xml:"name,attr"`
	Storage string      `xml:"storage,attr"`
	Prefix  string      `xml:"prefix,attr"`
	Options []xmlOption `xml:"option"`
	Text    string      `xml:",chardata"`
}

type xmlOption struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
	Bit   string `xml:"bit,attr"`
	Text  string `xml:",chardata"`
}

type xmlCompound struct {
	Name     string     `xml:"name,attr"`
	Inherit  string     `xml:"inherit,attr"`
	Abstract string     `xml:"abstract,attr"`
	Template string     `xml:"istemplate,attr"`
	Fields   []xmlField `xml:"add"`
	Text     string     `xml:",chardata"`
}

type xmlField struct {
	Name       string `xml:"name,attr"`
	Suffix     string `xml:"suffix,attr"`
	Type       string `xml:"type,attr"`
	Template   string `xml:"template,attr"`
	Arg        string `xml:"arg,attr"`
	Arr1       string `xml:"arr1,attr"`
	Arr2       string `xml:"arr2,attr"`
	Cond       string `xml:"cond,attr"`
	VerCond    string `xml:"vercond,attr"`
	Ver1       string `xml:"ver1,attr"`
	Ver2       string `xml:"ver2,attr"`
	UserVer    string `xml:"userver,attr"`
	UserVer2   string `xml:"userver2,attr"`
	Default    string `xml:"default,attr"`
	Function   string `xml:"function,attr"`
	Public     string `xml:"public,attr"`
	Abstract   string `xml:"abstract,attr"`
	Calculated string `xml:"calculated,attr"`
	Text       string `xml:",chardata"`
}

func decodeXML(data []byte) (*document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}

	var f xmlFile

	dec := xml.NewDecoder(bytes.NewReader(data))
	// Schema files commonly carry a DOCTYPE and non-UTF-8 declarations.
	dec.Strict = false
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse schema XML: %w", err)
	}

	doc := &document{}

	for _, v := range f.Versions {
		doc.Versions = append(doc.Versions, versionDoc{Num: v.Num, Description: text(v.Text)})
	}

	for _, b := range f.Basics {
		doc.Basics = append(doc.Basics, basicDoc{
			Name:        b.Name,
			Description: text(b.Text),
			Count:       b.Count,
			GoType:      b.GoType,
			Family:      b.Family,
			Template:    flag(b.Template),
		})
	}

	doc.Enums = xmlEnums(f.Enums, false)
	doc.Bitflags = xmlEnums(f.Bitflags, true)
	doc.Compounds = xmlCompounds(f.Compounds)
	doc.Blocks = xmlCompounds(f.Blocks)

	return doc, nil
}

func xmlEnums(in []xmlEnum, bits bool) []enumDoc {
	out := make([]enumDoc, 0, len(in))

	for _, e := range in {
		ed := enumDoc{Name: e.Name, Storage: e.Storage, Prefix: e.Prefix, Description: text(e.Text)}
		for _, o := range e.Options {
			value := o.Value
			if bits && o.Bit != "" {
				value = o.Bit
			}

			ed.Options = append(ed.Options, optionDoc{Name: o.Name, Value: value, Description: text(o.Text)})
		}

		out = append(out, ed)
	}

	return out
}

func xmlCompounds(in []xmlCompound) []compoundDoc {
	out := make([]compoundDoc, 0, len(in))

	for _, c := range in {
		cd := compoundDoc{
			Name:        c.Name,
			Description: text(c.Text),
			Inherit:     c.Inherit,
			Abstract:    flag(c.Abstract),
			Template:    flag(c.Template),
		}

		for _, a := range c.Fields {
			cd.Fields = append(cd.Fields, fieldDoc{
				Name:        a.Name,
				Suffix:      a.Suffix,
				Type:        a.Type,
				Template:    a.Template,
				Arg:         a.Arg,
				Arr1:        a.Arr1,
				Arr2:        a.Arr2,
				Cond:        a.Cond,
				VerCond:     a.VerCond,
				Ver1:        a.Ver1,
				Ver2:        a.Ver2,
				UserVer:     a.UserVer,
				UserVer2:    a.UserVer2,
				Default:     a.Default,
				Function:    a.Function,
				Description: text(a.Text),
				Public:      flag(a.Public),
				Abstract:    flag(a.Abstract),
				Calculated:  flag(a.Calculated),
			})
		}

		out = append(out, cd)
	}

	return out
}

func flag(s string) bool {
	return s == "1" || strings.EqualFold(s, "true")
}

func text(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
