package app

import (
	"context"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"schemagen/internal/resolve"
)

// planDump is the JSON view of a resolved plan.
type planDump struct {
	Types       []typeDump       `json:"types"`
	Diagnostics []diagnosticDump `json:"diagnostics,omitempty"`
}

type typeDump struct {
	Name         string      `json:"name"`
	GoName       string      `json:"go_name"`
	Kind         string      `json:"kind"`
	Parent       string      `json:"parent,omitempty"`
	Abstract     bool        `json:"abstract,omitzero"`
	Templated    bool        `json:"templated,omitzero"`
	Argument     bool        `json:"argument,omitzero"`
	HasLinks     bool        `json:"has_links,omitzero"`
	HasCrossrefs bool        `json:"has_crossrefs,omitzero"`
	HasArrays    bool        `json:"has_arrays,omitzero"`
	Fields       []fieldDump `json:"fields,omitempty"`
}

type fieldDump struct {
	Name        string   `json:"name"`
	GoName      string   `json:"go_name"`
	Type        string   `json:"type"`
	Template    string   `json:"template,omitempty"`
	Arr1        string   `json:"arr1,omitempty"`
	Arr2        string   `json:"arr2,omitempty"`
	Cond        string   `json:"cond,omitempty"`
	VerCond     string   `json:"vercond,omitempty"`
	Duplicate   bool     `json:"duplicate,omitzero"`
	Arr2Dynamic bool     `json:"arr2_dynamic,omitzero"`
	Arr1Ref     []string `json:"arr1_ref,omitempty"`
	Arr2Ref     []string `json:"arr2_ref,omitempty"`
	CondRef     []string `json:"cond_ref,omitempty"`
	Default     []string `json:"default,omitempty"`
}

type diagnosticDump struct {
	Severity string   `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Type     string   `json:"type,omitempty"`
	Field    string   `json:"field,omitempty"`
	Suggest  []string `json:"suggestions,omitempty"`
}

func newPlanDump(plan *resolve.Plan) planDump {
	var d planDump

	for _, t := range plan.Types {
		if t.Native {
			continue
		}

		td := typeDump{
			Name:         t.Name,
			GoName:       t.GoName,
			Kind:         "compound",
			Abstract:     t.Abstract(),
			Templated:    t.Templated,
			Argument:     t.Argument,
			HasLinks:     t.HasLinks,
			HasCrossrefs: t.HasCrossrefs,
			HasArrays:    t.HasArrays,
		}

		if t.IsBlock() {
			td.Kind = "block"
		}

		if t.Parent != nil {
			td.Parent = t.Parent.Name
		}

		for _, f := range t.Fields {
			td.Fields = append(td.Fields, fieldDump{
				Name:        f.Name,
				GoName:      f.GoName,
				Type:        f.TypeName,
				Template:    f.TemplateName,
				Arr1:        f.Arr1.String(),
				Arr2:        f.Arr2.String(),
				Cond:        f.Cond.String(),
				VerCond:     f.VerCond.String(),
				Duplicate:   f.IsDuplicate,
				Arr2Dynamic: f.Arr2Dynamic,
				Arr1Ref:     f.Arr1Ref,
				Arr2Ref:     f.Arr2Ref,
				CondRef:     f.CondRef,
				Default:     f.Default.Values,
			})
		}

		d.Types = append(d.Types, td)
	}

	for _, diag := range plan.Diagnostics.All() {
		d.Diagnostics = append(d.Diagnostics, diagnosticDump{
			Severity: diag.Severity.String(),
			Code:     diag.Code,
			Message:  diag.Message,
			Type:     diag.TypeName,
			Field:    diag.FieldName,
			Suggest:  diag.Suggestions,
		})
	}

	return d
}

// Dump resolves the schema and writes the plan to w as indented JSON.
// A plan with error diagnostics is still written, followed by the error.
func (a *App) Dump(ctx context.Context, w io.Writer) error {
	plan, resolveErr := a.Resolve(ctx)
	if plan == nil {
		return resolveErr
	}

	if err := json.MarshalWrite(w, newPlanDump(plan), jsontext.WithIndent("  ")); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	return resolveErr
}
