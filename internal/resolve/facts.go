package resolve

import (
	"errors"
	"fmt"
	"strings"

	"schemagen/internal/schema"
)

const (
	stateVisiting = 1
	stateDone     = 2
)

// computeFacts derives HasLinks, HasCrossrefs and HasArrays for t, its
// fields and everything it embeds. A type met again while still being
// visited contributes what is known so far, which keeps recursive
// compounds (reported separately) from looping.
func (r *Resolver) computeFacts(t *Type) {
	if r.state[t.ID] != 0 {
		return
	}

	r.state[t.ID] = stateVisiting

	if t.Parent != nil {
		r.computeFacts(t.Parent)
		t.HasLinks = t.Parent.HasLinks
		t.HasCrossrefs = t.Parent.HasCrossrefs
		t.HasArrays = t.Parent.HasArrays
	}

	for _, f := range t.Fields {
		switch f.Family {
		case schema.FamilyRef:
			f.HasLinks = true
		case schema.FamilyPtr:
			f.HasCrossrefs = true
		}

		if tgt := f.Target; tgt != nil {
			r.computeFacts(tgt)

			f.HasLinks = f.HasLinks || tgt.HasLinks
			f.HasCrossrefs = f.HasCrossrefs || tgt.HasCrossrefs

			// A templated compound carries whatever its argument carries.
			if tgt.Templated {
				switch r.templateFamily(f) {
				case schema.FamilyRef:
					f.HasLinks = true
				case schema.FamilyPtr:
					f.HasCrossrefs = true
				}
			}

			t.HasArrays = t.HasArrays || tgt.HasArrays
		}

		t.HasLinks = t.HasLinks || f.HasLinks
		t.HasCrossrefs = t.HasCrossrefs || f.HasCrossrefs
		t.HasArrays = t.HasArrays || f.IsArray()
	}

	r.state[t.ID] = stateDone
}

func (r *Resolver) templateFamily(f *Field) schema.Family {
	if f.Template < 0 {
		return 0
	}

	return r.ctx.Entity(f.Template).Info().Family
}

// orderCompounds sorts the generated compounds so each follows the ones it
// embeds by value, and reports by-value cycles: such a compound would have
// infinite size.
func (r *Resolver) orderCompounds() {
	var comps []*Type

	index := make(map[schema.TypeID]int)

	for _, t := range r.plan.Types {
		if t.Block == nil && !t.Native {
			index[t.ID] = len(comps)
			comps = append(comps, t)
		}
	}

	order, err := topoSort(len(comps), func(i int) []int {
		var deps []int

		for _, f := range comps[i].Fields {
			if f.Target == nil || f.Target.Block != nil || f.IsDuplicate {
				continue
			}

			if f.IsArray() && !f.IsStaticArray() {
				continue
			}

			if j, ok := index[f.Target.ID]; ok {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil {
		var names []string

		var ce *cycleError
		if errors.As(err, &ce) {
			for _, i := range ce.nodes {
				names = append(names, comps[i].Name)
			}
		}

		for _, name := range names {
			r.plan.Diagnostics.AddError(CodeRecursiveCompound,
				fmt.Sprintf("by-value composition cycle among %s", strings.Join(names, ", ")), name, "")
		}

		return
	}

	r.plan.Order = make([]*Type, 0, len(order))
	for _, i := range order {
		r.plan.Order = append(r.plan.Order, comps[i])
	}
}
