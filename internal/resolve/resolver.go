package resolve

import (
	"errors"
	"fmt"

	"schemagen/internal/diagnostic"
	"schemagen/internal/naming"
	"schemagen/internal/schema"
)

// Resolver performs the resolution pipeline.
type Resolver struct {
	ctx    *schema.Context
	config Config
	plan   *Plan
	// state tracks the transitive fact pass: 1 visiting, 2 done.
	state map[schema.TypeID]int
}

// NewResolver creates a new Resolver.
func NewResolver(ctx *schema.Context, config Config) *Resolver {
	return &Resolver{
		ctx:    ctx,
		config: config,
		state:  make(map[schema.TypeID]int),
	}
}

// Resolve annotates every compound and block. The plan is returned even on
// failure so callers can report its diagnostics; the error is non-nil when
// any error diagnostic was recorded.
func (r *Resolver) Resolve() (*Plan, error) {
	if r.ctx == nil {
		return nil, errors.New("schema context is required")
	}

	r.plan = &Plan{
		Context: r.ctx,
		byID:    make(map[schema.TypeID]*Type),
	}

	// First pass: create every type so field targets and parents resolve
	// regardless of declaration order.
	for _, c := range r.ctx.Compounds() {
		r.addType(c, nil)
	}

	for _, b := range r.ctx.Blocks() {
		r.addType(&b.Compound, b)
	}

	for _, t := range r.plan.Types {
		if t.Block != nil && t.Block.Inherit != schema.NoType {
			t.Parent = r.plan.byID[t.Block.Inherit]
		}
	}

	// Blocks follow their parents in declaration order, so inherited
	// fields are resolved before any child refers to them.
	for _, t := range r.plan.Types {
		r.resolveFields(t)
	}

	for _, t := range r.plan.Types {
		r.computeFacts(t)
	}

	r.orderCompounds()

	if r.plan.Diagnostics.HasErrors() {
		return r.plan, fmt.Errorf("resolution failed: %w", r.plan.Diagnostics.Error())
	}

	return r.plan, nil
}

func (r *Resolver) addType(c *schema.Compound, b *schema.Block) {
	t := &Type{
		ID:       c.ID,
		Name:     c.Name,
		GoName:   naming.Ident(c.Name),
		Compound: c,
		Block:    b,
		Argument: c.Argument,
		Native:   c.IsNative(),
		byName:   make(map[string]int),
	}

	t.Templated = c.Template
	for _, f := range c.Fields {
		if f.Type == schema.TemplateParam || f.Template == schema.TemplateParam {
			t.Templated = true
		}
	}

	r.plan.Types = append(r.plan.Types, t)
	r.plan.byID[t.ID] = t
}

func (r *Resolver) severity(strict bool) diagnostic.Severity {
	if strict {
		return diagnostic.SeverityError
	}

	return diagnostic.SeverityWarning
}
