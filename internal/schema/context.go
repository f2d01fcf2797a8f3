package schema

import "fmt"

// Context is the type registry built by the loader. It is read-only after
// loading apart from SetManualUpdate.
type Context struct {
	types  []Entity
	byName map[string]TypeID

	basics    []TypeID
	enums     []TypeID
	compounds []TypeID
	blocks    []TypeID
	versions  []Version
}

func newContext() *Context {
	return &Context{byName: make(map[string]TypeID)}
}

// add registers an entity, assigning its ID. Names are unique across every
// category.
func (c *Context) add(e Entity) error {
	info := e.Info()
	if info.Name == "" {
		return loadErr("", "", fmt.Sprintf("%s without a name", e.Kind()), nil)
	}

	if info.Name == TemplateName {
		return loadErr(info.Name, "", "name is reserved", nil)
	}

	if prev, ok := c.byName[info.Name]; ok {
		return loadErr(info.Name, "", fmt.Sprintf("%s name collides with %s",
			e.Kind(), c.types[prev].Kind()), nil)
	}

	info.ID = TypeID(len(c.types))
	c.types = append(c.types, e)
	c.byName[info.Name] = info.ID

	switch e.Kind() {
	case KindBasic:
		c.basics = append(c.basics, info.ID)
	case KindEnum, KindFlag:
		c.enums = append(c.enums, info.ID)
	case KindCompound:
		c.compounds = append(c.compounds, info.ID)
	case KindBlock:
		c.blocks = append(c.blocks, info.ID)
	}

	return nil
}

// Len returns the number of registered entities.
func (c *Context) Len() int { return len(c.types) }

// Entity returns the entity with the given ID, or nil for NoType and
// TemplateParam.
func (c *Context) Entity(id TypeID) Entity {
	if id < 0 || int(id) >= len(c.types) {
		return nil
	}

	return c.types[id]
}

// Lookup finds an entity by schema name.
func (c *Context) Lookup(name string) (Entity, bool) {
	id, ok := c.byName[name]
	if !ok {
		return nil, false
	}

	return c.types[id], true
}

// Name returns the schema name of id.
func (c *Context) Name(id TypeID) string {
	switch id {
	case NoType:
		return ""
	case TemplateParam:
		return TemplateName
	}

	if e := c.Entity(id); e != nil {
		return e.Info().Name
	}

	return ""
}

// HasBlock reports whether name is a declared block.
func (c *Context) HasBlock(name string) bool {
	e, ok := c.Lookup(name)
	return ok && e.Kind() == KindBlock
}

// Basics returns the basics in declaration order.
func (c *Context) Basics() []*Basic {
	out := make([]*Basic, 0, len(c.basics))
	for _, id := range c.basics {
		out = append(out, c.types[id].(*Basic))
	}

	return out
}

// Enums returns enums and flags in declaration order (enums first).
func (c *Context) Enums() []Entity {
	out := make([]Entity, 0, len(c.enums))
	for _, id := range c.enums {
		out = append(out, c.types[id])
	}

	return out
}

// Compounds returns the compounds in declaration order.
func (c *Context) Compounds() []*Compound {
	out := make([]*Compound, 0, len(c.compounds))
	for _, id := range c.compounds {
		out = append(out, c.types[id].(*Compound))
	}

	return out
}

// Blocks returns the blocks in declaration order.
func (c *Context) Blocks() []*Block {
	out := make([]*Block, 0, len(c.blocks))
	for _, id := range c.blocks {
		out = append(out, c.types[id].(*Block))
	}

	return out
}

// Versions returns the declared versions in document order.
func (c *Context) Versions() []Version {
	return c.versions
}

// Parent returns the block b inherits from, or nil.
func (c *Context) Parent(b *Block) *Block {
	if b.Inherit == NoType {
		return nil
	}

	return c.types[b.Inherit].(*Block)
}

// Ancestors returns the inheritance chain of b, root first, excluding b.
func (c *Context) Ancestors(b *Block) []*Block {
	var chain []*Block
	for p := c.Parent(b); p != nil; p = c.Parent(p) {
		chain = append(chain, p)
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain
}

// FieldsOf returns the declared fields of a compound or block.
func (c *Context) FieldsOf(id TypeID) []*Field {
	if comp, ok := AsCompound(c.Entity(id)); ok {
		return comp.Fields
	}

	return nil
}

// FindField returns the first field named name in type id. With inherit
// set, ancestors are searched from the nearest parent up.
func (c *Context) FindField(id TypeID, name string, inherit bool) (*Field, bool) {
	for e := c.Entity(id); e != nil; {
		comp, ok := AsCompound(e)
		if !ok {
			return nil, false
		}

		for _, f := range comp.Fields {
			if f.Name == name {
				return f, true
			}
		}

		b, isBlock := e.(*Block)
		if !inherit || !isBlock || b.Inherit == NoType {
			return nil, false
		}

		e = c.types[b.Inherit]
	}

	return nil, false
}

// SetManualUpdate marks a field as maintained by hand-written code, so its
// value is never recomputed before writing. Every field of that name in
// the type is affected.
func (c *Context) SetManualUpdate(typeName, fieldName string, manual bool) error {
	e, ok := c.Lookup(typeName)
	if !ok {
		return fmt.Errorf("manual update: unknown type %q", typeName)
	}

	comp, ok := AsCompound(e)
	if !ok {
		return fmt.Errorf("manual update: %s %q has no fields", e.Kind(), typeName)
	}

	found := false

	for _, f := range comp.Fields {
		if f.Name == fieldName {
			f.ManualUpdate = manual
			found = true
		}
	}

	if !found {
		return fmt.Errorf("manual update: type %q has no field %q", typeName, fieldName)
	}

	return nil
}
