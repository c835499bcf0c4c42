package drawing

import (
	"maps"
	"slices"
)

// DefaultBlockName is the reserved block used as a fallback target for
// unresolved or anonymous block references during bounds computation.
const DefaultBlockName = "*Model_Space"

// Block is a named, reusable group of entities.
type Block struct {
	Name     string
	Entities []Entity
}

// Library maps block names to blocks.
type Library map[string]*Block

// Lookup returns the block with exactly the given name.
func (l Library) Lookup(name string) (*Block, bool) {
	if l == nil || name == "" {
		return nil, false
	}
	b, ok := l[name]
	if !ok || b == nil {
		return nil, false
	}
	return b, true
}

// Resolve looks the name up and falls back to [DefaultBlockName] when the
// name is empty or unknown.
func (l Library) Resolve(name string) (*Block, bool) {
	if b, ok := l.Lookup(name); ok {
		return b, true
	}
	return l.Lookup(DefaultBlockName)
}

// Names returns the block names in sorted order.
func (l Library) Names() []string {
	return slices.Sorted(maps.Keys(l))
}

// Model is a complete drawing: top-level entities plus the block library.
type Model struct {
	Entities []Entity
	Blocks   Library
}

// Flatten returns the entity list a preview renders: the top-level
// entities, then the default block's entities, then the entities of every
// block in name order. The default block is visited by both of the last two
// steps, so its entities appear twice.
func (m *Model) Flatten() []Entity {
	if m == nil {
		return nil
	}
	out := make([]Entity, 0, len(m.Entities))
	out = append(out, m.Entities...)
	if b, ok := m.Blocks.Lookup(DefaultBlockName); ok {
		out = append(out, b.Entities...)
	}
	for _, name := range m.Blocks.Names() {
		if b := m.Blocks[name]; b != nil {
			out = append(out, b.Entities...)
		}
	}
	return out
}

// Stats summarizes a model for display.
type Stats struct {
	Entities int          // top-level entity count
	Blocks   int          // block count
	ByKind   map[Kind]int // counts over top-level and block entities
	Hidden   int          // hidden entities over top-level and block entities
}

// Stats counts entities by kind across the top level and all blocks.
func (m *Model) Stats() Stats {
	s := Stats{ByKind: make(map[Kind]int)}
	if m == nil {
		return s
	}
	s.Entities = len(m.Entities)
	s.Blocks = len(m.Blocks)
	count := func(es []Entity) {
		for _, e := range es {
			if e == nil {
				continue
			}
			s.ByKind[e.Kind()]++
			if !e.Visible() {
				s.Hidden++
			}
		}
	}
	count(m.Entities)
	for _, b := range m.Blocks {
		if b != nil {
			count(b.Entities)
		}
	}
	return s
}

// Reference is one INSERT edge from a block (or the model root) to a block.
type Reference struct {
	From  string // block name, or "" for top-level entities
	To    string // referenced block name as written in the INSERT
	Count int    // number of INSERT entities with this From/To pair
}

// References lists the block references made by the model, grouped by
// source and target and sorted for stable output.
func (m *Model) References() []Reference {
	if m == nil {
		return nil
	}
	counts := make(map[[2]string]int)
	collect := func(from string, es []Entity) {
		for _, e := range es {
			if ins, ok := e.(*Insert); ok {
				counts[[2]string{from, ins.Block}]++
			}
		}
	}
	collect("", m.Entities)
	for name, b := range m.Blocks {
		if b != nil {
			collect(name, b.Entities)
		}
	}
	refs := make([]Reference, 0, len(counts))
	for k, n := range counts {
		refs = append(refs, Reference{From: k[0], To: k[1], Count: n})
	}
	slices.SortFunc(refs, func(a, b Reference) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		if a.To < b.To {
			return -1
		}
		if a.To > b.To {
			return 1
		}
		return 0
	})
	return refs
}
