package slots

import "sort"

// Registry is the static slot catalog and its symmetric conflict graph.
type Registry struct {
	families  map[Family]*familyGrid
	conflicts map[string]map[string]struct{}
	cells     map[string][]Cell
	catalog   map[Category][]string
	assoc     map[string][]string
}

// NewRegistry builds the catalog for both timing families.
func NewRegistry() *Registry {
	r := &Registry{
		families:  make(map[Family]*familyGrid),
		conflicts: make(map[string]map[string]struct{}),
		cells:     make(map[string][]Cell),
		catalog:   make(map[Category][]string),
		assoc:     make(map[string][]string),
	}
	for _, f := range Families {
		g := newFamilyGrid(f)
		r.families[f] = g
		r.index(g)
		for _, p := range g.pairs {
			r.link(p.A, p.B)
		}
	}
	r.buildAssociations()
	return r
}

// index records cell positions and the per-category catalog in grid order.
func (r *Registry) index(g *familyGrid) {
	for day, row := range g.theory {
		for col, slot := range row {
			r.add(slot, Cell{Day: Weekdays[day], Family: g.family, Kind: TheoryCell, Column: col})
		}
	}
	for day, row := range g.labs {
		for col, slot := range row {
			r.add(slot, Cell{Day: Weekdays[day], Family: g.family, Kind: LabCell, Column: col})
		}
	}
}

func (r *Registry) add(slot string, cell Cell) {
	if _, seen := r.cells[slot]; !seen {
		cat := CategoryOf(slot)
		r.catalog[cat] = append(r.catalog[cat], slot)
	}
	r.cells[slot] = append(r.cells[slot], cell)
}

func (r *Registry) link(a, b string) {
	if r.conflicts[a] == nil {
		r.conflicts[a] = make(map[string]struct{})
	}
	if r.conflicts[b] == nil {
		r.conflicts[b] = make(map[string]struct{})
	}
	r.conflicts[a][b] = struct{}{}
	r.conflicts[b][a] = struct{}{}
}

// Known reports whether slot appears anywhere in the grid.
func (r *Registry) Known(slot string) bool {
	_, ok := r.cells[slot]
	return ok
}

// CategoryOf returns the category of slot.
func (r *Registry) CategoryOf(slot string) Category {
	return CategoryOf(slot)
}

// ConflictsOf returns the slots overlapping slot, sorted.
// Unknown identifiers have no conflicts.
func (r *Registry) ConflictsOf(slot string) []string {
	set := r.conflicts[slot]
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Conflicts reports whether a and b overlap.
func (r *Registry) Conflicts(a, b string) bool {
	_, ok := r.conflicts[a][b]
	return ok
}

// AllSlotsOf returns the catalog of a category in grid order.
func (r *Registry) AllSlotsOf(c Category) []string {
	return append([]string(nil), r.catalog[c]...)
}

// Cells returns every grid position slot occupies.
func (r *Registry) Cells(slot string) []Cell {
	return append([]Cell(nil), r.cells[slot]...)
}

// TheoryAt returns the theory slot at a grid position.
func (r *Registry) TheoryAt(f Family, dayIndex, col int) string {
	return r.families[f].theory[dayIndex][col]
}

// LabAt returns the lab slot at a grid position.
func (r *Registry) LabAt(f Family, dayIndex, col int) string {
	return r.families[f].labs[dayIndex][col]
}

// Pairs returns the fixed conflict pair list of a family.
func (r *Registry) Pairs(f Family) []Pair {
	return append([]Pair(nil), r.families[f].pairs...)
}
