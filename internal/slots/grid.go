package slots

import (
	"fmt"
	"time"
)

// Family is a timing family of the grid. The same relative layout repeats
// for each family; only the timing suffix and lab numbering differ.
type Family int

const (
	Morning Family = iota
	Evening
)

func (f Family) String() string {
	if f == Evening {
		return "evening"
	}
	return "morning"
}

// MarshalText encodes the family by name.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Suffix returns the timing digit of theory slots in this family.
func (f Family) Suffix() string {
	if f == Evening {
		return "2"
	}
	return "1"
}

// labBase is the number of the lab slot preceding the family's first one.
func (f Family) labBase() int {
	if f == Evening {
		return labsPerFamily
	}
	return 0
}

// Families lists both timing families in grid order.
var Families = []Family{Morning, Evening}

// Weekdays are the teaching days of the grid, in order.
var Weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

const (
	// TheoryColumns is the number of theory periods per day and family.
	TheoryColumns = 5

	// LabColumns is the number of lab periods per day and family.
	LabColumns = 6
)

// theoryLayout is the family-independent theory layout: one row per weekday,
// one stem per theory column. The family suffix completes the identifier.
var theoryLayout = [][TheoryColumns]string{
	{"A", "F", "D", "TB", "TG"},
	{"B", "G", "E", "TC", "TAA"},
	{"C", "A", "F", "TD", "TBB"},
	{"D", "B", "G", "TE", "TCC"},
	{"E", "C", "TA", "TF", "TDD"},
}

// Kind distinguishes theory cells from lab cells.
type Kind int

const (
	TheoryCell Kind = iota
	LabCell
)

// Cell is one position in the weekly grid.
type Cell struct {
	Day    time.Weekday
	Family Family
	Kind   Kind
	// Column is zero-based within the kind's columns for the day and family.
	Column int
}

func (c Cell) String() string {
	kind := "theory"
	if c.Kind == LabCell {
		kind = "lab"
	}
	return fmt.Sprintf("%s %s %s col %d", c.Day, c.Family, kind, c.Column+1)
}

// Pair is an unordered pair of slots whose periods overlap.
type Pair struct {
	A, B string
}

// familyGrid is one family's instance of the layout: its cells and the
// conflict pairs derived from them.
type familyGrid struct {
	family Family
	theory [][TheoryColumns]string
	labs   [][LabColumns]string
	pairs  []Pair
}

// newFamilyGrid instantiates the relative layout for one family.
// Theory column i of a day overlaps lab column i of the same day.
func newFamilyGrid(f Family) *familyGrid {
	g := &familyGrid{family: f}
	for day, stems := range theoryLayout {
		var theory [TheoryColumns]string
		var labs [LabColumns]string
		for col := 0; col < LabColumns; col++ {
			labs[col] = fmt.Sprintf("L%d", f.labBase()+day*LabColumns+col+1)
		}
		for col, stem := range stems {
			theory[col] = stem + f.Suffix()
			g.pairs = append(g.pairs, Pair{A: theory[col], B: labs[col]})
		}
		g.theory = append(g.theory, theory)
		g.labs = append(g.labs, labs)
	}
	return g
}
