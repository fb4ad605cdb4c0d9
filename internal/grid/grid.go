// Package grid lays a timetable out on the weekly slot grid and renders it
// to a terminal or an Excel workbook.
package grid

import (
	"time"

	"github.com/danieljhkim/slotwise/internal/schedule"
	"github.com/danieljhkim/slotwise/internal/slots"
)

// Cell is one grid position and the course occupying it, if any.
type Cell struct {
	Slot     string `json:"slot"`
	CourseID string `json:"courseId,omitempty"`
	Course   string `json:"course,omitempty"`
	Group    int    `json:"group"`
}

// Free reports whether no course occupies the cell.
func (c Cell) Free() bool {
	return c.CourseID == ""
}

// Row is one weekday of one family.
type Row struct {
	Day    time.Weekday              `json:"day"`
	Family slots.Family              `json:"family"`
	Theory [slots.TheoryColumns]Cell `json:"theory"`
	Labs   [slots.LabColumns]Cell    `json:"labs"`
}

// Grid is the weekly layout, family by family, day by day.
type Grid struct {
	Rows   []Row `json:"rows"`
	Groups int   `json:"groups"`
}

// Build places every course's effective slots on the grid. Courses sharing
// a base name share a group.
func Build(reg *slots.Registry, courses []schedule.Course) *Grid {
	groups := schedule.Groups(courses)

	owner := make(map[string]int, len(courses))
	for i := range courses {
		for _, slot := range schedule.EffectiveSlots(&courses[i]) {
			if _, taken := owner[slot]; !taken {
				owner[slot] = i
			}
		}
	}
	fill := func(slot string) Cell {
		cell := Cell{Slot: slot}
		if i, ok := owner[slot]; ok {
			cell.CourseID = courses[i].ID
			cell.Course = courses[i].Name
			cell.Group = groups[courses[i].ID]
		}
		return cell
	}

	g := &Grid{}
	seen := make(map[int]bool)
	for _, gr := range groups {
		seen[gr] = true
	}
	g.Groups = len(seen)

	for _, f := range slots.Families {
		for d, day := range slots.Weekdays {
			row := Row{Day: day, Family: f}
			for col := 0; col < slots.TheoryColumns; col++ {
				row.Theory[col] = fill(reg.TheoryAt(f, d, col))
			}
			for col := 0; col < slots.LabColumns; col++ {
				row.Labs[col] = fill(reg.LabAt(f, d, col))
			}
			g.Rows = append(g.Rows, row)
		}
	}
	return g
}

// Occupied returns the number of cells held by a course.
func (g *Grid) Occupied() int {
	n := 0
	for _, r := range g.Rows {
		for _, c := range r.Theory {
			if !c.Free() {
				n++
			}
		}
		for _, c := range r.Labs {
			if !c.Free() {
				n++
			}
		}
	}
	return n
}
