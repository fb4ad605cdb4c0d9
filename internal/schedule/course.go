// Package schedule is the authoritative, ordered collection of courses in a
// timetable and the operations that mutate it.
//
// Every mutation is validated first and applied all-or-nothing. Slot
// availability is decided by the planner's ConflictChecker against the
// allocation state, which is always derived from EffectiveSlots.
package schedule

import (
	"sort"
	"strings"
)

// LabSuffix marks a lab companion: "<theory name> Lab".
const LabSuffix = " Lab"

const (
	// MaxCredits bounds the credits of a course.
	MaxCredits = 5

	// LabCredits is the fixed credit value of a lab course.
	LabCredits = 1

	// MaxFaculty bounds the faculty preference list.
	MaxFaculty = 10

	// MaxNameLength bounds course names.
	MaxNameLength = 100
)

// FacultyNameSeparators are the characters the interchange format uses to
// join faculty names and their lab assignments. Faculty names cannot hold
// them.
const FacultyNameSeparators = "|;:"

// SlotMode is the global preferred-slot mode of a timetable.
type SlotMode string

const (
	// ModeStandard selects slots through the grid, with automatic extensions.
	ModeStandard SlotMode = "standard"

	// ModeCustom selects slots through typed patterns, taken literally.
	ModeCustom SlotMode = "custom"
)

// ParseSlotMode parses a mode name.
func ParseSlotMode(s string) (SlotMode, bool) {
	switch SlotMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStandard:
		return ModeStandard, true
	case ModeCustom:
		return ModeCustom, true
	}
	return "", false
}

// Course is one entry of the timetable.
type Course struct {
	// ID identifies the course within its timetable
	ID string `json:"id"`

	// Name is the display name; lab companions are named "<theory> Lab"
	Name string `json:"name" validate:"required,max=100"`

	// Slots is the course's own declared slot set, in order, without duplicates
	Slots []string `json:"slots" validate:"required,min=1,unique,dive,required"`

	// Credits is the credit value, 0 to 5
	Credits int `json:"credits" validate:"gte=0,lte=5"`

	// FacultyPreferences is ordered by priority, index 0 highest
	FacultyPreferences []string `json:"facultyPreferences,omitempty" validate:"max=10,unique,dive,required,excludesall=0x7C;:"`

	// FacultyLabAssignments maps a faculty name to that faculty's lab slots
	FacultyLabAssignments map[string][]string `json:"facultyLabAssignments,omitempty" validate:"dive,keys,required,excludesall=0x7C;:,endkeys"`
}

// BaseName strips a trailing " Lab" from a course name. A theory course and
// its lab companion share a base name.
func BaseName(name string) string {
	return strings.TrimSuffix(name, LabSuffix)
}

// LabName returns the name of the lab companion of a theory course.
func LabName(theory string) string {
	return theory + LabSuffix
}

// IsLabName reports whether name is a lab companion name.
func IsLabName(name string) bool {
	return strings.HasSuffix(name, LabSuffix) && len(name) > len(LabSuffix)
}

// BaseName returns the course's base name.
func (c *Course) BaseName() string {
	return BaseName(c.Name)
}

// IsLab reports whether the course is a lab companion.
func (c *Course) IsLab() bool {
	return IsLabName(c.Name)
}

// TopFaculty returns the highest-priority faculty, if any.
func (c *Course) TopFaculty() (string, bool) {
	if len(c.FacultyPreferences) == 0 {
		return "", false
	}
	return c.FacultyPreferences[0], true
}

// OrphanedAssignments returns the faculty names holding a lab assignment
// without being in the preference list, sorted.
func (c *Course) OrphanedAssignments() []string {
	listed := make(map[string]bool, len(c.FacultyPreferences))
	for _, f := range c.FacultyPreferences {
		listed[f] = true
	}
	var out []string
	for f := range c.FacultyLabAssignments {
		if !listed[f] {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy of the course.
func (c Course) Clone() Course {
	out := c
	out.Slots = append([]string(nil), c.Slots...)
	out.FacultyPreferences = append([]string(nil), c.FacultyPreferences...)
	if c.FacultyLabAssignments != nil {
		out.FacultyLabAssignments = make(map[string][]string, len(c.FacultyLabAssignments))
		for f, s := range c.FacultyLabAssignments {
			out.FacultyLabAssignments[f] = append([]string(nil), s...)
		}
	}
	return out
}

// dedupe returns slots without duplicates, keeping first occurrences.
func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
