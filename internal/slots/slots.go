// Package slots holds the static slot catalog of the institutional timetable grid.
//
// Slots are opaque identifiers. Each one occupies one or more fixed cells of
// the weekly grid and belongs to exactly one category, inferred from its
// spelling:
//   - Theory: primary slots A1..G1 / A2..G2 and their T-prefixed extensions
//     (TA1, TAA1, ...). The trailing digit selects the morning (1) or
//     evening (2) family.
//   - Lab: L1..L30 (morning) and L31..L60 (evening).
//
// The Registry is built once from the fixed grid layout and is read-only
// afterwards; it is safe to share between goroutines.
package slots

import (
	"regexp"
	"strconv"
	"strings"
)

// Category classifies a slot identifier.
type Category string

const (
	TheoryMorning Category = "theory-morning"
	TheoryEvening Category = "theory-evening"
	LabMorning    Category = "lab-morning"
	LabEvening    Category = "lab-evening"
	Unknown       Category = "unknown"
)

// Categories lists every known category in display order.
var Categories = []Category{TheoryMorning, TheoryEvening, LabMorning, LabEvening}

// IsLab reports whether c is one of the lab categories.
func (c Category) IsLab() bool {
	return c == LabMorning || c == LabEvening
}

// IsTheory reports whether c is one of the theory categories.
func (c Category) IsTheory() bool {
	return c == TheoryMorning || c == TheoryEvening
}

// ParseCategory parses a category name as printed by String.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return Unknown, false
}

var (
	primaryPattern = regexp.MustCompile(`^[A-G][12]$`)
	theoryPattern  = regexp.MustCompile(`^T?[A-G]{1,2}[12]$`)
	labPattern     = regexp.MustCompile(`^L([1-9][0-9]?)$`)
)

// labsPerFamily is the number of lab slots in one timing family.
const labsPerFamily = 30

// IsPrimary reports whether slot is a two-character primary theory slot.
func IsPrimary(slot string) bool {
	return primaryPattern.MatchString(slot)
}

// CategoryOf infers the category of slot from its spelling alone.
// Identifiers matching no pattern are Unknown.
func CategoryOf(slot string) Category {
	if m := labPattern.FindStringSubmatch(slot); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch {
		case n >= 1 && n <= labsPerFamily:
			return LabMorning
		case n > labsPerFamily && n <= 2*labsPerFamily:
			return LabEvening
		}
		return Unknown
	}
	if theoryPattern.MatchString(slot) {
		// Doubled letters only appear behind the T prefix (TAA1, never AA1 or TAB1).
		if len(slot) == 3 && slot[0] != 'T' {
			return Unknown
		}
		if len(slot) == 4 && slot[1] != slot[2] {
			return Unknown
		}
		if strings.HasSuffix(slot, "1") {
			return TheoryMorning
		}
		return TheoryEvening
	}
	return Unknown
}

// Normalize upper-cases and trims a user-typed slot identifier.
func Normalize(slot string) string {
	return strings.ToUpper(strings.TrimSpace(slot))
}
