package engine

import (
	"github.com/danieljhkim/slotwise/internal/planner"
	"github.com/danieljhkim/slotwise/internal/schedule"
	"github.com/danieljhkim/slotwise/internal/slots"
)

// CourseView is a course as the CLI shows it.
type CourseView struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Slots   []string `json:"slots"`
	Credits int      `json:"credits"`
	IsLab   bool     `json:"isLab"`

	// Effective is what the course occupies on the grid
	Effective []string `json:"effective"`

	Faculty        []string            `json:"faculty,omitempty"`
	LabAssignments map[string][]string `json:"labAssignments,omitempty"`

	// Orphaned names lab assignments whose faculty is no longer listed
	Orphaned []string `json:"orphaned,omitempty"`

	Group int `json:"group"`
}

func newCourseView(c *schedule.Course, group int) CourseView {
	return CourseView{
		ID:             c.ID,
		Name:           c.Name,
		Slots:          c.Slots,
		Credits:        c.Credits,
		IsLab:          c.IsLab(),
		Effective:      schedule.EffectiveSlots(c),
		Faculty:        c.FacultyPreferences,
		LabAssignments: c.FacultyLabAssignments,
		Orphaned:       c.OrphanedAssignments(),
		Group:          group,
	}
}

// AddCourseResult represents the result of adding a course.
type AddCourseResult struct {
	Course CourseView  `json:"course"`
	Lab    *CourseView `json:"lab,omitempty"`
}

// EditCourseResult represents the result of editing a course.
type EditCourseResult struct {
	Course CourseView `json:"course"`

	// Renamed lists companions renamed with the course
	Renamed []string `json:"renamed,omitempty"`
}

// RemoveCourseResult represents the result of deleting a course.
type RemoveCourseResult struct {
	// Removed names every deleted course, the target first
	Removed []string `json:"removed"`
}

// ListResult represents the course list of a timetable.
type ListResult struct {
	Timetable     string            `json:"timetable"`
	PreferredSlot schedule.SlotMode `json:"preferredSlot"`
	Courses       []CourseView      `json:"courses"`
	TotalCredits  int               `json:"totalCredits"`
}

// SlotInfo is one catalog entry with its availability.
type SlotInfo struct {
	Slot      string         `json:"slot"`
	Category  slots.Category `json:"category"`
	Available bool           `json:"available"`

	// Owner is the course occupying the slot itself, if any
	Owner string `json:"owner,omitempty"`

	// BlockedBy lists occupied slots this one overlaps
	BlockedBy []string `json:"blockedBy,omitempty"`
}

// SlotsResult represents the availability listing.
type SlotsResult struct {
	Slots []SlotInfo `json:"slots"`
}

// CheckResult represents the availability of one slot.
type CheckResult struct {
	Slot      string             `json:"slot"`
	Category  slots.Category     `json:"category"`
	Available bool               `json:"available"`
	Conflicts []planner.Conflict `json:"conflicts,omitempty"`

	// Overlaps lists every slot sharing a period, occupied or not
	Overlaps []string `json:"overlaps"`

	// Extensions lists the slots toggling this one would bring along
	Extensions []string `json:"extensions,omitempty"`
}

// ImportResult represents the result of an import.
type ImportResult struct {
	Courses       int               `json:"courses"`
	PreferredSlot schedule.SlotMode `json:"preferredSlot"`
	DryRun        bool              `json:"dryRun"`
}

// ExportResult represents the result of an export.
type ExportResult struct {
	Courses int    `json:"courses"`
	Format  string `json:"format"`
}

// TimetablesResult lists saved timetables.
type TimetablesResult struct {
	Timetables []string `json:"timetables"`
}
