package engine

import "io"

// Selection describes the slots a command picks.
type Selection struct {
	// Slots replaces the selection. In standard mode each token is toggled
	// on in order, so primaries bring their extension; in custom mode the
	// tokens are taken literally.
	Slots []string

	// Toggle flips each token against the current selection, with
	// standard-mode extension handling.
	Toggle []string

	// Mode overrides the timetable's preferred slot mode for this selection
	Mode string
}

func (s Selection) empty() bool {
	return s.Slots == nil && s.Toggle == nil
}

// AddCourseRequest represents a request to add a theory course.
type AddCourseRequest struct {
	Timetable string
	Name      string
	Credits   int
	Faculty   []string
	Selection Selection

	// Lab optionally adds the lab companion in the same step
	Lab *AddLabRequest
}

// AddLabRequest represents a request to add a lab companion.
type AddLabRequest struct {
	Timetable string

	// Course references the theory course (ignored when nested in AddCourseRequest)
	Course    string
	Faculty   []string
	Selection Selection
}

// EditCourseRequest represents a request to edit a course in place.
// Nil fields are left unchanged.
type EditCourseRequest struct {
	Timetable string
	Course    string
	Name      *string
	Credits   *int
	Selection Selection
}

// RemoveCourseRequest represents a request to delete a course.
type RemoveCourseRequest struct {
	Timetable string
	Course    string
}

// SetFacultyRequest replaces a course's ordered faculty list.
type SetFacultyRequest struct {
	Timetable string
	Course    string
	Faculty   []string
}

// MoveFacultyRequest moves one faculty within the preference list.
type MoveFacultyRequest struct {
	Timetable string
	Course    string

	// From and To are zero-based positions
	From, To int
}

// SetLabAssignmentRequest sets the lab slots one faculty would use.
type SetLabAssignmentRequest struct {
	Timetable string
	Course    string
	Faculty   string
	Selection Selection

	// Clear deletes the faculty's entry
	Clear bool
}

// ListRequest represents a request for the course list.
type ListRequest struct {
	Timetable string
}

// ShowRequest represents a request for one course.
type ShowRequest struct {
	Timetable string
	Course    string
}

// GridRequest represents a request for the weekly grid.
type GridRequest struct {
	Timetable string
}

// SlotsRequest lists catalog slots with their availability.
type SlotsRequest struct {
	Timetable string

	// Category filters to one category when set
	Category string

	// FreeOnly drops unavailable slots
	FreeOnly bool

	// Editing exempts this course's own slots
	Editing string
}

// CheckRequest asks whether one slot could be taken.
type CheckRequest struct {
	Timetable string
	Slot      string
	Editing   string
}

// SetModeRequest changes the preferred slot mode.
type SetModeRequest struct {
	Timetable string
	Mode      string
}

// ImportRequest replaces a timetable from CSV.
type ImportRequest struct {
	Timetable string
	Reader    io.Reader

	// Source names the input in logs
	Source string

	// DryRun decodes without saving
	DryRun bool
}

// ExportRequest writes a timetable out.
type ExportRequest struct {
	Timetable string
	Writer    io.Writer

	// Format is "csv" (default) or "xlsx"
	Format string
}

// RemoveTimetableRequest deletes a whole timetable.
type RemoveTimetableRequest struct {
	Timetable string
}
