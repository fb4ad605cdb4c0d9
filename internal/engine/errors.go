package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danieljhkim/slotwise/internal/planner"
	"github.com/danieljhkim/slotwise/internal/schedule"
)

var (
	// ErrAmbiguous indicates a course reference matches more than one course.
	ErrAmbiguous = errors.New("ambiguous course reference")

	// ErrTimetableNotFound indicates no timetable of that name was saved.
	ErrTimetableNotFound = errors.New("timetable not found")

	// ErrNoSelection indicates a slot selection staged nothing.
	ErrNoSelection = errors.New("no slots selected")
)

// SelectionError lists the slots a selection could not stage.
type SelectionError struct {
	Rejected []planner.Rejection
}

func (e *SelectionError) Error() string {
	parts := make([]string, 0, len(e.Rejected))
	for _, r := range e.Rejected {
		parts = append(parts, r.Reason)
	}
	return fmt.Sprintf("%v: %s", schedule.ErrUnavailable, strings.Join(parts, "; "))
}

func (e *SelectionError) Unwrap() error {
	return schedule.ErrUnavailable
}
