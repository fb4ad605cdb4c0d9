package engine

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/slotwise/internal/planner"
	"github.com/danieljhkim/slotwise/internal/schedule"
	"github.com/danieljhkim/slotwise/internal/slots"
)

// stage applies sel to the draft. Unknown tokens are rejected before
// anything is staged.
func (e *Engine) stage(d *planner.Draft, sel Selection, preferred schedule.SlotMode) error {
	mode := preferred
	if sel.Mode != "" {
		m, ok := schedule.ParseSlotMode(sel.Mode)
		if !ok {
			return fmt.Errorf("%w: unknown slot mode %q", schedule.ErrInvalidInput, sel.Mode)
		}
		mode = m
	}

	tokens := normalizeAll(sel.Slots)
	toggles := normalizeAll(sel.Toggle)
	for _, tok := range append(append([]string(nil), tokens...), toggles...) {
		if !e.registry.Known(tok) {
			return fmt.Errorf("%w: unknown slot %q", schedule.ErrInvalidInput, tok)
		}
	}

	var rejected []planner.Rejection
	if sel.Slots != nil {
		switch mode {
		case schedule.ModeCustom:
			rejected = append(rejected, d.ApplyPattern(strings.Join(tokens, "+"))...)
		default:
			d.Clear()
			for _, tok := range tokens {
				if d.Has(tok) {
					continue
				}
				if res := d.Toggle(tok); res.Conflict != nil {
					rejected = append(rejected, planner.Rejection{Token: tok, Reason: res.Conflict.Reason})
				}
			}
		}
	}
	for _, tok := range toggles {
		if res := d.Toggle(tok); res.Conflict != nil {
			rejected = append(rejected, planner.Rejection{Token: tok, Reason: res.Conflict.Reason})
		}
	}

	if len(rejected) > 0 {
		return &SelectionError{Rejected: rejected}
	}
	return nil
}

// fields carries the non-slot values committed together with a draft.
type fields struct {
	name    string
	credits int
	faculty []string
}

// commit applies a staged draft to the schedule according to its intent
// and returns the ID of the course it wrote.
func commit(s *schedule.Schedule, d *planner.Draft, f fields) (string, error) {
	switch in := d.Intent().(type) {
	case planner.AddCourse:
		return s.AddCourse(f.name, d.Slots(), f.credits, f.faculty)
	case planner.AddLab:
		return s.AddLab(in.TheoryID, d.Slots(), f.faculty)
	case planner.EditCourse:
		return in.CourseID, s.EditCourse(in.CourseID, f.name, d.Slots(), f.credits)
	case planner.EditLab:
		return in.LabID, s.EditCourse(in.LabID, f.name, d.Slots(), f.credits)
	case planner.EditFaculty:
		return in.CourseID, s.SetFacultyLabAssignment(in.CourseID, in.Faculty, d.Slots())
	}
	return "", fmt.Errorf("%w: unsupported intent %T", schedule.ErrInvalidInput, d.Intent())
}

func normalizeAll(list []string) []string {
	var out []string
	for _, s := range list {
		if s = slots.Normalize(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
