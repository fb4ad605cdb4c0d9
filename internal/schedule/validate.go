package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danieljhkim/slotwise/internal/slots"
)

var courseValidate = validator.New()

// fieldMessages maps validator tags to user-facing messages.
var fieldMessages = map[string]string{
	"required": "must not be empty",
	"min":      "must not be empty",
	"max":      "is too long",
	"gte":      "must be at least 0",
	"lte":      fmt.Sprintf("must be at most %d", MaxCredits),
	"unique":   "must not contain duplicates",

	"excludesall": fmt.Sprintf("must not contain any of %q", FacultyNameSeparators),
}

// validateCourse runs the structural checks shared by every mutation.
func validateCourse(reg *slots.Registry, c *Course) error {
	if err := courseValidate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		out := &ValidationError{}
		for _, fe := range verrs {
			msg, ok := fieldMessages[fe.Tag()]
			if !ok {
				msg = fmt.Sprintf("failed %q", fe.Tag())
			}
			if fe.Field() == "FacultyPreferences" && fe.Tag() == "max" {
				msg = fmt.Sprintf("must have at most %d entries", MaxFaculty)
			}
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: msg})
		}
		return out
	}

	for _, s := range c.Slots {
		if !reg.Known(s) {
			return invalid("Slots", "unknown slot %q", s)
		}
		if c.IsLab() && !slots.CategoryOf(s).IsLab() {
			return invalid("Slots", "lab course cannot hold theory slot %q", s)
		}
	}
	return nil
}

// validateFacultyNames rejects faculty names, listed or assigned, that hold
// a separator character.
func validateFacultyNames(c *Course) error {
	for _, f := range c.FacultyPreferences {
		if strings.ContainsAny(f, FacultyNameSeparators) {
			return invalid("FacultyPreferences", "%q must not contain any of %q", f, FacultyNameSeparators)
		}
	}
	for f := range c.FacultyLabAssignments {
		if strings.ContainsAny(f, FacultyNameSeparators) {
			return invalid("FacultyLabAssignments", "%q must not contain any of %q", f, FacultyNameSeparators)
		}
	}
	return nil
}

// validateLabSlots checks the slots of a faculty lab assignment.
func validateLabSlots(reg *slots.Registry, list []string) error {
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		if !reg.Known(s) || !slots.CategoryOf(s).IsLab() {
			return invalid("FacultyLabAssignments", "%q is not a lab slot", s)
		}
		if seen[s] {
			return invalid("FacultyLabAssignments", "duplicate slot %q", s)
		}
		seen[s] = true
	}
	return nil
}
