package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/slotwise/internal/planner"
	"github.com/danieljhkim/slotwise/internal/schedule"
)

// SetFaculty replaces a course's ordered faculty preference list.
func (e *Engine) SetFaculty(ctx context.Context, req *SetFacultyRequest) (*CourseView, error) {
	return e.mutateCourse(ctx, req.Timetable, req.Course, "faculty set", func(s *schedule.Schedule, c schedule.Course) error {
		return s.SetFacultyPreferences(c.ID, req.Faculty)
	})
}

// MoveFaculty moves one entry in the preference list. Moving a faculty to
// the top of a lab's list switches the lab to that faculty's assignment.
func (e *Engine) MoveFaculty(ctx context.Context, req *MoveFacultyRequest) (*CourseView, error) {
	return e.mutateCourse(ctx, req.Timetable, req.Course, "faculty moved", func(s *schedule.Schedule, c schedule.Course) error {
		return s.MoveFacultyPreference(c.ID, req.From, req.To)
	})
}

// SetLabAssignment sets or clears the lab slots of one faculty on a lab
// course.
func (e *Engine) SetLabAssignment(ctx context.Context, req *SetLabAssignmentRequest) (*CourseView, error) {
	if req.Clear {
		return e.mutateCourse(ctx, req.Timetable, req.Course, "lab assignment cleared", func(s *schedule.Schedule, c schedule.Course) error {
			return s.SetFacultyLabAssignment(c.ID, req.Faculty, nil)
		})
	}
	if req.Selection.empty() {
		return nil, fmt.Errorf("%w: give lab slots or clear the assignment", ErrNoSelection)
	}

	return e.mutateCourse(ctx, req.Timetable, req.Course, "lab assignment set", func(s *schedule.Schedule, c schedule.Course) error {
		d, err := s.Draft(planner.EditFaculty{CourseID: c.ID, Faculty: req.Faculty})
		if err != nil {
			return err
		}
		if err := e.stage(d, req.Selection, s.PreferredSlotMode()); err != nil {
			return err
		}
		if len(d.Slots()) == 0 {
			return ErrNoSelection
		}
		_, err = commit(s, d, fields{})
		return err
	})
}

// SetMode changes the timetable's preferred slot mode.
func (e *Engine) SetMode(ctx context.Context, req *SetModeRequest) (schedule.SlotMode, error) {
	sess, err := e.open(ctx, req.Timetable)
	if err != nil {
		return "", err
	}
	mode, err := resolveMode(req.Mode, sess)
	if err != nil {
		return "", err
	}
	if err := sess.schedule.SetPreferredSlotMode(mode); err != nil {
		return "", err
	}
	if err := e.save(ctx, sess); err != nil {
		return "", err
	}
	e.log.Info("preferred slot mode set",
		zap.String("timetable", sess.name),
		zap.String("mode", string(mode)))
	return mode, nil
}

// mutateCourse runs fn against the referenced course and saves on success.
func (e *Engine) mutateCourse(ctx context.Context, timetable, ref, event string, fn func(*schedule.Schedule, schedule.Course) error) (*CourseView, error) {
	sess, err := e.open(ctx, timetable)
	if err != nil {
		return nil, err
	}
	c, err := findCourse(sess.schedule, ref)
	if err != nil {
		return nil, err
	}
	if err := fn(sess.schedule, c); err != nil {
		e.reject(sess, c.Name, err)
		return nil, err
	}
	if err := e.save(ctx, sess); err != nil {
		return nil, err
	}

	updated, _ := sess.schedule.Course(c.ID)
	e.log.Info(event,
		zap.String("timetable", sess.name),
		zap.String("course", updated.Name),
		zap.Strings("faculty", updated.FacultyPreferences),
		zap.Strings("effective", schedule.EffectiveSlots(&updated)))
	v := newCourseView(&updated, sess.schedule.Groups()[c.ID])
	return &v, nil
}
