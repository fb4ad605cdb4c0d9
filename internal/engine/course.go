package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/danieljhkim/slotwise/internal/planner"
	"github.com/danieljhkim/slotwise/internal/schedule"
)

// AddCourse adds a theory course, and optionally its lab companion.
func (e *Engine) AddCourse(ctx context.Context, req *AddCourseRequest) (*AddCourseResult, error) {
	sess, err := e.open(ctx, req.Timetable)
	if err != nil {
		return nil, err
	}
	sched := sess.schedule
	mode := sched.PreferredSlotMode()

	d, err := sched.Draft(planner.AddCourse{})
	if err != nil {
		return nil, err
	}
	if err := e.stage(d, req.Selection, mode); err != nil {
		e.reject(sess, req.Name, err)
		return nil, err
	}

	var id, labID string
	if req.Lab == nil {
		id, err = commit(sched, d, fields{name: req.Name, credits: req.Credits, faculty: req.Faculty})
	} else {
		labDraft, derr := sched.Draft(planner.AddCourse{})
		if derr != nil {
			return nil, derr
		}
		if err := e.stage(labDraft, req.Lab.Selection, mode); err != nil {
			e.reject(sess, schedule.LabName(req.Name), err)
			return nil, err
		}
		id, labID, err = sched.AddCourseWithLab(req.Name, d.Slots(), req.Credits, req.Faculty, labDraft.Slots(), req.Lab.Faculty)
	}
	if err != nil {
		e.reject(sess, req.Name, err)
		return nil, err
	}

	if err := e.save(ctx, sess); err != nil {
		return nil, err
	}

	groups := sched.Groups()
	c, _ := sched.Course(id)
	res := &AddCourseResult{Course: newCourseView(&c, groups[id])}
	e.log.Info("course added",
		zap.String("timetable", sess.name),
		zap.String("course", c.Name),
		zap.String("id", c.ID),
		zap.Strings("slots", c.Slots))

	if labID != "" {
		lab, _ := sched.Course(labID)
		v := newCourseView(&lab, groups[labID])
		res.Lab = &v
		e.log.Info("course added",
			zap.String("timetable", sess.name),
			zap.String("course", lab.Name),
			zap.String("id", lab.ID),
			zap.Strings("slots", lab.Slots))
	}
	return res, nil
}

// AddLab adds the lab companion of an existing theory course.
func (e *Engine) AddLab(ctx context.Context, req *AddLabRequest) (*AddCourseResult, error) {
	sess, err := e.open(ctx, req.Timetable)
	if err != nil {
		return nil, err
	}
	sched := sess.schedule

	theory, err := findCourse(sched, req.Course)
	if err != nil {
		return nil, err
	}
	d, err := sched.Draft(planner.AddLab{TheoryID: theory.ID})
	if err != nil {
		return nil, err
	}
	if err := e.stage(d, req.Selection, sched.PreferredSlotMode()); err != nil {
		e.reject(sess, schedule.LabName(theory.Name), err)
		return nil, err
	}
	id, err := commit(sched, d, fields{faculty: req.Faculty})
	if err != nil {
		e.reject(sess, schedule.LabName(theory.Name), err)
		return nil, err
	}
	if err := e.save(ctx, sess); err != nil {
		return nil, err
	}

	lab, _ := sched.Course(id)
	e.log.Info("lab added",
		zap.String("timetable", sess.name),
		zap.String("course", lab.Name),
		zap.String("theory", theory.ID),
		zap.Strings("slots", lab.Slots))
	return &AddCourseResult{Course: newCourseView(&lab, sched.Groups()[id])}, nil
}

// EditCourse updates a course's name, credits or slots. The course's own
// current slots stay available to it while editing.
func (e *Engine) EditCourse(ctx context.Context, req *EditCourseRequest) (*EditCourseResult, error) {
	sess, err := e.open(ctx, req.Timetable)
	if err != nil {
		return nil, err
	}
	sched := sess.schedule

	c, err := findCourse(sched, req.Course)
	if err != nil {
		return nil, err
	}

	var intent planner.EditIntent = planner.EditCourse{CourseID: c.ID}
	if c.IsLab() {
		intent = planner.EditLab{LabID: c.ID}
	}
	d, err := sched.Draft(intent)
	if err != nil {
		return nil, err
	}
	if !req.Selection.empty() {
		if err := e.stage(d, req.Selection, sched.PreferredSlotMode()); err != nil {
			e.reject(sess, c.Name, err)
			return nil, err
		}
	}

	f := fields{name: c.Name, credits: c.Credits}
	if req.Name != nil {
		f.name = *req.Name
	}
	if req.Credits != nil {
		f.credits = *req.Credits
	}

	var renamed []string
	if !c.IsLab() && f.name != c.Name {
		if lab, err := sched.FindByName(schedule.LabName(c.Name)); err == nil {
			renamed = append(renamed, lab.ID)
		}
	}

	if _, err := commit(sched, d, f); err != nil {
		e.reject(sess, c.Name, err)
		return nil, err
	}
	if err := e.save(ctx, sess); err != nil {
		return nil, err
	}

	updated, _ := sched.Course(c.ID)
	e.log.Info("course edited",
		zap.String("timetable", sess.name),
		zap.String("course", updated.Name),
		zap.String("id", updated.ID),
		zap.Strings("slots", updated.Slots),
		zap.Int("credits", updated.Credits))

	names := make([]string, 0, len(renamed))
	for _, id := range renamed {
		if lab, err := sched.Course(id); err == nil {
			names = append(names, lab.Name)
		}
	}
	return &EditCourseResult{
		Course:  newCourseView(&updated, sched.Groups()[updated.ID]),
		Renamed: names,
	}, nil
}

// RemoveCourse deletes a course. Removing a theory course removes its lab.
func (e *Engine) RemoveCourse(ctx context.Context, req *RemoveCourseRequest) (*RemoveCourseResult, error) {
	sess, err := e.open(ctx, req.Timetable)
	if err != nil {
		return nil, err
	}
	sched := sess.schedule

	c, err := findCourse(sched, req.Course)
	if err != nil {
		return nil, err
	}
	names := map[string]string{}
	for _, other := range sched.Courses() {
		names[other.ID] = other.Name
	}

	ids, err := sched.DeleteCourse(c.ID)
	if err != nil {
		return nil, err
	}
	if err := e.save(ctx, sess); err != nil {
		return nil, err
	}

	res := &RemoveCourseResult{Removed: []string{c.Name}}
	for _, id := range ids {
		if id != c.ID {
			res.Removed = append(res.Removed, names[id])
		}
	}
	e.log.Info("course removed",
		zap.String("timetable", sess.name),
		zap.Strings("courses", res.Removed))
	return res, nil
}

// reject logs a refused mutation at debug level.
func (e *Engine) reject(sess *session, course string, err error) {
	e.log.Debug("mutation rejected",
		zap.String("timetable", sess.name),
		zap.String("course", course),
		zap.Error(err))
}
