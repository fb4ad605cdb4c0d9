package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/slotwise/internal/grid"
	"github.com/danieljhkim/slotwise/internal/schedule"
	"github.com/danieljhkim/slotwise/internal/slots"
)

// List returns every course in insertion order, with totals.
func (e *Engine) List(ctx context.Context, req *ListRequest) (*ListResult, error) {
	sess, err := e.open(ctx, req.Timetable)
	if err != nil {
		return nil, err
	}
	sched := sess.schedule
	groups := sched.Groups()

	res := &ListResult{
		Timetable:     sess.name,
		PreferredSlot: sched.PreferredSlotMode(),
		Courses:       []CourseView{},
		TotalCredits:  sched.TotalCredits(),
	}
	for _, c := range sched.Courses() {
		res.Courses = append(res.Courses, newCourseView(&c, groups[c.ID]))
	}
	return res, nil
}

// Show returns one course.
func (e *Engine) Show(ctx context.Context, req *ShowRequest) (*CourseView, error) {
	sess, err := e.open(ctx, req.Timetable)
	if err != nil {
		return nil, err
	}
	c, err := findCourse(sess.schedule, req.Course)
	if err != nil {
		return nil, err
	}
	v := newCourseView(&c, sess.schedule.Groups()[c.ID])
	return &v, nil
}

// Grid lays the timetable out on the weekly grid.
func (e *Engine) Grid(ctx context.Context, req *GridRequest) (*grid.Grid, error) {
	sess, err := e.open(ctx, req.Timetable)
	if err != nil {
		return nil, err
	}
	return grid.Build(e.registry, sess.schedule.Courses()), nil
}

// Slots lists the catalog with availability against the allocation.
func (e *Engine) Slots(ctx context.Context, req *SlotsRequest) (*SlotsResult, error) {
	categories := slots.Categories
	if req.Category != "" {
		c, ok := slots.ParseCategory(req.Category)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", schedule.ErrInvalidInput, req.Category)
		}
		categories = []slots.Category{c}
	}

	sess, err := e.open(ctx, req.Timetable)
	if err != nil {
		return nil, err
	}
	owners, err := e.owners(sess, req.Editing)
	if err != nil {
		return nil, err
	}

	res := &SlotsResult{Slots: []SlotInfo{}}
	for _, cat := range categories {
		for _, slot := range e.registry.AllSlotsOf(cat) {
			ok, blockers := sess.schedule.Availability(slot, owners.editing)
			if req.FreeOnly && !ok {
				continue
			}
			info := SlotInfo{Slot: slot, Category: cat, Available: ok, Owner: owners.byslot[slot]}
			for _, b := range blockers {
				if b.Blocker != slot {
					info.BlockedBy = append(info.BlockedBy, b.Blocker)
				}
			}
			res.Slots = append(res.Slots, info)
		}
	}
	return res, nil
}

// Check reports whether one slot could be taken.
func (e *Engine) Check(ctx context.Context, req *CheckRequest) (*CheckResult, error) {
	slot := slots.Normalize(req.Slot)
	if !e.registry.Known(slot) {
		return nil, fmt.Errorf("%w: unknown slot %q", schedule.ErrInvalidInput, req.Slot)
	}

	sess, err := e.open(ctx, req.Timetable)
	if err != nil {
		return nil, err
	}
	owners, err := e.owners(sess, req.Editing)
	if err != nil {
		return nil, err
	}

	ok, blockers := sess.schedule.Availability(slot, owners.editing)
	res := &CheckResult{
		Slot:      slot,
		Category:  e.registry.CategoryOf(slot),
		Available: ok,
		Conflicts: blockers,
		Overlaps:  e.registry.ConflictsOf(slot),
	}
	if slots.IsPrimary(slot) {
		res.Extensions = e.registry.AssociatedSlots(slot)
	}
	return res, nil
}

type slotOwners struct {
	editing string
	byslot  map[string]string
}

// owners maps each occupied slot to its course name and resolves the
// course being edited, if any.
func (e *Engine) owners(sess *session, editing string) (*slotOwners, error) {
	o := &slotOwners{byslot: make(map[string]string)}
	if editing != "" {
		c, err := findCourse(sess.schedule, editing)
		if err != nil {
			return nil, err
		}
		o.editing = c.ID
	}
	for _, c := range sess.schedule.Courses() {
		for _, slot := range schedule.EffectiveSlots(&c) {
			if _, ok := o.byslot[slot]; !ok {
				o.byslot[slot] = c.Name
			}
		}
	}
	return o, nil
}

