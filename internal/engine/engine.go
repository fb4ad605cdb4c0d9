// Package engine is the orchestration layer between CLI commands and the
// timetable core.
//
// Every operation takes a context and a request, loads the named timetable
// from the state store, stages slot selections in a planner draft, commits
// the draft through the schedule, and saves. Nothing is saved when any step
// fails or the context is cancelled before commit.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/danieljhkim/slotwise/internal/clock"
	"github.com/danieljhkim/slotwise/internal/planner"
	"github.com/danieljhkim/slotwise/internal/schedule"
	"github.com/danieljhkim/slotwise/internal/slots"
	"github.com/danieljhkim/slotwise/internal/state"
)

// Engine orchestrates all slotwise operations.
// It is the main API surface called by the CLI.
type Engine struct {
	registry    *slots.Registry
	checker     *planner.ConflictChecker
	stateStore  state.StateStore
	clock       clock.Clock
	log         *zap.Logger
	defaultMode schedule.SlotMode
}

// Options configures an Engine.
type Options struct {
	// DefaultMode is the preferred-slot mode of timetables created on first save
	DefaultMode schedule.SlotMode

	// Logger defaults to a no-op logger
	Logger *zap.Logger

	// Clock defaults to the system clock
	Clock clock.Clock
}

// New creates a new Engine. The registry is built once here and shared by
// every timetable the engine opens.
func New(stateStore state.StateStore, opts Options) *Engine {
	reg := slots.NewRegistry()
	e := &Engine{
		registry:    reg,
		checker:     planner.NewConflictChecker(reg),
		stateStore:  stateStore,
		clock:       opts.Clock,
		log:         opts.Logger,
		defaultMode: opts.DefaultMode,
	}
	if e.clock == nil {
		e.clock = clock.RealClock{}
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.defaultMode == "" {
		e.defaultMode = schedule.ModeStandard
	}
	return e
}

// Registry returns the slot registry shared by all timetables.
func (e *Engine) Registry() *slots.Registry {
	return e.registry
}

// session is one loaded timetable.
type session struct {
	name     string
	record   *state.Timetable
	schedule *schedule.Schedule
}

func (e *Engine) open(ctx context.Context, name string) (*session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: timetable name is required", schedule.ErrInvalidInput)
	}

	record, err := e.stateStore.Load(name)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load timetable: %w", err)
		}
		record = state.NewTimetable(name, e.defaultMode, e.clock.Now())
	}

	return &session{
		name:     name,
		record:   record,
		schedule: schedule.New(e.checker, record.Courses, record.PreferredSlot),
	}, nil
}

// save writes the session back unless ctx has been cancelled.
func (e *Engine) save(ctx context.Context, s *session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.record.Courses = s.schedule.Courses()
	s.record.PreferredSlot = s.schedule.PreferredSlotMode()
	s.record.UpdatedAt = e.clock.Now()
	if err := e.stateStore.Save(s.name, s.record); err != nil {
		return fmt.Errorf("failed to save timetable: %w", err)
	}
	return nil
}

// resolveMode picks the request's mode or the timetable's preferred one.
func resolveMode(requested string, s *session) (schedule.SlotMode, error) {
	if requested == "" {
		return s.schedule.PreferredSlotMode(), nil
	}
	mode, ok := schedule.ParseSlotMode(requested)
	if !ok {
		return "", fmt.Errorf("%w: unknown slot mode %q", schedule.ErrInvalidInput, requested)
	}
	return mode, nil
}

// findCourse resolves ref as a course ID, an exact name, or a unique ID
// prefix, in that order.
func findCourse(s *schedule.Schedule, ref string) (schedule.Course, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return schedule.Course{}, fmt.Errorf("%w: course reference is required", schedule.ErrInvalidInput)
	}
	if c, err := s.Course(ref); err == nil {
		return c, nil
	}
	if c, err := s.FindByName(ref); err == nil {
		return c, nil
	}

	var match []schedule.Course
	for _, c := range s.Courses() {
		if strings.HasPrefix(c.ID, ref) {
			match = append(match, c)
		}
	}
	switch len(match) {
	case 0:
		return schedule.Course{}, fmt.Errorf("%w: %q", schedule.ErrNotFound, ref)
	case 1:
		return match[0], nil
	}
	return schedule.Course{}, fmt.Errorf("%w: %q matches %d courses", ErrAmbiguous, ref, len(match))
}
