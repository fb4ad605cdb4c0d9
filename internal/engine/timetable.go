package engine

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// ListTimetables returns the names of saved timetables.
func (e *Engine) ListTimetables(ctx context.Context) (*TimetablesResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names, err := e.stateStore.List()
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return &TimetablesResult{Timetables: names}, nil
}

// RemoveTimetable deletes a saved timetable.
func (e *Engine) RemoveTimetable(ctx context.Context, req *RemoveTimetableRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := e.stateStore.Load(req.Timetable); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrTimetableNotFound, req.Timetable)
		}
		return err
	}
	if err := e.stateStore.Delete(req.Timetable); err != nil {
		return err
	}
	e.log.Info("timetable removed", zap.String("timetable", req.Timetable))
	return nil
}
