package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/danieljhkim/slotwise/internal/codec"
	"github.com/danieljhkim/slotwise/internal/grid"
	"github.com/danieljhkim/slotwise/internal/schedule"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Import replaces a timetable's courses and mode with the decoded CSV. The
// header must carry every import column, credits must be in range and no
// two rows may clash; on any error nothing is saved. A first row without a
// known preferredSlot keeps the timetable's current mode.
func (e *Engine) Import(ctx context.Context, req *ImportRequest) (*ImportResult, error) {
	if req.Reader == nil {
		return nil, fmt.Errorf("%w: no import input", schedule.ErrInvalidInput)
	}
	sess, err := e.open(ctx, req.Timetable)
	if err != nil {
		return nil, err
	}

	table, err := codec.DecodeImport(req.Reader)
	if err == nil {
		err = sess.schedule.CheckReplacement(table.Courses)
	}
	if err != nil {
		e.log.Debug("import rejected",
			zap.String("timetable", sess.name),
			zap.String("source", req.Source),
			zap.Error(err))
		return nil, err
	}

	mode := table.Mode
	if mode == "" {
		mode = sess.schedule.PreferredSlotMode()
	}
	res := &ImportResult{Courses: len(table.Courses), PreferredSlot: mode, DryRun: req.DryRun}
	if req.DryRun {
		return res, nil
	}

	if err := sess.schedule.Replace(table.Courses, mode); err != nil {
		return nil, err
	}
	if err := e.save(ctx, sess); err != nil {
		return nil, err
	}
	e.log.Info("timetable imported",
		zap.String("timetable", sess.name),
		zap.String("source", req.Source),
		zap.Int("courses", res.Courses),
		zap.String("mode", string(res.PreferredSlot)))
	return res, nil
}

// Export writes the timetable as CSV, or as an XLSX grid of effective slots.
func (e *Engine) Export(ctx context.Context, req *ExportRequest) (*ExportResult, error) {
	if req.Writer == nil {
		return nil, fmt.Errorf("%w: no export output", schedule.ErrInvalidInput)
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = FormatCSV
	}

	sess, err := e.open(ctx, req.Timetable)
	if err != nil {
		return nil, err
	}
	courses := sess.schedule.Courses()

	switch format {
	case FormatCSV:
		err = codec.Encode(req.Writer, courses, sess.schedule.PreferredSlotMode())
	case FormatXLSX:
		err = grid.WriteXLSX(req.Writer, grid.Build(e.registry, courses), sess.name)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", schedule.ErrInvalidInput, req.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to export timetable: %w", err)
	}

	e.log.Info("timetable exported",
		zap.String("timetable", sess.name),
		zap.String("format", format),
		zap.Int("courses", len(courses)))
	return &ExportResult{Courses: len(courses), Format: format}, nil
}
