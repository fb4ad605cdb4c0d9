// Package planner handles the planning phase of timetable edits.
//
// The planner decides whether slots may be added to a course and stages the
// resulting selection in a transient Draft until the caller confirms it.
// It never mutates the timetable itself: a Draft that is thrown away leaves
// no trace.
//
// Key responsibilities:
//   - Decide slot availability against the current allocation (ConflictChecker)
//   - Explain why a slot is blocked (Conflict)
//   - Stage selections from grid toggles and typed slot patterns (Draft)
//   - Carry the edit flow a draft belongs to (EditIntent)
package planner
