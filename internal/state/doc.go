// Package state persists timetables between CLI invocations.
//
// Each named timetable is one JSON file under the timetables directory:
//
//	~/.slotwise/timetables/<name>.json
//
// The file holds the ordered course list and the preferred-slot mode. It is
// the CLI's working copy; the interchange format for other tools is the CSV
// produced by the codec package.
package state
