// Package codec reads and writes timetables in the CSV interchange format.
//
// One row per course:
//
//	courseName,slots,credits,facultyPreferences,preferredSlot,facultyLabAssignments
//	DBMS,A1|TA1,3,Dr. A|Dr. B,standard,
//	DBMS Lab,L3|L4,1,Dr. A,standard,Dr. A:L3-L4;Dr. B:L9
//
// Import additionally requires a creationMode column, which export never
// writes. The value of creationMode is not used.
package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danieljhkim/slotwise/internal/schedule"
)

// Column names.
const (
	ColCourseName            = "courseName"
	ColSlots                 = "slots"
	ColCredits               = "credits"
	ColFacultyPreferences    = "facultyPreferences"
	ColPreferredSlot         = "preferredSlot"
	ColCreationMode          = "creationMode"
	ColFacultyLabAssignments = "facultyLabAssignments"
)

// ExportColumns is the header Encode writes, in order.
var ExportColumns = []string{
	ColCourseName,
	ColSlots,
	ColCredits,
	ColFacultyPreferences,
	ColPreferredSlot,
	ColFacultyLabAssignments,
}

// ImportColumns is the header set an import requires, in any order.
var ImportColumns = []string{
	ColCourseName,
	ColSlots,
	ColCredits,
	ColFacultyPreferences,
	ColPreferredSlot,
	ColCreationMode,
	ColFacultyLabAssignments,
}

const (
	listSep       = "|"
	entrySep      = ";"
	facultySep    = ":"
	assignSlotSep = "-"
)

// ErrFormat indicates the input cannot be read as a timetable.
var ErrFormat = errors.New("invalid timetable format")

// FormatError lists the required header columns that are missing.
type FormatError struct {
	Missing []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: missing column(s) %s", ErrFormat, strings.Join(e.Missing, ", "))
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// Table is a decoded timetable.
type Table struct {
	Courses []schedule.Course

	// Mode is the first data row's preferredSlot. It is empty when there
	// are no rows or the value is not a known mode.
	Mode schedule.SlotMode
}

// Encode writes courses and the global mode in the export layout.
func Encode(w io.Writer, courses []schedule.Course, mode schedule.SlotMode) error {
	if mode == "" {
		mode = schedule.ModeStandard
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range courses {
		c := &courses[i]
		row := []string{
			c.Name,
			strings.Join(c.Slots, listSep),
			strconv.Itoa(c.Credits),
			strings.Join(c.FacultyPreferences, listSep),
			string(mode),
			encodeAssignments(c),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %q: %w", c.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// encodeAssignments lists listed faculty in preference order, then any
// orphaned entries sorted by name.
func encodeAssignments(c *schedule.Course) string {
	if len(c.FacultyLabAssignments) == 0 {
		return ""
	}
	names := make([]string, 0, len(c.FacultyLabAssignments))
	for _, f := range c.FacultyPreferences {
		if _, ok := c.FacultyLabAssignments[f]; ok {
			names = append(names, f)
		}
	}
	names = append(names, c.OrphanedAssignments()...)

	parts := make([]string, 0, len(names))
	for _, f := range names {
		list := c.FacultyLabAssignments[f]
		if len(list) == 0 {
			continue
		}
		parts = append(parts, f+facultySep+strings.Join(list, assignSlotSep))
	}
	return strings.Join(parts, entrySep)
}

// Decode reads a timetable written by Encode. Every export column must be
// present; extra columns are ignored. Values are decoded as written: credits
// that do not parse become 0, but parsed values are not range checked.
func Decode(r io.Reader) (*Table, error) {
	return decode(r, ExportColumns)
}

// DecodeImport reads a timetable for import, which additionally requires
// the creationMode column. Nothing is returned unless the header is valid.
func DecodeImport(r io.Reader) (*Table, error) {
	return decode(r, ImportColumns)
}

// ValidateImportHeader checks header against ImportColumns.
func ValidateImportHeader(header []string) error {
	_, err := indexColumns(header, ImportColumns)
	return err
}

func decode(r io.Reader, required []string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &FormatError{Missing: append([]string(nil), required...)}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	idx, err := indexColumns(header, required)
	if err != nil {
		return nil, err
	}

	t := &Table{}
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		if blank(rec) {
			continue
		}
		field := func(col string) string {
			i := idx[col]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		if first {
			if mode, ok := schedule.ParseSlotMode(field(ColPreferredSlot)); ok {
				t.Mode = mode
			}
			first = false
		}

		t.Courses = append(t.Courses, schedule.Course{
			Name:                  field(ColCourseName),
			Slots:                 splitList(field(ColSlots), listSep),
			Credits:               parseCredits(field(ColCredits)),
			FacultyPreferences:    splitList(field(ColFacultyPreferences), listSep),
			FacultyLabAssignments: decodeAssignments(field(ColFacultyLabAssignments)),
		})
	}
	return t, nil
}

// indexColumns maps each required column to its position in header.
func indexColumns(header, required []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	var missing []string
	for _, col := range required {
		if _, ok := pos[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &FormatError{Missing: missing}
	}
	return pos, nil
}

// parseCredits reads an integer, treating anything unparseable as 0.
func parseCredits(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// decodeAssignments parses "name:slot-slot;name:slot". Malformed segments
// are skipped.
func decodeAssignments(s string) map[string][]string {
	if s == "" {
		return nil
	}
	out := make(map[string][]string)
	for _, seg := range strings.Split(s, entrySep) {
		name, rest, ok := strings.Cut(seg, facultySep)
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		list := splitList(rest, assignSlotSep)
		if len(list) == 0 {
			continue
		}
		out[name] = list
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func splitList(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
