package state

import (
	"fmt"
	"time"

	"github.com/danieljhkim/slotwise/internal/schedule"
)

// SchemaVersion is the version of the timetable file layout.
const SchemaVersion = 1

// Timetable is the on-disk record of one timetable.
type Timetable struct {
	// Version is the schema version the file was written with
	Version int `json:"version"`

	// Name is the timetable name, also its file name
	Name string `json:"name"`

	// PreferredSlot is the global slot mode
	PreferredSlot schedule.SlotMode `json:"preferredSlot"`

	// Courses is the ordered course list
	Courses []schedule.Course `json:"courses"`

	// CreatedAt is when the timetable was first saved
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the timetable was last saved
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTimetable creates an empty timetable.
func NewTimetable(name string, mode schedule.SlotMode, now time.Time) *Timetable {
	if mode == "" {
		mode = schedule.ModeStandard
	}
	return &Timetable{
		Version:       SchemaVersion,
		Name:          name,
		PreferredSlot: mode,
		Courses:       []schedule.Course{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Check rejects files written by a newer layout or carrying an unknown mode.
func (t *Timetable) Check() error {
	if t.Version > SchemaVersion {
		return fmt.Errorf("timetable %q has schema version %d, this build reads up to %d", t.Name, t.Version, SchemaVersion)
	}
	if t.PreferredSlot == "" {
		t.PreferredSlot = schedule.ModeStandard
	}
	if _, ok := schedule.ParseSlotMode(string(t.PreferredSlot)); !ok {
		return fmt.Errorf("timetable %q has unknown preferred slot mode %q", t.Name, t.PreferredSlot)
	}
	if t.Courses == nil {
		t.Courses = []schedule.Course{}
	}
	return nil
}
