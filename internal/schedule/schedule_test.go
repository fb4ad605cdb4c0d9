package schedule

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/slotwise/internal/planner"
	"github.com/danieljhkim/slotwise/internal/slots"
)

func newTestSchedule(t *testing.T) *Schedule {
	t.Helper()
	s := New(planner.NewConflictChecker(slots.NewRegistry()), nil, "")
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("c%d", n)
	}
	return s
}

func TestSchedule_AddCourse(t *testing.T) {
	s := newTestSchedule(t)

	id, err := s.AddCourse("DBMS", []string{"A1", "TA1", "A1"}, 3, []string{"Dr. A"})
	require.NoError(t, err)

	c, err := s.Course(id)
	require.NoError(t, err)
	assert.Equal(t, "DBMS", c.Name)
	assert.Equal(t, []string{"A1", "TA1"}, c.Slots)
	assert.Equal(t, 3, c.Credits)
	assert.Equal(t, []string{"Dr. A"}, c.FacultyPreferences)
	assert.Equal(t, ModeStandard, s.PreferredSlotMode())
}

func TestSchedule_AddCourseValidation(t *testing.T) {
	tooMany := make([]string, MaxFaculty+1)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("Dr. %d", i)
	}

	tests := []struct {
		name    string
		course  string
		slots   []string
		credits int
		prefs   []string
	}{
		{"empty name", "", []string{"A1"}, 3, nil},
		{"blank name", "   ", []string{"A1"}, 3, nil},
		{"no slots", "DBMS", nil, 3, nil},
		{"negative credits", "DBMS", []string{"A1"}, -1, nil},
		{"credits above five", "DBMS", []string{"A1"}, 6, nil},
		{"unknown slot", "DBMS", []string{"Z9"}, 3, nil},
		{"too many faculty", "DBMS", []string{"A1"}, 3, tooMany},
		{"duplicate faculty", "DBMS", []string{"A1"}, 3, []string{"Dr. A", "Dr. A"}},
		{"blank faculty", "DBMS", []string{"A1"}, 3, []string{" "}},
		{"lab name", "DBMS Lab", []string{"L1"}, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSchedule(t)
			_, err := s.AddCourse(tt.course, tt.slots, tt.credits, tt.prefs)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, s.Courses(), "failed add must not change the store")
		})
	}
}

func TestSchedule_AddCourseRejectsDuplicateName(t *testing.T) {
	s := newTestSchedule(t)
	_, err := s.AddCourse("DBMS", []string{"A1"}, 3, nil)
	require.NoError(t, err)

	_, err = s.AddCourse("DBMS", []string{"B1"}, 3, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSchedule_ConflictScenario(t *testing.T) {
	s := newTestSchedule(t)
	_, err := s.AddCourse("DBMS", []string{"A1", "TA1"}, 3, nil)
	require.NoError(t, err)
	osID, err := s.AddCourse("OS", []string{"F1"}, 3, nil)
	require.NoError(t, err)

	ok, blockers := s.Availability("L2", "")
	assert.False(t, ok)
	require.Len(t, blockers, 1)
	assert.Equal(t, "F1", blockers[0].Blocker)

	_, err = s.AddCourse("Networks", []string{"L2"}, 2, nil)
	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "L2", unavailable.Slot)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = s.DeleteCourse(osID)
	require.NoError(t, err)

	ok, _ = s.Availability("L2", "")
	assert.True(t, ok)
	_, err = s.AddCourse("Networks", []string{"L2"}, 2, nil)
	assert.NoError(t, err)
}

func TestSchedule_EditCourseExemptsOwnSlots(t *testing.T) {
	s := newTestSchedule(t)
	id, err := s.AddCourse("DBMS", []string{"A1", "TA1"}, 3, nil)
	require.NoError(t, err)
	_, err = s.AddCourse("OS", []string{"F1"}, 3, nil)
	require.NoError(t, err)

	// Keeping A1 and adding a slot that only conflicts with A1 is allowed.
	require.NoError(t, s.EditCourse(id, "DBMS", []string{"A1", "TA1", "L1"}, 4))

	c, err := s.Course(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "TA1", "L1"}, c.Slots)
	assert.Equal(t, 4, c.Credits)

	// Taking another course's slot is not.
	err = s.EditCourse(id, "DBMS", []string{"A1", "F1"}, 4)
	assert.ErrorIs(t, err, ErrUnavailable)

	c, _ = s.Course(id)
	assert.Equal(t, []string{"A1", "TA1", "L1"}, c.Slots, "rejected edit must not change the course")
}

func TestSchedule_EditPreservesPosition(t *testing.T) {
	s := newTestSchedule(t)
	a, _ := s.AddCourse("A", []string{"A1"}, 3, nil)
	_, _ = s.AddCourse("B", []string{"B1"}, 3, nil)

	require.NoError(t, s.EditCourse(a, "Alpha", []string{"C1"}, 2))

	courses := s.Courses()
	require.Len(t, courses, 2)
	assert.Equal(t, "Alpha", courses[0].Name)
	assert.Equal(t, "B", courses[1].Name)
}

func TestSchedule_RenameCarriesLab(t *testing.T) {
	s := newTestSchedule(t)
	id, _ := s.AddCourse("Calculus", []string{"B1"}, 3, nil)
	labID, err := s.AddLab(id, []string{"L3", "L4"}, nil)
	require.NoError(t, err)

	require.NoError(t, s.EditCourse(id, "Calculus II", []string{"B1"}, 3))

	lab, err := s.Course(labID)
	require.NoError(t, err)
	assert.Equal(t, "Calculus II Lab", lab.Name)
}

func TestSchedule_EditLabKeepsNameAndCredits(t *testing.T) {
	s := newTestSchedule(t)
	id, _ := s.AddCourse("Physics", []string{"C1"}, 3, nil)
	labID, err := s.AddLab(id, []string{"L5"}, nil)
	require.NoError(t, err)

	require.NoError(t, s.EditCourse(labID, "Physics Lab", []string{"L5", "L6"}, 4))
	lab, _ := s.Course(labID)
	assert.Equal(t, LabCredits, lab.Credits)
	assert.Equal(t, []string{"L5", "L6"}, lab.Slots)

	err = s.EditCourse(labID, "Chemistry Lab", []string{"L5"}, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = s.EditCourse(labID, "Physics Lab", []string{"C2"}, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSchedule_AddLab(t *testing.T) {
	s := newTestSchedule(t)
	id, _ := s.AddCourse("DBMS", []string{"A1"}, 3, nil)

	labID, err := s.AddLab(id, []string{"L3", "L4"}, []string{"Dr. A"})
	require.NoError(t, err)
	lab, _ := s.Course(labID)
	assert.Equal(t, "DBMS Lab", lab.Name)
	assert.Equal(t, LabCredits, lab.Credits)
	assert.True(t, lab.IsLab())
	assert.Equal(t, "DBMS", lab.BaseName())

	_, err = s.AddLab(id, []string{"L7"}, nil)
	assert.ErrorIs(t, err, ErrDuplicateLab)

	_, err = s.AddLab(labID, []string{"L7"}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.AddLab("missing", []string{"L7"}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSchedule_AddLabConflictsWithTheory(t *testing.T) {
	s := newTestSchedule(t)
	id, _ := s.AddCourse("DBMS", []string{"A1"}, 3, nil)

	// A1 overlaps L1; the lab is a different course so it is blocked.
	_, err := s.AddLab(id, []string{"L1"}, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSchedule_AddCourseWithLabIsAtomic(t *testing.T) {
	s := newTestSchedule(t)

	_, _, err := s.AddCourseWithLab("DBMS", []string{"A1"}, 3, nil, []string{"L1"}, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, s.Courses())

	theory, lab, err := s.AddCourseWithLab("DBMS", []string{"A1"}, 3, nil, []string{"L3", "L4"}, nil)
	require.NoError(t, err)
	courses := s.Courses()
	require.Len(t, courses, 2)
	assert.Equal(t, theory, courses[0].ID)
	assert.Equal(t, lab, courses[1].ID)
	assert.Equal(t, "DBMS Lab", courses[1].Name)
}

func TestSchedule_DeleteCascadesToLab(t *testing.T) {
	s := newTestSchedule(t)
	calc, _ := s.AddCourse("Calculus", []string{"B1"}, 3, nil)
	_, err := s.AddLab(calc, []string{"L3"}, nil)
	require.NoError(t, err)
	_, _ = s.AddCourse("OS", []string{"F1"}, 3, nil)

	removed, err := s.DeleteCourse(calc)
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	courses := s.Courses()
	require.Len(t, courses, 1)
	assert.Equal(t, "OS", courses[0].Name)
}

func TestSchedule_DeleteLabKeepsTheory(t *testing.T) {
	s := newTestSchedule(t)
	calc, _ := s.AddCourse("Calculus", []string{"B1"}, 3, nil)
	labID, _ := s.AddLab(calc, []string{"L3"}, nil)

	removed, err := s.DeleteCourse(labID)
	require.NoError(t, err)
	assert.Equal(t, []string{labID}, removed)

	courses := s.Courses()
	require.Len(t, courses, 1)
	assert.Equal(t, "Calculus", courses[0].Name)

	_, err = s.DeleteCourse(labID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSchedule_FacultyLabAssignments(t *testing.T) {
	s := newTestSchedule(t)
	calc, _ := s.AddCourse("Calculus", []string{"B1"}, 3, nil)
	labID, _ := s.AddLab(calc, []string{"L5", "L6"}, []string{"Dr. A", "Dr. B"})

	require.NoError(t, s.SetFacultyLabAssignment(labID, "Dr. A", []string{"L3", "L4"}))
	alloc := s.AllocationState()
	assert.True(t, alloc.Has("L3"))
	assert.True(t, alloc.Has("L4"))
	assert.False(t, alloc.Has("L5"), "declared slots are overridden by the top faculty's assignment")

	// Dr. B is not top priority: stored, not allocated.
	require.NoError(t, s.SetFacultyLabAssignment(labID, "Dr. B", []string{"L9"}))
	assert.False(t, s.AllocationState().Has("L9"))

	// Promoting Dr. B swaps the effective slots.
	require.NoError(t, s.MoveFacultyPreference(labID, 1, 0))
	alloc = s.AllocationState()
	assert.True(t, alloc.Has("L9"))
	assert.False(t, alloc.Has("L3"))

	// Empty slots delete the entry.
	require.NoError(t, s.SetFacultyLabAssignment(labID, "Dr. B", nil))
	lab, _ := s.Course(labID)
	assert.NotContains(t, lab.FacultyLabAssignments, "Dr. B")
	assert.True(t, s.AllocationState().Has("L5"))
}

func TestSchedule_FacultyLabAssignmentValidation(t *testing.T) {
	s := newTestSchedule(t)
	calc, _ := s.AddCourse("Calculus", []string{"B1"}, 3, nil)
	labID, _ := s.AddLab(calc, []string{"L3"}, []string{"Dr. A"})
	_, _ = s.AddCourse("OS", []string{"F1"}, 3, nil)

	assert.ErrorIs(t, s.SetFacultyLabAssignment(calc, "Dr. A", []string{"L5"}), ErrInvalidInput, "theory courses take no lab assignments")
	assert.ErrorIs(t, s.SetFacultyLabAssignment(labID, "", []string{"L5"}), ErrInvalidInput)
	assert.ErrorIs(t, s.SetFacultyLabAssignment(labID, "Dr. A", []string{"B2"}), ErrInvalidInput)
	assert.ErrorIs(t, s.SetFacultyLabAssignment(labID, "Dr. A", []string{"L2"}), ErrUnavailable, "L2 overlaps F1")
	assert.ErrorIs(t, s.SetFacultyLabAssignment("nope", "Dr. A", []string{"L5"}), ErrNotFound)

	// The lab's own current slot does not block its reassignment.
	assert.NoError(t, s.SetFacultyLabAssignment(labID, "Dr. A", []string{"L3", "L4"}))
}

func TestSchedule_OrphanedAssignmentsStayInert(t *testing.T) {
	s := newTestSchedule(t)
	calc, _ := s.AddCourse("Calculus", []string{"B1"}, 3, nil)
	labID, _ := s.AddLab(calc, []string{"L5"}, []string{"Dr. A"})
	require.NoError(t, s.SetFacultyLabAssignment(labID, "Dr. A", []string{"L3"}))

	require.NoError(t, s.SetFacultyPreferences(labID, []string{"Dr. C"}))
	lab, _ := s.Course(labID)
	assert.Equal(t, []string{"L3"}, lab.FacultyLabAssignments["Dr. A"], "entry is kept")
	assert.Equal(t, []string{"Dr. A"}, lab.OrphanedAssignments())
	assert.False(t, s.AllocationState().Has("L3"))
	assert.True(t, s.AllocationState().Has("L5"))

	// The name reappearing at the top reactivates it.
	require.NoError(t, s.SetFacultyPreferences(labID, []string{"Dr. A", "Dr. C"}))
	assert.True(t, s.AllocationState().Has("L3"))
}

func TestSchedule_PreferenceChangeCannotCreateConflict(t *testing.T) {
	s := newTestSchedule(t)
	calc, _ := s.AddCourse("Calculus", []string{"B1"}, 3, nil)
	labID, _ := s.AddLab(calc, []string{"L5"}, []string{"Dr. A", "Dr. B"})
	require.NoError(t, s.SetFacultyLabAssignment(labID, "Dr. B", []string{"L2"}))
	_, err := s.AddCourse("OS", []string{"F1"}, 3, nil)
	require.NoError(t, err)

	// L2 is inert while Dr. B is second; promoting Dr. B would clash with F1.
	err = s.MoveFacultyPreference(labID, 1, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
	lab, _ := s.Course(labID)
	assert.Equal(t, []string{"Dr. A", "Dr. B"}, lab.FacultyPreferences)
}

func TestSchedule_MoveFacultyPreference(t *testing.T) {
	s := newTestSchedule(t)
	id, _ := s.AddCourse("DBMS", []string{"A1"}, 3, []string{"A", "B", "C", "D"})

	require.NoError(t, s.MoveFacultyPreference(id, 3, 1))
	c, _ := s.Course(id)
	assert.Equal(t, []string{"A", "D", "B", "C"}, c.FacultyPreferences)

	require.NoError(t, s.MoveFacultyPreference(id, 0, 3))
	c, _ = s.Course(id)
	assert.Equal(t, []string{"D", "B", "C", "A"}, c.FacultyPreferences)

	assert.ErrorIs(t, s.MoveFacultyPreference(id, 0, 4), ErrInvalidInput)
	assert.ErrorIs(t, s.MoveFacultyPreference(id, -1, 0), ErrInvalidInput)
}

func TestSchedule_Groups(t *testing.T) {
	s := newTestSchedule(t)
	dbms, _ := s.AddCourse("DBMS", []string{"A1"}, 3, nil)
	osID, _ := s.AddCourse("OS", []string{"F1"}, 3, nil)
	lab, _ := s.AddLab(dbms, []string{"L3"}, nil)

	groups := s.Groups()
	assert.Equal(t, 0, groups[dbms])
	assert.Equal(t, 1, groups[osID])
	assert.Equal(t, groups[dbms], groups[lab])
	assert.Equal(t, 3+3+1, s.TotalCredits())
}

func TestSchedule_Replace(t *testing.T) {
	s := newTestSchedule(t)
	_, _ = s.AddCourse("DBMS", []string{"A1"}, 3, nil)

	require.NoError(t, s.Replace([]Course{{Name: "OS", Slots: []string{"F1"}, Credits: 3}}, ModeCustom))

	courses := s.Courses()
	require.Len(t, courses, 1)
	assert.Equal(t, "OS", courses[0].Name)
	assert.NotEmpty(t, courses[0].ID)
	assert.Equal(t, ModeCustom, s.PreferredSlotMode())

	require.NoError(t, s.Replace(nil, ""))
	assert.Equal(t, ModeCustom, s.PreferredSlotMode(), "empty mode keeps the current one")
}

func TestSchedule_ReplaceRejectsBrokenRows(t *testing.T) {
	tests := []struct {
		name    string
		courses []Course
		wantErr error
	}{
		{
			name:    "credits above range",
			courses: []Course{{Name: "DBMS", Slots: []string{"A1"}, Credits: 9}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative credits",
			courses: []Course{{Name: "OS", Slots: []string{"F1"}, Credits: -4}},
			wantErr: ErrInvalidInput,
		},
		{
			name: "clash between courses",
			courses: []Course{
				{Name: "DBMS", Slots: []string{"A1", "F1"}, Credits: 3},
				{Name: "OS", Slots: []string{"L2"}, Credits: 3},
			},
			wantErr: ErrUnavailable,
		},
		{
			name: "slot held twice",
			courses: []Course{
				{Name: "DBMS", Slots: []string{"A1"}, Credits: 3},
				{Name: "OS", Slots: []string{"A1"}, Credits: 3},
			},
			wantErr: ErrUnavailable,
		},
		{
			name: "clash through effective lab slots",
			courses: []Course{
				{Name: "OS", Slots: []string{"F1"}, Credits: 3},
				{
					Name: "OS Lab", Slots: []string{"L6"}, Credits: 1,
					FacultyPreferences:    []string{"Dr. A"},
					FacultyLabAssignments: map[string][]string{"Dr. A": {"L2"}},
				},
			},
			wantErr: ErrUnavailable,
		},
		{
			name:    "separator in faculty name",
			courses: []Course{{Name: "OS", Slots: []string{"F1"}, Credits: 3, FacultyPreferences: []string{"Iyer|K"}}},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSchedule(t)
			keep, _ := s.AddCourse("Keep", []string{"B1"}, 2, nil)

			err := s.Replace(tt.courses, ModeCustom)
			assert.ErrorIs(t, err, tt.wantErr)

			courses := s.Courses()
			require.Len(t, courses, 1, "nothing is applied on error")
			assert.Equal(t, keep, courses[0].ID)
			assert.Equal(t, ModeStandard, s.PreferredSlotMode())
		})
	}
}

func TestSchedule_ReplaceAllowsClashWithinCourse(t *testing.T) {
	s := newTestSchedule(t)

	// A1 and L1 overlap, but one course may hold both.
	err := s.Replace([]Course{{Name: "Studio", Slots: []string{"A1", "L1"}, Credits: 2}}, "")
	require.NoError(t, err)
	assert.True(t, s.AllocationState().Has("L1"))
}

func TestSchedule_FacultyNamesRejectSeparators(t *testing.T) {
	s := newTestSchedule(t)
	calc, _ := s.AddCourse("Calculus", []string{"B1"}, 3, nil)
	labID, _ := s.AddLab(calc, []string{"L5"}, []string{"Dr. A"})

	for _, name := range []string{"Iyer|K", "Rao: Sr", "A;B"} {
		assert.ErrorIs(t, s.SetFacultyPreferences(calc, []string{"Dr. A", name}), ErrInvalidInput, name)
		assert.ErrorIs(t, s.SetFacultyLabAssignment(labID, name, []string{"L3"}), ErrInvalidInput, name)
	}
	_, err := s.AddCourse("OS", []string{"F1"}, 3, []string{"Rao: Sr"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	lab, _ := s.Course(labID)
	assert.Equal(t, []string{"Dr. A"}, lab.FacultyPreferences)
	assert.Empty(t, lab.FacultyLabAssignments)
}

func TestSchedule_LabAssignmentRequiresLabCourse(t *testing.T) {
	s := newTestSchedule(t)
	calc, _ := s.AddCourse("Calculus", []string{"B1"}, 3, []string{"Dr. A"})
	_, _ = s.AddLab(calc, []string{"L5"}, []string{"Dr. A"})

	// The companion exists, but assignments live on the lab itself.
	err := s.SetFacultyLabAssignment(calc, "Dr. A", []string{"L3"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSchedule_CoursesReturnsCopies(t *testing.T) {
	s := newTestSchedule(t)
	id, _ := s.AddCourse("DBMS", []string{"A1"}, 3, []string{"Dr. A"})

	courses := s.Courses()
	courses[0].Slots[0] = "B1"
	courses[0].FacultyPreferences[0] = "Dr. Z"

	c, _ := s.Course(id)
	assert.Equal(t, []string{"A1"}, c.Slots)
	assert.Equal(t, []string{"Dr. A"}, c.FacultyPreferences)
}

func TestSchedule_Draft(t *testing.T) {
	s := newTestSchedule(t)
	dbms, _ := s.AddCourse("DBMS", []string{"A1", "TA1"}, 3, nil)
	_, _ = s.AddCourse("OS", []string{"F1"}, 3, nil)

	d, err := s.Draft(planner.EditCourse{CourseID: dbms})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "TA1"}, d.Slots())
	assert.True(t, d.Available("L1"))
	assert.False(t, d.Available("L2"))

	d, err = s.Draft(planner.AddCourse{})
	require.NoError(t, err)
	assert.False(t, d.Available("A1"))

	_, err = s.Draft(planner.AddLab{TheoryID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Draft(planner.EditCourse{CourseID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSchedule_ConcurrentAddsKeepMutualExclusion(t *testing.T) {
	s := New(planner.NewConflictChecker(slots.NewRegistry()), nil, ModeStandard)
	reg := s.Checker().Registry()

	// Every goroutine races for one side of a conflict pair.
	var wg sync.WaitGroup
	for _, p := range reg.Pairs(slots.Morning) {
		p := p
		for _, slot := range []string{p.A, p.B} {
			wg.Add(1)
			go func(slot string) {
				defer wg.Done()
				_, _ = s.AddCourse("Course "+slot+" "+p.A, []string{slot}, 1, nil)
			}(slot)
		}
	}
	wg.Wait()

	alloc := s.AllocationState()
	for _, p := range reg.Pairs(slots.Morning) {
		assert.False(t, alloc.Has(p.A) && alloc.Has(p.B), "%s and %s both allocated", p.A, p.B)
	}
}
