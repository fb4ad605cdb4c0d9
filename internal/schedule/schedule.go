package schedule

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/danieljhkim/slotwise/internal/planner"
	"github.com/danieljhkim/slotwise/internal/slots"
)

// Schedule is the ordered course collection of one timetable.
// Every operation holds the same mutex for its whole duration, so concurrent
// callers never observe a partial mutation.
type Schedule struct {
	mu      sync.Mutex
	checker *planner.ConflictChecker
	courses []Course
	mode    SlotMode
	newID   func() string
}

// New creates a Schedule holding courses (copied) in the given mode.
// Courses without an ID are assigned one.
func New(checker *planner.ConflictChecker, courses []Course, mode SlotMode) *Schedule {
	s := &Schedule{
		checker: checker,
		mode:    mode,
		newID:   uuid.NewString,
	}
	if s.mode == "" {
		s.mode = ModeStandard
	}
	s.courses = s.adopt(courses)
	return s
}

func (s *Schedule) adopt(courses []Course) []Course {
	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		c = c.Clone()
		if c.ID == "" {
			c.ID = s.newID()
		}
		out = append(out, c)
	}
	return out
}

// Checker returns the conflict checker the schedule validates against.
func (s *Schedule) Checker() *planner.ConflictChecker {
	return s.checker
}

func (s *Schedule) registry() *slots.Registry {
	return s.checker.Registry()
}

// Courses returns a deep copy of the courses in insertion order.
func (s *Schedule) Courses() []Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Course, len(s.courses))
	for i, c := range s.courses {
		out[i] = c.Clone()
	}
	return out
}

// Course returns a copy of the course with the given ID.
func (s *Schedule) Course(id string) (Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Course{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.courses[i].Clone(), nil
}

// FindByName returns a copy of the course with the given name.
func (s *Schedule) FindByName(name string) (Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfName(strings.TrimSpace(name))
	if i < 0 {
		return Course{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s.courses[i].Clone(), nil
}

// PreferredSlotMode returns the timetable's global slot mode.
func (s *Schedule) PreferredSlotMode() SlotMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetPreferredSlotMode changes the timetable's global slot mode.
func (s *Schedule) SetPreferredSlotMode(mode SlotMode) error {
	if _, ok := ParseSlotMode(string(mode)); !ok {
		return invalid("PreferredSlot", "unknown mode %q", mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	return nil
}

// AllocationState returns the union of every course's effective slots.
func (s *Schedule) AllocationState() planner.SlotSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocation("")
}

// Availability reports whether slot could be added to the course editing
// (empty for a new course).
func (s *Schedule) Availability(slot, editing string) (bool, []planner.Conflict) {
	s.mu.Lock()
	defer s.mu.Unlock()

	own := s.ownSlots(editing)
	blockers := s.checker.Blockers(slot, s.allocation(""), own)
	return len(blockers) == 0, blockers
}

// Draft starts a planner draft for intent against the current allocation.
// Drafts for existing courses stage the course's current slots and exempt
// its whole current contribution from conflicts.
func (s *Schedule) Draft(intent planner.EditIntent) (*planner.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch in := intent.(type) {
	case planner.AddCourse:
		return planner.NewDraft(s.checker, intent, s.allocation(""), nil), nil
	case planner.AddLab:
		if s.indexOf(in.TheoryID) < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, in.TheoryID)
		}
		return planner.NewDraft(s.checker, intent, s.allocation(""), nil), nil
	case planner.EditCourse:
		return s.editDraft(intent, in.CourseID, nil)
	case planner.EditLab:
		return s.editDraft(intent, in.LabID, nil)
	case planner.EditFaculty:
		return s.editDraft(intent, in.CourseID, func(c *Course) []string {
			return c.FacultyLabAssignments[in.Faculty]
		})
	}
	return nil, fmt.Errorf("%w: unsupported intent %T", ErrInvalidInput, intent)
}

func (s *Schedule) editDraft(intent planner.EditIntent, id string, staged func(*Course) []string) (*planner.Draft, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	own := s.courses[i].Slots
	if staged != nil {
		own = staged(&s.courses[i])
	}
	return planner.NewDraft(s.checker, intent, s.allocation(id), own), nil
}

// AddCourse appends a new theory course and returns its ID.
func (s *Schedule) AddCourse(name string, slotList []string, credits int, prefs []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.prepareTheory(name, slotList, credits, prefs)
	if err != nil {
		return "", err
	}
	if err := s.checkAvailable(c.Slots, s.allocation(""), nil); err != nil {
		return "", err
	}
	s.courses = append(s.courses, c)
	return c.ID, nil
}

// AddCourseWithLab appends a theory course and its lab companion in one step.
// Nothing is added unless both are valid.
func (s *Schedule) AddCourseWithLab(name string, slotList []string, credits int, prefs []string, labSlots, labPrefs []string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	theory, err := s.prepareTheory(name, slotList, credits, prefs)
	if err != nil {
		return "", "", err
	}
	lab, err := s.prepareLab(theory.Name, labSlots, labPrefs)
	if err != nil {
		return "", "", err
	}

	allocation := s.allocation("")
	if err := s.checkAvailable(theory.Slots, allocation, nil); err != nil {
		return "", "", err
	}
	withTheory := planner.NewSlotSet(mapKeys(allocation), theory.Slots)
	if err := s.checkAvailable(lab.Slots, withTheory, nil); err != nil {
		return "", "", err
	}

	s.courses = append(s.courses, theory, lab)
	return theory.ID, lab.ID, nil
}

// AddLab creates the lab companion of an existing theory course. Lab
// credits are fixed.
func (s *Schedule) AddLab(theoryID string, slotList []string, prefs []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(theoryID)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, theoryID)
	}
	theory := s.courses[i]
	if theory.IsLab() {
		return "", invalid("Name", "%q is already a lab course", theory.Name)
	}
	if s.indexOfName(LabName(theory.Name)) >= 0 {
		return "", fmt.Errorf("%w: %q", ErrDuplicateLab, LabName(theory.Name))
	}

	lab, err := s.prepareLab(theory.Name, slotList, prefs)
	if err != nil {
		return "", err
	}
	if err := s.checkAvailable(lab.Slots, s.allocation(""), nil); err != nil {
		return "", err
	}
	s.courses = append(s.courses, lab)
	return lab.ID, nil
}

// EditCourse updates a course in place. The course's prior slots are exempt
// from conflicts. Renaming a theory course renames its lab companion with
// it; a lab course keeps its fixed name and credits.
func (s *Schedule) EditCourse(id, name string, slotList []string, credits int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	prior := s.courses[i]

	updated := prior.Clone()
	updated.Name = strings.TrimSpace(name)
	updated.Slots = dedupe(slotList)
	updated.Credits = credits

	labIdx := -1
	if prior.IsLab() {
		if updated.Name != prior.Name {
			return invalid("Name", "lab course name is fixed to %q", prior.Name)
		}
		updated.Credits = LabCredits
	} else {
		if IsLabName(updated.Name) {
			return invalid("Name", "theory course name cannot end in %q", LabSuffix)
		}
		if updated.Name != prior.Name {
			if j := s.indexOfName(updated.Name); j >= 0 && j != i {
				return invalid("Name", "a course named %q already exists", updated.Name)
			}
			if j := s.indexOfName(LabName(updated.Name)); j >= 0 {
				return invalid("Name", "a course named %q already exists", LabName(updated.Name))
			}
			labIdx = s.indexOfName(LabName(prior.Name))
		}
	}

	if err := validateCourse(s.registry(), &updated); err != nil {
		return err
	}
	own := s.ownSlots(id)
	if err := s.checkAvailable(updated.Slots, s.allocation(""), own); err != nil {
		return err
	}

	s.courses[i] = updated
	if labIdx >= 0 {
		s.courses[labIdx].Name = LabName(updated.Name)
	}
	return nil
}

// DeleteCourse removes a course. Deleting a theory course also removes its
// lab companion; deleting a lab removes only the lab. It returns the IDs
// removed.
func (s *Schedule) DeleteCourse(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	target := s.courses[i]

	removed := map[string]bool{target.ID: true}
	if !target.IsLab() {
		if j := s.indexOfName(LabName(target.Name)); j >= 0 {
			removed[s.courses[j].ID] = true
		}
	}

	kept := s.courses[:0:0]
	var ids []string
	for _, c := range s.courses {
		if removed[c.ID] {
			ids = append(ids, c.ID)
			continue
		}
		kept = append(kept, c)
	}
	s.courses = kept
	return ids, nil
}

// SetFacultyPreferences replaces the ordered faculty list. Lab assignments
// of faculty no longer listed are kept but stay inert.
func (s *Schedule) SetFacultyPreferences(id string, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	updated := s.courses[i].Clone()
	updated.FacultyPreferences = trimAll(names)
	if err := validateCourse(s.registry(), &updated); err != nil {
		return err
	}
	if err := s.checkEffective(i, &updated); err != nil {
		return err
	}
	s.courses[i] = updated
	return nil
}

// MoveFacultyPreference moves the faculty at index from to index to,
// shifting the entries in between.
func (s *Schedule) MoveFacultyPreference(id string, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	updated := s.courses[i].Clone()
	prefs := updated.FacultyPreferences
	if from < 0 || from >= len(prefs) || to < 0 || to >= len(prefs) {
		return invalid("FacultyPreferences", "index out of range: %d -> %d (have %d)", from, to, len(prefs))
	}
	if from == to {
		return nil
	}
	moved := prefs[from]
	prefs = append(prefs[:from], prefs[from+1:]...)
	prefs = append(prefs[:to], append([]string{moved}, prefs[to:]...)...)
	updated.FacultyPreferences = prefs

	if err := s.checkEffective(i, &updated); err != nil {
		return err
	}
	s.courses[i] = updated
	return nil
}

// SetFacultyLabAssignment sets the lab slots of one faculty on a lab course.
// Empty slots delete the entry. Slots are checked against the allocation
// without the course's own current contribution.
func (s *Schedule) SetFacultyLabAssignment(id, faculty string, slotList []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	faculty = strings.TrimSpace(faculty)
	if faculty == "" {
		return invalid("Faculty", "must not be empty")
	}
	if strings.ContainsAny(faculty, FacultyNameSeparators) {
		return invalid("Faculty", "must not contain any of %q", FacultyNameSeparators)
	}
	if !s.courses[i].IsLab() {
		return invalid("Name", "%q is not a lab course", s.courses[i].Name)
	}

	updated := s.courses[i].Clone()
	list := dedupe(slotList)
	if len(list) == 0 {
		delete(updated.FacultyLabAssignments, faculty)
		if len(updated.FacultyLabAssignments) == 0 {
			updated.FacultyLabAssignments = nil
		}
		if err := s.checkEffective(i, &updated); err != nil {
			return err
		}
		s.courses[i] = updated
		return nil
	}

	if err := validateLabSlots(s.registry(), list); err != nil {
		return err
	}
	if err := s.checkAvailable(list, s.allocation(id), nil); err != nil {
		return err
	}
	if updated.FacultyLabAssignments == nil {
		updated.FacultyLabAssignments = make(map[string][]string)
	}
	updated.FacultyLabAssignments[faculty] = list
	s.courses[i] = updated
	return nil
}

// Replace swaps the whole course list and mode, as an import does. Rows
// are taken as given except where they would break a store invariant:
// credits must be in range and no two courses may hold clashing slots.
// Nothing changes on error. An empty mode keeps the current one.
func (s *Schedule) Replace(courses []Course, mode SlotMode) error {
	if err := s.CheckReplacement(courses); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.courses = s.adopt(courses)
	if mode != "" {
		s.mode = mode
	}
	return nil
}

// CheckReplacement reports whether courses could replace the course list.
// The allocation is rebuilt one course at a time, each course's effective
// slots checked against those of the courses before it, so clashes within
// a single course are allowed.
func (s *Schedule) CheckReplacement(courses []Course) error {
	allocation := make(planner.SlotSet)
	for i := range courses {
		c := &courses[i]
		if c.Credits < 0 || c.Credits > MaxCredits {
			return invalid("Credits", "%q: must be between 0 and %d", c.Name, MaxCredits)
		}
		if err := validateFacultyNames(c); err != nil {
			return err
		}

		effective := EffectiveSlots(c)
		for _, slot := range effective {
			if conflict := s.checker.Check(slot, allocation, nil); conflict != nil {
				return &UnavailableError{
					Slot:   slot,
					Reason: fmt.Sprintf("%q: %s", c.Name, conflict.Reason),
				}
			}
		}
		for _, slot := range effective {
			allocation[slot] = struct{}{}
		}
	}
	return nil
}

// Groups returns the display group of each course ID. Courses sharing a
// base name share a group; groups are numbered in insertion order.
func (s *Schedule) Groups() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Groups(s.courses)
}

// TotalCredits sums the credits of every course.
func (s *Schedule) TotalCredits() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, c := range s.courses {
		total += c.Credits
	}
	return total
}

// Groups assigns display groups to courses by base name.
func Groups(courses []Course) map[string]int {
	byBase := make(map[string]int)
	out := make(map[string]int, len(courses))
	for _, c := range courses {
		base := c.BaseName()
		g, ok := byBase[base]
		if !ok {
			g = len(byBase)
			byBase[base] = g
		}
		out[c.ID] = g
	}
	return out
}

func (s *Schedule) prepareTheory(name string, slotList []string, credits int, prefs []string) (Course, error) {
	c := Course{
		Name:               strings.TrimSpace(name),
		Slots:              dedupe(slotList),
		Credits:            credits,
		FacultyPreferences: trimAll(prefs),
	}
	if IsLabName(c.Name) {
		return Course{}, invalid("Name", "lab courses are added to an existing theory course")
	}
	if err := validateCourse(s.registry(), &c); err != nil {
		return Course{}, err
	}
	if s.indexOfName(c.Name) >= 0 {
		return Course{}, invalid("Name", "a course named %q already exists", c.Name)
	}
	c.ID = s.newID()
	return c, nil
}

func (s *Schedule) prepareLab(theoryName string, slotList []string, prefs []string) (Course, error) {
	c := Course{
		Name:               LabName(theoryName),
		Slots:              dedupe(slotList),
		Credits:            LabCredits,
		FacultyPreferences: trimAll(prefs),
	}
	if err := validateCourse(s.registry(), &c); err != nil {
		return Course{}, err
	}
	c.ID = s.newID()
	return c, nil
}

// checkEffective re-validates a course whose effective slots may change
// without its declared slots changing, e.g. when the top faculty moves.
func (s *Schedule) checkEffective(i int, updated *Course) error {
	before := planner.NewSlotSet(EffectiveSlots(&s.courses[i]))
	var added []string
	for _, slot := range EffectiveSlots(updated) {
		if !before.Has(slot) {
			added = append(added, slot)
		}
	}
	if len(added) == 0 {
		return nil
	}
	return s.checkAvailable(added, s.allocation(s.courses[i].ID), nil)
}

// checkAvailable rejects the first slot the checker does not allow.
func (s *Schedule) checkAvailable(list []string, allocation, own planner.SlotSet) error {
	for _, slot := range list {
		if c := s.checker.Check(slot, allocation, own); c != nil {
			return &UnavailableError{Slot: slot, Reason: c.Reason}
		}
	}
	return nil
}

// allocation returns the effective slots of every course except exclude.
func (s *Schedule) allocation(exclude string) planner.SlotSet {
	set := make(planner.SlotSet)
	for i := range s.courses {
		if exclude != "" && s.courses[i].ID == exclude {
			continue
		}
		for _, slot := range EffectiveSlots(&s.courses[i]) {
			set[slot] = struct{}{}
		}
	}
	return set
}

// ownSlots returns the slots of the course under edit: its declared and its
// effective slots.
func (s *Schedule) ownSlots(id string) planner.SlotSet {
	if id == "" {
		return nil
	}
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	c := &s.courses[i]
	return planner.NewSlotSet(c.Slots, EffectiveSlots(c))
}

func (s *Schedule) indexOf(id string) int {
	for i := range s.courses {
		if s.courses[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Schedule) indexOfName(name string) int {
	for i := range s.courses {
		if s.courses[i].Name == name {
			return i
		}
	}
	return -1
}

func trimAll(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func mapKeys(set planner.SlotSet) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
