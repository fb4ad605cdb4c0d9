package schedule

// EffectiveSlots returns the slots a course actually occupies.
//
// A non-lab course occupies its declared slots. A lab course occupies the lab
// slots assigned to its top-priority faculty when that assignment exists and
// is non-empty, and its declared slots otherwise.
//
// This is the only place the rule is written down: the allocation state,
// grid rendering and spreadsheet export all go through it.
func EffectiveSlots(c *Course) []string {
	if !c.IsLab() {
		return append([]string(nil), c.Slots...)
	}
	if top, ok := c.TopFaculty(); ok {
		if assigned := c.FacultyLabAssignments[top]; len(assigned) > 0 {
			return append([]string(nil), assigned...)
		}
	}
	return append([]string(nil), c.Slots...)
}
