package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_TogglePrimaryAddsExtension(t *testing.T) {
	d := NewDraft(newTestChecker(), AddCourse{}, NewSlotSet(), nil)

	res := d.Toggle("A1")
	assert.Nil(t, res.Conflict)
	assert.Equal(t, []string{"A1", "TA1"}, res.Added)
	assert.Equal(t, []string{"A1", "TA1"}, d.Slots())
}

func TestDraft_ToggleRemovesOnlyFirstExtension(t *testing.T) {
	d := NewDraft(newTestChecker(), AddCourse{}, NewSlotSet(), nil)

	d.Toggle("A1")
	res := d.Toggle("TAA1")
	require.Nil(t, res.Conflict)
	assert.Equal(t, []string{"A1", "TA1", "TAA1"}, d.Slots())

	res = d.Toggle("A1")
	assert.Equal(t, []string{"A1", "TA1"}, res.Removed)
	assert.Equal(t, []string{"TAA1"}, d.Slots())
}

func TestDraft_ToggleSkipsBlockedExtension(t *testing.T) {
	// TA1 is held by another course, so the second-pattern extension is used.
	d := NewDraft(newTestChecker(), AddCourse{}, NewSlotSet([]string{"TA1"}), nil)

	res := d.Toggle("A1")
	assert.Nil(t, res.Conflict)
	assert.Equal(t, []string{"A1", "TAA1"}, d.Slots())

	// Both extensions blocked: the primary is still added on its own.
	d = NewDraft(newTestChecker(), AddCourse{}, NewSlotSet([]string{"TE1"}), nil)
	d.Toggle("E1")
	assert.Equal(t, []string{"E1"}, d.Slots())
}

func TestDraft_ToggleDoesNotDuplicateExtension(t *testing.T) {
	d := NewDraft(newTestChecker(), AddCourse{}, NewSlotSet(), nil)

	d.Toggle("TA1")
	d.Toggle("A1")
	assert.Equal(t, []string{"TA1", "A1"}, d.Slots())
}

func TestDraft_ToggleBlockedSlot(t *testing.T) {
	d := NewDraft(newTestChecker(), AddCourse{}, NewSlotSet([]string{"F1"}), nil)

	res := d.Toggle("L2")
	require.NotNil(t, res.Conflict)
	assert.Equal(t, "F1", res.Conflict.Blocker)
	assert.Empty(t, d.Slots())

	res = d.Toggle("Z9")
	require.NotNil(t, res.Conflict)
	assert.Empty(t, d.Slots())
}

func TestDraft_EditKeepsOwnSlotsAvailable(t *testing.T) {
	allocation := NewSlotSet([]string{"A1", "TA1", "F1"})
	d := NewDraft(newTestChecker(), EditCourse{CourseID: "c1"}, allocation, []string{"A1", "TA1"})

	assert.Equal(t, []string{"A1", "TA1"}, d.Slots())
	assert.True(t, d.Available("L1"), "L1 only conflicts with the course's own A1")
	assert.False(t, d.Available("L2"), "L2 conflicts with F1 held by another course")

	d.Toggle("A1")
	assert.Empty(t, d.Slots())
	d.Toggle("A1")
	assert.Equal(t, []string{"A1", "TA1"}, d.Slots())

	d.Reset()
	assert.Equal(t, []string{"A1", "TA1"}, d.Slots())
}

func TestDraft_ApplyPattern(t *testing.T) {
	d := NewDraft(newTestChecker(), AddCourse{}, NewSlotSet([]string{"F1"}), nil)

	rejected := d.ApplyPattern("a1 + TA1, L2/Z9+A1")
	assert.Equal(t, []string{"A1", "TA1"}, d.Slots())
	require.Len(t, rejected, 2)
	assert.Equal(t, "L2", rejected[0].Token)
	assert.Contains(t, rejected[0].Reason, "F1")
	assert.Equal(t, "Z9", rejected[1].Token)
}

func TestDraft_ClearAndReset(t *testing.T) {
	d := NewDraft(newTestChecker(), EditCourse{CourseID: "c"}, NewSlotSet(), []string{"B1", "TB1"})
	assert.Equal(t, []string{"B1", "TB1"}, d.Slots())

	d.Clear()
	assert.Empty(t, d.Slots())

	d.Toggle("C1")
	d.Reset()
	assert.Equal(t, []string{"B1", "TB1"}, d.Slots())
}

// The two entry paths share one availability rule.
func TestDraft_PatternAndToggleAgree(t *testing.T) {
	allocation := NewSlotSet([]string{"A1", "TC1", "L40"})
	own := []string{"B2"}
	checker := newTestChecker()

	for _, slot := range []string{"L1", "L2", "L14", "B2", "L37", "L40", "TC1", "C2"} {
		toggle := NewDraft(checker, EditCourse{CourseID: "c"}, allocation, own)
		toggle.Reset()
		typed := NewDraft(checker, EditCourse{CourseID: "c"}, allocation, own)

		toggleOK := toggle.Has(slot) || toggle.Toggle(slot).Conflict == nil
		typedOK := len(typed.ApplyPattern(slot)) == 0
		assert.Equal(t, toggleOK, typedOK, "slot %s", slot)
	}
}

func TestSplitPattern(t *testing.T) {
	assert.Equal(t, []string{"A1", "TA1", "L3"}, SplitPattern(" a1+ta1 , l3 "))
	assert.Empty(t, SplitPattern(" + , "))
}

func TestEditIntentKinds(t *testing.T) {
	intents := map[IntentKind]EditIntent{
		IntentAddCourse:   AddCourse{},
		IntentEditCourse:  EditCourse{CourseID: "a"},
		IntentEditFaculty: EditFaculty{CourseID: "a", Faculty: "Dr. A"},
		IntentAddLab:      AddLab{TheoryID: "a"},
		IntentEditLab:     EditLab{LabID: "b"},
	}
	for kind, intent := range intents {
		assert.Equal(t, kind, intent.Kind())
	}
}
