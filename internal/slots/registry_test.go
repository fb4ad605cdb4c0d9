package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		slot string
		want Category
	}{
		{"A1", TheoryMorning},
		{"G2", TheoryEvening},
		{"TA1", TheoryMorning},
		{"TAA2", TheoryEvening},
		{"L1", LabMorning},
		{"L30", LabMorning},
		{"L31", LabEvening},
		{"L60", LabEvening},
		{"L0", Unknown},
		{"L61", Unknown},
		{"H1", Unknown},
		{"A3", Unknown},
		{"AA1", Unknown},
		{"TAB1", Unknown},
		{"", Unknown},
		{"a1", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.slot, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryOf(tt.slot))
		})
	}
}

func TestRegistry_ConflictsAreSymmetric(t *testing.T) {
	r := NewRegistry()

	var all []string
	for _, c := range Categories {
		all = append(all, r.AllSlotsOf(c)...)
	}
	require.NotEmpty(t, all)

	for _, x := range all {
		for _, y := range r.ConflictsOf(x) {
			assert.Contains(t, r.ConflictsOf(y), x, "%s conflicts with %s but not the reverse", x, y)
		}
	}
}

func TestRegistry_KnownPairs(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.Conflicts("A1", "L1"))
	assert.True(t, r.Conflicts("L1", "A1"))
	assert.True(t, r.Conflicts("F1", "L2"))
	assert.True(t, r.Conflicts("A2", "L31"))
	assert.False(t, r.Conflicts("A1", "L2"))
	assert.False(t, r.Conflicts("TA1", "L2"))
	assert.False(t, r.Conflicts("A1", "TA1"))
}

func TestRegistry_TenPairsPerWeekday(t *testing.T) {
	r := NewRegistry()

	morning := r.Pairs(Morning)
	evening := r.Pairs(Evening)
	assert.Len(t, morning, len(Weekdays)*TheoryColumns)
	assert.Len(t, evening, len(Weekdays)*TheoryColumns)
	assert.Equal(t, 10*len(Weekdays), len(morning)+len(evening))
}

func TestRegistry_FamiliesBehaveIdentically(t *testing.T) {
	r := NewRegistry()

	morning := r.Pairs(Morning)
	evening := r.Pairs(Evening)
	require.Equal(t, len(morning), len(evening))

	for i := range morning {
		m, e := morning[i], evening[i]
		// Same stem, same relative lab column.
		assert.Equal(t, m.A[:len(m.A)-1], e.A[:len(e.A)-1])
		assert.Equal(t, len(r.ConflictsOf(m.A)), len(r.ConflictsOf(e.A)))
		assert.Equal(t, labNumber(t, m.B)+labsPerFamily, labNumber(t, e.B))
	}
}

func TestRegistry_UnknownSlotHasNoConflicts(t *testing.T) {
	r := NewRegistry()

	assert.Empty(t, r.ConflictsOf("Z9"))
	assert.False(t, r.Known("Z9"))
	assert.Empty(t, r.Cells("Z9"))
}

func TestRegistry_AllSlotsOf(t *testing.T) {
	r := NewRegistry()

	labs := r.AllSlotsOf(LabMorning)
	require.Len(t, labs, 30)
	assert.Equal(t, "L1", labs[0])
	assert.Equal(t, "L30", labs[29])

	theory := r.AllSlotsOf(TheoryMorning)
	assert.Equal(t, "A1", theory[0])
	assert.Contains(t, theory, "TDD1")
	assert.NotContains(t, theory, "A2")

	// The returned slice is a copy.
	labs[0] = "mutated"
	assert.Equal(t, "L1", r.AllSlotsOf(LabMorning)[0])
}

func TestRegistry_SlotsSpanSeveralCells(t *testing.T) {
	r := NewRegistry()

	cells := r.Cells("A1")
	require.Len(t, cells, 2)
	assert.Contains(t, r.ConflictsOf("A1"), "L1")
	assert.Contains(t, r.ConflictsOf("A1"), "L14")
}

func labNumber(t *testing.T, slot string) int {
	t.Helper()
	var n int
	for _, ch := range slot[1:] {
		n = n*10 + int(ch-'0')
	}
	return n
}
