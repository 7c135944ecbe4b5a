package expansion_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/entity"
	"github.com/aretw0/arbor/pkg/expansion"
)

func forest() []*domain.Node {
	return []*domain.Node{
		{Key: "A", Children: []*domain.Node{
			{Key: "B"},
			{Key: "C", Children: []*domain.Node{{Key: "D"}, {Key: "E"}}},
		}},
		{Key: "F", Children: []*domain.Node{{Key: "G"}}},
	}
}

func TestFlatten_Scenarios(t *testing.T) {
	single := []*domain.Node{{Key: "A", Children: []*domain.Node{{Key: "B"}}}}
	singleMaps := entity.Index(single)

	tests := []struct {
		name     string
		expanded []domain.Key
		want     []domain.KeyLevel
	}{
		{"Collapsed", nil, []domain.KeyLevel{{Key: "A", Level: 0}}},
		{"Expanded", []domain.Key{"A"}, []domain.KeyLevel{{Key: "A", Level: 0}, {Key: "B", Level: 1}}},
		{"Unknown Key Ignored", []domain.Key{"zz"}, []domain.KeyLevel{{Key: "A", Level: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expansion.Flatten(single, tt.expanded, singleMaps))
		})
	}
}

func TestFlatten_HiddenUnderCollapsedAncestor(t *testing.T) {
	f := forest()
	maps := entity.Index(f)

	// C is expanded but A is not, so neither C's children nor C itself are visible.
	got := expansion.Flatten(f, []domain.Key{"C"}, maps)
	assert.Equal(t, []domain.KeyLevel{{Key: "A", Level: 0}, {Key: "F", Level: 0}}, got)

	got = expansion.Flatten(f, []domain.Key{"A", "C", "F"}, maps)
	want := []domain.KeyLevel{
		{Key: "A", Level: 0}, {Key: "B", Level: 1}, {Key: "C", Level: 1},
		{Key: "D", Level: 2}, {Key: "E", Level: 2}, {Key: "F", Level: 0}, {Key: "G", Level: 1},
	}
	assert.Equal(t, want, got)
}

// Every node whose ancestors are all expanded appears exactly once, at its level, in pre-order.
func TestFlatten_Coverage(t *testing.T) {
	f := forest()
	maps := entity.Index(f)

	sets := [][]domain.Key{nil, {"A"}, {"A", "C"}, {"F"}, {"C", "F"}, expansion.AllKeys(maps)}
	for _, expanded := range sets {
		got := expansion.Flatten(f, expanded, maps)

		var want []domain.KeyLevel
		for e := range maps.All() {
			visible := true
			for _, a := range maps.Ancestors(e.Key) {
				if !slices.Contains(expanded, a) {
					visible = false
					break
				}
			}
			if visible {
				want = append(want, domain.KeyLevel{Key: e.Key, Level: e.Level})
			}
		}
		assert.Equal(t, want, got, "expanded=%v", expanded)
	}
}

func TestFlattenSeq_EarlyStopAndReuse(t *testing.T) {
	f := forest()
	maps := entity.Index(f)
	seq := expansion.FlattenSeq(f, expansion.AllKeys(maps), maps)

	var first []domain.Key
	for kl := range seq {
		first = append(first, kl.Key)
		if len(first) == 3 {
			break
		}
	}
	assert.Equal(t, []domain.Key{"A", "B", "C"}, first)

	// The sequence walks again from the start.
	assert.Len(t, slices.Collect(seq), 7)
}

func TestFlatten_SkipsMalformed(t *testing.T) {
	f := []*domain.Node{
		{Key: "A", Children: []*domain.Node{nil, {Key: "B"}}},
		nil,
	}
	maps := entity.Index(f)

	got := expansion.Flatten(f, []domain.Key{"A"}, maps)
	assert.Equal(t, []domain.KeyLevel{{Key: "A", Level: 0}, {Key: "B", Level: 1}}, got)
}

func TestCloseOverAncestors(t *testing.T) {
	maps := entity.Index(forest())

	t.Run("Adds Ancestors", func(t *testing.T) {
		got := expansion.CloseOverAncestors([]domain.Key{"D"}, maps)
		assert.Equal(t, []domain.Key{"D", "C", "A"}, got)
	})

	t.Run("Keeps Input Order And Unknown Keys", func(t *testing.T) {
		got := expansion.CloseOverAncestors([]domain.Key{"G", "zz", "E", "D"}, maps)
		assert.Equal(t, []domain.Key{"G", "F", "zz", "E", "C", "A", "D"}, got)
	})

	t.Run("Monotonic And Idempotent", func(t *testing.T) {
		inputs := [][]domain.Key{nil, {"B"}, {"E", "G"}, {"A", "D", "D"}}
		for _, in := range inputs {
			once := expansion.CloseOverAncestors(in, maps)
			for _, k := range in {
				assert.Contains(t, once, k)
			}
			twice := expansion.CloseOverAncestors(once, maps)
			assert.Equal(t, once, twice)
		}
	})
}

func TestAllKeys(t *testing.T) {
	maps := entity.Index(forest())
	require.Len(t, expansion.AllKeys(maps), 7)
	assert.Equal(t, []domain.Key{"A", "B", "C", "D", "E", "F", "G"}, expansion.AllKeys(maps))
}

func TestToggle(t *testing.T) {
	assert.Equal(t, []domain.Key{"A", "B"}, expansion.Toggle([]domain.Key{"A"}, "B", true))
	assert.Equal(t, []domain.Key{"A"}, expansion.Toggle([]domain.Key{"A"}, "A", true))
	assert.Equal(t, []domain.Key{"A"}, expansion.Toggle([]domain.Key{"B", "A", "B"}, "B", false))
	assert.Empty(t, expansion.Toggle(nil, "B", false))
}
