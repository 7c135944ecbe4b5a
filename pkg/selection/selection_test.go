package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/selection"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		current  []domain.Key
		key      domain.Key
		selected bool
		multiple bool
		want     []domain.Key
	}{
		{"Single Replaces", []domain.Key{"a"}, "b", true, false, []domain.Key{"b"}},
		{"Single Deselect Clears", []domain.Key{"a"}, "a", false, false, []domain.Key{}},
		{"Multiple Appends", []domain.Key{"a"}, "b", true, true, []domain.Key{"a", "b"}},
		{"Multiple Append Present", []domain.Key{"a", "b"}, "a", true, true, []domain.Key{"a", "b"}},
		{"Multiple Removes All Occurrences", []domain.Key{"a", "b", "c", "b"}, "b", false, true, []domain.Key{"a", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selection.Select(tt.current, tt.key, tt.selected, tt.multiple))
		})
	}
}

func TestToggle(t *testing.T) {
	current := []domain.Key{"a", "b"}

	next, selected := selection.Toggle(current, "c", true)
	assert.True(t, selected)
	assert.Equal(t, []domain.Key{"a", "b", "c"}, next)

	next, selected = selection.Toggle(next, "a", true)
	assert.False(t, selected)
	assert.Equal(t, []domain.Key{"b", "c"}, next)

	next, selected = selection.Toggle(next, "a", false)
	assert.True(t, selected)
	assert.Equal(t, []domain.Key{"a"}, next)

	assert.Equal(t, []domain.Key{"a", "b"}, current, "input is not mutated")
}

func TestNormalize(t *testing.T) {
	assert.Nil(t, selection.Normalize(nil, false))
	assert.Equal(t, []domain.Key{"x"}, selection.Normalize([]domain.Key{"x", "y"}, false))
	assert.Equal(t, []domain.Key{"x", "y"}, selection.Normalize([]domain.Key{"x", "y"}, true))
}

func TestSlot(t *testing.T) {
	t.Run("Owned Persists", func(t *testing.T) {
		s := selection.NewSlot([]domain.Key{"a"})
		assert.Equal(t, domain.Owned, s.Mode())
		assert.True(t, s.Commit([]domain.Key{"a", "b"}))
		assert.Equal(t, []domain.Key{"a", "b"}, s.Get())
	})

	t.Run("Mirrored Never Persists", func(t *testing.T) {
		s := selection.NewSlot[[]domain.Key](nil)
		s.Mirror([]domain.Key{"x"})
		assert.Equal(t, domain.Mirrored, s.Mode())

		assert.False(t, s.Commit([]domain.Key{"x", "y"}))
		assert.Equal(t, []domain.Key{"x"}, s.Get())

		s.Mirror([]domain.Key{"z"})
		assert.Equal(t, []domain.Key{"z"}, s.Get())
	})

	t.Run("Own Releases", func(t *testing.T) {
		s := selection.NewSlot(1)
		s.Mirror(2)
		s.Own()
		assert.Equal(t, 2, s.Get())
		assert.True(t, s.Commit(3))
		assert.Equal(t, 3, s.Get())
	})

	t.Run("Replace Keeps Mode", func(t *testing.T) {
		s := selection.NewSlot(1)
		s.Mirror(2)
		s.Replace(5)
		assert.Equal(t, domain.Mirrored, s.Mode())
		assert.Equal(t, 5, s.Get())
	})
}
