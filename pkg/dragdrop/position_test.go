package dragdrop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dragdrop"
	"github.com/aretw0/arbor/pkg/entity"
)

func TestResolveDropPosition(t *testing.T) {
	th := dragdrop.DefaultThresholds()
	const height = 20.0

	tests := []struct {
		name   string
		offset float64
		want   domain.DropPosition
	}{
		{"Top Tenth", height * 0.10, domain.DropAbove},
		{"Center", height * 0.50, domain.DropInside},
		{"Bottom Twentieth", height * 0.95, domain.DropBelow},
		{"Top Edge", 0, domain.DropAbove},
		{"Band Boundary", 5, domain.DropAbove},
		{"Just Inside", 5.5, domain.DropInside},
		{"Lower Band Boundary", 15, domain.DropBelow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dragdrop.ResolveDropPosition(tt.offset, height, th))
		})
	}
}

func TestResolveDropPosition_MinGap(t *testing.T) {
	// A 6-unit row would get 1.5-unit bands; the minimum gap widens them to 2.
	th := dragdrop.DefaultThresholds()
	assert.Equal(t, domain.DropAbove, dragdrop.ResolveDropPosition(1.9, 6, th))
	assert.Equal(t, domain.DropInside, dragdrop.ResolveDropPosition(3, 6, th))
	assert.Equal(t, domain.DropBelow, dragdrop.ResolveDropPosition(4.1, 6, th))
}

func TestResolveDropPosition_ShortRow(t *testing.T) {
	// A 4-unit row gets 2-unit bands from the minimum gap, so they meet at the centre.
	th := dragdrop.DefaultThresholds()
	for off := 0.0; off <= 4; off += 0.5 {
		got := dragdrop.ResolveDropPosition(off, 4, th)
		mirror := dragdrop.ResolveDropPosition(4-off, 4, th)
		assert.Equal(t, -got, mirror, "offset %v", off)
	}
	assert.Equal(t, domain.DropAbove, dragdrop.ResolveDropPosition(1.9, 4, th))
	assert.Equal(t, domain.DropInside, dragdrop.ResolveDropPosition(2, 4, th))
	assert.Equal(t, domain.DropBelow, dragdrop.ResolveDropPosition(2.1, 4, th))
	assert.Equal(t, domain.DropInside, dragdrop.ResolveDropPosition(1.5, 3, th))
}

// Mirrored offsets resolve to mirrored positions and the bands keep their order.
func TestResolveDropPosition_Symmetry(t *testing.T) {
	for _, th := range []dragdrop.Thresholds{
		dragdrop.DefaultThresholds(),
		{SideRange: 0.1, MinGap: 0},
		{SideRange: 0.4, MinGap: 1},
	} {
		const height = 40.0
		prev := domain.DropAbove
		for off := 0.5; off < height; off++ {
			got := dragdrop.ResolveDropPosition(off, height, th)
			mirror := dragdrop.ResolveDropPosition(height-off, height, th)
			assert.Equal(t, -got, mirror, "offset %v thresholds %+v", off, th)
			assert.GreaterOrEqual(t, got, prev, "positions never go back up")
			prev = got
		}
	}
}

func TestThresholds_Validate(t *testing.T) {
	require.NoError(t, dragdrop.DefaultThresholds().Validate())
	require.NoError(t, dragdrop.Thresholds{SideRange: 0.5}.Validate())

	for _, th := range []dragdrop.Thresholds{
		{SideRange: 0},
		{SideRange: 0.6},
		{SideRange: 0.25, MinGap: -1},
	} {
		assert.ErrorIs(t, th.Validate(), domain.ErrInvalidThresholds, "%+v", th)
	}
}

func TestCollectDescendantKeys(t *testing.T) {
	maps := entity.Index([]*domain.Node{
		{Key: "A", Children: []*domain.Node{
			{Key: "B"},
			{Key: "C", Children: []*domain.Node{{Key: "D"}, {Key: "E"}}},
		}},
	})

	assert.Equal(t, []domain.Key{"A", "B", "C", "D", "E"}, dragdrop.CollectDescendantKeys("A", maps))
	assert.Equal(t, []domain.Key{"C", "D", "E"}, dragdrop.CollectDescendantKeys("C", maps))
	assert.Equal(t, []domain.Key{"B"}, dragdrop.CollectDescendantKeys("B", maps))
	assert.Nil(t, dragdrop.CollectDescendantKeys("zz", maps))
}

func TestDropIndex(t *testing.T) {
	assert.Equal(t, 1, dragdrop.DropIndex("0-0-2", domain.DropAbove))
	assert.Equal(t, 2, dragdrop.DropIndex("0-0-2", domain.DropInside))
	assert.Equal(t, 3, dragdrop.DropIndex("0-0-2", domain.DropBelow))
	assert.Equal(t, -1, dragdrop.DropIndex("0-0", domain.DropAbove))
}

func TestIsSelfDrop(t *testing.T) {
	assert.True(t, dragdrop.IsSelfDrop("a", "a", domain.DropInside))
	assert.False(t, dragdrop.IsSelfDrop("a", "a", domain.DropAbove))
	assert.False(t, dragdrop.IsSelfDrop("a", "b", domain.DropInside))
}
