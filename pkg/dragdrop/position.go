package dragdrop

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/aretw0/arbor/pkg/domain"
)

var validate = validator.New()

// Thresholds tune how a row's height splits into above, inside and below bands.
// The above and below bands are the same size, so the split is symmetric about the center.
type Thresholds struct {
	// SideRange is the fraction of the row height taken by each side band.
	SideRange float64 `mapstructure:"side_range" validate:"gt=0,lte=0.5"`
	// MinGap is the minimum side band, in the same unit as the row height.
	MinGap float64 `mapstructure:"min_gap" validate:"gte=0"`
}

// DefaultThresholds splits a row into quarters with a two-unit minimum gap.
func DefaultThresholds() Thresholds {
	return Thresholds{SideRange: 0.25, MinGap: 2}
}

// Validate rejects thresholds that would break the three-way ordering.
func (t Thresholds) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidThresholds, err)
	}
	return nil
}

// band returns the size of each side band for a row of the given height.
func (t Thresholds) band(height float64) float64 {
	return math.Max(height*t.SideRange, t.MinGap)
}

// ResolveDropPosition maps the pointer's vertical offset within a target row to a drop position.
func ResolveDropPosition(offset, height float64, t Thresholds) domain.DropPosition {
	band := t.band(height)
	if half := height / 2; band >= half {
		// The side bands would meet; split the row at its centre, which stays inside.
		switch {
		case offset < half:
			return domain.DropAbove
		case offset > half:
			return domain.DropBelow
		default:
			return domain.DropInside
		}
	}
	switch {
	case offset <= band:
		return domain.DropAbove
	case offset >= height-band:
		return domain.DropBelow
	default:
		return domain.DropInside
	}
}

// CollectDescendantKeys returns key followed by every key in its subtree, in pre-order.
// Unknown keys yield nil.
func CollectDescendantKeys(key domain.Key, maps *domain.EntityMaps) []domain.Key {
	e, ok := maps.ByKey(key)
	if !ok {
		return nil
	}
	out := []domain.Key{key}
	for _, ck := range e.Children {
		out = append(out, CollectDescendantKeys(ck, maps)...)
	}
	return out
}

// DropIndex is the sibling insertion index reported for a drop on the target at pos.
// Above yields the target's index minus one, inside its index and below its index plus one.
func DropIndex(pos domain.Pos, position domain.DropPosition) int {
	return pos.Index() + int(position)
}

// IsSelfDrop reports whether dropping dragged on target at position would land the node inside itself.
func IsSelfDrop(dragged, target domain.Key, position domain.DropPosition) bool {
	return dragged == target && position == domain.DropInside
}
