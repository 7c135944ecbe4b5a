package conduct

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
)

// Verify checks the tri-state invariant of st against maps: no key is both checked and
// half-checked, and every node with eligible children is checked iff all of them are
// checked and half-checked iff it is not checked but some of them are checked or half-checked.
// It is meant for hosts that mirror check state and want to validate what they feed back.
func Verify(st domain.CheckState, maps *domain.EntityMaps) error {
	checked := make(map[domain.Key]bool, len(st.Checked))
	for _, k := range st.Checked {
		checked[k] = true
	}
	half := make(map[domain.Key]bool, len(st.HalfChecked))
	for _, k := range st.HalfChecked {
		if checked[k] {
			return fmt.Errorf("key %q is both checked and half-checked", k)
		}
		half[k] = true
	}

	for e := range maps.All() {
		if e.Node.CheckDisabled() {
			continue
		}
		eligible, every, some := 0, true, false
		for _, ck := range e.Children {
			child, ok := maps.ByKey(ck)
			if !ok || child.Node.CheckDisabled() {
				continue
			}
			eligible++
			if checked[ck] || half[ck] {
				some = true
			}
			if !checked[ck] {
				every = false
			}
		}
		if eligible == 0 {
			continue
		}
		if checked[e.Key] != every {
			return fmt.Errorf("key %q: checked=%t but all children checked=%t", e.Key, checked[e.Key], every)
		}
		if wantHalf := some && !every; half[e.Key] != wantHalf {
			return fmt.Errorf("key %q: half-checked=%t, want %t", e.Key, half[e.Key], wantHalf)
		}
	}
	return nil
}
