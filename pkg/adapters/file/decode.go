package file

import (
	"fmt"
	"maps"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/arbor/pkg/domain"
)

// rawNode mirrors domain.Node for decoding. Unknown fields fall into Extra.
type rawNode struct {
	Key             string           `mapstructure:"key"`
	Title           string           `mapstructure:"title"`
	Children        []map[string]any `mapstructure:"children"`
	Disabled        bool             `mapstructure:"disabled"`
	DisableCheckbox bool             `mapstructure:"disableCheckbox"`
	Checkable       *bool            `mapstructure:"checkable"`
	Selectable      *bool            `mapstructure:"selectable"`
	IsLeaf          bool             `mapstructure:"isLeaf"`
	Attributes      map[string]any   `mapstructure:"attributes"`
	Extra           map[string]any   `mapstructure:",remain"`
}

func decodeForest(raw []map[string]any, parent domain.Pos) ([]*domain.Node, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]*domain.Node, 0, len(raw))
	for i, m := range raw {
		pos := domain.ChildPos(parent, i)
		n, err := decodeNode(m, pos)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeNode(m map[string]any, pos domain.Pos) (*domain.Node, error) {
	// An empty list entry stays nil so the indexer reports it as malformed.
	if m == nil {
		return nil, nil
	}

	var rn rawNode
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &rn,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("node at %s: %w", pos, err)
	}

	children, err := decodeForest(rn.Children, pos)
	if err != nil {
		return nil, err
	}

	n := &domain.Node{
		Key:             domain.Key(rn.Key),
		Title:           rn.Title,
		Children:        children,
		Disabled:        rn.Disabled,
		DisableCheckbox: rn.DisableCheckbox,
		Checkable:       rn.Checkable,
		Selectable:      rn.Selectable,
		IsLeaf:          rn.IsLeaf,
	}
	if len(rn.Attributes)+len(rn.Extra) > 0 {
		n.Attributes = make(map[string]any, len(rn.Attributes)+len(rn.Extra))
		maps.Copy(n.Attributes, rn.Extra)
		maps.Copy(n.Attributes, rn.Attributes)
	}
	return n, nil
}
