package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/entity"
)

// sample builds A[B, C[D, E]].
func sample() []*domain.Node {
	return []*domain.Node{
		{Key: "A", Children: []*domain.Node{
			{Key: "B"},
			{Key: "C", Children: []*domain.Node{
				{Key: "D"},
				{Key: "E"},
			}},
		}},
	}
}

func TestIndex_Structure(t *testing.T) {
	maps := entity.Index(sample())

	assert.Equal(t, 5, maps.Len())
	assert.Equal(t, []domain.Key{"A"}, maps.Roots())
	assert.Equal(t, []domain.Key{"A", "B", "C", "D", "E"}, maps.Keys())

	c, ok := maps.ByKey("C")
	require.True(t, ok)
	assert.Equal(t, domain.Pos("0-0-1"), c.Pos)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 1, c.Index)
	assert.Equal(t, domain.Key("A"), c.Parent)
	assert.Equal(t, []domain.Key{"D", "E"}, c.Children)

	e, ok := maps.ByPos("0-0-1-1")
	require.True(t, ok)
	assert.Equal(t, domain.Key("E"), e.Key)
	assert.Equal(t, 2, e.Level)

	a, _ := maps.ByKey("A")
	assert.True(t, a.IsRoot())
	assert.Empty(t, a.Parent)
}

func TestIndex_PositionFallbackKey(t *testing.T) {
	forest := []*domain.Node{
		{Title: "first"},
		{Title: "second", Children: []*domain.Node{{Title: "child"}}},
	}
	maps := entity.Index(forest)

	assert.Equal(t, []domain.Key{"0-0", "0-1", "0-1-0"}, maps.Keys())
	child, ok := maps.ByKey("0-1-0")
	require.True(t, ok)
	assert.Equal(t, domain.Key("0-1"), child.Parent)
	assert.Equal(t, "child", child.Node.Title)
}

func TestIndex_Diagnostics(t *testing.T) {
	t.Run("Nil Node Is Skipped", func(t *testing.T) {
		var diags []domain.Diagnostic
		forest := []*domain.Node{
			{Key: "A", Children: []*domain.Node{nil, {Key: "B"}}},
		}
		maps := entity.Index(forest, entity.WithReporter(func(d domain.Diagnostic) {
			diags = append(diags, d)
		}))

		require.Len(t, diags, 1)
		assert.Equal(t, domain.DiagMalformedNode, diags[0].Code)
		assert.Equal(t, domain.Pos("0-0-0"), diags[0].Pos)
		assert.ErrorIs(t, diags[0], domain.ErrMalformedNode)

		b, ok := maps.ByKey("B")
		require.True(t, ok)
		assert.Equal(t, domain.Pos("0-0-1"), b.Pos, "sibling indices stay tied to input order")
		a, _ := maps.ByKey("A")
		assert.Equal(t, []domain.Key{"B"}, a.Children)
	})

	t.Run("Duplicate Key Overwrites", func(t *testing.T) {
		var diags []domain.Diagnostic
		forest := []*domain.Node{
			{Key: "X", Title: "one"},
			{Key: "X", Title: "two"},
		}
		maps := entity.Index(forest, entity.WithReporter(func(d domain.Diagnostic) {
			diags = append(diags, d)
		}))

		require.Len(t, diags, 1)
		assert.Equal(t, domain.DiagDuplicateKey, diags[0].Code)
		assert.ErrorIs(t, diags[0], domain.ErrDuplicateKey)
		x, _ := maps.ByKey("X")
		assert.Equal(t, "two", x.Node.Title)
		assert.Equal(t, 1, maps.Len())
	})

	t.Run("Duplicate Key Ancestor Cycle", func(t *testing.T) {
		var diags []domain.Diagnostic
		forest := []*domain.Node{
			{Key: "a", Children: []*domain.Node{
				{Key: "b", Children: []*domain.Node{{Key: "a"}}},
			}},
		}
		maps := entity.Index(forest, entity.WithReporter(func(d domain.Diagnostic) {
			diags = append(diags, d)
		}))

		require.Len(t, diags, 1)
		assert.Equal(t, domain.DiagDuplicateKey, diags[0].Code)
		assert.Equal(t, []domain.Key{"a"}, maps.Ancestors("b"))
		assert.Equal(t, []domain.Key{"b", "a"}, maps.Ancestors("a"))
	})

	t.Run("Cycle Is Cut", func(t *testing.T) {
		var diags []domain.Diagnostic
		loop := &domain.Node{Key: "L"}
		loop.Children = []*domain.Node{{Key: "M", Children: []*domain.Node{loop}}}

		maps := entity.Index([]*domain.Node{loop}, entity.WithReporter(func(d domain.Diagnostic) {
			diags = append(diags, d)
		}))

		assert.Equal(t, []domain.Key{"L", "M"}, maps.Keys())
		require.Len(t, diags, 1)
		assert.Equal(t, domain.DiagMalformedNode, diags[0].Code)
	})
}

type recordingHook struct {
	calls []string
}

func (h *recordingHook) InitWrapper(w *entity.Wrapper) {
	h.calls = append(h.calls, "init")
	w.Data["depthSum"] = 0
}

func (h *recordingHook) ProcessEntity(e *domain.Entity, w *entity.Wrapper) {
	h.calls = append(h.calls, "process:"+string(e.Key))
	e.Ext["upper"] = string(e.Key) + "!"
	w.Data["depthSum"] = w.Data["depthSum"].(int) + e.Level
}

func (h *recordingHook) OnProcessFinished(w *entity.Wrapper) {
	h.calls = append(h.calls, "finished")
}

func TestIndex_Hook(t *testing.T) {
	hook := &recordingHook{}
	maps := entity.Index(sample(), entity.WithHook(hook))

	assert.Equal(t, []string{
		"init",
		"process:A", "process:B", "process:C", "process:D", "process:E",
		"finished",
	}, hook.calls)

	d, _ := maps.ByKey("D")
	assert.Equal(t, "D!", d.Ext["upper"])
}

func TestIndex_HookFuncs(t *testing.T) {
	var finishedWith int
	maps := entity.Index(sample(), entity.WithHook(entity.HookFuncs{
		Finished: func(w *entity.Wrapper) {
			finishedWith = w.Maps.Len()
		},
	}))
	assert.Equal(t, maps.Len(), finishedWith)
}

func TestIndex_Empty(t *testing.T) {
	maps := entity.Index(nil)
	assert.Equal(t, 0, maps.Len())
	assert.Empty(t, maps.Roots())
}
