package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/arbor/pkg/domain"
)

func TestChainHooks(t *testing.T) {
	var calls []string
	first := domain.Hooks{
		OnExpand: func(_ []domain.Key, info domain.ExpandInfo) { calls = append(calls, "first:"+string(info.Key)) },
		OnDrop:   func(domain.DropInfo) { calls = append(calls, "first:drop") },
	}
	second := domain.Hooks{
		OnExpand: func(_ []domain.Key, info domain.ExpandInfo) { calls = append(calls, "second:"+string(info.Key)) },
	}

	h := domain.ChainHooks(first, domain.Hooks{}, second)
	h.OnExpand(nil, domain.ExpandInfo{Key: "A"})
	h.OnDrop(domain.DropInfo{})

	assert.Equal(t, []string{"first:A", "second:A", "first:drop"}, calls)
	assert.Nil(t, h.OnSelect, "fields no hook sets stay nil")
	assert.Nil(t, h.OnRecompute)
}

func TestChainHooks_Empty(t *testing.T) {
	h := domain.ChainHooks()
	assert.Nil(t, h.OnExpand)
	assert.Nil(t, h.OnDiagnostic)
}
