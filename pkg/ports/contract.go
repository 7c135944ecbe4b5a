package ports

import (
	"context"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunForestLoaderContract runs a suite of tests to verify that a ForestLoader implementation
// adheres to the defined interface contract. The loader must serve the forest A[B, C[D, E]]
// where every node carries an explicit key equal to its letter.
func RunForestLoaderContract(t *testing.T, loader ForestLoader) {
	ctx := context.Background()

	t.Run("Load Preserves Shape", func(t *testing.T) {
		forest, err := loader.Load(ctx)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, forest, 1)

		a := forest[0]
		require.NotNil(t, a)
		assert.Equal(t, domain.Key("A"), a.Key)
		require.Len(t, a.Children, 2)
		assert.Equal(t, domain.Key("B"), a.Children[0].Key)

		c := a.Children[1]
		assert.Equal(t, domain.Key("C"), c.Key)
		require.Len(t, c.Children, 2)
		assert.Equal(t, domain.Key("D"), c.Children[0].Key)
		assert.Equal(t, domain.Key("E"), c.Children[1].Key)
	})

	t.Run("Load Is Repeatable", func(t *testing.T) {
		first, err := loader.Load(ctx)
		require.NoError(t, err)
		second, err := loader.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Load Honors Cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := loader.Load(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
