package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

const contractYAML = `
- key: A
  children:
    - key: B
    - key: C
      children:
        - key: D
        - key: E
`

const contractJSON = `[{"key":"A","children":[{"key":"B"},{"key":"C","children":[{"key":"D"},{"key":"E"}]}]}]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileLoader_Contract(t *testing.T) {
	t.Run("YAML", func(t *testing.T) {
		ports.RunForestLoaderContract(t, file.New(writeFile(t, "forest.yaml", contractYAML)))
	})
	t.Run("JSON", func(t *testing.T) {
		ports.RunForestLoaderContract(t, file.New(writeFile(t, "forest.json", contractJSON)))
	})
}

func TestDecode_Attributes(t *testing.T) {
	doc := `
- key: 7
  title: Seven
  owner: platform
  checkable: false
  attributes:
    color: red
  children:
    - title: unnamed
      isLeaf: true
`
	forest, err := file.Decode([]byte(doc), false)
	require.NoError(t, err)
	require.Len(t, forest, 1)

	n := forest[0]
	assert.Equal(t, domain.Key("7"), n.Key)
	assert.Equal(t, "Seven", n.Title)
	assert.Equal(t, map[string]any{"owner": "platform", "color": "red"}, n.Attributes)
	require.NotNil(t, n.Checkable)
	assert.False(t, *n.Checkable)
	assert.True(t, n.CheckDisabled())

	require.Len(t, n.Children, 1)
	assert.Empty(t, n.Children[0].Key)
	assert.True(t, n.Children[0].IsLeaf)
	assert.Nil(t, n.Children[0].Attributes)
}

func TestDecode_NullEntryStaysNil(t *testing.T) {
	forest, err := file.Decode([]byte(`[{"key":"A","children":[null,{"key":"B"}]}]`), true)
	require.NoError(t, err)
	require.Len(t, forest[0].Children, 2)
	assert.Nil(t, forest[0].Children[0])
	assert.Equal(t, domain.Key("B"), forest[0].Children[1].Key)
}

func TestDecode_Errors(t *testing.T) {
	_, err := file.Decode([]byte(`{"key":"A"}`), true)
	assert.Error(t, err, "top level must be a list")

	_, err = file.Decode([]byte("- key: A\n  children: nope\n"), false)
	assert.Error(t, err)

	_, err = file.New(filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileLoader_Watch(t *testing.T) {
	path := writeFile(t, "forest.yaml", contractYAML)
	loader := file.New(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := loader.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("- key: Z\n"), 0o644))
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change signal")
	}

	// The signal may arrive before the write completes.
	assert.Eventually(t, func() bool {
		forest, err := loader.Load(context.Background())
		return err == nil && len(forest) == 1 && forest[0].Key == "Z"
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, open := <-ch:
			return !open
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}
