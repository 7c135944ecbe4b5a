package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/pkg/dragdrop"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)

	assert.True(t, cfg.Tree.Selectable)
	assert.True(t, cfg.Tree.Checkable)
	assert.False(t, cfg.Tree.Multiple)
	assert.Equal(t, dragdrop.DefaultThresholds(), cfg.Drag.Thresholds)
	assert.Equal(t, dragdrop.DefaultHoverDelay, cfg.Drag.HoverDelay)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Len(t, cfg.TreeOptions(), 7)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arbor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tree:
  multiple: true
  check_strictly: true
drag:
  side_range: 0.4
  hover_delay: 250ms
log:
  level: debug
`), 0o644))

	t.Setenv("ARBOR_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("ARBOR_LOG_LEVEL", "warn")

	cfg, err := config.Load(config.New(), path)
	require.NoError(t, err)

	assert.True(t, cfg.Tree.Multiple)
	assert.True(t, cfg.Tree.CheckStrictly)
	assert.InDelta(t, 0.4, cfg.Drag.Thresholds.SideRange, 1e-9)
	assert.InDelta(t, 2.0, cfg.Drag.Thresholds.MinGap, 1e-9)
	assert.Equal(t, 250*time.Millisecond, cfg.Drag.HoverDelay)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level, "env overrides the file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"side range too wide", map[string]string{"ARBOR_DRAG_SIDE_RANGE": "0.8"}},
		{"negative gap", map[string]string{"ARBOR_DRAG_MIN_GAP": "-1"}},
		{"unknown level", map[string]string{"ARBOR_LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load(config.New(), "")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
