package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/pkg/session"
)

const forestYAML = `
- key: A
  title: Animals
  children:
    - key: B
    - key: C
      children:
        - key: D
        - key: E
- key: F
`

func writeForest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// syncBuffer is a bytes.Buffer safe for a writer and a reader in different goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunShow(t *testing.T) {
	path := writeForest(t, forestYAML)

	tests := []struct {
		name     string
		opts     ShowOptions
		contains []string
		excludes []string
	}{
		{
			name:     "Collapsed",
			opts:     ShowOptions{},
			contains: []string{"▸ Animals\n", "• F\n"},
			excludes: []string{"B"},
		},
		{
			name: "Expanded With Checks",
			opts: ShowOptions{
				TreeOptions: TreeOptions{ExpandAll: true, Checked: []string{"D"}},
				Checkboxes:  true,
			},
			contains: []string{"▾ [-] Animals", "  • [ ] B", "  ▾ [-] C", "    • [x] D", "    • [ ] E"},
		},
		{
			name: "Window",
			opts: ShowOptions{
				TreeOptions: TreeOptions{ExpandAll: true},
				Offset:      1,
				Limit:       2,
			},
			contains: []string{"B\n", "C\n", "... 3 more rows"},
			excludes: []string{"Animals", "D\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.opts.Path = path
			require.NoError(t, RunShow(context.Background(), &buf, tt.opts))
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, buf.String(), unwanted)
			}
		})
	}
}

func TestRunShow_MissingFile(t *testing.T) {
	err := RunShow(context.Background(), io.Discard, ShowOptions{
		TreeOptions: TreeOptions{Path: filepath.Join(t.TempDir(), "nope.yaml")},
	})
	assert.Error(t, err)
}

func TestRunValidate(t *testing.T) {
	t.Run("Clean", func(t *testing.T) {
		var buf bytes.Buffer
		err := RunValidate(context.Background(), &buf, TreeOptions{Path: writeForest(t, forestYAML)})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "6 nodes indexed")
	})

	t.Run("Problems", func(t *testing.T) {
		var buf bytes.Buffer
		path := writeForest(t, `
- key: A
  children:
    - key: B
    - null
- key: B
`)
		err := RunValidate(context.Background(), &buf, TreeOptions{Path: path, Expanded: []string{"ghost"}})
		assert.ErrorIs(t, err, ErrInvalidForest)
		assert.Contains(t, buf.String(), "malformed_node")
		assert.Contains(t, buf.String(), "duplicate_key")
		assert.Contains(t, buf.String(), "expand_mismatch")
	})
}

func TestRunGraph(t *testing.T) {
	var buf bytes.Buffer
	err := RunGraph(context.Background(), &buf, TreeOptions{
		Path:    writeForest(t, forestYAML),
		Checked: []string{"D"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `A(("Animals"))`)
	assert.Contains(t, out, "C --> D")
	assert.Contains(t, out, "class D checked;")
	assert.Contains(t, out, "class C half;")
}

func TestRunWatch(t *testing.T) {
	path := writeForest(t, "- key: A\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- RunWatch(ctx, &buf, ShowOptions{TreeOptions: TreeOptions{Path: path}})
	}()

	require.Eventually(t, func() bool { return strings.Contains(buf.String(), "Watching") }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("- key: A\n- key: Z\n"), 0o644))
	require.Eventually(t, func() bool { return strings.Contains(buf.String(), "• Z") }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestNewServeHandler_Metrics(t *testing.T) {
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	cfg.Server.Metrics = true

	sessions := session.NewManager()
	t.Cleanup(sessions.Close)
	h, err := NewServeHandler(sessions, ServeOptions{Config: cfg})
	require.NoError(t, err)

	body := `{"forest": [{"key": "A", "children": [{"key": "B"}]}]}`
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/trees", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "arbor_entities 2")
}

func TestRunServe(t *testing.T) {
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	forest := writeForest(t, forestYAML)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var buf syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- RunServe(ctx, &buf, ServeOptions{
			Config:   cfg,
			Listener: ln,
			Preload:  []string{forest},
		})
	}()

	url := fmt.Sprintf("http://%s/trees", ln.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && strings.Contains(string(b), `"trees":["`)
	}, 2*time.Second, 20*time.Millisecond)
	assert.Contains(t, buf.String(), "loaded from")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, buf.String(), "stopped gracefully")
}

func TestRunMCP(t *testing.T) {
	path := writeForest(t, forestYAML)

	t.Run("Unknown Transport", func(t *testing.T) {
		err := RunMCP(context.Background(), io.Discard, MCPOptions{
			TreeOptions: TreeOptions{Path: path},
			Transport:   "carrier-pigeon",
		})
		assert.ErrorContains(t, err, "unknown transport")
	})

	t.Run("SSE", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		var buf syncBuffer
		done := make(chan error, 1)
		go func() {
			done <- RunMCP(ctx, &buf, MCPOptions{
				TreeOptions: TreeOptions{Path: path},
				Transport:   "sse",
				Listener:    ln,
			})
		}()

		require.Eventually(t, func() bool {
			req, _ := http.NewRequest(http.MethodOptions, fmt.Sprintf("http://%s/message", ln.Addr()), nil)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return false
			}
			resp.Body.Close()
			return resp.StatusCode == http.StatusOK
		}, 2*time.Second, 20*time.Millisecond)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(shutdownTimeout + time.Second):
			t.Fatal("mcp server did not stop")
		}
		assert.Contains(t, buf.String(), "stopped gracefully")
	})
}
