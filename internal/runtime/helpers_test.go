package runtime_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/domain"
)

// scenarioForest is A[B, C[D, E]] plus a second root F[G].
func scenarioForest() []*domain.Node {
	return []*domain.Node{
		{Key: "A", Children: []*domain.Node{
			{Key: "B"},
			{Key: "C", Children: []*domain.Node{{Key: "D"}, {Key: "E"}}},
		}},
		{Key: "F", Children: []*domain.Node{{Key: "G"}}},
	}
}

type recorder struct {
	mu          sync.Mutex
	expands     [][]domain.Key
	selects     []domain.SelectInfo
	selected    [][]domain.Key
	checks      []domain.CheckState
	checkInfos  []domain.CheckInfo
	loads       [][]domain.Key
	loadErrors  []error
	dragEvents  []string
	dragEnters  []domain.DragInfo
	drops       []domain.DropInfo
	diagnostics []domain.Diagnostic
	recomputes  int
}

func (r *recorder) hooks() domain.Hooks {
	drag := func(name string) func(domain.DragInfo) {
		return func(info domain.DragInfo) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.dragEvents = append(r.dragEvents, name+":"+string(info.Key))
			if name == "enter" {
				r.dragEnters = append(r.dragEnters, info)
			}
		}
	}
	return domain.Hooks{
		OnExpand: func(expanded []domain.Key, _ domain.ExpandInfo) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.expands = append(r.expands, expanded)
		},
		OnSelect: func(selected []domain.Key, info domain.SelectInfo) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.selected = append(r.selected, selected)
			r.selects = append(r.selects, info)
		},
		OnCheck: func(result domain.CheckState, info domain.CheckInfo) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.checks = append(r.checks, result)
			r.checkInfos = append(r.checkInfos, info)
		},
		OnLoad: func(loaded []domain.Key, _ domain.LoadInfo) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.loads = append(r.loads, loaded)
		},
		OnLoadError: func(err error, _ domain.LoadInfo) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.loadErrors = append(r.loadErrors, err)
		},
		OnDragStart: drag("start"),
		OnDragEnter: drag("enter"),
		OnDragOver:  drag("over"),
		OnDragLeave: drag("leave"),
		OnDragEnd:   drag("end"),
		OnDrop: func(info domain.DropInfo) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.drops = append(r.drops, info)
		},
		OnDiagnostic: func(d domain.Diagnostic) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.diagnostics = append(r.diagnostics, d)
		},
		OnRecompute: func(domain.RecomputeInfo) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.recomputes++
		},
	}
}

func (r *recorder) diagnosticCodes() []domain.DiagnosticCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.DiagnosticCode
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func newController(t *testing.T, forest []*domain.Node, opts ...runtime.Option) (*runtime.Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c, err := runtime.New(forest, append([]runtime.Option{runtime.WithHooks(rec.hooks())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, rec
}

func visibleKeys(c *runtime.Controller) []domain.Key {
	var out []domain.Key
	for _, kl := range c.Visible() {
		out = append(out, kl.Key)
	}
	return out
}
