package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
)

// CreateTreeRequest is the body of POST /trees.
type CreateTreeRequest struct {
	Name   string         `json:"name" validate:"max=128"`
	Forest []*domain.Node `json:"forest"`

	Multiple            bool         `json:"multiple"`
	CheckStrictly       bool         `json:"checkStrictly"`
	Selectable          *bool        `json:"selectable"`
	Checkable           *bool        `json:"checkable"`
	DefaultExpandAll    bool         `json:"defaultExpandAll"`
	DefaultExpandedKeys []domain.Key `json:"defaultExpandedKeys"`
	DefaultSelectedKeys []domain.Key `json:"defaultSelectedKeys"`
	DefaultCheckedKeys  []domain.Key `json:"defaultCheckedKeys"`
}

// CreateTreeResponse is returned by POST /trees.
type CreateTreeResponse struct {
	ID       string           `json:"id"`
	Snapshot *domain.Snapshot `json:"snapshot"`
}

// KeyRequest names a node and optionally the desired state. A nil value toggles.
type KeyRequest struct {
	Key   domain.Key `json:"key" validate:"required"`
	Value *bool      `json:"value"`
}

// DragRequest drives a drag gesture.
type DragRequest struct {
	Action string     `json:"action" validate:"oneof=start enter over leave end drop"`
	Key    domain.Key `json:"key" validate:"required_unless=Action end"`
	Offset float64    `json:"offset"`
	Height float64    `json:"height" validate:"gte=0"`
}

// MutationResponse carries the change caused by a request.
type MutationResponse struct {
	Diff *domain.SnapshotDiff `json:"diff"`
}

// ListTrees handles the GET /trees request.
func (s *Server) ListTrees(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"trees": s.Sessions.List()})
}

// CreateTree handles the POST /trees request.
func (s *Server) CreateTree(w http.ResponseWriter, r *http.Request) {
	var body CreateTreeRequest
	if !s.decode(w, r, &body) {
		return
	}

	// Async events happen outside any request, so they publish through hooks.
	var ref struct{ id string }
	var tree *arbor.Tree
	async := func() {
		s.mu.Lock()
		id := ref.id
		s.mu.Unlock()
		if id == "" {
			return
		}
		if _, err := s.Sessions.Get(id); err == nil {
			s.publish(id, tree)
		}
	}
	hooks := domain.Hooks{
		OnLoad:      func([]domain.Key, domain.LoadInfo) { async() },
		OnLoadError: func(error, domain.LoadInfo) { async() },
		OnDragEnter: func(domain.DragInfo) { async() },
	}

	opts := append([]arbor.Option{}, s.treeOpts...)
	opts = append(opts,
		arbor.WithName(body.Name),
		arbor.WithLogger(s.logger),
		arbor.WithHooks(hooks),
		arbor.WithMultiple(body.Multiple),
		arbor.WithCheckStrictly(body.CheckStrictly),
		arbor.WithDefaultExpandAll(body.DefaultExpandAll),
		arbor.WithDefaultExpandedKeys(body.DefaultExpandedKeys...),
		arbor.WithDefaultSelectedKeys(body.DefaultSelectedKeys...),
		arbor.WithDefaultCheckedKeys(body.DefaultCheckedKeys...),
	)
	if body.Selectable != nil {
		opts = append(opts, arbor.WithSelectable(*body.Selectable))
	}
	if body.Checkable != nil {
		opts = append(opts, arbor.WithCheckable(*body.Checkable))
	}

	var err error
	tree, err = arbor.New(body.Forest, opts...)
	if err != nil {
		s.writeError(w, fmt.Errorf("failed to create tree: %w", err))
		return
	}
	id := s.Sessions.Create(tree)
	s.mu.Lock()
	ref.id = id
	s.mu.Unlock()
	s.publish(id, tree)

	s.logger.Info("tree created", "tree_id", id, "name", body.Name)
	s.writeJSON(w, http.StatusCreated, CreateTreeResponse{ID: id, Snapshot: tree.Snapshot()})
}

// DeleteTree handles the DELETE /trees/{treeID} request.
func (s *Server) DeleteTree(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "treeID")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.forget(id)
	w.WriteHeader(http.StatusNoContent)
}

// GetSnapshot handles the GET /trees/{treeID}/snapshot request.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	tree, err := s.Sessions.Get(chi.URLParam(r, "treeID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tree.Snapshot())
}

// GetRows handles the GET /trees/{treeID}/rows?offset=&limit= request.
func (s *Server) GetRows(w http.ResponseWriter, r *http.Request) {
	tree, err := s.Sessions.Get(chi.URLParam(r, "treeID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	offset, err := intParam(r, "offset")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := intParam(r, "limit")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows := tree.Rows(offset, limit)
	if rows == nil {
		rows = []domain.Row{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"total": len(tree.Visible()),
		"rows":  rows,
	})
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

// Expand handles the POST /trees/{treeID}/expand request.
func (s *Server) Expand(w http.ResponseWriter, r *http.Request) {
	s.keyMutation(w, r, (*arbor.Tree).Expand, (*arbor.Tree).ToggleExpand)
}

// Select handles the POST /trees/{treeID}/select request.
func (s *Server) Select(w http.ResponseWriter, r *http.Request) {
	s.keyMutation(w, r, (*arbor.Tree).Select, (*arbor.Tree).ToggleSelect)
}

// Check handles the POST /trees/{treeID}/check request.
func (s *Server) Check(w http.ResponseWriter, r *http.Request) {
	s.keyMutation(w, r, (*arbor.Tree).Check, (*arbor.Tree).ToggleCheck)
}

func (s *Server) keyMutation(
	w http.ResponseWriter,
	r *http.Request,
	set func(*arbor.Tree, domain.Key, bool) error,
	toggle func(*arbor.Tree, domain.Key) error,
) {
	var body KeyRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.mutate(w, r, func(tree *arbor.Tree) error {
		if body.Value == nil {
			return toggle(tree, body.Key)
		}
		return set(tree, body.Key, *body.Value)
	})
}

// Load handles the POST /trees/{treeID}/load request. It waits for the load to settle
// and responds with the resulting snapshot.
func (s *Server) Load(w http.ResponseWriter, r *http.Request) {
	var body KeyRequest
	if !s.decode(w, r, &body) {
		return
	}
	id := chi.URLParam(r, "treeID")
	tree, err := s.Sessions.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	select {
	case err = <-tree.Load(r.Context(), body.Key):
	case <-r.Context().Done():
		err = r.Context().Err()
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	// The diff itself reaches subscribers through the load hooks.
	s.writeJSON(w, http.StatusOK, tree.Snapshot())
}

// Drag handles the POST /trees/{treeID}/drag request.
func (s *Server) Drag(w http.ResponseWriter, r *http.Request) {
	var body DragRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.mutate(w, r, func(tree *arbor.Tree) error {
		switch body.Action {
		case "start":
			return tree.DragStart(body.Key)
		case "enter":
			return tree.DragEnter(body.Key, body.Offset, body.Height)
		case "over":
			return tree.DragOver(body.Key, body.Offset, body.Height)
		case "leave":
			return tree.DragLeave(body.Key)
		case "end":
			return tree.DragEnd()
		default:
			return tree.Drop(body.Key)
		}
	})
}

// mutate runs fn under the tree lock and responds with the resulting diff.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(*arbor.Tree) error) {
	id := chi.URLParam(r, "treeID")
	var diff *domain.SnapshotDiff
	err := s.Sessions.WithLock(r.Context(), id, func(_ context.Context, tree *arbor.Tree) error {
		if err := fn(tree); err != nil {
			return err
		}
		diff = s.publish(id, tree)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, MutationResponse{Diff: diff})
}

// SubscribeEvents handles the GET /trees/{treeID}/events request (SSE).
// The optional watch query parameter filters diffs by slice, e.g. watch=checked,visible.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: streaming not supported")
		return
	}
	id := chi.URLParam(r, "treeID")
	if _, err := s.Sessions.Get(id); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()
	s.logger.Info("SSE: subscribed", "tree_id", id)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	var watch []string
	if raw := r.URL.Query().Get("watch"); raw != "" {
		watch = strings.Split(raw, ",")
	}

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "tree_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watch) > 0 && !watched(msg, watch) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// watched reports whether a serialized diff touches one of the named slices.
func watched(msg string, fields []string) bool {
	var diff map[string]json.RawMessage
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, f := range fields {
		if _, ok := diff[strings.TrimSpace(f)]; ok {
			return true
		}
	}
	return false
}
