package http

import (
	"log/slog"
	"sync"
)

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan string]struct{} // TreeID -> Set of Channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a listener for the diffs of a tree.
// The returned function unsubscribes and is safe to call after CloseTree.
func (sm *StreamManager) Subscribe(treeID string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[treeID]; !ok {
		sm.subscribers[treeID] = make(map[chan string]struct{})
	}
	sm.subscribers[treeID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[treeID]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, treeID)
			}
		}
	}
}

// Subscribers counts the listeners of a tree.
func (sm *StreamManager) Subscribers(treeID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[treeID])
}

// Broadcast sends msg to every listener of a tree. Slow listeners miss the message.
func (sm *StreamManager) Broadcast(treeID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	subs := sm.subscribers[treeID]
	sm.logger.Debug("broadcasting diff", "tree_id", treeID, "subscribers", len(subs), "payload_size", len(msg))
	for ch := range subs {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping message", "tree_id", treeID)
		}
	}
}

// CloseTree ends every stream of a deleted tree.
func (sm *StreamManager) CloseTree(treeID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for ch := range sm.subscribers[treeID] {
		close(ch)
	}
	delete(sm.subscribers, treeID)
}
