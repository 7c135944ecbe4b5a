package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger builds the CLI logger for a textual level.
func NewLogger(level string) (*slog.Logger, error) {
	l, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(l), nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnExpand: func(expanded []domain.Key, info domain.ExpandInfo) {
			logger.Debug("Expand", "key", info.Key, "expanded", info.Expanded, "total", len(expanded))
		},
		OnSelect: func(selected []domain.Key, info domain.SelectInfo) {
			logger.Debug("Select", "key", info.Key, "selected", info.Selected)
		},
		OnCheck: func(result domain.CheckState, info domain.CheckInfo) {
			logger.Debug("Check", "key", info.Key, "checked", info.Checked,
				"checked_total", len(result.Checked), "half_total", len(result.HalfChecked))
		},
		OnLoad: func(_ []domain.Key, info domain.LoadInfo) {
			logger.Debug("Load", "key", info.Key)
		},
		OnLoadError: func(err error, info domain.LoadInfo) {
			logger.Debug("Load failed", "key", info.Key, "err", err)
		},
		OnRecompute: func(info domain.RecomputeInfo) {
			logger.Debug("Recompute", "entities", info.Entities, "visible", info.Visible, "took", info.Duration)
		},
	}
}
