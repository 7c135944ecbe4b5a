// Package file loads a forest from a YAML or JSON document on disk.
//
// The document is a list of nodes. Each node accepts the fields of domain.Node;
// any other field is kept in the node's attributes:
//
//	- key: docs
//	  title: Documentation
//	  owner: platform        # lands in Attributes["owner"]
//	  children:
//	    - key: guide
//	      isLeaf: true
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
)

// Loader implements ports.ForestLoader and ports.Watchable for a single file.
type Loader struct {
	path   string
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used by Watch.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a loader for path. The format follows the extension: .json is JSON,
// anything else is YAML (a superset of JSON).
func New(path string, opts ...Option) *Loader {
	l := &Loader{path: path, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and decodes the file.
func (l *Loader) Load(ctx context.Context) ([]*domain.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read forest %s: %w", l.path, err)
	}

	forest, err := Decode(data, strings.EqualFold(filepath.Ext(l.path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode forest %s: %w", l.path, err)
	}
	return forest, nil
}

// Decode parses a forest document. asJSON selects the JSON decoder.
func Decode(data []byte, asJSON bool) ([]*domain.Node, error) {
	var raw []map[string]any
	if asJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	return decodeForest(raw, domain.RootPos)
}
