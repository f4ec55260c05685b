// Package template implements the filing template registry. Templates are
// YAML files holding an ordered section list and the raw document body with
// its two placeholder families. The registry validates templates at load
// time and hands out immutable snapshots; section rows are always created
// from one snapshot, never from a half-reloaded registry.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"dagdraft/internal/logging"
	"dagdraft/internal/types"
)

// Registry loads and serves filing templates.
type Registry struct {
	mu        sync.RWMutex
	dir       string
	templates map[string]*types.Template
	watcher   *Watcher
}

// NewRegistry creates a registry over a template directory. A missing or
// empty directory is not an error: the built-in default summons template is
// always available.
func NewRegistry(dir string) (*Registry, error) {
	r := &Registry{
		dir:       dir,
		templates: make(map[string]*types.Template),
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads every template file in the directory. Invalid files are
// skipped with a log entry; a registry reload never removes the built-in
// default.
func (r *Registry) Reload() error {
	loaded := make(map[string]*types.Template)

	def := DefaultTemplate()
	loaded[def.ID] = def

	if r.dir != "" {
		entries, err := os.ReadDir(r.dir)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read template directory: %w", err)
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
				continue
			}
			path := filepath.Join(r.dir, name)
			tpl, err := loadFile(path)
			if err != nil {
				logging.Get(logging.CategoryTemplate).Warn("Skipping template %s: %v", name, err)
				continue
			}
			loaded[tpl.ID] = tpl
			logging.Template("Loaded template %s (version %s) from %s", tpl.ID, tpl.Version, name)
		}
	}

	r.mu.Lock()
	r.templates = loaded
	r.mu.Unlock()
	return nil
}

func loadFile(path string) (*types.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tpl := &types.Template{}
	if err := yaml.Unmarshal(data, tpl); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Get returns the template with the given id.
func (r *Registry) Get(id string) (*types.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[id]
	if !ok {
		return nil, types.NewNotFound("template", id)
	}
	return tpl, nil
}

// List returns all known templates sorted by id.
func (r *Registry) List() []*types.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*types.Template, 0, len(r.templates))
	for _, tpl := range r.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
