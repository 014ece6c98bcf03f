// Package registry holds the declared panel kinds: which panels the host
// can open, their titles and the bundled assets their markup references.
// Kinds come from a YAML manifest, with a built-in default when none is
// declared.
package registry

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/goccy/go-yaml"
)

// Kind describes one panel kind the host can open.
type Kind struct {
	Name   string `yaml:"name" json:"name"`
	Title  string `yaml:"title" json:"title"`
	Script string `yaml:"script" json:"script"`
	Style  string `yaml:"style" json:"style"`
}

// Validate checks the kind for required fields.
func (k Kind) Validate() error {
	if k.Name == "" {
		return fmt.Errorf("panel kind requires a name")
	}
	if k.Script == "" || k.Style == "" {
		return fmt.Errorf("panel kind %s requires script and style assets", k.Name)
	}
	return nil
}

// manifest is the YAML document shape.
type manifest struct {
	Panels []Kind `yaml:"panels"`
}

// Registry is the fixed set of panel kinds, immutable after load.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

// New creates an empty registry
func New() *Registry {
	return &Registry{kinds: make(map[string]Kind)}
}

// Register adds a kind, rejecting duplicates and invalid entries.
func (r *Registry) Register(k Kind) error {
	if err := k.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.kinds[k.Name]; exists {
		return fmt.Errorf("panel kind %s already registered", k.Name)
	}
	r.kinds[k.Name] = k
	return nil
}

// Get retrieves a kind by name
func (r *Registry) Get(name string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	return k, ok
}

// List returns all kinds sorted by name
func (r *Registry) List() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Name < kinds[j].Name })
	return kinds
}

// LoadManifest parses a YAML manifest and registers every declared kind.
func (r *Registry) LoadManifest(data []byte) error {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("failed to parse panel manifest: %w", err)
	}

	for _, k := range m.Panels {
		if err := r.Register(k); err != nil {
			return err
		}
	}
	return nil
}

// LoadManifestFile loads a manifest from disk. A missing file is not an
// error; the caller falls back to the seeded default kind.
func (r *Registry) LoadManifestFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read panel manifest: %w", err)
	}
	return r.LoadManifest(data)
}

// DefaultKind is the built-in demo panel, seeded when the manifest
// declares nothing.
var DefaultKind = Kind{
	Name:   "webview",
	Title:  "Webview Panel",
	Script: "main.js",
	Style:  "style.css",
}

// SeedDefault registers the built-in kind if the registry is empty.
func (r *Registry) SeedDefault() {
	r.mu.RLock()
	empty := len(r.kinds) == 0
	r.mu.RUnlock()

	if empty {
		r.Register(DefaultKind)
	}
}
