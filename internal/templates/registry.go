package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	models "memoria/internal/domain/models/flashcard"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var catalogFiles embed.FS

// Registry holds the built-in template catalog loaded from embedded YAML
type Registry struct {
	templates map[string]TemplateSpec
	mu        sync.RWMutex
}

// NewRegistry creates a registry and loads every embedded catalog file
func NewRegistry() (*Registry, error) {
	r := &Registry{
		templates: make(map[string]TemplateSpec),
	}

	files, err := fs.Glob(catalogFiles, "catalog/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list catalog files: %w", err)
	}

	for _, filename := range files {
		if err := r.loadFile(filename); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// loadFile loads one YAML file holding a list of templates
func (r *Registry) loadFile(filename string) error {
	data, err := catalogFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var specs []TemplateSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range specs {
		if _, dup := r.templates[s.Name]; dup {
			return fmt.Errorf("%s: template %q defined twice", filename, s.Name)
		}
		r.templates[s.Name] = s
	}

	return nil
}

// Names returns the catalog's template names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns one catalog template by name
func (r *Registry) Get(name string) (models.Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.templates[name]
	if !ok {
		return models.Template{}, false
	}
	return s.toModel(), true
}

// Templates returns every catalog template, ordered by name, ready for seeding
func (r *Registry) Templates() []models.Template {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Template, 0, len(names))
	for _, name := range names {
		out = append(out, r.templates[name].toModel())
	}
	return out
}
