package catalogue

import (
	"fmt"
	"os"
	"path/filepath"

	"wizard-cli/internal/schema"
)

// Builder produces a fresh schema instance for a strategy. A new instance
// per session keeps sessions from leaking values into each other.
type Builder func() schema.Schema

// Registry is an in-memory schema catalogue. The concrete strategy set is
// owned by the embedding tool; the registry only resolves names and
// proposes file names.
type Registry struct {
	confDir     string
	templateDir string
	order       []string
	builders    map[string]Builder
}

// NewRegistry creates an empty registry over the given directories.
func NewRegistry(confDir, templateDir string) *Registry {
	return &Registry{
		confDir:     confDir,
		templateDir: templateDir,
		builders:    make(map[string]Builder),
	}
}

// Register adds a strategy. Re-registering a name replaces its builder but
// keeps its original position.
func (r *Registry) Register(name string, build Builder) {
	if _, ok := r.builders[name]; !ok {
		r.order = append(r.order, name)
	}
	r.builders[name] = build
}

// Lookup implements interfaces.SchemaCatalogue.
func (r *Registry) Lookup(strategy string) (schema.Schema, bool) {
	build, ok := r.builders[strategy]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Strategies implements interfaces.SchemaCatalogue.
func (r *Registry) Strategies() []string {
	return append([]string(nil), r.order...)
}

// TemplatePath implements interfaces.SchemaCatalogue.
func (r *Registry) TemplatePath(strategy string) string {
	return filepath.Join(r.templateDir, fmt.Sprintf("conf_%s_TEMPLATE.yml", strategy))
}

// DefaultFileName proposes conf_<strategy>_<n>.yml with the smallest n not
// already present in the configuration directory. A name only counts as
// taken when it can be stat'ed; on an unreadable conf_dir the first proposal
// is returned and the collision check at persist time has the final say.
func (r *Registry) DefaultFileName(strategy string) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("conf_%s_%d.yml", strategy, n)
		if _, err := os.Stat(filepath.Join(r.confDir, name)); err != nil {
			return name
		}
	}
}
