package persistence

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"wizard-cli/internal/schema"
)

// Store reads and writes strategy configuration files as YAML.
type Store struct{}

// NewStore creates a config store.
func NewStore() *Store { return &Store{} }

// Save writes a structured model to path. Nested models become nested
// mappings.
func (s *Store) Save(path string, model *schema.ConfigModel) error {
	doc := modelToMap(model)
	doc["strategy"] = model.Strategy()
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// SaveLegacy writes a legacy map's values into the template-seeded file at
// path. Keys present in the template but not owned by the map are kept
// untouched.
func (s *Store) SaveLegacy(path string, cm *schema.LegacyConfigMap) error {
	doc := map[string]interface{}{}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", path, err)
		}
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	for _, key := range cm.Keys() {
		d, _ := cm.Get(key)
		doc[key] = d.Value
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// CopyTemplate copies a strategy template file to dest byte-for-byte.
func (s *Store) CopyTemplate(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open template %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy template to %s: %w", dest, err)
	}
	return nil
}

// Exists reports whether a file already exists at path.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func modelToMap(m *schema.ConfigModel) map[string]interface{} {
	doc := make(map[string]interface{}, len(m.Fields()))
	for _, f := range m.Fields() {
		if sub, ok := schema.AsModel(f.Value()); ok {
			doc[f.Key] = modelToMap(sub)
			continue
		}
		doc[f.Key] = f.Value()
	}
	return doc
}
