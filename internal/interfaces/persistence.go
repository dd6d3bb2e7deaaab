package interfaces

import "wizard-cli/internal/schema"

// ConfigStore persists configuration schemas to disk.
type ConfigStore interface {
	// Save writes a structured model to path.
	Save(path string, model *schema.ConfigModel) error

	// SaveLegacy writes the values of a legacy map into the template-seeded
	// file at path, preserving keys the map does not own.
	SaveLegacy(path string, cm *schema.LegacyConfigMap) error

	// CopyTemplate copies a strategy template file to dest.
	CopyTemplate(src, dest string) error

	// Exists reports whether a file already exists at path.
	Exists(path string) bool
}
