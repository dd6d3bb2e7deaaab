package interfaces

import "wizard-cli/internal/schema"

// SchemaCatalogue resolves strategy names to their configuration schemas.
type SchemaCatalogue interface {
	// Lookup returns the schema for a strategy, either a
	// *schema.ConfigModel or a *schema.LegacyConfigMap, or false when the
	// strategy is unknown.
	Lookup(strategy string) (schema.Schema, bool)

	// Strategies lists the registered strategy names in registration order.
	Strategies() []string

	// TemplatePath returns the template file used to seed a new legacy
	// config file for the strategy.
	TemplatePath(strategy string) string

	// DefaultFileName proposes a non-colliding file name for a new
	// configuration of the strategy.
	DefaultFileName(strategy string) string
}
