package wizard

import (
	"context"

	"wizard-cli/internal/schema"
)

// ConfigurationEngine is the prompting discipline for one schema kind. Both
// the structured and the legacy engine implement it, so the session
// controller drives the same state machine regardless of schema kind and
// persistence happens exactly once, in the controller's Persisting state.
type ConfigurationEngine interface {
	// PromptAll walks the schema's fields, prompting the required ones.
	// Cancellation stops the walk without error.
	PromptAll(ctx context.Context) error

	// ResolveFileName returns the config file name for this session. A
	// non-empty fileName is reused verbatim (normalised); otherwise the
	// operator is prompted until a non-colliding name is given.
	ResolveFileName(ctx context.Context, fileName string) (string, error)

	// Persist writes the populated schema to fileName inside the
	// configuration directory.
	Persist(fileName string) error

	// Schema returns the schema being configured.
	Schema() schema.Schema
}
