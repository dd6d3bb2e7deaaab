package interfaces

import (
	"context"

	"wizard-cli/internal/schema"
)

// SecretStore is the external subsystem holding globally-shared secure
// fields. The wizard never mutates secrets directly; it only waits for
// decryption and asks for decrypted values to be applied.
type SecretStore interface {
	// AwaitDecryption blocks until decryption of stored secrets is done.
	AwaitDecryption(ctx context.Context) error

	// ApplyToLegacy overwrites secure descriptors of a legacy map with
	// their decrypted values.
	ApplyToLegacy(cm *schema.LegacyConfigMap)
}
