package secrets

import (
	"context"

	"wizard-cli/internal/schema"
)

// Store holds decrypted secure values keyed by descriptor key. Decryption
// itself happens elsewhere; callers close the ready channel once values are
// available.
type Store struct {
	ready  chan struct{}
	values map[string]interface{}
}

// NewStore creates a secret store that becomes ready when MarkReady is
// called.
func NewStore() *Store {
	return &Store{ready: make(chan struct{}), values: make(map[string]interface{})}
}

// Put stores a decrypted value for a secure key.
func (s *Store) Put(key string, value interface{}) {
	s.values[key] = value
}

// MarkReady signals that decryption is done.
func (s *Store) MarkReady() {
	close(s.ready)
}

// AwaitDecryption implements interfaces.SecretStore.
func (s *Store) AwaitDecryption(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ApplyToLegacy overwrites secure descriptors with their decrypted values.
// Descriptors without a stored secret keep their current value.
func (s *Store) ApplyToLegacy(cm *schema.LegacyConfigMap) {
	for _, key := range cm.Keys() {
		d, _ := cm.Get(key)
		if !d.IsSecure {
			continue
		}
		if v, ok := s.values[key]; ok {
			d.Value = v
		}
	}
}
