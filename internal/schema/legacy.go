package schema

import (
	"context"
	"fmt"
)

// InventoryPriceKey is the reserved descriptor key whose prompting is owned
// by the strategy itself as a compound multi-step sequence, bypassing the
// generic single-field path.
const InventoryPriceKey = "inventory_price"

// CompoundPrompt is a strategy-owned multi-step prompt sequence for fields
// that cannot be expressed as one scalar prompt.
type CompoundPrompt func(ctx context.Context, cm *LegacyConfigMap, preset string) error

// FieldDescriptor is one entry of the flat legacy configuration map.
type FieldDescriptor struct {
	Key     string
	Value   interface{}
	Default interface{}

	Required    bool
	PromptOnNew bool
	IsSecure    bool

	// Prompt is the static prompt text; PromptFn takes precedence when set.
	// Both empty means the field has no interactive prompt.
	Prompt   string
	PromptFn func() string

	// Validate returns a non-empty violation message when raw input is
	// unacceptable. A nil Validate accepts everything.
	Validate func(raw string) string

	// Parse coerces validated input into the stored value. A nil Parse
	// stores the raw string.
	Parse func(raw string) interface{}

	// Compound, on the reserved inventory price key, replaces the generic
	// single-field prompt with a strategy-owned sequence.
	Compound CompoundPrompt
}

// PromptText returns the descriptor's prompt, or false when the field is
// never prompted.
func (d *FieldDescriptor) PromptText() (string, bool) {
	if d.PromptFn != nil {
		if p := d.PromptFn(); p != "" {
			return p, true
		}
		return "", false
	}
	if d.Prompt == "" {
		return "", false
	}
	return d.Prompt, true
}

// ParseValue coerces validated raw input into the value to store.
func (d *FieldDescriptor) ParseValue(raw string) interface{} {
	if d.Parse != nil {
		return d.Parse(raw)
	}
	return raw
}

// DefaultText renders the descriptor's default for prefilling into the
// input line, empty when there is no default.
func (d *FieldDescriptor) DefaultText() string {
	if d.Default == nil {
		return ""
	}
	return fmt.Sprintf("%v", d.Default)
}

// Clone returns a copy of the descriptor. Function fields are shared; the
// mutable value and metadata are copied.
func (d *FieldDescriptor) Clone() *FieldDescriptor {
	c := *d
	return &c
}

// LegacyConfigMap is the flat, insertion-ordered configuration
// representation kept for backward compatibility with template-seeded
// config files. It is treated as a unit for snapshot and rollback.
type LegacyConfigMap struct {
	strategy string
	keys     []string
	entries  map[string]*FieldDescriptor
}

// NewLegacyMap creates a legacy map preserving descriptor order.
func NewLegacyMap(strategy string, descs ...*FieldDescriptor) *LegacyConfigMap {
	m := &LegacyConfigMap{strategy: strategy, entries: make(map[string]*FieldDescriptor, len(descs))}
	for _, d := range descs {
		m.keys = append(m.keys, d.Key)
		m.entries[d.Key] = d
	}
	return m
}

// Strategy implements Schema.
func (m *LegacyConfigMap) Strategy() string { return m.strategy }

// Keys returns the map's keys in insertion order.
func (m *LegacyConfigMap) Keys() []string { return m.keys }

// Get looks up a descriptor by key.
func (m *LegacyConfigMap) Get(key string) (*FieldDescriptor, bool) {
	d, ok := m.entries[key]
	return d, ok
}

// Snapshot deep-copies the map so it can be restored after a cancelled
// session. The snapshot shares no mutable state with the live map.
func (m *LegacyConfigMap) Snapshot() *LegacyConfigMap {
	backup := &LegacyConfigMap{strategy: m.strategy, entries: make(map[string]*FieldDescriptor, len(m.entries))}
	backup.keys = append(backup.keys, m.keys...)
	for _, key := range m.keys {
		backup.entries[key] = m.entries[key].Clone()
	}
	return backup
}

// Restore puts every key back to its snapshot value, never a partial
// subset.
func (m *LegacyConfigMap) Restore(backup *LegacyConfigMap) {
	if backup == nil {
		return
	}
	for _, key := range backup.keys {
		m.entries[key] = backup.entries[key].Clone()
	}
}
