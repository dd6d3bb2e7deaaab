package schema

import "fmt"

// Schema marks a strategy's configuration representation. It is implemented
// by both ConfigModel (structured) and LegacyConfigMap (flat).
type Schema interface {
	// Strategy returns the strategy name this schema configures.
	Strategy() string
}

// ValidationError reports a field-local constraint violation. It is always
// recoverable: the engines re-prompt the same field until the value passes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Message)
}

// SetterFunc parses and validates raw operator input for one field. On
// success it returns the coerced value to store; on failure it returns a
// *ValidationError describing the violated constraint.
type SetterFunc func(raw string) (interface{}, error)

// ClientData carries the prompting metadata attached to a field.
type ClientData struct {
	// Prompt is the static prompt text. An empty Prompt (and nil PromptFn)
	// means the field is never prompted interactively.
	Prompt string

	// PromptFn, when set, produces the prompt text dynamically and takes
	// precedence over Prompt.
	PromptFn func() string

	// PromptOnNew marks fields that must be asked for when creating a new
	// configuration, as opposed to always-defaulted or derived fields.
	PromptOnNew bool

	Required bool

	// IsSecure controls whether operator input is masked.
	IsSecure bool
}

// PromptText returns the prompt for this field, or false when the field is
// silently skipped during interactive prompting.
func (d ClientData) PromptText() (string, bool) {
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

// Field is a single named, typed configuration value of a structured model.
type Field struct {
	Key    string
	Client ClientData

	Default interface{}
	setter  SetterFunc
	value   interface{}
}

// NewField creates a field. The setter may be nil, in which case raw input
// is stored verbatim.
func NewField(key string, client ClientData, def interface{}, setter SetterFunc) *Field {
	return &Field{Key: key, Client: client, Default: def, setter: setter, value: def}
}

// PromptRequired reports whether prompting must occur for this field when a
// new configuration is created.
func (f *Field) PromptRequired() bool {
	return f.Client.Required && f.Client.PromptOnNew
}

// Value returns the field's current value.
func (f *Field) Value() interface{} { return f.value }

// SetDirect stores a value without running the setter.
func (f *Field) SetDirect(v interface{}) { f.value = v }

// Set parses, validates and stores raw input. The stored value is only
// replaced when validation succeeds.
func (f *Field) Set(raw string) error {
	if f.setter == nil {
		f.value = raw
		return nil
	}
	v, err := f.setter(raw)
	if err != nil {
		if verr, ok := err.(*ValidationError); ok && verr.Field == "" {
			verr.Field = f.Key
		}
		return err
	}
	f.value = v
	return nil
}

// ConfigModel is a named collection of fields in declaration order. A
// field's value may itself be another *ConfigModel (nesting).
type ConfigModel struct {
	strategy string
	fields   []*Field
	index    map[string]*Field
}

// NewModel creates a structured model. Field order is declaration order.
func NewModel(strategy string, fields ...*Field) *ConfigModel {
	m := &ConfigModel{strategy: strategy, index: make(map[string]*Field, len(fields))}
	for _, f := range fields {
		m.fields = append(m.fields, f)
		m.index[f.Key] = f
	}
	return m
}

// Strategy implements Schema.
func (m *ConfigModel) Strategy() string { return m.strategy }

// Fields returns the model's fields in declaration order.
func (m *ConfigModel) Fields() []*Field { return m.fields }

// Field looks up a direct (non-nested) field by key.
func (m *ConfigModel) Field(key string) (*Field, bool) {
	f, ok := m.index[key]
	return f, ok
}

// Value returns the current value of a direct field, or nil when absent.
func (m *ConfigModel) Value(key string) interface{} {
	if f, ok := m.index[key]; ok {
		return f.Value()
	}
	return nil
}

// Resolve descends a dotted path through nested sub-models and returns the
// owning model and the leaf field. Every segment other than the last must
// name a field whose current value is itself a model.
func (m *ConfigModel) Resolve(dotted string) (*ConfigModel, *Field, error) {
	owner := m
	path := splitPath(dotted)
	for len(path) > 1 {
		seg := path[0]
		path = path[1:]
		f, ok := owner.index[seg]
		if !ok {
			return nil, nil, fmt.Errorf("unknown field %q in model %s", seg, owner.strategy)
		}
		sub, ok := AsModel(f.Value())
		if !ok {
			return nil, nil, fmt.Errorf("field %q of model %s is not a nested model", seg, owner.strategy)
		}
		owner = sub
	}
	f, ok := owner.index[path[0]]
	if !ok {
		return nil, nil, fmt.Errorf("unknown field %q in model %s", path[0], owner.strategy)
	}
	return owner, f, nil
}

// AsModel reports whether a field value is itself a configurable model
// requiring its own recursive prompt pass.
func AsModel(v interface{}) (*ConfigModel, bool) {
	m, ok := v.(*ConfigModel)
	return m, ok
}

func splitPath(dotted string) []string {
	var segs []string
	start := 0
	for i := 0; i < len(dotted); i++ {
		if dotted[i] == '.' {
			segs = append(segs, dotted[start:i])
			start = i + 1
		}
	}
	return append(segs, dotted[start:])
}
