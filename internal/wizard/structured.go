package wizard

import (
	"context"
	"errors"
	"path/filepath"

	"go.uber.org/zap"

	"wizard-cli/internal/interfaces"
	"wizard-cli/internal/schema"
)

// promptSuffix is appended to every field prompt.
const promptSuffix = " >>> "

// StructuredEngine prompts a structured model's declared fields in
// declaration order, descending into nested models returned as a field's
// new value.
type StructuredEngine struct {
	model   *schema.ConfigModel
	fe      interfaces.FrontEnd
	tok     *Token
	store   interfaces.ConfigStore
	cat     interfaces.SchemaCatalogue
	confDir string
	log     *zap.Logger
}

// NewStructuredEngine creates the structured prompting engine.
func NewStructuredEngine(
	model *schema.ConfigModel,
	fe interfaces.FrontEnd,
	tok *Token,
	store interfaces.ConfigStore,
	cat interfaces.SchemaCatalogue,
	confDir string,
	log *zap.Logger,
) *StructuredEngine {
	if log == nil {
		log = zap.NewNop()
	}
	return &StructuredEngine{model: model, fe: fe, tok: tok, store: store, cat: cat, confDir: confDir, log: log}
}

// Schema implements ConfigurationEngine.
func (e *StructuredEngine) Schema() schema.Schema { return e.model }

// PromptAll implements ConfigurationEngine.
func (e *StructuredEngine) PromptAll(ctx context.Context) error {
	return e.PromptModel(ctx, e.model)
}

// PromptModel prompts every required prompt-on-new field of a model in
// declaration order. Iteration stops as soon as cancellation is signaled;
// remaining fields are not visited.
func (e *StructuredEngine) PromptModel(ctx context.Context, m *schema.ConfigModel) error {
	for _, f := range m.Fields() {
		if e.tok.Cancelled() {
			break
		}
		if !f.PromptRequired() {
			continue
		}
		if err := e.PromptField(ctx, m, f.Key, ""); err != nil {
			return err
		}
	}
	return nil
}

// PromptField prompts one field addressed by a dotted path, retrying the
// same field until validation succeeds or cancellation is signaled. A field
// without prompt text is silently skipped. Every submitted answer, the empty
// string included, goes through the field's setter, so a required validated
// field re-prompts on a bare Enter. When the accepted value is itself a
// nested model, its fields are prompted before returning.
func (e *StructuredEngine) PromptField(ctx context.Context, m *schema.ConfigModel, dotted string, preset string) error {
	_, field, err := m.Resolve(dotted)
	if err != nil {
		return err
	}

	input := preset
	for {
		if input == "" {
			prompt, ok := field.Client.PromptText()
			if !ok {
				return nil
			}
			line, err := e.fe.ReadLine(ctx, prompt+promptSuffix, field.Client.IsSecure)
			if err != nil {
				return err
			}
			input = line
		}
		if e.tok.Cancelled() {
			return nil
		}
		if err := field.Set(input); err != nil {
			var verr *schema.ValidationError
			if errors.As(err, &verr) {
				e.fe.Notify(verr.Message)
				e.log.Debug("field rejected", zap.String("field", dotted), zap.String("reason", verr.Message))
				input = ""
				continue
			}
			return err
		}
		break
	}

	if sub, ok := schema.AsModel(field.Value()); ok && !e.tok.Cancelled() {
		return e.PromptModel(ctx, sub)
	}
	return nil
}

// ResolveFileName implements ConfigurationEngine.
func (e *StructuredEngine) ResolveFileName(ctx context.Context, fileName string) (string, error) {
	if fileName != "" {
		return FormatFileName(fileName), nil
	}
	return promptNewFileName(ctx, e.fe, e.tok, e.cat, e.store, e.confDir, e.model.Strategy())
}

// Persist implements ConfigurationEngine.
func (e *StructuredEngine) Persist(fileName string) error {
	path := filepath.Join(e.confDir, fileName)
	if err := e.store.Save(path, e.model); err != nil {
		return NewPersistenceError(path, err)
	}
	e.log.Info("configuration saved", zap.String("path", path), zap.String("strategy", e.model.Strategy()))
	return nil
}
