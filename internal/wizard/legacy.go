package wizard

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"wizard-cli/internal/interfaces"
	"wizard-cli/internal/schema"
)

// LegacyEngine prompts a flat, ordered legacy config map: defaults are
// assigned first, then required prompt-on-new fields are asked in map
// order. The whole map is snapshotted before mutation so a cancelled
// session can be rolled back in full.
type LegacyEngine struct {
	cm      *schema.LegacyConfigMap
	backup  *schema.LegacyConfigMap
	fe      interfaces.FrontEnd
	tok     *Token
	store   interfaces.ConfigStore
	cat     interfaces.SchemaCatalogue
	confDir string
	log     *zap.Logger
}

// NewLegacyEngine creates the legacy prompting engine.
func NewLegacyEngine(
	cm *schema.LegacyConfigMap,
	fe interfaces.FrontEnd,
	tok *Token,
	store interfaces.ConfigStore,
	cat interfaces.SchemaCatalogue,
	confDir string,
	log *zap.Logger,
) *LegacyEngine {
	if log == nil {
		log = zap.NewNop()
	}
	return &LegacyEngine{cm: cm, fe: fe, tok: tok, store: store, cat: cat, confDir: confDir, log: log}
}

// Schema implements ConfigurationEngine.
func (e *LegacyEngine) Schema() schema.Schema { return e.cm }

// PromptAll implements ConfigurationEngine. The first pass assigns defaults
// (required fields) or clears values (non-required fields, never prompted);
// the second pass prompts the required prompt-on-new fields in map order
// and defaults the rest.
func (e *LegacyEngine) PromptAll(ctx context.Context) error {
	e.backup = e.cm.Snapshot()

	for _, key := range e.cm.Keys() {
		d, _ := e.cm.Get(key)
		if d.Required {
			d.Value = d.Default
		} else {
			d.Value = nil
		}
	}
	for _, key := range e.cm.Keys() {
		d, _ := e.cm.Get(key)
		if d.PromptOnNew && d.Required {
			if e.tok.Cancelled() {
				break
			}
			if err := e.PromptField(ctx, d, ""); err != nil {
				return err
			}
		} else {
			d.Value = d.Default
		}
	}
	return nil
}

// PromptField prompts one legacy descriptor, retrying until its validator
// accepts the input or cancellation is signaled. The reserved inventory
// price key dispatches to the strategy-owned compound sequence instead of
// the generic scalar path.
func (e *LegacyEngine) PromptField(ctx context.Context, d *schema.FieldDescriptor, preset string) error {
	if d.Key == schema.InventoryPriceKey && d.Compound != nil {
		return d.Compound(ctx, e.cm, preset)
	}

	input := preset
	for {
		if input == "" {
			prompt, ok := d.PromptText()
			if !ok {
				return nil
			}
			e.fe.Prefill(d.DefaultText())
			line, err := e.fe.ReadLine(ctx, prompt+promptSuffix, d.IsSecure)
			if err != nil {
				return err
			}
			input = line
		}
		if e.tok.Cancelled() {
			return nil
		}
		if d.Validate != nil {
			if msg := d.Validate(input); msg != "" {
				e.fe.Notify(msg)
				e.log.Debug("field rejected", zap.String("key", d.Key), zap.String("reason", msg))
				input = ""
				continue
			}
		}
		d.Value = d.ParseValue(input)
		return nil
	}
}

// ResolveFileName implements ConfigurationEngine.
func (e *LegacyEngine) ResolveFileName(ctx context.Context, fileName string) (string, error) {
	if fileName != "" {
		return FormatFileName(fileName), nil
	}
	return promptNewFileName(ctx, e.fe, e.tok, e.cat, e.store, e.confDir, e.cm.Strategy())
}

// Persist implements ConfigurationEngine. The strategy's template file is
// copied to the target path first, then the populated map is written into
// it, keeping template keys the map does not own.
func (e *LegacyEngine) Persist(fileName string) error {
	path := filepath.Join(e.confDir, fileName)
	template := e.cat.TemplatePath(e.cm.Strategy())
	if err := e.store.CopyTemplate(template, path); err != nil {
		return NewPersistenceError(path, err)
	}
	if err := e.store.SaveLegacy(path, e.cm); err != nil {
		return NewPersistenceError(path, err)
	}
	e.log.Info("legacy configuration saved", zap.String("path", path), zap.String("strategy", e.cm.Strategy()))
	e.fe.Notify(fmt.Sprintf("A new config file %s created.", fileName))
	return nil
}

// Rollback restores every key of the map to its pre-session value. It is a
// no-op when prompting never began.
func (e *LegacyEngine) Rollback() {
	if e.backup == nil {
		return
	}
	e.cm.Restore(e.backup)
	e.backup = nil
	e.log.Info("legacy configuration rolled back", zap.String("strategy", e.cm.Strategy()))
}
