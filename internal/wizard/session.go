package wizard

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"wizard-cli/internal/interfaces"
	"wizard-cli/internal/schema"
)

// Outcome is the terminal state of a wizard session.
type Outcome int

const (
	// OutcomeReady means the configuration was persisted and the readiness
	// check passed.
	OutcomeReady Outcome = iota

	// OutcomeNotReady means the configuration was persisted but the
	// readiness check reported not-ready within its deadline.
	OutcomeNotReady

	// OutcomeCancelled means the operator cancelled, or the chosen
	// strategy had no schema; nothing was persisted (legacy maps are
	// rolled back).
	OutcomeCancelled

	// OutcomeFailed means the session is unusable: the readiness check
	// timed out and the file-name/strategy/schema bindings were discarded.
	OutcomeFailed
)

// Result is what a finished session exposes to the caller. FileName,
// StrategyName and Schema are only set for persisted sessions.
type Result struct {
	Outcome      Outcome
	FileName     string
	StrategyName string
	Schema       schema.Schema
}

// Controller orchestrates one configuration session: strategy selection,
// schema lookup, prompting, file-name resolution, persistence and the
// readiness check.
type Controller struct {
	fe      interfaces.FrontEnd
	cat     interfaces.SchemaCatalogue
	store   interfaces.ConfigStore
	secrets interfaces.SecretStore
	probe   interfaces.ReadinessProbe
	cfg     *interfaces.Config
	tok     *Token
	log     *zap.Logger

	fileName     string
	strategyName string
	sch          schema.Schema
}

// NewController wires a session controller. secrets and probe may be nil
// when the surrounding tool has no secret store or readiness checks.
func NewController(
	fe interfaces.FrontEnd,
	cat interfaces.SchemaCatalogue,
	store interfaces.ConfigStore,
	secrets interfaces.SecretStore,
	probe interfaces.ReadinessProbe,
	cfg *interfaces.Config,
	tok *Token,
	log *zap.Logger,
) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{fe: fe, cat: cat, store: store, secrets: secrets, probe: probe, cfg: cfg, tok: tok, log: log}
}

// Run drives a whole session. A non-empty fileName is reused for the new
// configuration; it is rejected up front when a file with that name already
// exists. Cancellation at any prompt ends the session with
// OutcomeCancelled and never returns an error.
func (c *Controller) Run(ctx context.Context, fileName string) (*Result, error) {
	if fileName != "" {
		fileName = FormatFileName(fileName)
		if c.store.Exists(filepath.Join(c.cfg.ConfDir, fileName)) {
			c.fe.Notify(fmt.Sprintf("%s already exists.", fileName))
			return &Result{Outcome: OutcomeCancelled}, nil
		}
	}

	c.fe.ClearInput()
	c.fe.SetPlaceholder(true)
	c.fe.SetHiddenInput(true)
	defer func() {
		c.fe.SetPlaceholder(false)
		c.fe.SetHiddenInput(false)
	}()

	strategy, err := c.selectStrategy(ctx)
	if err != nil {
		return nil, err
	}
	if c.tok.Cancelled() || strategy == "" {
		c.stop(nil)
		return &Result{Outcome: OutcomeCancelled}, nil
	}
	c.log.Info("strategy selected", zap.String("strategy", strategy))

	sch, ok := c.cat.Lookup(strategy)
	if !ok {
		// Unknown strategy is an abort, not an error: no further
		// configuration is possible.
		c.log.Warn("schema lookup failed", zap.String("strategy", strategy))
		c.stop(nil)
		return &Result{Outcome: OutcomeCancelled}, nil
	}
	c.fe.Notify(fmt.Sprintf("Please see the %s strategy guide while setting up these below configuration.",
		strings.ReplaceAll(strategy, "_", " ")))

	var engine ConfigurationEngine
	switch s := sch.(type) {
	case *schema.ConfigModel:
		engine = NewStructuredEngine(s, c.fe, c.tok, c.store, c.cat, c.cfg.ConfDir, c.log)
	case *schema.LegacyConfigMap:
		engine = NewLegacyEngine(s, c.fe, c.tok, c.store, c.cat, c.cfg.ConfDir, c.log)
	default:
		c.stop(nil)
		return nil, NewSchemaNotFoundError(strategy)
	}

	if err := engine.PromptAll(ctx); err != nil {
		c.stop(engine)
		return nil, err
	}
	if c.tok.Cancelled() {
		c.stop(engine)
		return &Result{Outcome: OutcomeCancelled}, nil
	}

	if legacy, ok := sch.(*schema.LegacyConfigMap); ok && c.secrets != nil {
		if err := c.updateSecureConfigs(ctx, legacy); err != nil {
			c.stop(engine)
			return nil, err
		}
	}

	resolved, err := engine.ResolveFileName(ctx, fileName)
	if err != nil {
		c.stop(engine)
		return nil, err
	}
	if c.tok.Cancelled() || resolved == "" {
		c.stop(engine)
		c.fe.Prefill("")
		return &Result{Outcome: OutcomeCancelled}, nil
	}
	c.fe.ChangePrompt(">>> ")

	if err := engine.Persist(resolved); err != nil {
		c.stop(engine)
		return nil, err
	}
	c.fileName = resolved
	c.strategyName = strategy
	c.sch = sch

	ready, err := c.verifyStatus(ctx)
	if err != nil {
		return &Result{Outcome: OutcomeFailed}, err
	}
	outcome := OutcomeNotReady
	if ready {
		outcome = OutcomeReady
	}
	return &Result{
		Outcome:      outcome,
		FileName:     c.fileName,
		StrategyName: c.strategyName,
		Schema:       c.sch,
	}, nil
}

// selectStrategy runs the degenerate one-field structured prompt that
// determines which schema the rest of the session uses.
func (c *Controller) selectStrategy(ctx context.Context) (string, error) {
	model := schema.NewModel("base",
		schema.NewField("strategy", schema.ClientData{
			Prompt:      "What is your trading strategy?",
			PromptOnNew: true,
			Required:    true,
		}, nil, schema.SelectSetter(c.cat.Strategies())),
	)
	engine := NewStructuredEngine(model, c.fe, c.tok, c.store, c.cat, c.cfg.ConfDir, c.log)
	if err := engine.PromptModel(ctx, model); err != nil {
		return "", err
	}
	if c.tok.Cancelled() {
		return "", nil
	}
	name, _ := model.Value("strategy").(string)
	return name, nil
}

// updateSecureConfigs waits for the secret store's decryption to finish and
// applies decrypted values to the legacy map before it is persisted.
func (c *Controller) updateSecureConfigs(ctx context.Context, cm *schema.LegacyConfigMap) error {
	if err := c.secrets.AwaitDecryption(ctx); err != nil {
		return err
	}
	c.secrets.ApplyToLegacy(cm)
	return nil
}

// stop absorbs a cancellation: any legacy backup is rolled back and the
// flag is cleared so the caller returns to a neutral prompt.
func (c *Controller) stop(engine ConfigurationEngine) {
	if legacy, ok := engine.(*LegacyEngine); ok {
		legacy.Rollback()
	}
	c.tok.Reset()
}

// discardBindings drops the session's file-name, strategy and schema
// bindings, treating the configuration as not usable.
func (c *Controller) discardBindings() {
	c.fileName = ""
	c.strategyName = ""
	c.sch = nil
}
