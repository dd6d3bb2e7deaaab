package wizard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wizard-cli/internal/interfaces"
	"wizard-cli/internal/schema"
)

func structuredSchema() *schema.ConfigModel {
	return schema.NewModel("market_maker",
		requiredField("pair", "Which market?", schema.TextSetter()),
		requiredField("spread", "Spread in percent?", schema.DecimalSetter(nil)),
	)
}

type sessionFixture struct {
	tok   *Token
	fe    *scriptedFrontEnd
	cat   *fakeCatalogue
	store *memStore
	cfg   *interfaces.Config
}

func newSessionFixture(inputs ...string) *sessionFixture {
	tok := NewToken()
	return &sessionFixture{
		tok:   tok,
		fe:    newScriptedFrontEnd(tok, inputs...),
		cat:   newFakeCatalogue(),
		store: newMemStore(),
		cfg:   &interfaces.Config{ConfDir: "/conf", CreateTimeout: 1.0},
	}
}

func (f *sessionFixture) controller(probe interfaces.ReadinessProbe) *Controller {
	return NewController(f.fe, f.cat, f.store, nil, probe, f.cfg, f.tok, nil)
}

func alwaysReady(ctx context.Context) (bool, error) { return true, nil }

func TestRun_StructuredHappyPath(t *testing.T) {
	f := newSessionFixture("market_maker", "BTC-USDT", "0.5", "conf_market_maker_1.yml")
	f.cat.add("market_maker", structuredSchema())

	result, err := f.controller(interfaces.ProbeFunc(alwaysReady)).Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, OutcomeReady, result.Outcome)
	assert.Equal(t, "conf_market_maker_1.yml", result.FileName)
	assert.Equal(t, "market_maker", result.StrategyName)
	require.NotNil(t, result.Schema)

	saved, ok := f.store.saved["/conf/conf_market_maker_1.yml"]
	require.True(t, ok)
	assert.Equal(t, "BTC-USDT", saved.Value("pair"))
	assert.Equal(t, 0.5, saved.Value("spread"))

	assert.Contains(t, f.fe.notices[len(f.fe.notices)-1], `Enter "start"`)
	assert.Equal(t, ">>> ", f.fe.promptString)
}

func TestRun_LegacyPath(t *testing.T) {
	f := newSessionFixture("classic", "binance", "conf_classic_1.yml")
	f.cat.add("classic", schema.NewLegacyMap("classic",
		&schema.FieldDescriptor{Key: "exchange", Prompt: "Which exchange?", Required: true, PromptOnNew: true},
		&schema.FieldDescriptor{Key: "order_refresh_time", Required: true, Default: "30"},
	))

	result, err := f.controller(interfaces.ProbeFunc(alwaysReady)).Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, OutcomeReady, result.Outcome)
	assert.Equal(t, "conf_classic_1.yml", result.FileName)

	// Template copied first, populated map written into it
	assert.Equal(t, "templates/conf_classic_TEMPLATE.yml", f.store.copied["/conf/conf_classic_1.yml"])
	saved, ok := f.store.legacy["/conf/conf_classic_1.yml"]
	require.True(t, ok)
	exchange, _ := saved.Get("exchange")
	assert.Equal(t, "binance", exchange.Value)
}

func TestRun_ExistingFileNameAbortsUpFront(t *testing.T) {
	f := newSessionFixture()
	f.store.existing["/conf/conf_custom.yml"] = true

	result, err := f.controller(nil).Run(context.Background(), "conf_custom")
	require.NoError(t, err)

	assert.Equal(t, OutcomeCancelled, result.Outcome)
	assert.Empty(t, result.FileName)
	require.NotEmpty(t, f.fe.notices)
	assert.Contains(t, f.fe.notices[0], "conf_custom.yml already exists")
}

func TestRun_ReusesExplicitFileName(t *testing.T) {
	f := newSessionFixture("market_maker", "BTC-USDT", "0.5")
	f.cat.add("market_maker", structuredSchema())

	result, err := f.controller(nil).Run(context.Background(), "my_conf")
	require.NoError(t, err)

	assert.Equal(t, "my_conf.yml", result.FileName)
	_, ok := f.store.saved["/conf/my_conf.yml"]
	assert.True(t, ok)
}

func TestRun_CancelDuringStrategySelection(t *testing.T) {
	f := newSessionFixture(cancelInput)
	f.cat.add("market_maker", structuredSchema())

	result, err := f.controller(nil).Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, OutcomeCancelled, result.Outcome)
	// The controller absorbs the cancellation and resets the flag
	assert.False(t, f.tok.Cancelled())
}

func TestRun_UnknownStrategyTreatedAsAbort(t *testing.T) {
	f := newSessionFixture("ghost")
	// Listed for selection but resolving to no schema
	f.cat.add("ghost", nil)

	result, err := f.controller(nil).Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, OutcomeCancelled, result.Outcome)
	assert.Empty(t, result.StrategyName)
}

func TestRun_CancelDuringPromptingRollsBackLegacy(t *testing.T) {
	cm := schema.NewLegacyMap("classic",
		&schema.FieldDescriptor{Key: "exchange", Prompt: "Which exchange?", Required: true, PromptOnNew: true, Value: "pre_exchange"},
		&schema.FieldDescriptor{Key: "pair", Prompt: "Which market?", Required: true, PromptOnNew: true, Value: "pre_pair"},
	)
	f := newSessionFixture("classic", "binance", cancelInput)
	f.cat.add("classic", cm)

	result, err := f.controller(nil).Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, OutcomeCancelled, result.Outcome)
	exchange, _ := cm.Get("exchange")
	assert.Equal(t, "pre_exchange", exchange.Value)
	pair, _ := cm.Get("pair")
	assert.Equal(t, "pre_pair", pair.Value)
	assert.False(t, f.tok.Cancelled())
}

func TestRun_CancelDuringFileNamePrompt(t *testing.T) {
	f := newSessionFixture("market_maker", "BTC-USDT", "0.5", cancelInput)
	f.cat.add("market_maker", structuredSchema())

	result, err := f.controller(nil).Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, OutcomeCancelled, result.Outcome)
	assert.Empty(t, f.store.saved)
	// Prefill cleared so stray proposal text does not linger
	assert.Equal(t, "", f.fe.prefills[len(f.fe.prefills)-1])
}

func TestRun_TogglesSuppressionFlags(t *testing.T) {
	f := newSessionFixture("market_maker", "BTC-USDT", "0.5", "conf_market_maker_1.yml")
	f.cat.add("market_maker", structuredSchema())

	_, err := f.controller(nil).Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, f.fe.placeholders)
	assert.Equal(t, []bool{true, false}, f.fe.hiddenLog)
}

func TestRun_ReadinessNotReadyStaysQuiet(t *testing.T) {
	f := newSessionFixture("market_maker", "BTC-USDT", "0.5", "conf_market_maker_1.yml")
	f.cat.add("market_maker", structuredSchema())

	notReady := interfaces.ProbeFunc(func(ctx context.Context) (bool, error) { return false, nil })
	result, err := f.controller(notReady).Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, OutcomeNotReady, result.Outcome)
	assert.Equal(t, "conf_market_maker_1.yml", result.FileName)
	for _, msg := range f.fe.notices {
		assert.NotContains(t, msg, `Enter "start"`)
	}
}

func TestRun_ReadinessTimeoutDiscardsBindings(t *testing.T) {
	f := newSessionFixture("market_maker", "BTC-USDT", "0.5", "conf_market_maker_1.yml")
	f.cat.add("market_maker", structuredSchema())
	f.cfg.CreateTimeout = 0.01

	slow := interfaces.ProbeFunc(func(ctx context.Context) (bool, error) {
		select {
		case <-time.After(time.Second):
			return true, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	})

	result, err := f.controller(slow).Run(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReadinessTimeout))

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Empty(t, result.FileName)
	assert.Empty(t, result.StrategyName)
	assert.Nil(t, result.Schema)

	var sawTimeout bool
	for _, msg := range f.fe.notices {
		if strings.Contains(msg, "network error") {
			sawTimeout = true
		}
	}
	assert.True(t, sawTimeout, "expected a network failure notification")
}
