package wizard

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wizard-cli/internal/schema"
)

func decimalValidator(raw string) string {
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return raw + " is not a valid decimal."
	}
	return ""
}

func newTestLegacyMap() *schema.LegacyConfigMap {
	return schema.NewLegacyMap("classic",
		&schema.FieldDescriptor{
			Key: "exchange", Prompt: "Which exchange?",
			Required: true, PromptOnNew: true,
		},
		&schema.FieldDescriptor{
			Key: "bid_spread", Prompt: "Bid spread?",
			Required: true, PromptOnNew: true,
			Default:  "1.0",
			Validate: decimalValidator,
			Parse: func(raw string) interface{} {
				v, _ := strconv.ParseFloat(raw, 64)
				return v
			},
		},
		&schema.FieldDescriptor{
			Key: "order_refresh_time", Prompt: "Refresh time?",
			Required: true, Default: "30",
		},
		&schema.FieldDescriptor{
			Key: "advanced_mode", Prompt: "Advanced mode?",
			Default: "false",
		},
	)
}

func newTestLegacyEngine(cm *schema.LegacyConfigMap, inputs ...string) (*LegacyEngine, *scriptedFrontEnd, *memStore) {
	tok := NewToken()
	fe := newScriptedFrontEnd(tok, inputs...)
	store := newMemStore()
	engine := NewLegacyEngine(cm, fe, tok, store, newFakeCatalogue(), "/conf", nil)
	return engine, fe, store
}

func TestLegacyPromptAll_DefaultsThenPrompts(t *testing.T) {
	cm := newTestLegacyMap()
	engine, fe, _ := newTestLegacyEngine(cm, "binance", "2.5")

	require.NoError(t, engine.PromptAll(context.Background()))

	// Prompted fields take operator input, the rest take their defaults
	exchange, _ := cm.Get("exchange")
	assert.Equal(t, "binance", exchange.Value)
	spread, _ := cm.Get("bid_spread")
	assert.Equal(t, 2.5, spread.Value)
	refresh, _ := cm.Get("order_refresh_time")
	assert.Equal(t, "30", refresh.Value)
	advanced, _ := cm.Get("advanced_mode")
	assert.Equal(t, "false", advanced.Value)

	assert.Len(t, fe.prompts, 2)
	// The default is prefilled before each prompt
	assert.Contains(t, fe.prefills, "1.0")
}

func TestLegacyPromptField_RetriesUntilValid(t *testing.T) {
	cm := newTestLegacyMap()
	engine, fe, _ := newTestLegacyEngine(cm, "binance", "abc", "abc", "abc", "5.0")

	require.NoError(t, engine.PromptAll(context.Background()))

	spread, _ := cm.Get("bid_spread")
	assert.Equal(t, 5.0, spread.Value)
	assert.Len(t, fe.notices, 3)
}

func TestLegacyPromptAll_CancelThenRollbackRestoresEveryKey(t *testing.T) {
	cm := newTestLegacyMap()
	// Seed pre-session values that must survive a cancelled session
	for _, key := range cm.Keys() {
		d, _ := cm.Get(key)
		d.Value = "pre_" + key
	}
	want := map[string]interface{}{}
	for _, key := range cm.Keys() {
		d, _ := cm.Get(key)
		want[key] = d.Value
	}

	engine, _, _ := newTestLegacyEngine(cm, "binance", cancelInput)
	require.NoError(t, engine.PromptAll(context.Background()))
	engine.Rollback()

	for key, value := range want {
		d, ok := cm.Get(key)
		require.True(t, ok)
		assert.Equal(t, value, d.Value, "key %s", key)
	}
}

func TestLegacyPromptField_CompoundSentinelBypassesGenericPath(t *testing.T) {
	var invoked bool
	cm := schema.NewLegacyMap("classic",
		&schema.FieldDescriptor{
			Key: schema.InventoryPriceKey, Prompt: "never shown",
			Required: true, PromptOnNew: true,
			Compound: func(ctx context.Context, cm *schema.LegacyConfigMap, preset string) error {
				invoked = true
				d, _ := cm.Get(schema.InventoryPriceKey)
				d.Value = 42.0
				return nil
			},
		},
	)
	engine, fe, _ := newTestLegacyEngine(cm)

	require.NoError(t, engine.PromptAll(context.Background()))

	assert.True(t, invoked)
	assert.Empty(t, fe.prompts)
	d, _ := cm.Get(schema.InventoryPriceKey)
	assert.Equal(t, 42.0, d.Value)
}

func TestLegacyPersist_CopiesTemplateThenSaves(t *testing.T) {
	cm := newTestLegacyMap()
	engine, fe, store := newTestLegacyEngine(cm, "binance", "2.5")

	require.NoError(t, engine.PromptAll(context.Background()))
	require.NoError(t, engine.Persist("conf_classic_1.yml"))

	assert.Equal(t, "templates/conf_classic_TEMPLATE.yml", store.copied["/conf/conf_classic_1.yml"])
	assert.Same(t, cm, store.legacy["/conf/conf_classic_1.yml"])
	require.NotEmpty(t, fe.notices)
	assert.Contains(t, fe.notices[len(fe.notices)-1], "conf_classic_1.yml created")
}

func TestLegacyRollback_NoopWithoutSnapshot(t *testing.T) {
	cm := newTestLegacyMap()
	engine, _, _ := newTestLegacyEngine(cm)

	// Prompting never began; Rollback must not touch the map
	engine.Rollback()
	exchange, _ := cm.Get("exchange")
	assert.Nil(t, exchange.Value)
}
