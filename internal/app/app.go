package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"wizard-cli/internal/catalogue"
	"wizard-cli/internal/config"
	"wizard-cli/internal/interactive"
	"wizard-cli/internal/interfaces"
	"wizard-cli/internal/persistence"
	"wizard-cli/internal/secrets"
	"wizard-cli/internal/wizard"
	"wizard-cli/pkg/models"
)

// registrations holds the embedding tool's strategy catalogue hooks. The
// wizard core ships no concrete strategies.
var registrations []func(*catalogue.Registry)

// probe is the readiness probe supplied by the embedding tool. A nil probe
// skips readiness verification.
var probe interfaces.ReadinessProbe

// secretStore is the secret store supplied by the embedding tool. When nil,
// sessions use an empty store that is ready immediately.
var secretStore interfaces.SecretStore

// RegisterStrategies adds a hook that populates the schema registry before
// a session starts.
func RegisterStrategies(fn func(*catalogue.Registry)) {
	registrations = append(registrations, fn)
}

// SetReadinessProbe installs the aggregate post-configuration check.
func SetReadinessProbe(p interfaces.ReadinessProbe) {
	probe = p
}

// SetSecretStore installs the embedding tool's secret store, so decrypted
// secure values are applied to legacy configs before they are persisted.
func SetSecretStore(s interfaces.SecretStore) {
	secretStore = s
}

// sessionSecretStore returns the installed secret store, or an empty one
// that never blocks.
func sessionSecretStore() interfaces.SecretStore {
	if secretStore != nil {
		return secretStore
	}
	s := secrets.NewStore()
	s.MarkReady()
	return s
}

// Run executes one wizard session
func Run(request *models.SessionRequest) error {
	cfg, err := loadConfiguration(request.ConfigPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if request.Target != "" {
		cfg.Target = request.Target
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	reg := catalogue.NewRegistry(cfg.ConfDir, cfg.TemplateDir)
	for _, fn := range registrations {
		fn(reg)
	}
	if len(reg.Strategies()) == 0 {
		return fmt.Errorf("no strategies registered: the embedding tool must call app.RegisterStrategies before running the wizard")
	}

	tok := wizard.NewToken()
	fe := interactive.NewTerminal(tok)
	store := persistence.NewStore()

	ctrl := wizard.NewController(fe, reg, store, sessionSecretStore(), probe, cfg, tok, logger)

	result, err := ctrl.Run(context.Background(), request.FileName)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case wizard.OutcomeCancelled, wizard.OutcomeFailed:
		// Leave the operator at a neutral prompt
		return nil
	default:
		return writeSummary(NewOutputHandler(), result, cfg.Target)
	}
}

// loadConfiguration loads and resolves configuration with precedence
func loadConfiguration(configPath string) (*interfaces.Config, error) {
	var manager interfaces.ConfigManager = config.NewManager()

	if _, err := manager.Load(configPath); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg, err := manager.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configuration: %w", err)
	}

	if err := manager.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ListConfigs prints the configuration files present in conf_dir
func ListConfigs(request *models.SessionRequest) error {
	cfg, err := loadConfiguration(request.ConfigPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	fmt.Printf("Configuration directory: %s\n\n", cfg.ConfDir)

	entries, err := os.ReadDir(cfg.ConfDir)
	if err != nil {
		fmt.Println("Configurations: (directory not found)")
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); ext == ".yml" || ext == ".yaml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		fmt.Println("Configurations: (none found)")
		return nil
	}
	fmt.Println("Configurations:")
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}
	return nil
}

// newLogger builds the application logger from the configured level
func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	zcfg.Level = lvl
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}
