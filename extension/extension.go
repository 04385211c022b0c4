// Package extension provides the Forge extension adapter for Bullion.
//
// It implements the forge.Extension interface to integrate the Bullion
// ledger into a Forge application with DI registration and lifecycle
// management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.bullion" or "bullion" keys.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"
	"github.com/xraph/grove"
	"github.com/xraph/vessel"

	"github.com/xraph/bullion"
	"github.com/xraph/bullion/store"
	"github.com/xraph/bullion/store/memory"
	"github.com/xraph/bullion/store/mongo"
	"github.com/xraph/bullion/store/postgres"
	"github.com/xraph/bullion/store/sqlite"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "bullion"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Jewelry ledger and material custody reconciliation"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Bullion as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config      Config
	engine      *bullion.Ledger
	store       store.Store
	groveDB     *grove.DB
	bullionOpts []bullion.Option
}

// New creates a new Bullion Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Ledger instance.
// This is nil until Register is called.
func (e *Extension) Engine() *bullion.Ledger { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	if e.store == nil {
		s, err := newStore(e.config.StoreDriver, e.groveDB)
		if err != nil {
			return err
		}
		e.store = s
	}

	opts, err := e.buildBullionOpts()
	if err != nil {
		return err
	}

	e.engine = bullion.New(e.store, opts...)

	return vessel.Provide(fapp.Container(), func() (*bullion.Ledger, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("bullion: extension not initialized")
	}

	if err := e.engine.Start(ctx); err != nil {
		return err
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("bullion: store not initialized")
	}
	return e.store.Ping(ctx)
}

// newStore builds the collection store for driver on db.
func newStore(driver string, db *grove.DB) (store.Store, error) {
	if driver == "" || driver == DriverMemory {
		return memory.New(), nil
	}
	if db == nil {
		return nil, fmt.Errorf("bullion: store driver %q needs a grove database", driver)
	}
	switch driver {
	case DriverSQLite:
		return sqlite.New(db), nil
	case DriverPostgres:
		return postgres.New(db), nil
	case DriverMongo:
		return mongo.New(db), nil
	}
	return nil, fmt.Errorf("bullion: unknown store driver %q", driver)
}

// buildBullionOpts constructs bullion.Option values from the resolved config.
func (e *Extension) buildBullionOpts() ([]bullion.Option, error) {
	opts := make([]bullion.Option, 0, len(e.bullionOpts)+5)

	ceiling, err := e.config.ltvCeiling()
	if err != nil {
		return nil, fmt.Errorf("bullion: invalid ltv_ceiling %q: %w", e.config.LTVCeiling, err)
	}
	opts = append(opts,
		bullion.WithActor(e.config.Actor),
		bullion.WithLTVCeiling(ceiling),
		bullion.WithLoanRepaymentPosting(e.config.PostLoanRepayments),
	)
	if e.config.DisableMigrate {
		opts = append(opts, bullion.WithoutMigrate())
	}
	if e.config.ActivityLimit > 0 {
		opts = append(opts, bullion.WithActivityLimit(e.config.ActivityLimit))
	}

	// Pass-through options win over config.
	opts = append(opts, e.bullionOpts...)

	return opts, nil
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("bullion: configuration is required but not found in config files; " +
				"ensure 'extensions.bullion' or 'bullion' key exists in your config")
		}
		e.config = mergeWithDefaults(programmaticConfig)
	} else {
		e.config = mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("bullion: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("store_driver", e.config.StoreDriver),
		forge.F("actor", e.config.Actor),
		forge.F("ltv_ceiling", e.config.LTVCeiling),
		forge.F("post_loan_repayments", e.config.PostLoanRepayments),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	for _, key := range []string{"extensions.bullion", "bullion"} {
		if !cm.IsSet(key) {
			continue
		}
		if err := cm.Bind(key, &cfg); err == nil {
			e.Logger().Debug("bullion: loaded config from file",
				forge.F("key", key),
			)
			return cfg, true
		}
		e.Logger().Warn("bullion: failed to bind config",
			forge.F("key", key),
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = defaults.StoreDriver
	}
	if cfg.Actor == "" {
		cfg.Actor = defaults.Actor
	}
	if cfg.LTVCeiling == "" {
		cfg.LTVCeiling = defaults.LTVCeiling
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}
	if programmaticConfig.PostLoanRepayments {
		yamlConfig.PostLoanRepayments = true
	}

	if yamlConfig.StoreDriver == "" {
		yamlConfig.StoreDriver = programmaticConfig.StoreDriver
	}
	if yamlConfig.Actor == "" {
		yamlConfig.Actor = programmaticConfig.Actor
	}
	if yamlConfig.LTVCeiling == "" {
		yamlConfig.LTVCeiling = programmaticConfig.LTVCeiling
	}
	if yamlConfig.ActivityLimit == 0 {
		yamlConfig.ActivityLimit = programmaticConfig.ActivityLimit
	}

	return mergeWithDefaults(yamlConfig)
}
