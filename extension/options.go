package extension

import (
	"github.com/xraph/grove"

	"github.com/xraph/bullion"
	"github.com/xraph/bullion/plugin"
	"github.com/xraph/bullion/rates"
	"github.com/xraph/bullion/store"
)

// Option configures the Bullion Forge extension.
type Option func(*Extension)

// WithStore sets the store for the engine. It takes precedence over
// WithGroveDB.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithGroveDB builds the store on db using the configured StoreDriver.
func WithGroveDB(db *grove.DB, driver string) Option {
	return func(e *Extension) {
		e.groveDB = db
		e.config.StoreDriver = driver
	}
}

// WithBullionOption passes a bullion.Option through to the underlying engine.
func WithBullionOption(opt bullion.Option) Option {
	return func(e *Extension) {
		e.bullionOpts = append(e.bullionOpts, opt)
	}
}

// WithPlugin registers a bullion plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.bullionOpts = append(e.bullionOpts, bullion.WithPlugin(p))
	}
}

// WithRates sets the rate provider.
func WithRates(p rates.Provider) Option {
	return func(e *Extension) {
		e.bullionOpts = append(e.bullionOpts, bullion.WithRates(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithActor sets the activity log actor.
func WithActor(actor string) Option {
	return func(e *Extension) { e.config.Actor = actor }
}

// WithLTVCeiling sets the advisory loan-to-value ceiling, e.g. "0.75".
func WithLTVCeiling(ceiling string) Option {
	return func(e *Extension) { e.config.LTVCeiling = ceiling }
}

// WithLoanRepaymentPosting posts loan payments to the cash ledger.
func WithLoanRepaymentPosting() Option {
	return func(e *Extension) { e.config.PostLoanRepayments = true }
}
