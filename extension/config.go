package extension

import "github.com/shopspring/decimal"

// Store drivers understood by the extension.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds the Bullion extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.bullion" or "bullion" keys).
type Config struct {
	// DisableMigrate skips store migration on start. The books are still
	// loaded.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// StoreDriver selects the collection store built on the grove database
	// passed with WithGroveDB: "sqlite", "postgres" or "mongo". Without a
	// grove database the in-memory store is used (default: "memory").
	StoreDriver string `json:"store_driver" mapstructure:"store_driver" yaml:"store_driver"`

	// Actor is the name recorded against activity log entries (default: "Admin").
	Actor string `json:"actor" mapstructure:"actor" yaml:"actor"`

	// LTVCeiling is the advisory loan-to-value ceiling as a decimal string
	// (default: "0.75").
	LTVCeiling string `json:"ltv_ceiling" mapstructure:"ltv_ceiling" yaml:"ltv_ceiling"`

	// PostLoanRepayments posts loan payments to the cash ledger.
	PostLoanRepayments bool `json:"post_loan_repayments" mapstructure:"post_loan_repayments" yaml:"post_loan_repayments"`

	// ActivityLimit bounds the retained activity log (0 keeps everything).
	ActivityLimit int `json:"activity_limit" mapstructure:"activity_limit" yaml:"activity_limit"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		StoreDriver: DriverMemory,
		Actor:       "Admin",
		LTVCeiling:  "0.75",
	}
}

// ltvCeiling parses LTVCeiling.
func (c Config) ltvCeiling() (decimal.Decimal, error) {
	return decimal.NewFromString(c.LTVCeiling)
}
