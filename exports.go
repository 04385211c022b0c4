package bullion

import "github.com/xraph/bullion/types"

// Re-export common types for convenience so users don't have to import types package.

// Money is re-exported from types package.
type Money = types.Money

// Weight is re-exported from types package.
type Weight = types.Weight

// Purity is re-exported from types package.
type Purity = types.Purity

// Flag is re-exported from types package.
type Flag = types.Flag

// FlagKind is re-exported from types package.
type FlagKind = types.FlagKind

// Re-export Money and Weight constructors
var (
	INR    = types.INR
	Rupees = types.Rupees
	Zero   = types.Zero
	Sum    = types.Sum
	Grams  = types.Grams
)

// Re-export purity grades
const (
	Purity24K = types.Purity24K
	Purity22K = types.Purity22K
	Purity18K = types.Purity18K
	Purity14K = types.Purity14K
)
