package types

// FlagKind names a data-quality condition that an action tolerates but
// reports to the caller.
type FlagKind string

const (
	FlagNegativeStock       FlagKind = "negative_stock"
	FlagLTVExceeded         FlagKind = "ltv_exceeded"
	FlagWastageGain         FlagKind = "wastage_gain"
	FlagKarigarOverpaid     FlagKind = "karigar_overpaid"
	FlagNegativeGoldBalance FlagKind = "negative_gold_balance"
	FlagNegativeNetPay      FlagKind = "negative_net_pay"
)

// Flag is a warning raised by a successful action. Flags never block the
// action that raised them.
type Flag struct {
	Kind       FlagKind `json:"kind"`
	Resource   string   `json:"resource"`
	ResourceID string   `json:"resource_id"`
	Message    string   `json:"message"`
}

func (f Flag) String() string {
	return string(f.Kind) + ": " + f.Message
}
