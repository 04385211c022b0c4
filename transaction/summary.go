package transaction

import "github.com/xraph/bullion/types"

// Summary holds the ledger aggregates. It is always recomputed from the
// postings and never stored.
type Summary struct {
	TotalSales    types.Money `json:"total_sales"`
	TotalExpenses types.Money `json:"total_expenses"`
	NetProfit     types.Money `json:"net_profit"`
	CashInHand    types.Money `json:"cash_in_hand"`
	Count         int         `json:"count"`
}

// Summarize folds txs into a Summary. The result does not depend on order.
func Summarize(txs []Transaction) Summary {
	s := Summary{
		TotalSales:    types.Zero(types.DefaultCurrency),
		TotalExpenses: types.Zero(types.DefaultCurrency),
		CashInHand:    types.Zero(types.DefaultCurrency),
		Count:         len(txs),
	}
	for _, t := range txs {
		if t.Direction == Credit && t.Category == CategorySales {
			s.TotalSales = s.TotalSales.Add(t.Amount)
		}
		if t.Direction == Debit {
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
		s.CashInHand = s.CashInHand.Add(t.Signed())
	}
	s.NetProfit = s.TotalSales.Subtract(s.TotalExpenses)
	return s
}

// Filter returns the postings matching keep, preserving order.
func Filter(txs []Transaction, keep func(Transaction) bool) []Transaction {
	var out []Transaction
	for _, t := range txs {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// ByReference returns the postings with the given reference id.
func ByReference(txs []Transaction, ref string) []Transaction {
	return Filter(txs, func(t Transaction) bool { return t.ReferenceID == ref })
}
