// Package bullion provides the ledger and material-custody reconciliation
// core of a jewelry retail business.
//
// Bullion is designed as a library, not a service. Import it directly into
// your Go application. One Ledger keeps these books mutually consistent:
//
//   - The cash ledger of sales, purchases, expenses and salaries
//   - Gold stock by ledger type and location, with exact gram arithmetic
//   - Karigar custody of issued gold, wastage and making charges payable
//   - Tejori diamond packets and the stones issued with work orders
//   - Gold loans: collateral valuation, disbursal, payments and interest
//   - Attendance and monthly payroll
//   - Product stock, customer spend, repairs, orders and roles
//
// # Quick Start
//
// Create a ledger with your preferred store:
//
//	import (
//	    "github.com/xraph/bullion"
//	    "github.com/xraph/bullion/store/sqlite"
//	)
//
//	l := bullion.New(sqlite.New(db),
//	    bullion.WithLogger(slog.Default()),
//	    bullion.WithActor("Counter 1"),
//	)
//
//	// Start migrates the store and loads every collection.
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
// # Actions
//
// Every business event is one method on Ledger. An action runs against a
// private copy of the books and is committed only when all of its steps
// succeed, so a sale never decrements stock without its transaction:
//
//	tx, flags, err := l.RecordTransaction(ctx, transaction.Transaction{
//	    Date:        time.Now(),
//	    Description: "Sale: Temple necklace",
//	    Category:    transaction.CategorySales,
//	    Direction:   transaction.Credit,
//	    Amount:      bullion.Rupees(182500),
//	    CustomerID:  customerID,
//	    Items:       items,
//	})
//
// Conditions the shop tolerates but should look at, such as product stock
// going negative, a loan above the LTV ceiling or a karigar returning more
// gold than issued, are returned as Flags. Flags never fail an action.
//
// Failures are typed: ValidationError, ConflictError and NotFoundError,
// matched with IsValidation, IsConflict and IsNotFound.
//
// # Persistence
//
// Each collection (transactions, goldStock, karigars, loans, ...) is saved
// as one JSON payload through store.Store after every committed action that
// changed it. Backends: memory, sqlite, postgres and mongo on grove.
//
// # TypeID
//
// All records use TypeID identifiers:
//
//	txn_01h2xcejqtf2nbrexx3vqjhp41   // Transaction
//	loan_01h2xcejqtf2nbrexx3vqjhp41  // Gold loan
//	wo_01h455vb4pex5vsknk084sn02q    // Work order
package bullion
