// Package id defines TypeID-based identity types for all Bullion entities.
//
// Every entity in Bullion uses a single ID struct with a prefix that identifies
// the entity type. IDs are K-sortable (UUIDv7-based), globally unique,
// and URL-safe in the format "prefix_suffix".
package id

import (
	"database/sql/driver"
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

// Prefix constants for all Bullion entity types.
const (
	PrefixTransaction Prefix = "txn"  // Cash ledger posting
	PrefixGoldStock   Prefix = "gstk" // Gold stock entry
	PrefixKarigar     Prefix = "kar"  // Artisan custodian
	PrefixWorkOrder   Prefix = "wo"   // Artisan work order
	PrefixLoan        Prefix = "loan" // Gold loan
	PrefixLoanPayment Prefix = "lpay" // Gold loan interest/principal payment
	PrefixEmployee    Prefix = "emp"  // Employee
	PrefixAttendance  Prefix = "att"  // Attendance record
	PrefixPayroll     Prefix = "prl"  // Payroll record
	PrefixCustomer    Prefix = "cust" // Customer account
	PrefixProduct     Prefix = "prod" // Inventory product
	PrefixActivity    Prefix = "act"  // Activity log entry
	PrefixRepair      Prefix = "rep"  // Repair job
	PrefixOrder       Prefix = "ord"  // Customer order
	PrefixPurchase    Prefix = "po"   // Purchase order
	PrefixRole        Prefix = "role" // Access role
	PrefixDiamond     Prefix = "dia"  // Diamond packet
)

// ID is the primary identifier type for all Bullion entities.
// It wraps a TypeID providing a prefix-qualified, globally unique,
// sortable, URL-safe identifier in the format "prefix_suffix".
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "loan_01h2xcejqtf2nbrexx3vqjhp41")
// into an ID. Returns an error if the string is not valid.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix parses a TypeID string and validates that its prefix
// matches the expected value.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// MustParseWithPrefix is like ParseWithPrefix but panics on error.
func MustParseWithPrefix(s string, expected Prefix) ID {
	parsed, err := ParseWithPrefix(s, expected)
	if err != nil {
		panic(fmt.Sprintf("id: must parse with prefix %q: %v", expected, err))
	}

	return parsed
}

// ──────────────────────────────────────────────────
// Type aliases
// ──────────────────────────────────────────────────

// TransactionID is a type-safe identifier for transactions (prefix: "txn").
type TransactionID = ID

// GoldStockID is a type-safe identifier for gold stock entries (prefix: "gstk").
type GoldStockID = ID

// KarigarID is a type-safe identifier for karigars (prefix: "kar").
type KarigarID = ID

// WorkOrderID is a type-safe identifier for work orders (prefix: "wo").
type WorkOrderID = ID

// LoanID is a type-safe identifier for gold loans (prefix: "loan").
type LoanID = ID

// LoanPaymentID is a type-safe identifier for loan payments (prefix: "lpay").
type LoanPaymentID = ID

// EmployeeID is a type-safe identifier for employees (prefix: "emp").
type EmployeeID = ID

// AttendanceID is a type-safe identifier for attendance records (prefix: "att").
type AttendanceID = ID

// PayrollID is a type-safe identifier for payroll records (prefix: "prl").
type PayrollID = ID

// CustomerID is a type-safe identifier for customers (prefix: "cust").
type CustomerID = ID

// ProductID is a type-safe identifier for products (prefix: "prod").
type ProductID = ID

// ActivityID is a type-safe identifier for activity log entries (prefix: "act").
type ActivityID = ID

// RepairID is a type-safe identifier for repair jobs (prefix: "rep").
type RepairID = ID

// OrderID is a type-safe identifier for customer orders (prefix: "ord").
type OrderID = ID

// PurchaseID is a type-safe identifier for purchase orders (prefix: "po").
type PurchaseID = ID

// RoleID is a type-safe identifier for roles (prefix: "role").
type RoleID = ID

// DiamondPacketID is a type-safe identifier for diamond packets (prefix: "dia").
type DiamondPacketID = ID

// AnyID is a type alias that accepts any valid prefix.
type AnyID = ID

// ──────────────────────────────────────────────────
// Convenience constructors
// ──────────────────────────────────────────────────

// NewTransactionID generates a new unique ID with the "txn" prefix.
func NewTransactionID() ID { return New(PrefixTransaction) }

// NewGoldStockID generates a new unique ID with the "gstk" prefix.
func NewGoldStockID() ID { return New(PrefixGoldStock) }

// NewKarigarID generates a new unique ID with the "kar" prefix.
func NewKarigarID() ID { return New(PrefixKarigar) }

// NewWorkOrderID generates a new unique ID with the "wo" prefix.
func NewWorkOrderID() ID { return New(PrefixWorkOrder) }

// NewLoanID generates a new unique ID with the "loan" prefix.
func NewLoanID() ID { return New(PrefixLoan) }

// NewLoanPaymentID generates a new unique ID with the "lpay" prefix.
func NewLoanPaymentID() ID { return New(PrefixLoanPayment) }

// NewEmployeeID generates a new unique ID with the "emp" prefix.
func NewEmployeeID() ID { return New(PrefixEmployee) }

// NewAttendanceID generates a new unique ID with the "att" prefix.
func NewAttendanceID() ID { return New(PrefixAttendance) }

// NewPayrollID generates a new unique ID with the "prl" prefix.
func NewPayrollID() ID { return New(PrefixPayroll) }

// NewCustomerID generates a new unique ID with the "cust" prefix.
func NewCustomerID() ID { return New(PrefixCustomer) }

// NewProductID generates a new unique ID with the "prod" prefix.
func NewProductID() ID { return New(PrefixProduct) }

// NewActivityID generates a new unique ID with the "act" prefix.
func NewActivityID() ID { return New(PrefixActivity) }

// NewRepairID generates a new unique ID with the "rep" prefix.
func NewRepairID() ID { return New(PrefixRepair) }

// NewOrderID generates a new unique ID with the "ord" prefix.
func NewOrderID() ID { return New(PrefixOrder) }

// NewPurchaseID generates a new unique ID with the "po" prefix.
func NewPurchaseID() ID { return New(PrefixPurchase) }

// NewRoleID generates a new unique ID with the "role" prefix.
func NewRoleID() ID { return New(PrefixRole) }

// NewDiamondPacketID generates a new unique ID with the "dia" prefix.
func NewDiamondPacketID() ID { return New(PrefixDiamond) }

// ──────────────────────────────────────────────────
// Convenience parsers
// ──────────────────────────────────────────────────

// ParseTransactionID parses a string and validates the "txn" prefix.
func ParseTransactionID(s string) (ID, error) { return ParseWithPrefix(s, PrefixTransaction) }

// ParseGoldStockID parses a string and validates the "gstk" prefix.
func ParseGoldStockID(s string) (ID, error) { return ParseWithPrefix(s, PrefixGoldStock) }

// ParseKarigarID parses a string and validates the "kar" prefix.
func ParseKarigarID(s string) (ID, error) { return ParseWithPrefix(s, PrefixKarigar) }

// ParseWorkOrderID parses a string and validates the "wo" prefix.
func ParseWorkOrderID(s string) (ID, error) { return ParseWithPrefix(s, PrefixWorkOrder) }

// ParseLoanID parses a string and validates the "loan" prefix.
func ParseLoanID(s string) (ID, error) { return ParseWithPrefix(s, PrefixLoan) }

// ParseLoanPaymentID parses a string and validates the "lpay" prefix.
func ParseLoanPaymentID(s string) (ID, error) { return ParseWithPrefix(s, PrefixLoanPayment) }

// ParseEmployeeID parses a string and validates the "emp" prefix.
func ParseEmployeeID(s string) (ID, error) { return ParseWithPrefix(s, PrefixEmployee) }

// ParseAttendanceID parses a string and validates the "att" prefix.
func ParseAttendanceID(s string) (ID, error) { return ParseWithPrefix(s, PrefixAttendance) }

// ParsePayrollID parses a string and validates the "prl" prefix.
func ParsePayrollID(s string) (ID, error) { return ParseWithPrefix(s, PrefixPayroll) }

// ParseCustomerID parses a string and validates the "cust" prefix.
func ParseCustomerID(s string) (ID, error) { return ParseWithPrefix(s, PrefixCustomer) }

// ParseProductID parses a string and validates the "prod" prefix.
func ParseProductID(s string) (ID, error) { return ParseWithPrefix(s, PrefixProduct) }

// ParseActivityID parses a string and validates the "act" prefix.
func ParseActivityID(s string) (ID, error) { return ParseWithPrefix(s, PrefixActivity) }

// ParseRepairID parses a string and validates the "rep" prefix.
func ParseRepairID(s string) (ID, error) { return ParseWithPrefix(s, PrefixRepair) }

// ParseOrderID parses a string and validates the "ord" prefix.
func ParseOrderID(s string) (ID, error) { return ParseWithPrefix(s, PrefixOrder) }

// ParsePurchaseID parses a string and validates the "po" prefix.
func ParsePurchaseID(s string) (ID, error) { return ParseWithPrefix(s, PrefixPurchase) }

// ParseRoleID parses a string and validates the "role" prefix.
func ParseRoleID(s string) (ID, error) { return ParseWithPrefix(s, PrefixRole) }

// ParseDiamondPacketID parses a string and validates the "dia" prefix.
func ParseDiamondPacketID(s string) (ID, error) { return ParseWithPrefix(s, PrefixDiamond) }

// ParseAny parses a string into an ID without type checking the prefix.
func ParseAny(s string) (ID, error) { return Parse(s) }

// ──────────────────────────────────────────────────
// ID methods
// ──────────────────────────────────────────────────

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}

// Value implements driver.Valuer for database storage.
// Returns nil for the Nil ID so that optional foreign key columns store NULL.
func (i ID) Value() (driver.Value, error) {
	if !i.valid {
		return nil, nil //nolint:nilnil // nil is the canonical NULL for driver.Valuer
	}

	return i.inner.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (i *ID) Scan(src any) error {
	if src == nil {
		*i = Nil

		return nil
	}

	switch v := src.(type) {
	case string:
		if v == "" {
			*i = Nil

			return nil
		}

		return i.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 0 {
			*i = Nil

			return nil
		}

		return i.UnmarshalText(v)
	default:
		return fmt.Errorf("id: cannot scan %T into ID", src)
	}
}
