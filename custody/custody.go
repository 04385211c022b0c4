// Package custody tracks shop gold entrusted to karigars (artisans) through
// work orders.
//
// A karigar's GoldBalance is the weight owed back to the shop. It changes only
// when a work order is issued (+goldIssued) or received (-goldIssued). The
// full issued weight is cleared on receipt regardless of wastage; the loss is
// absorbed by the shop. CashBalance is what the shop owes the karigar.
package custody

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

// Skill is a karigar's trade.
type Skill string

const (
	SkillGold    Skill = "Gold"
	SkillDiamond Skill = "Diamond"
	SkillPolki   Skill = "Polki"
)

// KarigarStatus is whether a karigar accepts new work.
type KarigarStatus string

const (
	KarigarActive   KarigarStatus = "Active"
	KarigarInactive KarigarStatus = "Inactive"
)

// Karigar is an artisan custodian of shop gold.
type Karigar struct {
	ID          id.KarigarID  `json:"id"`
	Name        string        `json:"name"`
	Skill       Skill         `json:"skill"`
	Phone       string        `json:"phone,omitempty"`
	Status      KarigarStatus `json:"status"`
	GoldBalance types.Weight  `json:"gold_balance"`
	CashBalance types.Money   `json:"cash_balance"`
}

// Status is the work order state. Issued → Completed is the only transition.
type Status string

const (
	StatusIssued    Status = "Issued"
	StatusCompleted Status = "Completed"
)

// WorkOrder is gold issued to a karigar for one design.
type WorkOrder struct {
	ID             id.WorkOrderID `json:"id"`
	OrderRef       string         `json:"order_ref,omitempty"`
	KarigarID      id.KarigarID   `json:"karigar_id"`
	IssueDate      time.Time      `json:"issue_date"`
	DueDate        time.Time      `json:"due_date"`
	DesignCode     string         `json:"design_code"`
	Status         Status         `json:"status"`
	GoldIssued     types.Weight   `json:"gold_issued"`
	GoldPurity     types.Purity   `json:"gold_purity"`
	FinishedWeight types.Weight   `json:"finished_weight"`
	NetWeight      types.Weight   `json:"net_weight"`
	Wastage        types.Weight   `json:"wastage"`
	MakingCharges  types.Money    `json:"making_charges"`
	CompletedDate  time.Time      `json:"completed_date"`
	DiamondsIssued []DiamondIssue `json:"diamonds_issued,omitempty"`
}

// DiamondIssue is a draw on a Tejori diamond packet sent with a work order.
// Weight is in the packet's own unit.
type DiamondIssue struct {
	PacketID id.DiamondPacketID `json:"packet_id"`
	Pieces   int                `json:"pieces"`
	Weight   decimal.Decimal    `json:"weight"`
}

// DisplayWastage is the wastage floored at zero. The raw Wastage field keeps
// a negative value when more weight came back than was issued.
func (w WorkOrder) DisplayWastage() types.Weight {
	return w.Wastage.FloorZero()
}

// IsGain reports whether the karigar returned more weight than was issued.
func (w WorkOrder) IsGain() bool {
	return w.Status == StatusCompleted && w.Wastage.IsNegative()
}

// IssueInput describes gold handed to a karigar.
type IssueInput struct {
	KarigarID  id.KarigarID
	OrderRef   string
	DesignCode string
	Weight     types.Weight
	Purity     types.Purity
	IssueDate  time.Time
	DueDate    time.Time
	Diamonds   []DiamondIssue
}

// ReceiveInput describes finished work returned by a karigar.
type ReceiveInput struct {
	WorkOrderID    id.WorkOrderID
	FinishedWeight types.Weight
	NetWeight      types.Weight
	MakingCharges  types.Money
	Date           time.Time
}

// Book holds karigars and their work orders.
type Book struct {
	Karigars   []Karigar
	WorkOrders []WorkOrder
}

// Clone returns a copy of b that shares no slice storage with it.
func (b Book) Clone() Book {
	return Book{
		Karigars:   append([]Karigar(nil), b.Karigars...),
		WorkOrders: append([]WorkOrder(nil), b.WorkOrders...),
	}
}

// Karigar returns the karigar with the given id.
func (b Book) Karigar(kid id.KarigarID) (Karigar, bool) {
	if i := b.karigarIndex(kid); i >= 0 {
		return b.Karigars[i], true
	}
	return Karigar{}, false
}

// WorkOrder returns the work order with the given id.
func (b Book) WorkOrder(wid id.WorkOrderID) (WorkOrder, bool) {
	if i := b.orderIndex(wid); i >= 0 {
		return b.WorkOrders[i], true
	}
	return WorkOrder{}, false
}

// OpenOrders returns the Issued work orders of a karigar.
func (b Book) OpenOrders(kid id.KarigarID) []WorkOrder {
	var out []WorkOrder
	for _, w := range b.WorkOrders {
		if w.KarigarID == kid && w.Status == StatusIssued {
			out = append(out, w)
		}
	}
	return out
}

// AddKarigar registers a karigar with zero balances.
func (b *Book) AddKarigar(k Karigar) (Karigar, error) {
	if k.Name == "" {
		return Karigar{}, types.Invalid("name", "is required")
	}
	if k.Skill == "" {
		k.Skill = SkillGold
	}
	if k.Skill != SkillGold && k.Skill != SkillDiamond && k.Skill != SkillPolki {
		return Karigar{}, types.Invalid("skill", "unknown skill %q", k.Skill)
	}
	if k.Status == "" {
		k.Status = KarigarActive
	}
	if k.ID.IsNil() {
		k.ID = id.NewKarigarID()
	}
	if b.karigarIndex(k.ID) >= 0 {
		return Karigar{}, types.Conflict("karigar", "id %s already exists", k.ID)
	}
	k.GoldBalance = types.Weight{}
	k.CashBalance = types.Zero(types.DefaultCurrency)
	b.Karigars = append(b.Karigars, k)
	return k, nil
}

// Issue opens a work order and raises the karigar's gold balance by the
// issued weight.
func (b *Book) Issue(in IssueInput) (WorkOrder, Karigar, error) {
	if !in.Weight.IsPositive() {
		return WorkOrder{}, Karigar{}, types.Invalid("weight", "must be positive, got %s", in.Weight)
	}
	if !in.Purity.Valid() {
		return WorkOrder{}, Karigar{}, types.Invalid("purity", "unknown purity %q", in.Purity)
	}
	if in.DesignCode == "" {
		return WorkOrder{}, Karigar{}, types.Invalid("design_code", "is required")
	}
	if in.IssueDate.IsZero() {
		return WorkOrder{}, Karigar{}, types.Invalid("issue_date", "is required")
	}
	for i, d := range in.Diamonds {
		if d.PacketID.IsNil() {
			return WorkOrder{}, Karigar{}, types.Invalid("diamonds", "line %d has no packet", i)
		}
		if !d.Weight.IsPositive() {
			return WorkOrder{}, Karigar{}, types.Invalid("diamonds", "line %d weight must be positive", i)
		}
		if d.Pieces < 0 {
			return WorkOrder{}, Karigar{}, types.Invalid("diamonds", "line %d pieces must not be negative", i)
		}
	}
	ki := b.karigarIndex(in.KarigarID)
	if ki < 0 {
		return WorkOrder{}, Karigar{}, types.NotFound("karigar", in.KarigarID.String())
	}

	wo := WorkOrder{
		ID:            id.NewWorkOrderID(),
		OrderRef:      in.OrderRef,
		KarigarID:     in.KarigarID,
		IssueDate:     types.Day(in.IssueDate),
		DesignCode:    in.DesignCode,
		Status:        StatusIssued,
		GoldIssued:    in.Weight,
		GoldPurity:    in.Purity,
		MakingCharges: types.Zero(types.DefaultCurrency),
	}
	if !in.DueDate.IsZero() {
		wo.DueDate = types.Day(in.DueDate)
	}
	if len(in.Diamonds) > 0 {
		wo.DiamondsIssued = append([]DiamondIssue(nil), in.Diamonds...)
	}

	k := b.Karigars[ki]
	k.GoldBalance = k.GoldBalance.Add(in.Weight)
	b.Karigars[ki] = k
	b.WorkOrders = append([]WorkOrder{wo}, b.WorkOrders...)
	return wo, k, nil
}

// Receive completes an Issued work order. Wastage is recorded as the raw
// difference goldIssued - finishedWeight and may be negative.
func (b *Book) Receive(in ReceiveInput) (WorkOrder, Karigar, error) {
	wi := b.orderIndex(in.WorkOrderID)
	if wi < 0 {
		return WorkOrder{}, Karigar{}, types.NotFound("work order", in.WorkOrderID.String())
	}
	wo := b.WorkOrders[wi]
	if wo.Status != StatusIssued {
		return WorkOrder{}, Karigar{}, types.Conflict("work order", "%s is %s, not Issued", wo.ID, wo.Status)
	}
	if in.FinishedWeight.IsNegative() || in.NetWeight.IsNegative() {
		return WorkOrder{}, Karigar{}, types.Invalid("finished_weight", "must not be negative")
	}
	if err := types.CheckMoney("making_charges", &in.MakingCharges); err != nil {
		return WorkOrder{}, Karigar{}, err
	}
	if in.MakingCharges.IsNegative() {
		return WorkOrder{}, Karigar{}, types.Invalid("making_charges", "must not be negative")
	}
	ki := b.karigarIndex(wo.KarigarID)
	if ki < 0 {
		return WorkOrder{}, Karigar{}, types.NotFound("karigar", wo.KarigarID.String())
	}

	wo.FinishedWeight = in.FinishedWeight
	wo.NetWeight = in.NetWeight
	wo.Wastage = wo.GoldIssued.Sub(in.FinishedWeight)
	wo.MakingCharges = in.MakingCharges
	wo.Status = StatusCompleted
	wo.CompletedDate = types.Day(in.Date)

	k := b.Karigars[ki]
	k.GoldBalance = k.GoldBalance.Sub(wo.GoldIssued)
	k.CashBalance = k.CashBalance.Add(in.MakingCharges)

	b.WorkOrders[wi] = wo
	b.Karigars[ki] = k
	return wo, k, nil
}

// Pay settles amount against the karigar's cash balance. The balance may go
// below zero; overpaid reports when it does.
func (b *Book) Pay(kid id.KarigarID, amount types.Money) (k Karigar, overpaid bool, err error) {
	if err := types.CheckMoney("amount", &amount); err != nil {
		return Karigar{}, false, err
	}
	if !amount.IsPositive() {
		return Karigar{}, false, types.Invalid("amount", "must be positive, got %s", amount)
	}
	ki := b.karigarIndex(kid)
	if ki < 0 {
		return Karigar{}, false, types.NotFound("karigar", kid.String())
	}
	k = b.Karigars[ki]
	overpaid = amount.GreaterThan(k.CashBalance)
	k.CashBalance = k.CashBalance.Subtract(amount)
	b.Karigars[ki] = k
	return k, overpaid, nil
}

func (b Book) karigarIndex(kid id.KarigarID) int {
	for i, k := range b.Karigars {
		if k.ID == kid {
			return i
		}
	}
	return -1
}

func (b Book) orderIndex(wid id.WorkOrderID) int {
	for i, w := range b.WorkOrders {
		if w.ID == wid {
			return i
		}
	}
	return -1
}
