// Package diamond holds the Tejori stock of loose diamond packets.
//
// A packet is bought into QC Pending at the Tejori, cleared into stock, and
// either sold or issued to a karigar against a work order. Issuing may take
// part of a packet; the packet only leaves the Tejori once it is empty.
package diamond

import (
	"github.com/shopspring/decimal"

	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

// Shape is the cut of the stones in a packet.
type Shape string

const (
	ShapeRound    Shape = "Round"
	ShapePolki    Shape = "Polki"
	ShapeChauki   Shape = "Chauki"
	ShapePrincess Shape = "Princess"
	ShapeEmerald  Shape = "Emerald"
)

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool {
	switch s {
	case ShapeRound, ShapePolki, ShapeChauki, ShapePrincess, ShapeEmerald:
		return true
	}
	return false
}

// Unit is the weight unit a packet is counted in.
type Unit string

const (
	UnitCarat Unit = "Carat"
	UnitRoti  Unit = "Roti"
	UnitCent  Unit = "Cent"
)

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	return u == UnitCarat || u == UnitRoti || u == UnitCent
}

// Status is where a packet is in its life.
type Status string

const (
	StatusQCPending Status = "QC Pending"
	StatusInStock   Status = "In Stock"
	StatusIssued    Status = "Issued"
	StatusSold      Status = "Sold"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusQCPending, StatusInStock, StatusIssued, StatusSold:
		return true
	}
	return false
}

// Location is where a packet physically sits.
type Location string

const (
	LocationTejori   Location = "Tejori"
	LocationShowroom Location = "Showroom"
	LocationKarigar  Location = "Karigar"
)

// Valid reports whether l is a known location.
func (l Location) Valid() bool {
	return l == LocationTejori || l == LocationShowroom || l == LocationKarigar
}

// Packet is a lot of loose stones. Weight is in Unit, not grams.
type Packet struct {
	ID          id.DiamondPacketID `json:"id"`
	PacketNo    string             `json:"packet_no"`
	Shape       Shape              `json:"shape"`
	Quality     string             `json:"quality"`
	Weight      decimal.Decimal    `json:"weight"`
	Unit        Unit               `json:"unit"`
	Pieces      int                `json:"pieces"`
	RatePerUnit types.Money        `json:"rate_per_unit"`
	TotalAmount types.Money        `json:"total_amount"`
	Status      Status             `json:"status"`
	Location    Location           `json:"location"`
}

// Book holds diamond packets, newest first.
type Book struct {
	Packets []Packet
}

// Clone returns a copy of b that shares no slice storage with it.
func (b Book) Clone() Book {
	return Book{Packets: append([]Packet(nil), b.Packets...)}
}

// Get returns the packet with the given id.
func (b Book) Get(pid id.DiamondPacketID) (Packet, bool) {
	if i := b.index(pid); i >= 0 {
		return b.Packets[i], true
	}
	return Packet{}, false
}

// Weight sums the weight of packets at loc counted in unit.
func (b Book) Weight(loc Location, unit Unit) decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.Packets {
		if p.Location == loc && p.Unit == unit {
			total = total.Add(p.Weight)
		}
	}
	return total
}

// Value sums the total amount of packets at loc.
func (b Book) Value(loc Location) types.Money {
	total := types.Zero(types.DefaultCurrency)
	for _, p := range b.Packets {
		if p.Location == loc {
			total = total.Add(p.TotalAmount)
		}
	}
	return total
}

// Add records a purchased packet. It lands in QC Pending at the Tejori and
// its total is weight times rate.
func (b *Book) Add(p Packet) (Packet, error) {
	if p.PacketNo == "" {
		return Packet{}, types.Invalid("packet_no", "is required")
	}
	if p.Shape == "" {
		p.Shape = ShapeRound
	}
	if !p.Shape.Valid() {
		return Packet{}, types.Invalid("shape", "unknown shape %q", p.Shape)
	}
	if p.Unit == "" {
		p.Unit = UnitCarat
	}
	if !p.Unit.Valid() {
		return Packet{}, types.Invalid("unit", "unknown unit %q", p.Unit)
	}
	if !p.Weight.IsPositive() {
		return Packet{}, types.Invalid("weight", "must be positive, got %s", p.Weight)
	}
	if p.Pieces < 0 {
		return Packet{}, types.Invalid("pieces", "must not be negative, got %d", p.Pieces)
	}
	if err := types.CheckMoney("rate_per_unit", &p.RatePerUnit); err != nil {
		return Packet{}, err
	}
	if p.RatePerUnit.IsNegative() {
		return Packet{}, types.Invalid("rate_per_unit", "must not be negative")
	}
	for _, existing := range b.Packets {
		if existing.PacketNo == p.PacketNo {
			return Packet{}, types.Conflict("diamond packet", "packet %q already exists", p.PacketNo)
		}
	}
	if p.ID.IsNil() {
		p.ID = id.NewDiamondPacketID()
	}
	p.TotalAmount = p.RatePerUnit.MulDecimal(p.Weight)
	p.Status = StatusQCPending
	p.Location = LocationTejori
	b.Packets = append([]Packet{p}, b.Packets...)
	return p, nil
}

// Move changes the status and location of a packet. An empty status or
// location keeps the current one. A packet clears QC into stock and is sold
// from stock; only In Stock packets change location. Issued and the karigar
// location are reached through Issue alone.
func (b *Book) Move(pid id.DiamondPacketID, status Status, loc Location) (Packet, error) {
	i := b.index(pid)
	if i < 0 {
		return Packet{}, types.NotFound("diamond packet", pid.String())
	}
	if status != "" && !status.Valid() {
		return Packet{}, types.Invalid("status", "unknown status %q", status)
	}
	if loc != "" && !loc.Valid() {
		return Packet{}, types.Invalid("location", "unknown location %q", loc)
	}
	if status == StatusIssued {
		return Packet{}, types.Invalid("status", "packets are issued against a work order")
	}
	if loc == LocationKarigar {
		return Packet{}, types.Invalid("location", "packets reach a karigar against a work order")
	}

	p := b.Packets[i]
	if status != "" && status != p.Status {
		if moves[p.Status] != status {
			return Packet{}, types.Conflict("diamond packet",
				"%s cannot move from %s to %s", p.PacketNo, p.Status, status)
		}
		p.Status = status
	}
	if loc != "" && loc != p.Location {
		if p.Status != StatusInStock {
			return Packet{}, types.Conflict("diamond packet",
				"%s is %s, only In Stock packets change location", p.PacketNo, p.Status)
		}
		p.Location = loc
	}
	b.Packets[i] = p
	return p, nil
}

// moves maps each status to the one Move may take it to.
var moves = map[Status]Status{
	StatusQCPending: StatusInStock,
	StatusInStock:   StatusSold,
}

// Issue takes pieces and weight out of an In Stock packet for a karigar.
// The packet keeps what is left; once its weight reaches zero it is marked
// Issued and moves to the karigar.
func (b *Book) Issue(pid id.DiamondPacketID, pieces int, weight decimal.Decimal) (Packet, error) {
	i := b.index(pid)
	if i < 0 {
		return Packet{}, types.NotFound("diamond packet", pid.String())
	}
	p := b.Packets[i]
	if p.Status != StatusInStock {
		return Packet{}, types.Conflict("diamond packet", "%s is %s, not In Stock", p.PacketNo, p.Status)
	}
	if !weight.IsPositive() {
		return Packet{}, types.Invalid("weight", "must be positive, got %s", weight)
	}
	if pieces < 0 {
		return Packet{}, types.Invalid("pieces", "must not be negative, got %d", pieces)
	}
	if weight.GreaterThan(p.Weight) {
		return Packet{}, types.Conflict("diamond packet",
			"%s holds %s %s, cannot issue %s", p.PacketNo, p.Weight, p.Unit, weight)
	}
	if pieces > p.Pieces {
		return Packet{}, types.Conflict("diamond packet",
			"%s holds %d pieces, cannot issue %d", p.PacketNo, p.Pieces, pieces)
	}

	p.Weight = p.Weight.Sub(weight)
	p.Pieces -= pieces
	p.TotalAmount = p.RatePerUnit.MulDecimal(p.Weight)
	if p.Weight.IsZero() {
		p.Status = StatusIssued
		p.Location = LocationKarigar
	}
	b.Packets[i] = p
	return p, nil
}

func (b Book) index(pid id.DiamondPacketID) int {
	for i, p := range b.Packets {
		if p.ID == pid {
			return i
		}
	}
	return -1
}
