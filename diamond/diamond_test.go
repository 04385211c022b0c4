package diamond_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/xraph/bullion/diamond"
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

func carats(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func samplePacket() diamond.Packet {
	return diamond.Packet{
		PacketNo:    "PKT-24-001",
		Quality:     "VVS1",
		Weight:      carats("12.5"),
		Pieces:      50,
		RatePerUnit: types.Rupees(45000),
	}
}

func TestAdd(t *testing.T) {
	var b diamond.Book
	p, err := b.Add(samplePacket())
	if err != nil {
		t.Fatal(err)
	}
	if p.ID.Prefix() != id.PrefixDiamond {
		t.Errorf("prefix: got %s", p.ID.Prefix())
	}
	if p.Status != diamond.StatusQCPending || p.Location != diamond.LocationTejori {
		t.Errorf("new packet: got %s at %s", p.Status, p.Location)
	}
	if p.Shape != diamond.ShapeRound || p.Unit != diamond.UnitCarat {
		t.Errorf("defaults: got %s %s", p.Shape, p.Unit)
	}
	if !p.TotalAmount.Equal(types.Rupees(562500)) {
		t.Errorf("total: got %s", p.TotalAmount)
	}

	if _, err := b.Add(samplePacket()); !errors.Is(err, types.ErrConflict) {
		t.Errorf("duplicate packet no: expected ErrConflict, got %v", err)
	}
}

func TestAddRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *diamond.Packet)
	}{
		{"no packet no", func(p *diamond.Packet) { p.PacketNo = "" }},
		{"zero weight", func(p *diamond.Packet) { p.Weight = decimal.Zero }},
		{"negative pieces", func(p *diamond.Packet) { p.Pieces = -1 }},
		{"unknown shape", func(p *diamond.Packet) { p.Shape = "Oval" }},
		{"unknown unit", func(p *diamond.Packet) { p.Unit = "Gram" }},
		{"negative rate", func(p *diamond.Packet) { p.RatePerUnit = types.Rupees(-1) }},
		{"foreign rate", func(p *diamond.Packet) { p.RatePerUnit = types.Money{Amount: 100, Currency: "usd"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b diamond.Book
			p := samplePacket()
			tt.mutate(&p)
			if _, err := b.Add(p); !errors.Is(err, types.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if len(b.Packets) != 0 {
				t.Error("rejected packet was stored")
			}
		})
	}
}

func TestMove(t *testing.T) {
	var b diamond.Book
	p, _ := b.Add(samplePacket())

	got, err := b.Move(p.ID, diamond.StatusInStock, "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != diamond.StatusInStock || got.Location != diamond.LocationTejori {
		t.Errorf("after QC: got %s at %s", got.Status, got.Location)
	}

	got, err = b.Move(p.ID, "", diamond.LocationShowroom)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != diamond.StatusInStock || got.Location != diamond.LocationShowroom {
		t.Errorf("after transfer: got %s at %s", got.Status, got.Location)
	}

	if _, err := b.Move(p.ID, diamond.StatusSold, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Move(id.NewDiamondPacketID(), diamond.StatusInStock, ""); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("unknown packet: expected ErrNotFound, got %v", err)
	}
}

func TestMoveRules(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, b *diamond.Book, p diamond.Packet)
		status  diamond.Status
		loc     diamond.Location
		wantErr error
	}{
		{"clear QC and transfer together", nil, diamond.StatusInStock, diamond.LocationShowroom, nil},
		{"same status is a no-op", nil, diamond.StatusQCPending, "", nil},
		{"unknown status", nil, "Lost", "", types.ErrInvalidInput},
		{"unknown location", nil, "", "Vault", types.ErrInvalidInput},
		{"issued is not a move", inStock, diamond.StatusIssued, "", types.ErrInvalidInput},
		{"karigar is not a move", inStock, "", diamond.LocationKarigar, types.ErrInvalidInput},
		{"sell before QC", nil, diamond.StatusSold, "", types.ErrConflict},
		{"transfer before QC", nil, "", diamond.LocationShowroom, types.ErrConflict},
		{"back to QC", inStock, diamond.StatusQCPending, "", types.ErrConflict},
		{"restock a sold packet", sold, diamond.StatusInStock, "", types.ErrConflict},
		{"transfer a sold packet", sold, "", diamond.LocationShowroom, types.ErrConflict},
		{"restock an emptied packet", emptied, diamond.StatusInStock, "", types.ErrConflict},
		{"transfer an emptied packet", emptied, "", diamond.LocationTejori, types.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b diamond.Book
			p, _ := b.Add(samplePacket())
			if tt.setup != nil {
				tt.setup(t, &b, p)
			}
			before, _ := b.Get(p.ID)

			got, err := b.Move(p.ID, tt.status, tt.loc)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if after, _ := b.Get(p.ID); after != before {
					t.Errorf("rejected move changed the packet: %+v", after)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tt.status != "" && got.Status != tt.status {
				t.Errorf("status: got %s, want %s", got.Status, tt.status)
			}
			if tt.loc != "" && got.Location != tt.loc {
				t.Errorf("location: got %s, want %s", got.Location, tt.loc)
			}
		})
	}
}

func inStock(t *testing.T, b *diamond.Book, p diamond.Packet) {
	t.Helper()
	if _, err := b.Move(p.ID, diamond.StatusInStock, ""); err != nil {
		t.Fatal(err)
	}
}

func sold(t *testing.T, b *diamond.Book, p diamond.Packet) {
	t.Helper()
	inStock(t, b, p)
	if _, err := b.Move(p.ID, diamond.StatusSold, ""); err != nil {
		t.Fatal(err)
	}
}

func emptied(t *testing.T, b *diamond.Book, p diamond.Packet) {
	t.Helper()
	inStock(t, b, p)
	if _, err := b.Issue(p.ID, p.Pieces, p.Weight); err != nil {
		t.Fatal(err)
	}
}

func TestIssue(t *testing.T) {
	var b diamond.Book
	p, _ := b.Add(samplePacket())

	if _, err := b.Issue(p.ID, 10, carats("2.5")); !errors.Is(err, types.ErrConflict) {
		t.Fatalf("issuing before QC: expected ErrConflict, got %v", err)
	}
	if _, err := b.Move(p.ID, diamond.StatusInStock, ""); err != nil {
		t.Fatal(err)
	}

	got, err := b.Issue(p.ID, 10, carats("2.5"))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Weight.Equal(carats("10")) || got.Pieces != 40 {
		t.Errorf("remaining: got %s ct %d pcs", got.Weight, got.Pieces)
	}
	if got.Status != diamond.StatusInStock || got.Location != diamond.LocationTejori {
		t.Errorf("partial issue moved the packet to %s at %s", got.Status, got.Location)
	}
	if !got.TotalAmount.Equal(types.Rupees(450000)) {
		t.Errorf("remaining value: got %s", got.TotalAmount)
	}

	if _, err := b.Issue(p.ID, 0, carats("10.5")); !errors.Is(err, types.ErrConflict) {
		t.Errorf("over weight: expected ErrConflict, got %v", err)
	}
	if _, err := b.Issue(p.ID, 41, carats("1")); !errors.Is(err, types.ErrConflict) {
		t.Errorf("over pieces: expected ErrConflict, got %v", err)
	}
	if _, err := b.Issue(p.ID, 1, decimal.Zero); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("zero weight: expected ErrInvalidInput, got %v", err)
	}

	got, err = b.Issue(p.ID, 40, carats("10"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != diamond.StatusIssued || got.Location != diamond.LocationKarigar || !got.TotalAmount.IsZero() {
		t.Errorf("emptied packet: got %s at %s worth %s", got.Status, got.Location, got.TotalAmount)
	}
}

func TestTotals(t *testing.T) {
	var b diamond.Book
	first, _ := b.Add(samplePacket())
	second := samplePacket()
	second.PacketNo = "PKT-24-002"
	second.Weight = carats("3")
	second.RatePerUnit = types.Rupees(30000)
	if _, err := b.Add(second); err != nil {
		t.Fatal(err)
	}
	cents := samplePacket()
	cents.PacketNo = "PKT-24-003"
	cents.Unit = diamond.UnitCent
	cents.Weight = carats("40")
	if _, err := b.Add(cents); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Move(first.ID, diamond.StatusInStock, diamond.LocationShowroom); err != nil {
		t.Fatal(err)
	}

	if w := b.Weight(diamond.LocationTejori, diamond.UnitCarat); !w.Equal(carats("3")) {
		t.Errorf("tejori carats: got %s", w)
	}
	if v := b.Value(diamond.LocationShowroom); !v.Equal(types.Rupees(562500)) {
		t.Errorf("showroom value: got %s", v)
	}

	clone := b.Clone()
	clone.Packets[0].Pieces = 0
	if b.Packets[0].Pieces == 0 {
		t.Error("clone shares storage with the book")
	}
}
