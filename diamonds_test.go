package bullion_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/xraph/bullion"
	audithook "github.com/xraph/bullion/audit_hook"
	"github.com/xraph/bullion/custody"
	"github.com/xraph/bullion/diamond"
	"github.com/xraph/bullion/store/memory"
	"github.com/xraph/bullion/types"
)

func TestDiamondPacketIssuedWithWorkOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	l := startLedger(t, s)

	pkt, err := l.AddDiamondPacket(ctx, diamond.Packet{
		PacketNo:    "PKT-24-001",
		Quality:     "VVS1",
		Weight:      decimal.RequireFromString("12.5"),
		Pieces:      50,
		RatePerUnit: types.Rupees(45000),
	})
	if err != nil {
		t.Fatal(err)
	}
	if pkt.Status != diamond.StatusQCPending {
		t.Fatalf("new packet status: got %s", pkt.Status)
	}
	if act := l.Activity(); act[0].Module != audithook.ModuleTejori {
		t.Errorf("activity module: got %s", act[0].Module)
	}
	if len(l.Transactions()) != 0 {
		t.Error("packet purchase must not post to the cash ledger")
	}

	k, err := l.AddKarigar(ctx, custody.Karigar{Name: "Imran Shaikh", Skill: custody.SkillDiamond})
	if err != nil {
		t.Fatal(err)
	}
	in := custody.IssueInput{
		KarigarID: k.ID, DesignCode: "NK-DIA-2", Weight: types.Grams("18"),
		Purity: types.Purity18K, IssueDate: types.MustDay("2024-03-01"),
		Diamonds: []custody.DiamondIssue{
			{PacketID: pkt.ID, Pieces: 20, Weight: decimal.RequireFromString("5")},
		},
	}

	if _, _, err := l.IssueMaterial(ctx, in); !errors.Is(err, bullion.ErrConflict) {
		t.Fatalf("issuing from a packet pending QC: expected ErrConflict, got %v", err)
	}
	if len(l.WorkOrders()) != 0 {
		t.Fatal("rejected issue created a work order")
	}
	if got, _ := l.Karigar(k.ID); !got.GoldBalance.IsZero() {
		t.Fatalf("rejected issue moved gold: %s", got.GoldBalance)
	}

	if _, err := l.MoveDiamondPacket(ctx, pkt.ID, diamond.StatusInStock, ""); err != nil {
		t.Fatal(err)
	}
	wo, _, err := l.IssueMaterial(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if len(wo.DiamondsIssued) != 1 {
		t.Fatalf("work order diamonds: got %d lines", len(wo.DiamondsIssued))
	}

	left, err := l.DiamondPacket(pkt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !left.Weight.Equal(decimal.RequireFromString("7.5")) || left.Pieces != 30 {
		t.Errorf("packet after issue: %s ct %d pcs", left.Weight, left.Pieces)
	}
	if left.Location != diamond.LocationTejori {
		t.Errorf("partly issued packet left the tejori: %s", left.Location)
	}

	in.Diamonds[0].Weight = decimal.RequireFromString("8")
	if _, _, err := l.IssueMaterial(ctx, in); !errors.Is(err, bullion.ErrConflict) {
		t.Fatalf("over-issue: expected ErrConflict, got %v", err)
	}
	if len(l.WorkOrders()) != 1 {
		t.Errorf("over-issue created a work order")
	}

	if err := l.Stop(); err != nil {
		t.Fatal(err)
	}
	reopened := startLedger(t, s)
	packets := reopened.DiamondPackets()
	if len(packets) != 1 || packets[0].Pieces != 30 || packets[0].Status != diamond.StatusInStock {
		t.Errorf("packets after reload: %+v", packets)
	}
	if wos := reopened.WorkOrders(); len(wos) != 1 || len(wos[0].DiamondsIssued) != 1 {
		t.Errorf("work order diamonds after reload: %+v", wos)
	}
}

func TestMoveUnknownDiamondPacket(t *testing.T) {
	l := startLedger(t, memory.New())
	pkt, err := l.AddDiamondPacket(context.Background(), diamond.Packet{
		PacketNo: "PKT-24-009", Weight: decimal.RequireFromString("1"), RatePerUnit: types.Rupees(30000),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.MoveDiamondPacket(context.Background(), pkt.ID, "", "Vault"); !bullion.IsValidation(err) {
		t.Errorf("unknown location: expected validation error, got %v", err)
	}
	if _, err := l.DiamondPacket(bullion.ID{}); !errors.Is(err, bullion.ErrNotFound) {
		t.Errorf("unknown packet: expected ErrNotFound, got %v", err)
	}
}
