package bullion

import (
	"context"

	audithook "github.com/xraph/bullion/audit_hook"
	"github.com/xraph/bullion/custody"
	"github.com/xraph/bullion/diamond"
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/store"
	"github.com/xraph/bullion/types"
)

// AddDiamondPacket records a purchased packet at the Tejori, pending QC.
// Nothing is posted to the cash ledger.
func (l *Ledger) AddDiamondPacket(ctx context.Context, p diamond.Packet) (*diamond.Packet, error) {
	_, err := l.run(ctx, "add-diamond-packet", func(a *action) error {
		var err error
		if p, err = a.draft.diamonds.Add(p); err != nil {
			return err
		}
		a.touch(store.Diamonds)
		a.log(audithook.ModuleTejori, "Diamond Purchase",
			"Added packet %s (%s %s, %d pcs)", p.PacketNo, p.Weight, p.Unit, p.Pieces)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MoveDiamondPacket changes a packet's status or location. An empty value
// keeps the current one.
func (l *Ledger) MoveDiamondPacket(ctx context.Context, pid id.DiamondPacketID, status diamond.Status, loc diamond.Location) (*diamond.Packet, error) {
	var p diamond.Packet
	_, err := l.run(ctx, "move-diamond-packet", func(a *action) error {
		var err error
		if p, err = a.draft.diamonds.Move(pid, status, loc); err != nil {
			return err
		}
		a.touch(store.Diamonds)
		a.log(audithook.ModuleTejori, "Diamond Move", "Packet %s is %s at %s", p.PacketNo, p.Status, p.Location)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DiamondPacket returns one packet.
func (l *Ledger) DiamondPacket(pid id.DiamondPacketID) (*diamond.Packet, error) {
	var (
		p  diamond.Packet
		ok bool
	)
	l.view(func(b *books) { p, ok = b.diamonds.Get(pid) })
	if !ok {
		return nil, types.NotFound("diamond packet", pid.String())
	}
	return &p, nil
}

// DiamondPackets returns every packet, newest first.
func (l *Ledger) DiamondPackets() []diamond.Packet {
	var out []diamond.Packet
	l.view(func(b *books) {
		out = append(out, b.diamonds.Packets...)
	})
	return out
}

// issueDiamonds draws the packets sent with a work order from the draft.
func (a *action) issueDiamonds(draws []custody.DiamondIssue) error {
	if len(draws) == 0 {
		return nil
	}
	for _, d := range draws {
		if _, err := a.draft.diamonds.Issue(d.PacketID, d.Pieces, d.Weight); err != nil {
			return err
		}
	}
	a.touch(store.Diamonds)
	return nil
}
