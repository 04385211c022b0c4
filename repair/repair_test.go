package repair_test

import (
	"errors"
	"testing"

	"github.com/xraph/bullion/repair"
	"github.com/xraph/bullion/types"
)

func TestWorkflow(t *testing.T) {
	var b repair.Book
	j, err := b.Create(repair.Job{
		JobNo:          "R-1",
		CustomerName:   "Meena",
		ProductName:    "Chain",
		ReceivedDate:   types.MustDay("2024-03-01"),
		Cost:           types.Rupees(1500),
		AdvancePayment: types.Rupees(500),
	})
	if err != nil {
		t.Fatal(err)
	}

	day := types.MustDay("2024-03-08")
	for _, want := range []repair.Status{repair.StatusUnderRepair, repair.StatusReady} {
		got, collected, err := b.Advance(j.ID, false, day)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != want || !collected.IsZero() {
			t.Fatalf("got %s collected %v, want %s", got.Status, collected, want)
		}
	}

	if _, _, err := b.Advance(j.ID, false, day); !errors.Is(err, types.ErrConflict) {
		t.Fatalf("delivery with a balance must be blocked, got %v", err)
	}
	if cur, _ := b.Get(j.ID); cur.Status != repair.StatusReady {
		t.Fatalf("blocked delivery changed status to %s", cur.Status)
	}

	got, collected, err := b.Advance(j.ID, true, day)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != repair.StatusDelivered || !collected.Equal(types.Rupees(1000)) || !got.Balance().IsZero() {
		t.Errorf("unexpected delivery: %s collected %v balance %v", got.Status, collected, got.Balance())
	}

	if _, _, err := b.Advance(j.ID, true, day); !errors.Is(err, types.ErrConflict) {
		t.Errorf("advancing a delivered job: expected ErrConflict, got %v", err)
	}
}

func TestDeliverPrepaid(t *testing.T) {
	var b repair.Book
	j, _ := b.Create(repair.Job{
		JobNo: "R-2", CustomerName: "Ravi", ReceivedDate: types.MustDay("2024-03-01"),
		Cost: types.Rupees(800), AdvancePayment: types.Rupees(800),
	})
	for i := 0; i < 3; i++ {
		if _, _, err := b.Advance(j.ID, false, types.MustDay("2024-03-02")); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if got, _ := b.Get(j.ID); got.Status != repair.StatusDelivered {
		t.Errorf("status: got %s", got.Status)
	}
}
