package balance

import (
	"context"
	"math"
	"testing"

	"github.com/dritonsh/cimerat/internal/activity"
	"github.com/dritonsh/cimerat/internal/expense"
	"github.com/dritonsh/cimerat/internal/expense/split"
	"github.com/dritonsh/cimerat/internal/flat"
	"github.com/dritonsh/cimerat/internal/storage"
)

func testExpenses() []*expense.Expense {
	return []*expense.Expense{
		{
			ID: "rent-march", FlatID: "flat-1", Title: "Rent", Period: "March",
			Amount: 600, PaidBy: "Arber",
			Shares: []split.Share{
				{Member: "Arber", Amount: 200, Status: split.StatusConfirmed},
				{Member: "Mark", Amount: 200, Status: split.StatusPending},
				{Member: "Driton", Amount: 200, Status: split.StatusClaimedPaid},
			},
		},
		{
			ID: "internet-march", FlatID: "flat-1", Title: "Internet", Period: "March",
			Amount: 45, PaidBy: "Mark",
			Shares: []split.Share{
				{Member: "Arber", Amount: 15, Status: split.StatusDisputed},
				{Member: "Mark", Amount: 15, Status: split.StatusConfirmed},
				{Member: "Driton", Amount: 15, Status: split.StatusConfirmed},
			},
		},
		{
			ID: "beers", FlatID: "flat-2", Title: "Beers", Period: "March",
			Amount: 30, PaidBy: "Mark",
			Shares: []split.Share{
				{Member: "Mark", Amount: 15, Status: split.StatusConfirmed},
				{Member: "Driton", Amount: 15, Status: split.StatusPending},
			},
		},
	}
}

func TestForMember(t *testing.T) {
	expenses := testExpenses()

	tests := []struct {
		name   string
		flatID string
		member string
		want   Result
	}{
		{
			// Owed Mark's pending rent share plus Driton's claimed one (a
			// claim is not a settlement), while owing the disputed internet
			// share to Mark.
			name:   "payer is owed every unconfirmed share",
			flatID: "flat-1",
			member: "Arber",
			want:   Result{YouOwe: 15, YouAreOwed: 400, Net: 385},
		},
		{
			// Mark owes his pending rent share and is owed Arber's disputed
			// internet share; disputed is not confirmed either.
			name:   "mixed debtor and creditor",
			flatID: "flat-1",
			member: "Mark",
			want:   Result{YouOwe: 200, YouAreOwed: 15, Net: -185},
		},
		{
			name:   "claimed share still owed by the claimant",
			flatID: "flat-1",
			member: "Driton",
			want:   Result{YouOwe: 200, YouAreOwed: 0, Net: -200},
		},
		{
			name:   "other flat is out of scope",
			flatID: "flat-2",
			member: "Driton",
			want:   Result{YouOwe: 15, YouAreOwed: 0, Net: -15},
		},
		{
			name:   "no flat selected",
			flatID: "",
			member: "Arber",
			want:   Result{},
		},
		{
			name:   "member with no shares",
			flatID: "flat-1",
			member: "Edi",
			want:   Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForMember(expenses, tt.flatID, tt.member)
			if got != tt.want {
				t.Errorf("ForMember() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestForMemberAllConfirmedIsZero(t *testing.T) {
	expenses := []*expense.Expense{
		{
			ID: "rent", FlatID: "flat-1", Amount: 600, PaidBy: "Arber",
			Shares: []split.Share{
				{Member: "Arber", Amount: 200, Status: split.StatusConfirmed},
				{Member: "Mark", Amount: 200, Status: split.StatusConfirmed},
				{Member: "Driton", Amount: 200, Status: split.StatusConfirmed},
			},
		},
	}

	for _, member := range []string{"Arber", "Mark", "Driton"} {
		if got := ForMember(expenses, "flat-1", member); got != (Result{}) {
			t.Errorf("ForMember(%s) = %+v, want zeros", member, got)
		}
	}
}

func TestForMemberRoundsEachStep(t *testing.T) {
	// Many small fractional shares would drift without per-step rounding.
	var expenses []*expense.Expense
	for i := 0; i < 100; i++ {
		expenses = append(expenses, &expense.Expense{
			ID: "e", FlatID: "flat-1", Amount: 0.2, PaidBy: "Arber",
			Shares: []split.Share{
				{Member: "Arber", Amount: 0.1, Status: split.StatusConfirmed},
				{Member: "Mark", Amount: 0.1, Status: split.StatusPending},
			},
		})
	}

	got := ForMember(expenses, "flat-1", "Arber")
	if got.YouAreOwed != 10 || got.Net != 10 {
		t.Errorf("ForMember() = %+v, want exactly 10 owed", got)
	}
}

// nullSink drops records; the settlement flow test asserts on ledger state,
// not on the feed.
type nullSink struct{}

func (nullSink) Log(context.Context, activity.Record) {}

// TestSettlementFlow walks the whole lifecycle: create a split expense, have
// a roommate claim, verify the claim does not retire the obligation, then
// have the payer confirm and verify it does.
func TestSettlementFlow(t *testing.T) {
	store := storage.NewMemoryStore()
	flats := flat.NewService(store)
	ledger := expense.NewService(store, flats, nullSink{})
	balances := NewService(ledger)
	ctx := context.Background()

	const flatID = "flat-seed-1" // seeded with Arber, Mark, Driton

	exp, err := ledger.Create(ctx, flatID, "Driton", &expense.CreateExpenseRequest{
		Title:        "Electricity",
		Period:       "March",
		Amount:       80,
		Participants: []string{"Arber", "Mark", "Driton"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var sum float64
	for _, share := range exp.Shares {
		sum = split.RoundToCent(sum + share.Amount)
	}
	if math.Abs(sum-80) > 0.001 {
		t.Fatalf("shares sum to %v, want 80", sum)
	}
	arberShare := exp.Share("Arber").Amount

	// Driton fronted the money: both roommates still owe him.
	owedBefore := split.RoundToCent(arberShare + exp.Share("Mark").Amount)
	if got := balances.ForMember(flatID, "Driton"); got.YouAreOwed != owedBefore {
		t.Errorf("payer owed %v, want %v", got.YouAreOwed, owedBefore)
	}

	// Arber claims: still outstanding until Driton confirms.
	if _, err := ledger.ClaimPaid(ctx, exp.ID, "Arber"); err != nil {
		t.Fatalf("ClaimPaid() error = %v", err)
	}
	if got := balances.ForMember(flatID, "Driton"); got.YouAreOwed != owedBefore {
		t.Errorf("after claim, payer owed %v, want %v (claim is not settlement)", got.YouAreOwed, owedBefore)
	}
	if got := balances.ForMember(flatID, "Arber"); got.YouOwe != arberShare {
		t.Errorf("after claim, Arber owes %v, want %v", got.YouOwe, arberShare)
	}

	// Driton confirms: Arber's share is retired, Mark's remains.
	if _, err := ledger.ConfirmPayments(ctx, exp.ID, "Driton"); err != nil {
		t.Fatalf("ConfirmPayments() error = %v", err)
	}
	wantAfter := exp.Share("Mark").Amount
	if got := balances.ForMember(flatID, "Driton"); got.YouAreOwed != wantAfter {
		t.Errorf("after confirm, payer owed %v, want %v", got.YouAreOwed, wantAfter)
	}
	if got := balances.ForMember(flatID, "Arber"); got.YouOwe != 0 {
		t.Errorf("after confirm, Arber owes %v, want 0", got.YouOwe)
	}
}
