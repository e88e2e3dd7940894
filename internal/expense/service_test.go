package expense

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/dritonsh/cimerat/internal/activity"
	"github.com/dritonsh/cimerat/internal/expense/split"
	"github.com/dritonsh/cimerat/internal/flat"
	"github.com/dritonsh/cimerat/internal/storage"
)

// sinkRecorder captures activity records instead of formatting and storing
// them, so tests can assert on exactly what the ledger emitted.
type sinkRecorder struct {
	mu      sync.Mutex
	records []activity.Record
}

func (s *sinkRecorder) Log(_ context.Context, rec activity.Record) {
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
}

func (s *sinkRecorder) count(eventType activity.Type) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, rec := range s.records {
		if rec.Type == eventType {
			n++
		}
	}
	return n
}

// newTestLedger wires a ledger against the in-memory store. The flat service
// seeds "flat-seed-1" with members Arber, Mark and Driton.
func newTestLedger(t *testing.T) (*Service, *sinkRecorder, storage.Store) {
	t.Helper()

	store := storage.NewMemoryStore()
	flats := flat.NewService(store)
	sink := &sinkRecorder{}
	return NewService(store, flats, sink), sink, store
}

const seedFlatID = "flat-seed-1"

func TestCreateValidationAccumulates(t *testing.T) {
	service, sink, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := service.Create(ctx, "", "Driton", &CreateExpenseRequest{
		Title:  "   ",
		Period: "",
		Amount: 0,
	})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Create() error = %v, want ValidationErrors", err)
	}

	fields := verrs.Fields()
	for _, field := range []string{FieldTitle, FieldPeriod, FieldAmount, FieldGlobal, FieldSplit} {
		if _, ok := fields[field]; !ok {
			t.Errorf("missing accumulated error for field %q (got %v)", field, fields)
		}
	}

	// A rejected request mutates nothing and emits nothing.
	if len(service.All()) != 0 {
		t.Errorf("rejected create mutated the ledger: %d expenses", len(service.All()))
	}
	if len(sink.records) != 0 {
		t.Errorf("rejected create emitted %d events", len(sink.records))
	}
}

func TestCreateValidationSplitErrors(t *testing.T) {
	service, _, _ := newTestLedger(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		participants []string
		wantField    string
	}{
		{name: "payer excluded", participants: []string{"Arber", "Mark"}, wantField: FieldSplit},
		{name: "stranger included", participants: []string{"Driton", "Edi"}, wantField: FieldSplit},
		{name: "nobody included", participants: nil, wantField: FieldSplit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, seedFlatID, "Driton", &CreateExpenseRequest{
				Title:        "Rent",
				Period:       "March",
				Amount:       600,
				Participants: tt.participants,
			})

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Create() error = %v, want ValidationErrors", err)
			}
			if _, ok := verrs.Fields()[tt.wantField]; !ok {
				t.Errorf("missing %q error, got %v", tt.wantField, verrs.Fields())
			}
		})
	}
}

func TestCreateSplitsAndLogs(t *testing.T) {
	service, sink, _ := newTestLedger(t)
	ctx := context.Background()

	exp, err := service.Create(ctx, seedFlatID, "Driton", &CreateExpenseRequest{
		Title:        "Electricity",
		Period:       "March",
		Amount:       80,
		Participants: []string{"Arber", "Mark", "Driton"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if exp.ID == "" {
		t.Error("expense has empty id")
	}

	var sum float64
	for _, share := range exp.Shares {
		sum = split.RoundToCent(sum + share.Amount)
		wantStatus := split.StatusPending
		if share.Member == "Driton" {
			wantStatus = split.StatusConfirmed
		}
		if share.Status != wantStatus {
			t.Errorf("%s share status = %q, want %q", share.Member, share.Status, wantStatus)
		}
	}
	if math.Abs(sum-80) > 0.001 {
		t.Errorf("shares sum to %v, want 80", sum)
	}

	if got := sink.count(activity.TypeExpenseCreated); got != 1 {
		t.Errorf("expense_created events = %d, want 1", got)
	}

	// Newest expense is listed first.
	if _, err := service.Create(ctx, seedFlatID, "Mark", &CreateExpenseRequest{
		Title:        "Internet",
		Period:       "March",
		Amount:       45,
		Participants: []string{"Arber", "Mark", "Driton"},
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	expenses := service.List(seedFlatID)
	if len(expenses) != 2 || expenses[0].Title != "Internet" {
		t.Errorf("List() order wrong: got %d expenses, first %q", len(expenses), expenses[0].Title)
	}
}

func TestClaimPaidIdempotent(t *testing.T) {
	service, sink, _ := newTestLedger(t)
	ctx := context.Background()

	exp, err := service.Create(ctx, seedFlatID, "Driton", &CreateExpenseRequest{
		Title:        "Rent",
		Period:       "March",
		Amount:       600,
		Participants: []string{"Arber", "Mark", "Driton"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// First claim transitions; the second is a safe no-op.
	for i := 0; i < 2; i++ {
		got, err := service.ClaimPaid(ctx, exp.ID, "Arber")
		if err != nil {
			t.Fatalf("ClaimPaid() error = %v", err)
		}
		if got.Share("Arber").Status != split.StatusClaimedPaid {
			t.Errorf("after claim %d, Arber status = %q", i+1, got.Share("Arber").Status)
		}
	}
	if got := sink.count(activity.TypeShareClaimed); got != 1 {
		t.Errorf("share_claimed events = %d, want 1", got)
	}

	// Claiming someone else's absent share changes nothing.
	got, err := service.ClaimPaid(ctx, exp.ID, "Edi")
	if err != nil {
		t.Fatalf("ClaimPaid(no share) error = %v", err)
	}
	if got.Share("Mark").Status != split.StatusPending {
		t.Errorf("Mark status = %q, want pending", got.Share("Mark").Status)
	}
	if got := sink.count(activity.TypeShareClaimed); got != 1 {
		t.Errorf("share_claimed events after no-op = %d, want 1", got)
	}

	// The payer's own confirmed share cannot be re-claimed.
	got, _ = service.ClaimPaid(ctx, exp.ID, "Driton")
	if got.Share("Driton").Status != split.StatusConfirmed {
		t.Errorf("Driton status = %q, want confirmed", got.Share("Driton").Status)
	}

	if _, err := service.ClaimPaid(ctx, "missing-id", "Arber"); !errors.Is(err, ErrExpenseNotFound) {
		t.Errorf("ClaimPaid(unknown expense) error = %v, want ErrExpenseNotFound", err)
	}
}

func TestConfirmPaymentsBatch(t *testing.T) {
	service, sink, _ := newTestLedger(t)
	ctx := context.Background()

	exp, err := service.Create(ctx, seedFlatID, "Driton", &CreateExpenseRequest{
		Title:        "Rent",
		Period:       "March",
		Amount:       600,
		Participants: []string{"Arber", "Mark", "Driton"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := service.ConfirmPayments(ctx, exp.ID, "Arber"); !errors.Is(err, ErrNotPayer) {
		t.Errorf("ConfirmPayments(non-payer) error = %v, want ErrNotPayer", err)
	}

	// Nothing claimed yet: confirming is a no-op.
	got, err := service.ConfirmPayments(ctx, exp.ID, "Driton")
	if err != nil {
		t.Fatalf("ConfirmPayments() error = %v", err)
	}
	if got.Share("Arber").Status != split.StatusPending {
		t.Errorf("Arber status = %q, want pending", got.Share("Arber").Status)
	}
	if got := sink.count(activity.TypeShareConfirmed); got != 0 {
		t.Errorf("share_confirmed events = %d, want 0", got)
	}

	// Arber claims, Mark does not. Confirming moves all and only the
	// claimed shares, with one event naming each confirmed member.
	if _, err := service.ClaimPaid(ctx, exp.ID, "Arber"); err != nil {
		t.Fatalf("ClaimPaid() error = %v", err)
	}
	got, err = service.ConfirmPayments(ctx, exp.ID, "Driton")
	if err != nil {
		t.Fatalf("ConfirmPayments() error = %v", err)
	}
	if got.Share("Arber").Status != split.StatusConfirmed {
		t.Errorf("Arber status = %q, want confirmed", got.Share("Arber").Status)
	}
	if got.Share("Mark").Status != split.StatusPending {
		t.Errorf("Mark status = %q, want pending", got.Share("Mark").Status)
	}
	if got := sink.count(activity.TypeShareConfirmed); got != 1 {
		t.Errorf("share_confirmed events = %d, want 1", got)
	}
	for _, rec := range sink.records {
		if rec.Type == activity.TypeShareConfirmed && rec.Member != "Arber" {
			t.Errorf("confirmed event names %q, want Arber", rec.Member)
		}
	}

	if _, err := service.ConfirmPayments(ctx, "missing-id", "Driton"); !errors.Is(err, ErrExpenseNotFound) {
		t.Errorf("ConfirmPayments(unknown expense) error = %v, want ErrExpenseNotFound", err)
	}
}

func TestLedgerSurvivesRestart(t *testing.T) {
	store := storage.NewMemoryStore()
	flats := flat.NewService(store)
	sink := &sinkRecorder{}
	ctx := context.Background()

	first := NewService(store, flats, sink)
	exp, err := first.Create(ctx, seedFlatID, "Driton", &CreateExpenseRequest{
		Title:        "Rent",
		Period:       "March",
		Amount:       600,
		Participants: []string{"Arber", "Mark", "Driton"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := first.ClaimPaid(ctx, exp.ID, "Arber"); err != nil {
		t.Fatalf("ClaimPaid() error = %v", err)
	}

	second := NewService(store, flats, sink)
	got, err := second.Get(exp.ID)
	if err != nil {
		t.Fatalf("rehydrated Get() error = %v", err)
	}
	if got.Title != "Rent" || got.Amount != 600 || got.PaidBy != "Driton" {
		t.Errorf("rehydrated expense = %+v", got)
	}
	if got.Share("Arber").Status != split.StatusClaimedPaid {
		t.Errorf("rehydrated Arber status = %q, want claimed_paid", got.Share("Arber").Status)
	}
}
