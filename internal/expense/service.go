package expense

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dritonsh/cimerat/internal/activity"
	"github.com/dritonsh/cimerat/internal/expense/split"
	"github.com/dritonsh/cimerat/internal/flat"
	"github.com/dritonsh/cimerat/internal/storage"
	"github.com/dritonsh/cimerat/pkg/metrics"
)

// stateKey is the snapshot key for ledger state.
const stateKey = "cimerat.expenses.state"

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNotPayer        = errors.New("only the payer can confirm payments")
)

// ActivitySink receives one record per ledger state transition. Delivery is
// fire-and-forget; the ledger never reads events back.
type ActivitySink interface {
	Log(ctx context.Context, rec activity.Record)
}

// Service is the settlement ledger: it owns the expenses and their shares,
// enforces the share status state machine, and emits activity records for
// every transition. All mutations are serialized through one mutex, so the
// state-machine invariants hold under concurrent requests.
type Service struct {
	mu       sync.Mutex
	expenses []*Expense
	flats    *flat.Service
	activity ActivitySink
	store    storage.Store
}

// NewService creates the ledger, hydrating state from the store. A missing or
// unreadable snapshot starts an empty ledger; it never fails.
func NewService(store storage.Store, flats *flat.Service, sink ActivitySink) *Service {
	s := &Service{flats: flats, activity: sink, store: store}

	raw, ok, err := store.Load(context.Background(), stateKey)
	if err != nil {
		slog.Warn("failed to load expense snapshot, starting empty", "error", err)
		return s
	}
	if !ok {
		return s
	}

	var expenses []*Expense
	if err := json.Unmarshal(raw, &expenses); err != nil {
		slog.Warn("corrupt expense snapshot, starting empty", "error", err)
		return s
	}
	s.expenses = expenses

	return s
}

// Create validates the request exhaustively, splits the amount, and admits
// the new expense into the ledger. Validation accumulates every violation
// into one ValidationErrors value and performs no mutation when any is found.
func (s *Service) Create(ctx context.Context, flatID, payer string, req *CreateExpenseRequest) (*Expense, error) {
	title := strings.TrimSpace(req.Title)
	period := strings.TrimSpace(req.Period)
	included := req.Participants

	var verrs ValidationErrors

	if title == "" {
		verrs.add(FieldTitle, "Title is required.")
	}
	if period == "" {
		verrs.add(FieldPeriod, "Period is required.")
	}
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount <= 0 {
		verrs.add(FieldAmount, "Enter an amount greater than 0.")
	}

	var f *flat.Flat
	if flatID == "" {
		verrs.add(FieldGlobal, "Join or create a flat before creating expenses.")
	} else if f = s.flats.Get(flatID); f == nil {
		verrs.add(FieldGlobal, "Flat not found.")
	} else if len(f.Members) == 0 {
		verrs.add(FieldGlobal, "This flat has no members yet.")
	}

	if len(included) == 0 {
		verrs.add(FieldSplit, "At least one roommate must be included in the split.")
	} else {
		payerIncluded := false
		for _, member := range included {
			if member == payer {
				payerIncluded = true
			}
			if f != nil && !f.HasMember(member) {
				verrs.add(FieldSplit, "All included members must belong to the flat.")
				break
			}
		}
		if !payerIncluded {
			verrs.add(FieldSplit, "Payer must be included in the split.")
		}
	}

	if len(verrs) > 0 {
		return nil, verrs
	}

	amount := split.RoundToCent(req.Amount)

	exp := &Expense{
		ID:        uuid.NewString(),
		FlatID:    flatID,
		Title:     title,
		Period:    period,
		Amount:    amount,
		PaidBy:    payer,
		Shares:    split.Compute(amount, payer, included),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.expenses = append([]*Expense{exp}, s.expenses...)
	s.persist(ctx)
	s.mu.Unlock()

	s.activity.Log(ctx, activity.Record{
		FlatID: flatID,
		Type:   activity.TypeExpenseCreated,
		Actor:  payer,
		Title:  title,
		Period: period,
		Amount: amount,
	})
	metrics.ExpensesCreated.Inc()

	return exp.clone(), nil
}

// ClaimPaid records the member's self-report of having paid their share.
// Only a pending share transitions to claimed_paid; a share that is missing
// or already past pending is left untouched with no event, so redundant calls
// are safe. A claim is unverified: the share still counts as outstanding in
// balances until the payer confirms it.
func (s *Service) ClaimPaid(ctx context.Context, expenseID, member string) (*Expense, error) {
	s.mu.Lock()

	exp := s.find(expenseID)
	if exp == nil {
		s.mu.Unlock()
		return nil, ErrExpenseNotFound
	}

	share := exp.Share(member)
	transitioned := share != nil && share.Status == split.StatusPending
	if transitioned {
		share.Status = split.StatusClaimedPaid
		s.persist(ctx)
	}
	result := exp.clone()

	s.mu.Unlock()

	if transitioned {
		s.activity.Log(ctx, activity.Record{
			FlatID: exp.FlatID,
			Type:   activity.TypeShareClaimed,
			Actor:  member,
			Title:  exp.Title,
			Period: exp.Period,
		})
		metrics.SharesClaimed.Inc()
	}

	return result, nil
}

// ConfirmPayments is the payer verifying received payments: every share
// currently in claimed_paid moves to confirmed in one batch. Pending,
// confirmed and disputed shares are untouched, and an expense with nothing
// claimed is a no-op. One event is emitted per transitioned share, naming the
// member, so the audit trail stays per-share even though the payer confirms
// in bulk.
func (s *Service) ConfirmPayments(ctx context.Context, expenseID, caller string) (*Expense, error) {
	s.mu.Lock()

	exp := s.find(expenseID)
	if exp == nil {
		s.mu.Unlock()
		return nil, ErrExpenseNotFound
	}
	if exp.PaidBy != caller {
		s.mu.Unlock()
		return nil, ErrNotPayer
	}

	var confirmed []string
	for i := range exp.Shares {
		if exp.Shares[i].Status == split.StatusClaimedPaid {
			exp.Shares[i].Status = split.StatusConfirmed
			confirmed = append(confirmed, exp.Shares[i].Member)
		}
	}
	if len(confirmed) > 0 {
		s.persist(ctx)
	}
	result := exp.clone()

	s.mu.Unlock()

	for _, member := range confirmed {
		s.activity.Log(ctx, activity.Record{
			FlatID: exp.FlatID,
			Type:   activity.TypeShareConfirmed,
			Actor:  exp.PaidBy,
			Member: member,
			Title:  exp.Title,
			Period: exp.Period,
		})
		metrics.SharesConfirmed.Inc()
	}

	return result, nil
}

// Get retrieves one expense by id.
func (s *Service) Get(id string) (*Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp := s.find(id)
	if exp == nil {
		return nil, ErrExpenseNotFound
	}
	return exp.clone(), nil
}

// List returns the expenses of one flat, most recent first.
func (s *Service) List(flatID string) []*Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expenses []*Expense
	for _, exp := range s.expenses {
		if exp.FlatID == flatID {
			expenses = append(expenses, exp.clone())
		}
	}
	return expenses
}

// All returns every expense in the ledger, most recent first. Balance
// aggregation scopes to a flat itself.
func (s *Service) All() []*Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses := make([]*Expense, len(s.expenses))
	for i, exp := range s.expenses {
		expenses[i] = exp.clone()
	}
	return expenses
}

// find looks up an expense by id. Callers must hold s.mu.
func (s *Service) find(id string) *Expense {
	for _, exp := range s.expenses {
		if exp.ID == id {
			return exp
		}
	}
	return nil
}

// persist saves the ledger snapshot, best-effort: a failure is logged and
// swallowed, never surfaced to the mutation that triggered it. Callers must
// hold s.mu.
func (s *Service) persist(ctx context.Context) {
	raw, err := json.Marshal(s.expenses)
	if err != nil {
		slog.Warn("failed to marshal expense snapshot", "error", err)
		return
	}
	if err := s.store.Save(ctx, stateKey, raw); err != nil {
		slog.Warn("failed to save expense snapshot", "error", err)
	}
}
