package expense

import (
	"time"

	"github.com/dritonsh/cimerat/internal/expense/split"
)

// Expense represents one payer-fronted cost split among a flat's members.
// Expenses are created once and never edited or deleted; only the status of
// their shares changes afterwards.
type Expense struct {
	ID        string        `json:"id"`
	FlatID    string        `json:"flatId"`
	Title     string        `json:"title"`
	Period    string        `json:"period"` // free-text billing period, e.g. "March"
	Amount    float64       `json:"amount"`
	PaidBy    string        `json:"paidBy"`
	Shares    []split.Share `json:"shares"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Share finds the share belonging to member. Returns nil when the member has
// no share on this expense.
func (e *Expense) Share(member string) *split.Share {
	for i := range e.Shares {
		if e.Shares[i].Member == member {
			return &e.Shares[i]
		}
	}
	return nil
}

// clone returns a deep copy so callers can read an expense without racing
// ledger mutations.
func (e *Expense) clone() *Expense {
	copied := *e
	copied.Shares = append([]split.Share(nil), e.Shares...)
	return &copied
}
