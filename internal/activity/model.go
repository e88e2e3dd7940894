package activity

import "time"

// Type categorizes an activity event.
type Type string

const (
	TypeExpenseCreated Type = "expense_created"
	TypeShareClaimed   Type = "share_claimed"
	TypeShareConfirmed Type = "share_confirmed"
)

// Event is an immutable, append-only record of a ledger state transition.
// Events are only ever appended and displayed; nothing in the system reads
// them back for decisions.
type Event struct {
	ID        string    `json:"id"`
	FlatID    string    `json:"flatId"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Record is the structured input emitted by ledger mutations. The service
// turns a record into an Event, rendering the display message itself so that
// wording stays a presentation concern of this package.
type Record struct {
	FlatID string
	Type   Type
	Actor  string  // who performed the transition
	Member string  // whose share was affected, for share_confirmed
	Title  string  // expense title
	Period string  // expense billing period
	Amount float64 // expense total, for expense_created
}
