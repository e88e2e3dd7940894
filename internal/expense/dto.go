package expense

import (
	"time"

	"github.com/dritonsh/cimerat/internal/expense/split"
)

// CreateExpenseRequest represents the request to create an expense. The payer
// is the authenticated user; Participants lists the members included in the
// split and must contain the payer.
type CreateExpenseRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=255"`
	Period       string   `json:"period" validate:"required,min=1,max=100"`
	Amount       float64  `json:"amount" validate:"required,gt=0"`
	Participants []string `json:"participants" validate:"required,min=1"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID        string          `json:"id"`
	FlatID    string          `json:"flat_id"`
	Title     string          `json:"title"`
	Period    string          `json:"period"`
	Amount    float64         `json:"amount"`
	PaidBy    string          `json:"paid_by"`
	Shares    []ShareResponse `json:"shares"`
	CreatedAt string          `json:"created_at"`
}

// ShareResponse represents a share in API responses.
type ShareResponse struct {
	Member string       `json:"member"`
	Amount float64      `json:"amount"`
	Status split.Status `json:"status"`
}

// ToResponse converts an Expense model to its response DTO.
func (e *Expense) ToResponse() *ExpenseResponse {
	shares := make([]ShareResponse, len(e.Shares))
	for i, s := range e.Shares {
		shares[i] = ShareResponse{Member: s.Member, Amount: s.Amount, Status: s.Status}
	}

	return &ExpenseResponse{
		ID:        e.ID,
		FlatID:    e.FlatID,
		Title:     e.Title,
		Period:    e.Period,
		Amount:    e.Amount,
		PaidBy:    e.PaidBy,
		Shares:    shares,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
