package balance

import "github.com/dritonsh/cimerat/internal/expense"

// Service answers balance queries against the ledger's current snapshot.
type Service struct {
	expenses *expense.Service
}

// NewService creates a new balance service.
func NewService(expenses *expense.Service) *Service {
	return &Service{expenses: expenses}
}

// ForMember computes the outstanding balances of member within flatID.
func (s *Service) ForMember(flatID, member string) Result {
	return ForMember(s.expenses.All(), flatID, member)
}
