package balance

import (
	"github.com/dritonsh/cimerat/internal/expense"
	"github.com/dritonsh/cimerat/internal/expense/split"
)

// Result is the outstanding-balance view for one member of a flat.
type Result struct {
	YouOwe     float64 `json:"you_owe"`      // money the member still has to pay others
	YouAreOwed float64 `json:"you_are_owed"` // money others still have to pay the member
	Net        float64 `json:"net"`          // positive: member should receive, negative: member owes
}

// ForMember aggregates outstanding shares across the expenses of one flat.
//
// A share is outstanding while its status is anything other than confirmed:
// a claim is an unverified self-report, so claimed_paid still counts until
// the payer confirms. Payers never owe themselves. Each accumulation step
// rounds to the cent to keep floating-point error from compounding. With no
// flat selected the result is all zeros.
func ForMember(expenses []*expense.Expense, flatID, member string) Result {
	if flatID == "" {
		return Result{}
	}

	var owe, owed float64

	for _, exp := range expenses {
		if exp.FlatID != flatID {
			continue
		}

		for _, share := range exp.Shares {
			if share.Member == exp.PaidBy {
				continue
			}
			if share.Status == split.StatusConfirmed {
				continue
			}

			if member == exp.PaidBy {
				owed = split.RoundToCent(owed + share.Amount)
			} else if member == share.Member {
				owe = split.RoundToCent(owe + share.Amount)
			}
		}
	}

	return Result{
		YouOwe:     owe,
		YouAreOwed: owed,
		Net:        split.RoundToCent(owed - owe),
	}
}
