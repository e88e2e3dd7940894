package split

// =============================================================================
// EVEN SPLIT ENGINE
// Partitions an expense total into per-member shares that always sum back to
// the total exactly: every member pays the same floored-to-the-cent base
// share, and the payer absorbs the rounding remainder.
// =============================================================================

import "fmt"

// Status is the settlement status of a single share.
type Status string

const (
	StatusPending     Status = "pending"
	StatusClaimedPaid Status = "claimed_paid"
	StatusConfirmed   Status = "confirmed"
	StatusDisputed    Status = "disputed"
)

// Share is one member's portion of an expense total.
type Share struct {
	Member string  `json:"member"`
	Amount float64 `json:"amount"`
	Status Status  `json:"status"`
}

// Compute partitions total among the included members. Every non-payer member
// is assigned the base share (total/n floored to the cent) and the payer is
// assigned base plus the remainder, so the assigned amounts reconstruct the
// total to the cent with no drift. The payer's own share starts confirmed
// (their obligation is trivially settled); all other shares start pending.
//
// The caller must validate inputs first: the included set must be non-empty
// and contain the payer. Compute panics on a violated contract rather than
// returning an error, since that is a bug in the caller, not user input.
func Compute(total float64, payer string, included []string) []Share {
	if len(included) == 0 {
		panic("split: no members included")
	}
	if !contains(included, payer) {
		panic(fmt.Sprintf("split: payer %q not in included members", payer))
	}

	total = RoundToCent(total)
	n := len(included)

	base := floorToCent(total / float64(n))
	remainder := RoundToCent(total - base*float64(n))

	shares := make([]Share, n)
	for i, member := range included {
		if member == payer {
			shares[i] = Share{
				Member: member,
				Amount: RoundToCent(base + remainder),
				Status: StatusConfirmed,
			}
			continue
		}
		shares[i] = Share{
			Member: member,
			Amount: base,
			Status: StatusPending,
		}
	}

	return shares
}

func contains(members []string, member string) bool {
	for _, m := range members {
		if m == member {
			return true
		}
	}
	return false
}
