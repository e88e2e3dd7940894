package activity

import "fmt"

// formatMessage renders the human-readable feed line for a record.
func formatMessage(rec Record) string {
	switch rec.Type {
	case TypeExpenseCreated:
		return fmt.Sprintf("%s created %s (%s) for %s", rec.Actor, rec.Title, rec.Period, formatAmount(rec.Amount))
	case TypeShareClaimed:
		return fmt.Sprintf("%s marked as paid for %s (%s)", rec.Actor, rec.Title, rec.Period)
	case TypeShareConfirmed:
		return fmt.Sprintf("%s confirmed %s for %s (%s)", rec.Actor, rec.Member, rec.Title, rec.Period)
	default:
		return fmt.Sprintf("%s: %s (%s)", rec.Type, rec.Title, rec.Period)
	}
}

// formatAmount renders a currency amount, dropping the decimals when the
// amount is a whole number.
func formatAmount(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("€%d", int64(value))
	}
	return fmt.Sprintf("€%.2f", value)
}
