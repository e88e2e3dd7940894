package expense

import "strings"

// Validation error fields. "split" covers the included-member selection and
// "global" covers conditions not tied to a single input.
const (
	FieldTitle  = "title"
	FieldPeriod = "period"
	FieldAmount = "amount"
	FieldSplit  = "split"
	FieldGlobal = "global"
)

// FieldError is one field-scoped validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors accumulates every violation found in a request, so the
// caller can surface all of them at once instead of fixing one at a time.
// It is reported, never fatal, and a request that produces any leaves the
// ledger untouched.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	messages := make([]string, len(v))
	for i, fe := range v {
		messages[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Fields returns the errors keyed by field name, for API responses.
func (v ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(v))
	for _, fe := range v {
		if _, ok := fields[fe.Field]; !ok {
			fields[fe.Field] = fe.Message
		}
	}
	return fields
}

func (v *ValidationErrors) add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}
