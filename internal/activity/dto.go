package activity

import "time"

// EventResponse represents an activity event in API responses.
type EventResponse struct {
	ID        string `json:"id"`
	FlatID    string `json:"flat_id"`
	Type      Type   `json:"type"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts an Event to its response DTO.
func (e Event) ToResponse() EventResponse {
	return EventResponse{
		ID:        e.ID,
		FlatID:    e.FlatID,
		Type:      e.Type,
		Message:   e.Message,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
