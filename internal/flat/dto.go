package flat

import "time"

// CreateFlatRequest represents the request to create a flat.
type CreateFlatRequest struct {
	Name    string   `json:"name" validate:"required,min=1,max=100"`
	Members []string `json:"members" validate:"omitempty,min=1"`
}

// JoinFlatRequest represents the request to join a flat by code.
type JoinFlatRequest struct {
	Code string `json:"code" validate:"required"`
}

// FlatResponse represents a flat in API responses.
type FlatResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Code      string   `json:"code"`
	Members   []string `json:"members"`
	CreatedAt string   `json:"created_at"`
}

// ToResponse converts a Flat model to its response DTO.
func (f *Flat) ToResponse() *FlatResponse {
	return &FlatResponse{
		ID:        f.ID,
		Name:      f.Name,
		Code:      f.Code,
		Members:   f.Members,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}
