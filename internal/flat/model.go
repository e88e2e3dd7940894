package flat

import "time"

// Flat represents a shared apartment: a fixed set of roommates splitting
// expenses. Membership is fixed at creation.
type Flat struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"` // short join code, unique among flats
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasMember reports whether name is a member of the flat.
func (f *Flat) HasMember(name string) bool {
	for _, member := range f.Members {
		if member == name {
			return true
		}
	}
	return false
}
