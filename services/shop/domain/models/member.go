package models

import (
	"time"

	"github.com/google/uuid"
)

// Member is a registered customer. Name is unique across all members; the
// application layer checks it before persisting and the database unique
// index backstops the race window between concurrent joins.
//
// Orders reference the member by ID. The member does not carry its order
// list in memory; fetch orders through the order repository instead.
type Member struct {
	ID        uuid.UUID
	Name      string
	Address   Address
	CreatedAt time.Time
}

// NewMember constructs a Member with generated ID and current timestamp.
func NewMember(name string, address Address) *Member {
	return &Member{
		ID:        uuid.New(),
		Name:      name,
		Address:   address,
		CreatedAt: time.Now().UTC(),
	}
}
