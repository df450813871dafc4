package booking

import "github.com/google/uuid"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleCleaner  Role = "cleaner"
)

// Actor is the verified caller of a booking operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsCustomer() bool { return a.Role == RoleCustomer }
func (a Actor) IsCleaner() bool  { return a.Role == RoleCleaner }
