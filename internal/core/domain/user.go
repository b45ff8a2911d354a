package domain

import "time"

// Role is the closed set of account roles gating every operation.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleReceiver  Role = "receiver"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

// ParseRole validates a free-form role string against the closed enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleDonor, RoleReceiver, RoleVolunteer, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User models a registered account. Accounts are immutable after registration.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Location     string    `json:"location"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
