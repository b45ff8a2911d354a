package ports

import (
	"context"

	"github.com/foodshare/foodshare-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the email
	// is already registered (email carries a unique index).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByIDs returns the users for the given ids keyed by id. Missing ids
	// are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)

	// FindByEmailAndRole retrieves the account matching both email and role.
	// Login is role-qualified: a mismatched role behaves like an unknown email.
	FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)

	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)

	// FindVolunteerByLocation returns the first volunteer whose location field
	// contains the given string (case-insensitive substring match), or
	// domain.ErrUserNotFound when no volunteer matches.
	FindVolunteerByLocation(ctx context.Context, location string) (*domain.User, error)
}
