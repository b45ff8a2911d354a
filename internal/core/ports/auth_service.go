package ports

import (
	"context"

	"github.com/foodshare/foodshare-api/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Location string
	Phone    string
}

// AuthService implements registration, role-qualified login, and the
// admin-facing volunteer directory.
type AuthService interface {
	// Register creates the account and returns a signed bearer token plus the
	// stored user (password hash never leaves the service).
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)

	// Login verifies email+role+password. Unknown email, wrong role, and
	// wrong password all fail uniformly with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error)

	// Volunteers lists all volunteer accounts.
	Volunteers(ctx context.Context) ([]*domain.User, error)
}
