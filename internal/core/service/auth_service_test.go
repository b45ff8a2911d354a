package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodshare/foodshare-api/internal/core/domain"
	"github.com/foodshare/foodshare-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "user_" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindByEmailAndRole(_ context.Context, email string, role domain.Role) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Role == role {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

// FindVolunteerByLocation mirrors the case-insensitive substring match the
// real Mongo query performs.
func (r *stubUserRepo) FindVolunteerByLocation(_ context.Context, location string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Role == domain.RoleVolunteer &&
			strings.Contains(strings.ToLower(u.Location), strings.ToLower(location)) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func registerInput(email string, role domain.Role) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Alice",
		Email:    email,
		Password: "correcthorse",
		Role:     role,
		Location: "Springfield",
		Phone:    "+1 555 0100",
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	token, user, err := svc.Register(context.Background(), registerInput("alice@example.com", domain.RoleDonor))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if user.PasswordHash == "correcthorse" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correcthorse")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleDonor {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.ID == "" {
		t.Fatal("expected an assigned id")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), registerInput("alice@example.com", domain.RoleDonor)); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// The email is the uniqueness key across roles.
	_, _, err := svc.Register(context.Background(), registerInput("alice@example.com", domain.RoleReceiver))
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), registerInput("alice@example.com", domain.RoleReceiver)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "correcthorse", domain.RoleReceiver)
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["sub"] != user.ID {
		t.Fatalf("token sub = %v, want %s", claims["sub"], user.ID)
	}
	if claims["role"] != string(domain.RoleReceiver) {
		t.Fatalf("token role = %v, want receiver", claims["role"])
	}
}

func TestAuthService_Login_UniformInvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), registerInput("alice@example.com", domain.RoleReceiver)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	cases := []struct {
		name     string
		email    string
		password string
		role     domain.Role
	}{
		{"wrong password", "alice@example.com", "wrongpassword", domain.RoleReceiver},
		{"wrong role", "alice@example.com", "correcthorse", domain.RoleDonor},
		{"unknown email", "nobody@example.com", "correcthorse", domain.RoleReceiver},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.email, tc.password, tc.role)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
			}
		})
	}
}

func TestAuthService_Volunteers(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), registerInput("v1@example.com", domain.RoleVolunteer)); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), registerInput("d1@example.com", domain.RoleDonor)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	volunteers, err := svc.Volunteers(context.Background())
	if err != nil {
		t.Fatalf("Volunteers returned error: %v", err)
	}
	if len(volunteers) != 1 || volunteers[0].Email != "v1@example.com" {
		t.Fatalf("unexpected volunteer directory: %+v", volunteers)
	}
}
