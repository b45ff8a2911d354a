package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/foodshare/foodshare-api/internal/core/domain"
)

const testSecret = "test-secret"

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByIDs(context.Context, []string) (map[string]*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindByEmailAndRole(context.Context, string, domain.Role) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) ListByRole(context.Context, domain.Role) ([]*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindVolunteerByLocation(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func invokeAuth(t *testing.T, repo *stubUserRepo, authorization string) (*domain.User, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *domain.User
	handler := Auth(testSecret, repo)(func(c echo.Context) error {
		seen, _ = c.Get(UserContextKey).(*domain.User)
		return c.NoContent(http.StatusOK)
	})
	return seen, handler(c)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuth_ValidTokenLoadsUser(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleDonor, Email: "alice@example.com"},
	}}
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	user, err := invokeAuth(t, repo, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected request to pass, got: %v", err)
	}
	if user == nil || user.ID != "u1" {
		t.Fatalf("expected user u1 in context, got %+v", user)
	}
}

func TestAuth_Rejections(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleDonor},
	}}
	valid := signToken(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"not bearer", "Basic " + valid},
		{"malformed header", "Bearer"},
		{"garbage token", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"expired token", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})},
		{"missing sub", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"unknown user", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"sub": "ghost",
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := invokeAuth(t, repo, tc.authorization)
			var httpErr *echo.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("expected *echo.HTTPError, got: %v", err)
			}
			if httpErr.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", httpErr.Code)
			}
		})
	}
}

func TestRBAC_AllowsMatchingRole(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(UserContextKey, &domain.User{ID: "u1", Role: domain.RoleVolunteer})

	called := false
	handler := RBAC(domain.RoleVolunteer, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("expected request to pass, got: %v", err)
	}
	if !called {
		t.Fatal("handler was not invoked")
	}
}

func TestRBAC_RejectsWrongRole(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(UserContextKey, &domain.User{ID: "u1", Role: domain.RoleDonor})

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})
	err := handler(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *echo.HTTPError, got: %v", err)
	}
	if httpErr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", httpErr.Code)
	}
}

func TestRBAC_RejectsUnauthenticated(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})
	err := handler(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *echo.HTTPError, got: %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", httpErr.Code)
	}
}
