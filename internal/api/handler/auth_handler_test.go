package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/foodshare/foodshare-api/internal/core/domain"
	"github.com/foodshare/foodshare-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub auth service
// ---------------------------------------------------------------------------

type stubAuthService struct {
	registerErr error
	loginErr    error
	volunteers  []*domain.User
	lastInput   ports.RegisterInput
	lastRole    domain.Role
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	if s.registerErr != nil {
		return "", nil, s.registerErr
	}
	s.lastInput = input
	return "token-123", &domain.User{
		ID:       "u1",
		Name:     input.Name,
		Email:    input.Email,
		Role:     input.Role,
		Location: input.Location,
		Phone:    input.Phone,
	}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string, role domain.Role) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	s.lastRole = role
	return "token-123", &domain.User{ID: "u1", Email: email, Role: role}, nil
}

func (s *stubAuthService) Volunteers(context.Context) ([]*domain.User, error) {
	return s.volunteers, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const validRegisterBody = `{
	"name": "Alice",
	"email": "alice@example.com",
	"password": "correcthorse",
	"role": "donor",
	"location": "Springfield",
	"phone": "+1 555 0100"
}`

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthHandler_Register_Success(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/api/users/register", validRegisterBody)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success || resp.Token != "token-123" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.User.Email != "alice@example.com" || resp.User.Role != "donor" {
		t.Errorf("unexpected user: %+v", resp.User)
	}
	if svc.lastInput.Role != domain.RoleDonor {
		t.Errorf("service received role %s, want donor", svc.lastInput.Role)
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"bad email", `{"name":"A","email":"not-an-email","password":"correcthorse","role":"donor","location":"X","phone":"+1 555 0100"}`},
		{"short password", `{"name":"A","email":"a@example.com","password":"short","role":"donor","location":"X","phone":"+1 555 0100"}`},
		{"unknown role", `{"name":"A","email":"a@example.com","password":"correcthorse","role":"client","location":"X","phone":"+1 555 0100"}`},
		{"bad phone", `{"name":"A","email":"a@example.com","password":"correcthorse","role":"donor","location":"X","phone":"abc"}`},
		{"malformed json", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodPost, "/api/users/register", tc.body)
			err := h.Register(c)
			var httpErr *echo.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("expected *echo.HTTPError, got: %v", err)
			}
			if httpErr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", httpErr.Code)
			}
		})
	}
}

func TestAuthHandler_Register_DuplicateEmailPassesThrough(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrUserExists})

	c, _ := newJSONContext(http.MethodPost, "/api/users/register", validRegisterBody)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to pass to the error handler, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/api/users/login",
		`{"email":"alice@example.com","password":"correcthorse","role":"receiver"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.lastRole != domain.RoleReceiver {
		t.Errorf("service received role %s, want receiver", svc.lastRole)
	}
}

func TestAuthHandler_Login_InvalidCredentialsPassesThrough(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	c, _ := newJSONContext(http.MethodPost, "/api/users/login",
		`{"email":"alice@example.com","password":"wrong","role":"receiver"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to pass to the error handler, got: %v", err)
	}
}

func TestAuthHandler_Login_RejectsUnknownRole(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodPost, "/api/users/login",
		`{"email":"alice@example.com","password":"correcthorse","role":"superadmin"}`)
	err := h.Login(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *echo.HTTPError, got: %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", httpErr.Code)
	}
}

// ---------------------------------------------------------------------------
// Volunteers
// ---------------------------------------------------------------------------

func TestAuthHandler_Volunteers(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{volunteers: []*domain.User{
		{ID: "v1", Name: "Vera", Email: "vera@example.com", Role: domain.RoleVolunteer},
	}})

	c, rec := newJSONContext(http.MethodGet, "/api/users/volunteers", "")
	if err := h.Volunteers(c); err != nil {
		t.Fatalf("Volunteers returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp volunteersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Volunteers) != 1 || resp.Volunteers[0].Email != "vera@example.com" {
		t.Errorf("unexpected directory: %+v", resp.Volunteers)
	}
}
