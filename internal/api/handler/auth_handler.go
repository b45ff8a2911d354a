package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodshare/foodshare-api/internal/core/domain"
	"github.com/foodshare/foodshare-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and returns a bearer token.
//
// @Summary      Register a new account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "role must be one of: donor, receiver, volunteer, admin")
	}

	token, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Location: req.Location,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Success: true, Token: token, User: toUserResponse(user)})
}

// Login authenticates a role-qualified email/password pair.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "role must be one of: donor, receiver, volunteer, admin")
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Success: true, Token: token, User: toUserResponse(user)})
}

// Volunteers lists all volunteer accounts. Admin only.
//
// @Summary      List volunteer accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  volunteersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users/volunteers [get]
func (h *AuthHandler) Volunteers(c echo.Context) error {
	volunteers, err := h.authService.Volunteers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, len(volunteers))
	for i, v := range volunteers {
		out[i] = toUserResponse(v)
	}
	return c.JSON(http.StatusOK, volunteersResponse{Success: true, Volunteers: out})
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		Location: u.Location,
		Phone:    u.Phone,
	}
}
