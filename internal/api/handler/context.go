package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodshare/foodshare-api/internal/api/middleware"
	"github.com/foodshare/foodshare-api/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the Auth middleware.
// Its presence proves the middleware ran; absence is an authentication
// failure, not an authorization one.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
