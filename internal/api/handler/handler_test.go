package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/absoluteru/community-api/internal/api/middleware"
	"github.com/absoluteru/community-api/internal/core/domain"
)

// newJSONContext builds an echo context with the validator wired the same
// way the router wires it, so request validation runs in tests.
func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func signedIn(c echo.Context, role domain.Role) *domain.User {
	user := &domain.User{
		SteamID:     "76561198000000001",
		DisplayName: "scout",
		Avatar:      "https://avatars.example/scout.jpg",
		Role:        role,
	}
	middleware.SetCurrentUser(c, user)
	return user
}
