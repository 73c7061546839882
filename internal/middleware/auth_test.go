package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tradeyard/internal/common"
	"tradeyard/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// fakeSessionCache backs SessionVerifier tests with an in-memory session map.
type fakeSessionCache struct {
	sessions map[string]*models.User
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{sessions: make(map[string]*models.User)}
}

func (f *fakeSessionCache) GetWarehouse(context.Context, uuid.UUID) (*models.Warehouse, error) {
	return nil, nil
}
func (f *fakeSessionCache) SetWarehouse(context.Context, *models.Warehouse, time.Duration) error {
	return nil
}
func (f *fakeSessionCache) DeleteWarehouse(context.Context, uuid.UUID) error { return nil }

func (f *fakeSessionCache) SetSession(_ context.Context, sessionID string, userID uuid.UUID, role string, _ time.Duration) error {
	f.sessions[sessionID] = &models.User{ID: userID, Role: role}
	return nil
}

func (f *fakeSessionCache) GetSession(_ context.Context, sessionID string) (uuid.UUID, string, error) {
	user, ok := f.sessions[sessionID]
	if !ok {
		return uuid.Nil, "", nil
	}
	return user.ID, user.Role, nil
}

func (f *fakeSessionCache) DeleteSession(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeSessionCache) SetString(context.Context, string, string, time.Duration) error {
	return nil
}
func (f *fakeSessionCache) GetString(context.Context, string) (string, error) { return "", nil }
func (f *fakeSessionCache) Delete(context.Context, string) error              { return nil }

func identityEcho(t *testing.T, verifier TokenVerifier, req *http.Request) (*httptest.ResponseRecorder, uuid.UUID, string) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID uuid.UUID
	var gotRole string
	handler := Authenticate(verifier)(func(c echo.Context) error {
		gotID, _ = common.GetUserIDFromContext(c.Request().Context())
		gotRole, _ = common.GetRoleFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, gotID, gotRole
}

func TestAuthenticateSessionCookieResolvesIdentity(t *testing.T) {
	cache := newFakeSessionCache()
	userID := uuid.New()
	assert.NoError(t, cache.SetSession(context.Background(), "session-abc", userID, models.RoleDealer, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session-abc"})

	rec, gotID, gotRole := identityEcho(t, NewSessionVerifier(cache), req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, models.RoleDealer, gotRole)
}

func TestAuthenticateExpiredSessionUnauthorized(t *testing.T) {
	cache := newFakeSessionCache()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "long-gone"})

	rec, _, _ := identityEcho(t, NewSessionVerifier(cache), req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec, _, _ := identityEcho(t, NewHMACVerifier("secret"), req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
