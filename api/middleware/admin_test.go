package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/easemart/easemart-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubAccessLoader struct {
	users map[uuid.UUID]*models.User
	err   error
}

func (s stubAccessLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func adminGate(loader AccessLoader) http.Handler {
	return RequireAdmin(loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func requestAs(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	return req.WithContext(WithUserID(req.Context(), userID))
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	adminID := uuid.New()
	loader := stubAccessLoader{users: map[uuid.UUID]*models.User{
		adminID: {ID: adminID, Access: models.Access{IsUser: true, IsAdmin: true}},
	}}

	resp := httptest.NewRecorder()
	adminGate(loader).ServeHTTP(resp, requestAs(adminID.String()))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRequireAdminForbidsRegularUser(t *testing.T) {
	userID := uuid.New()
	loader := stubAccessLoader{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Access: models.DefaultAccess()},
	}}

	resp := httptest.NewRecorder()
	adminGate(loader).ServeHTTP(resp, requestAs(userID.String()))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestRequireAdminRejectsDeletedCaller(t *testing.T) {
	loader := stubAccessLoader{users: map[uuid.UUID]*models.User{}}

	resp := httptest.NewRecorder()
	adminGate(loader).ServeHTTP(resp, requestAs(uuid.NewString()))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a caller whose record is gone, got %d", resp.Code)
	}
}

func TestRequireAdminRejectsMissingIdentity(t *testing.T) {
	loader := stubAccessLoader{users: map[uuid.UUID]*models.User{}}

	resp := httptest.NewRecorder()
	adminGate(loader).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireAdminSurfacesStoreFailure(t *testing.T) {
	loader := stubAccessLoader{err: gorm.ErrInvalidDB}

	resp := httptest.NewRecorder()
	adminGate(loader).ServeHTTP(resp, requestAs(uuid.NewString()))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
