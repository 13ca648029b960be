package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amartov/kinolog/internal/auth"
	"github.com/amartov/kinolog/internal/domain"
	"github.com/amartov/kinolog/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const testSecret = "middleware-test-secret-32-chars!!!!!"

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUserRepo only needs FindByID for the gateway; the rest are unused.
type fakeUserRepo struct {
	findByID func(ctx context.Context, id string) (*domain.User, error)
}

func (r *fakeUserRepo) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}
func (r *fakeUserRepo) UpsertWatched(_ context.Context, _ string, _ domain.WatchedEntry) error {
	return nil
}
func (r *fakeUserRepo) ListWatched(_ context.Context, _ string) ([]domain.WatchedEntry, error) {
	return nil, nil
}
func (r *fakeUserRepo) AddFavorite(_ context.Context, _ string, _ int64) error    { return nil }
func (r *fakeUserRepo) RemoveFavorite(_ context.Context, _ string, _ int64) error { return nil }
func (r *fakeUserRepo) ListFavorites(_ context.Context, _ string) ([]int64, error) {
	return nil, nil
}

var tokens = auth.NewTokenService([]byte(testSecret), time.Hour)

// newEngine builds a minimal gin engine with the Auth middleware protecting
// GET /protected. The handler echoes the userID set by the middleware.
func newEngine(repo *fakeUserRepo) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(tokens, repo), func(c *gin.Context) {
		c.String(http.StatusOK, "%s", c.GetString(middleware.UserIDKey))
	})
	return r
}

func knownUserRepo(id string) *fakeUserRepo {
	return &fakeUserRepo{
		findByID: func(_ context.Context, got string) (*domain.User, error) {
			if got != id {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: id, Email: "alice@x.com", Username: "alice"}, nil
		},
	}
}

func serve(repo *fakeUserRepo, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	newEngine(repo).ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	w := serve(knownUserRepo("user-1"), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_NonBearerScheme_Returns401(t *testing.T) {
	w := serve(knownUserRepo("user-1"), "Basic dXNlcjpwYXNz")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_InvalidToken_Returns401(t *testing.T) {
	w := serve(knownUserRepo("user-1"), "Bearer not.a.jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_DeletedAccount_Returns401(t *testing.T) {
	token, err := tokens.Issue("user-gone")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	w := serve(repo, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 (stale subject must look invalid)", w.Code)
	}
}

func TestAuth_ValidToken_PassesAndSetsUserID(t *testing.T) {
	const userID = "user-abc"
	token, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := serve(knownUserRepo(userID), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != userID {
		t.Errorf("body = %q, want %q", got, userID)
	}
}
