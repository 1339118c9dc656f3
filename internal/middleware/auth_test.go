package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizhub_backend/internal/config"
	"quizhub_backend/internal/model"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type fakeSessions struct {
	active map[string]bool
}

func (f *fakeSessions) IsActive(_ context.Context, sessionID string) (bool, error) {
	return f.active[sessionID], nil
}

func newAuthRouter(cfg *config.Config, sessions SessionValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(cfg, sessions), func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return r
}

func issueToken(t *testing.T, cfg *config.Config) (string, string) {
	t.Helper()

	user := &model.User{Email: "alice@example.com"}
	user.ID = 42
	token, sessionID, err := util.GenerateJWT(user, cfg.JWT.Secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return token, sessionID
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "middleware-test-secret-0123456789"
	return cfg
}

func TestAuthMiddlewareAcceptsBearerHeader(t *testing.T) {
	cfg := testConfig()
	token, sessionID := issueToken(t, cfg)
	r := newAuthRouter(cfg, &fakeSessions{active: map[string]bool{sessionID: true}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestAuthMiddlewareAcceptsSessionCookie(t *testing.T) {
	cfg := testConfig()
	token, sessionID := issueToken(t, cfg)
	r := newAuthRouter(cfg, &fakeSessions{active: map[string]bool{sessionID: true}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: util.SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	cfg := testConfig()
	r := newAuthRouter(cfg, &fakeSessions{active: map[string]bool{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareRejectsRevokedSession(t *testing.T) {
	cfg := testConfig()
	token, _ := issueToken(t, cfg)
	// 令牌本身有效，但服务端会话已吊销
	r := newAuthRouter(cfg, &fakeSessions{active: map[string]bool{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	cfg := testConfig()
	other := testConfig()
	other.JWT.Secret = "a-completely-different-secret-000"
	token, sessionID := issueToken(t, other)
	r := newAuthRouter(cfg, &fakeSessions{active: map[string]bool{sessionID: true}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestTryAuthMiddlewarePassesGuestsThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	r := gin.New()
	r.GET("/open", TryAuthMiddleware(cfg, &fakeSessions{active: map[string]bool{}}), func(c *gin.Context) {
		if util.GetUserFromContext(c) != nil {
			c.Status(http.StatusForbidden)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for anonymous request", w.Code)
	}
}
