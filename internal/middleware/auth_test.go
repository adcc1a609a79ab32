package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foodfast-user-service/internal/config"
	"foodfast-user-service/internal/domain/user"
	"foodfast-user-service/pkg/utils"
)

const testSecret = "middleware-test-secret"

func testCfg() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: testSecret, ExpiryHours: 1}}
}

func issueToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token, _, err := utils.GenerateToken(userID, "a@x.com", role, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	return token
}

func newAuthRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := append([]gin.HandlerFunc{AuthMiddleware(testCfg())}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingAndMalformedHeaders(t *testing.T) {
	router := newAuthRouter()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"bearer without token", "Bearer"},
		{"garbage token", "Bearer garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doRequest(router, "/protected", tt.header); w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	router := newAuthRouter()

	expired, _, err := utils.GenerateToken(uuid.New(), "a@x.com", user.RoleCustomer, testSecret, 0)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	if w := doRequest(router, "/protected", "Bearer "+expired); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareStoresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	userID := uuid.New()
	var gotID uuid.UUID
	var gotRole string
	router.GET("/protected", AuthMiddleware(testCfg()), func(c *gin.Context) {
		gotID = c.MustGet(ContextUserIDKey).(uuid.UUID)
		gotRole = c.MustGet(ContextRoleKey).(string)
		c.Status(http.StatusOK)
	})

	w := doRequest(router, "/protected", "Bearer "+issueToken(t, userID, user.RoleAdmin))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotID != userID || gotRole != user.RoleAdmin {
		t.Fatalf("unexpected context claims: id=%s role=%s", gotID, gotRole)
	}
}

func TestRoleMiddleware(t *testing.T) {
	router := newAuthRouter(AdminOnly())

	if w := doRequest(router, "/protected", "Bearer "+issueToken(t, uuid.New(), user.RoleCustomer)); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", w.Code)
	}
	if w := doRequest(router, "/protected", "Bearer "+issueToken(t, uuid.New(), user.RoleAdmin)); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}

func TestSelfOrAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/users/:user_id",
		AuthMiddleware(testCfg()),
		SelfOrAdminMiddleware("user_id"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	owner := uuid.New()
	other := uuid.New()

	do := func(target uuid.UUID, token string) int {
		req := httptest.NewRequest(http.MethodPut, "/users/"+target.String(), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := do(owner, issueToken(t, owner, user.RoleCustomer)); code != http.StatusOK {
		t.Fatalf("owner on own record: expected 200, got %d", code)
	}
	if code := do(owner, issueToken(t, other, user.RoleCustomer)); code != http.StatusForbidden {
		t.Fatalf("customer on another record: expected 403, got %d", code)
	}
	if code := do(owner, issueToken(t, other, user.RoleAdmin)); code != http.StatusOK {
		t.Fatalf("admin on another record: expected 200, got %d", code)
	}

	req := httptest.NewRequest(http.MethodPut, "/users/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, owner, user.RoleCustomer))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid target id: expected 400, got %d", w.Code)
	}
}
