package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(mw...)
	r.GET("/x", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetUserID(c), "role": c.GetString(userRoleKey), "rid": GetRequestID(c)})
	})
	return r
}

func do(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := newEngine()

	w := do(r, nil)
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected generated request id")
	}

	w = do(r, map[string]string{"X-Request-ID": "abc-123"})
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("incoming id should be kept, got %q", got)
	}
}

func TestAuthOptionalAllowsAnonymous(t *testing.T) {
	w := do(newEngine(Auth(testSecret, false)), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	w := do(newEngine(Auth(testSecret, true)), nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	tok := signToken(t, jwt.MapClaims{"user_id": "u1", "role": "MANAGER", "exp": time.Now().Add(time.Hour).Unix()}, testSecret)
	w := do(newEngine(Auth(testSecret, true)), map[string]string{"Authorization": "Bearer " + tok})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	cases := map[string]string{
		"wrong secret": signToken(t, jwt.MapClaims{"user_id": "u1", "role": "ADMIN"}, "other"),
		"expired":      signToken(t, jwt.MapClaims{"user_id": "u1", "role": "ADMIN", "exp": time.Now().Add(-time.Hour).Unix()}, testSecret),
		"no role":      signToken(t, jwt.MapClaims{"user_id": "u1"}, testSecret),
		"garbage":      "not.a.token",
	}
	for name, tok := range cases {
		w := do(newEngine(Auth(testSecret, false)), map[string]string{"Authorization": "Bearer " + tok})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d", name, w.Code)
		}
	}
}

func TestRequireRoles(t *testing.T) {
	r := newEngine(Auth(testSecret, false), RequireRoles("ADMIN", "MANAGER"))

	if w := do(r, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d", w.Code)
	}

	user := signToken(t, jwt.MapClaims{"user_id": "u2", "role": "USER"}, testSecret)
	if w := do(r, map[string]string{"Authorization": "Bearer " + user}); w.Code != http.StatusForbidden {
		t.Fatalf("user role: status = %d", w.Code)
	}

	admin := signToken(t, jwt.MapClaims{"user_id": "u1", "role": "admin"}, testSecret)
	if w := do(r, map[string]string{"Authorization": "Bearer " + admin}); w.Code != http.StatusOK {
		t.Fatalf("admin role: status = %d", w.Code)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := newEngine(CORS([]string{"http://localhost:5173"}))
	w := do(r, map[string]string{"Origin": "http://localhost:5173"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow origin = %q", got)
	}
}
