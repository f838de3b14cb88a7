package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "fleetops/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testEnv(authRequired bool) intconfig.Env {
	return intconfig.Env{
		JWTSecret:          "router-secret",
		AuthRequired:       authRequired,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		ReportConcurrency:  2,
	}
}

func newTestRouter(t *testing.T, env intconfig.Env) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRouter(env, db), mock
}

func request(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u1", "role": role}).SignedString([]byte("router-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestHealthAndRoutes(t *testing.T) {
	r, _ := newTestRouter(t, testEnv(false))

	if w := request(r, http.MethodGet, "/api/health", "", ""); w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}

	w := request(r, http.MethodGet, "/api/routes", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("routes: %d", w.Code)
	}
	for _, p := range []string{"/api/reports/trips-by-vehicle", "/api/reports/trips-by-driver", "/api/reports/trips-by-client", "/api/reports/financial", "/api/reports/expenses", "/api/expenses/:id"} {
		if !strings.Contains(w.Body.String(), `"`+p+`"`) {
			t.Fatalf("route %s not registered", p)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t, testEnv(false))
	if w := request(r, http.MethodGet, "/api/nope", "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestReportsOpenWhenAuthNotRequired(t *testing.T) {
	r, mock := newTestRouter(t, testEnv(false))
	mock.ExpectQuery(`SELECT client_id, COUNT\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"client_id", "count", "total"}))

	w := request(r, http.MethodGet, "/api/reports/trips-by-client", "", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("unexpected %d %s", w.Code, w.Body.String())
	}
}

func TestAuthRequiredGatesAccess(t *testing.T) {
	r, mock := newTestRouter(t, testEnv(true))

	if w := request(r, http.MethodGet, "/api/reports/financial", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous report: %d", w.Code)
	}

	body := `{"plate":"ABC1D23","brand":"VW","model":"Bus","year":2020,"capacity":20}`
	if w := request(r, http.MethodPost, "/api/vehicles", token(t, "USER"), body); w.Code != http.StatusForbidden {
		t.Fatalf("user write: %d", w.Code)
	}

	mock.ExpectExec(`INSERT INTO vehicles`).WillReturnResult(sqlmock.NewResult(1, 1))
	if w := request(r, http.MethodPost, "/api/vehicles", token(t, "MANAGER"), body); w.Code != http.StatusCreated {
		t.Fatalf("manager write: %d %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
