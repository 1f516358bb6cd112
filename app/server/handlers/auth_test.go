package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arju88nair/shelvedBackend/app/server/jwt"
	"github.com/arju88nair/shelvedBackend/app/server/ledger"
	"github.com/arju88nair/shelvedBackend/app/server/middlewares"
	"github.com/arju88nair/shelvedBackend/app/server/models"
	"github.com/arju88nair/shelvedBackend/app/server/summarizer"
	"github.com/arju88nair/shelvedBackend/app/server/types"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupAuthServer wires the auth routes the way main does, over an
// in-memory database.
func setupAuthServer(t *testing.T, name string) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.RevokedToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	l := zap.NewNop()
	j, err := jwt.New("test-signing-key")
	if err != nil {
		t.Fatalf("new jwt: %v", err)
	}
	lg := ledger.New(db, nil, l)
	app := NewApp(l, db, nil, j, lg, summarizer.NewExtractive())

	e := echo.New()
	api := e.Group("/api")
	api.POST("/auth/signup", app.Signup)
	api.POST("/auth/login", app.Login)
	api.POST("/auth/refresh", app.Refresh, middlewares.RefreshAuth(j, lg, l))
	api.DELETE("/auth/logout", app.Logout, middlewares.AccessAuth(j, lg, l))
	api.DELETE("/auth/revoke", app.RevokeRefresh, middlewares.RefreshAuth(j, lg, l))

	return e
}

func doJSON(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signup(t *testing.T, e *echo.Echo, username, email, password string) types.AuthResponse {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/api/auth/signup",
		`{"username":"`+username+`","email":"`+email+`","password":"`+password+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("signup status = %d, body %s", rec.Code, rec.Body.String())
	}

	var res types.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	return res
}

func TestSignupIssuesTokenPair(t *testing.T) {
	e := setupAuthServer(t, "auth_signup")

	res := signup(t, e, "ana", "ana@x.com", "secret1")
	if res.ID == 0 {
		t.Fatal("expected a user id")
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatal("expected both tokens in the response")
	}
	if res.Username != "ana" || res.Email != "ana@x.com" {
		t.Fatalf("unexpected profile echo: %+v", res)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	e := setupAuthServer(t, "auth_dup_email")

	signup(t, e, "ana", "ana@x.com", "secret1")

	rec := doJSON(e, http.MethodPost, "/api/auth/signup",
		`{"username":"ana2","email":"ana@x.com","password":"secret1"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email status = %d, want 400", rec.Code)
	}

	var res types.ErrorMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if !strings.Contains(res.Message, "email") {
		t.Fatalf("expected an email conflict message, got %q", res.Message)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	e := setupAuthServer(t, "auth_dup_username")

	signup(t, e, "ana", "ana@x.com", "secret1")

	rec := doJSON(e, http.MethodPost, "/api/auth/signup",
		`{"username":"ana","email":"other@x.com","password":"secret1"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate username status = %d, want 400", rec.Code)
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	e := setupAuthServer(t, "auth_short_pw")

	rec := doJSON(e, http.MethodPost, "/api/auth/signup",
		`{"username":"ana","email":"ana@x.com","password":"short"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short password status = %d, want 400", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	e := setupAuthServer(t, "auth_login")

	signup(t, e, "ana", "ana@x.com", "secret1")

	rec := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"ana@x.com","password":"secret1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"ana@x.com","password":"wrong-pass"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"nobody@x.com","password":"secret1"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown email status = %d, want 400", rec.Code)
	}
}

func TestRefreshRequiresRefreshToken(t *testing.T) {
	e := setupAuthServer(t, "auth_refresh")

	res := signup(t, e, "ana", "ana@x.com", "secret1")

	// The refresh token works
	rec := doJSON(e, http.MethodPost, "/api/auth/refresh", "", res.RefreshToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body %s", rec.Code, rec.Body.String())
	}
	var refreshed types.RefreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("decode refresh response: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("expected a new access token")
	}

	// The access token is the wrong type here
	rec = doJSON(e, http.MethodPost, "/api/auth/refresh", "", res.AccessToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("refresh with access token status = %d, want 403", rec.Code)
	}
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	e := setupAuthServer(t, "auth_logout")

	res := signup(t, e, "ana", "ana@x.com", "secret1")

	rec := doJSON(e, http.MethodDelete, "/api/auth/logout", "", res.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d, body %s", rec.Code, rec.Body.String())
	}

	// The revoked token no longer authenticates
	rec = doJSON(e, http.MethodDelete, "/api/auth/logout", "", res.AccessToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("second logout status = %d, want 403", rec.Code)
	}
}

func TestRevokeRefreshToken(t *testing.T) {
	e := setupAuthServer(t, "auth_revoke")

	res := signup(t, e, "ana", "ana@x.com", "secret1")

	rec := doJSON(e, http.MethodDelete, "/api/auth/revoke", "", res.RefreshToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("revoke status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/refresh", "", res.RefreshToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("refresh after revoke status = %d, want 403", rec.Code)
	}
}
