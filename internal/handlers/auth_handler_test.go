package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/libs/auth/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T, svc *mockAuthService) http.Handler {
	t.Helper()
	catalog := newTestCatalog(t)
	h := NewAuthHandler(svc, catalog, newTestValidator(t, catalog), time.Hour, 7*24*time.Hour, testLogger)
	return newTestRouter(catalog, 0, 0, func(r chi.Router) { h.RegisterRoutes(r, nil) })
}

func cookiesByName(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	cookies := make(map[string]*http.Cookie)
	for _, c := range w.Result().Cookies() {
		cookies[c.Name] = c
	}
	return cookies
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		svc            *mockAuthService
		expectedStatus int
		expectCookies  bool
		expectedError  string
	}{
		{
			name:           "success",
			body:           models.RegisterRequest{Name: "Dana Levi", Email: "dana@example.com", Password: "secret1"},
			svc:            &mockAuthService{registerResp: &models.RegisterResponse{ID: 5, Email: "dana@example.com"}, access: "a", refresh: "r"},
			expectedStatus: http.StatusCreated,
			expectCookies:  true,
		},
		{
			name:           "validation failure",
			body:           models.RegisterRequest{Name: "D", Email: "nope", Password: "1"},
			svc:            &mockAuthService{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "validation failed",
		},
		{
			name:           "unknown field",
			body:           `{"name":"Dana","email":"dana@example.com","password":"secret1","role":2}`,
			svc:            &mockAuthService{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
		{
			name:           "email exists",
			body:           models.RegisterRequest{Name: "Dana Levi", Email: "dana@example.com", Password: "secret1"},
			svc:            &mockAuthService{err: models.ErrEmailExists},
			expectedStatus: http.StatusConflict,
			expectedError:  "a user with this email already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, newAuthRouter(t, tt.svc), http.MethodPost, "/auth/register", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorMessage(t, w))
			}
			cookies := cookiesByName(w)
			if tt.expectCookies {
				require.Contains(t, cookies, middleware.AccessTokenCookie)
				require.Contains(t, cookies, RefreshTokenCookie)
				assert.Equal(t, "a", cookies[middleware.AccessTokenCookie].Value)
				assert.True(t, cookies[middleware.AccessTokenCookie].HttpOnly)
				assert.Equal(t, 3600, cookies[middleware.AccessTokenCookie].MaxAge)
				assert.Equal(t, 604800, cookies[RefreshTokenCookie].MaxAge)
				assert.Equal(t, i18n.English, tt.svc.gotLocale)
			} else {
				assert.Empty(t, cookies)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success sets cookies", func(t *testing.T) {
		svc := &mockAuthService{access: "a", refresh: "r"}
		w := doJSON(t, newAuthRouter(t, svc), http.MethodPost, "/auth/login", models.LoginRequest{Email: "dana@example.com", Password: "secret1"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "r", cookiesByName(w)[RefreshTokenCookie].Value)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := &mockAuthService{err: models.ErrInvalidCredentials}
		w := doJSON(t, newAuthRouter(t, svc), http.MethodPost, "/auth/login", models.LoginRequest{Email: "dana@example.com", Password: "wrong"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid email or password", errorMessage(t, w))
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("token from cookie", func(t *testing.T) {
		svc := &mockAuthService{access: "a2", refresh: "r2"}
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "r1"})
		w := httptest.NewRecorder()
		newAuthRouter(t, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "r1", svc.gotRefresh)
		assert.Equal(t, "r2", cookiesByName(w)[RefreshTokenCookie].Value)
	})

	t.Run("token from body", func(t *testing.T) {
		svc := &mockAuthService{access: "a2", refresh: "r2"}
		w := doJSON(t, newAuthRouter(t, svc), http.MethodPost, "/auth/refresh", RefreshRequest{RefreshToken: "body-token"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "body-token", svc.gotRefresh)
	})

	t.Run("missing token", func(t *testing.T) {
		w := doJSON(t, newAuthRouter(t, &mockAuthService{}), http.MethodPost, "/auth/refresh", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		svc := &mockAuthService{err: models.ErrInvalidToken}
		w := doJSON(t, newAuthRouter(t, svc), http.MethodPost, "/auth/refresh", RefreshRequest{RefreshToken: "old"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &mockAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(""))
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "r1"})
	w := httptest.NewRecorder()
	newAuthRouter(t, svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.logoutCalled)
	assert.Equal(t, "r1", svc.logoutToken)
	cookies := cookiesByName(w)
	require.Contains(t, cookies, middleware.AccessTokenCookie)
	assert.Empty(t, cookies[middleware.AccessTokenCookie].Value)
	assert.Less(t, cookies[RefreshTokenCookie].MaxAge, 0)
}
