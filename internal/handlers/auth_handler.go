package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/businesscontrol/portal/internal/i18n"
	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/validation"
	"github.com/businesscontrol/portal/libs/auth/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RefreshTokenCookie is the cookie carrying the refresh token
const RefreshTokenCookie = "refresh_token"

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Register creates a student account and returns it with access and refresh tokens.
	//
	// "req" parameter contains name, email and password.
	// "locale" parameter is the request language and becomes the preferred locale.
	//
	// If such user already exists models.ErrEmailExists is returned together with empty tokens.
	Register(ctx context.Context, req *models.RegisterRequest, locale string) (*models.RegisterResponse, string, string, error)
	// Method Login performs a user credentials validation and returns access and refresh tokens.
	//
	// "req" parameter contains email and password.
	//
	// If credentials are wrong models.ErrInvalidCredentials is returned together with empty strings.
	Login(ctx context.Context, req *models.LoginRequest) (string, string, error)
	// Method Refresh performs a refresh token validation and returns a new access token and refresh token.
	//
	// "refreshToken" parameter is used to identify the user.
	//
	// If refresh token is invalid or expired, an error wrapping models.ErrInvalidToken is returned.
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	// Method Logout forgets a refresh token.
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	portalHandler
	authService   AuthService
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService AuthService,
	catalog *i18n.Catalog,
	validator *validation.Validator,
	accessExpiry, refreshExpiry time.Duration,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		portalHandler: newPortalHandler(catalog, validator, logger),
		authService:   authService,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// RegisterRoutes registers all auth handler routes.
// limiter guards credential endpoints and may be nil.
func (h *AuthHandler) RegisterRoutes(r chi.Router, limiter func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		if limiter != nil {
			r.With(limiter).Post("/register", h.Register)
			r.With(limiter).Post("/login", h.Login)
		} else {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		}
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
	})
}

// Register handles POST /auth/register
// @Summary Register a new student
// @Description Creates a student account. Access and refresh tokens are returned as HTTP-only cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 409 {object} map[string]string "Email already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, accessToken, refreshToken, err := h.authService.Register(r.Context(), &req, h.locale(r))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.setTokenCookies(w, accessToken, refreshToken)
	h.RespondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticates with email and password. Returns access and refresh tokens as HTTP-only cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} map[string]string "Login successful"
// @Failure 400 {object} map[string]any "Validation failed"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	accessToken, refreshToken, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.setTokenCookies(w, accessToken, refreshToken)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "login successful"})
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /auth/refresh
// @Summary Refresh access token
// @Description Rotates the refresh token. The token can be provided in the request body or as a cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest false "Refresh token request (optional if using cookie)"
// @Success 200 {object} map[string]string "Tokens refreshed successfully"
// @Failure 400 {object} map[string]string "Refresh token required"
// @Failure 401 {object} map[string]string "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := h.refreshToken(r)
	if refreshToken == "" {
		h.respondMessage(w, r, http.StatusBadRequest, i18n.MsgInvalidRequest)
		return
	}

	accessToken, newRefreshToken, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		h.Logger.Debug("refresh rejected", zap.Error(err))
		h.respondServiceError(w, r, err)
		return
	}

	h.setTokenCookies(w, accessToken, newRefreshToken)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "tokens refreshed successfully"})
}

// Logout handles POST /auth/logout
// @Summary Logout user
// @Description Forgets the refresh token and clears the auth cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), h.refreshToken(r)); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.clearTokenCookies(w)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// refreshToken reads the refresh token from the JSON body or the cookie
func (h *AuthHandler) refreshToken(r *http.Request) string {
	var req RefreshRequest
	if err := h.DecodeJSON(r, &req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// setTokenCookies sets access and refresh tokens as HTTP-only cookies
func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, tokenCookie(middleware.AccessTokenCookie, accessToken, int(h.accessExpiry.Seconds())))
	http.SetCookie(w, tokenCookie(RefreshTokenCookie, refreshToken, int(h.refreshExpiry.Seconds())))
}

// clearTokenCookies expires both auth cookies
func (h *AuthHandler) clearTokenCookies(w http.ResponseWriter) {
	http.SetCookie(w, tokenCookie(middleware.AccessTokenCookie, "", -1))
	http.SetCookie(w, tokenCookie(RefreshTokenCookie, "", -1))
}

func tokenCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
