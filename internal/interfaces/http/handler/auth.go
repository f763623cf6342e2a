package handler

import (
	"net/http"
	"time"

	"github.com/projecthub/backend/internal/application/identity"
	"github.com/projecthub/backend/internal/interfaces/http/dto"
	"github.com/projecthub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// refreshTokenCookie is the name of the HTTP-only cookie mirroring the
// refresh token for browser clients.
const refreshTokenCookie = "refresh_token"

// CookieOptions controls the refresh-token cookie written on login,
// registration, and refresh.
type CookieOptions struct {
	Domain   string
	Path     string
	Secure   bool
	SameSite string // "strict", "lax", or "none"
}

func (o CookieOptions) sameSite() http.SameSite {
	switch o.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// AuthHandlerOption configures an AuthHandler.
type AuthHandlerOption func(*AuthHandler)

// WithRefreshCookie makes the handler mirror the refresh token into an
// HTTP-only cookie and accept it from there when the refresh request body
// omits one.
func WithRefreshCookie(opts CookieOptions) AuthHandlerOption {
	return func(h *AuthHandler) {
		h.cookie = &opts
	}
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	cookie      *CookieOptions
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService, opts ...AuthHandlerOption) *AuthHandler {
	h := &AuthHandler{
		authService: authService,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// setRefreshCookie writes the refresh token cookie, expiring alongside the
// token itself.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	if h.cookie == nil {
		return
	}
	c.SetSameSite(h.cookie.sameSite())
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetCookie(refreshTokenCookie, token, maxAge, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	if h.cookie == nil {
		return
	}
	c.SetSameSite(h.cookie.sameSite())
	c.SetCookie(refreshTokenCookie, "", -1, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func toAuthUserResponse(u identity.UserInfo) AuthUserResponse {
	return AuthUserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Status:      u.Status,
	}
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), identity.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, result.RefreshTokenExpiresAt)

	h.Created(c, RegisterResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
		User: toAuthUserResponse(result.User),
	})
}

// Login authenticates a user with username and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	// Get client IP for login tracking
	clientIP := c.ClientIP()

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Username: req.Username,
		Password: req.Password,
		IP:       clientIP,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, result.RefreshTokenExpiresAt)

	response := LoginResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
		User: toAuthUserResponse(result.User),
	}

	h.Success(c, response)
}

// RefreshToken exchanges a refresh token for a fresh pair. The token comes
// from the request body, or from the refresh cookie when the body omits it.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if h.cookie == nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
		cookie, cookieErr := c.Cookie(refreshTokenCookie)
		if cookieErr != nil || cookie == "" {
			h.BadRequest(c, "Invalid request body")
			return
		}
		req.RefreshToken = cookie
	}

	// The auth service extracts user info from the refresh token itself
	result, err := h.authService.RefreshToken(c.Request.Context(), identity.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, result.RefreshTokenExpiresAt)

	response := RefreshTokenResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
	}

	h.Success(c, response)
}

// Logout invalidates the current session
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID in token")
		return
	}

	err = h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		UserID:   userID,
		TokenJTI: claims.ID,
		TokenTTL: claims.GetRemainingTTL(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.clearRefreshCookie(c)

	h.Success(c, LogoutResponse{
		Message: "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user's profile
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID in token")
		return
	}

	result, err := h.authService.GetCurrentUser(c.Request.Context(), identity.GetCurrentUserInput{
		UserID: userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CurrentUserResponse{User: toAuthUserResponse(result.User)})
}

// ChangePassword changes the current user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID in token")
		return
	}

	err = h.authService.ChangePassword(c.Request.Context(), identity.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"message": "Password changed successfully",
	}))
}
