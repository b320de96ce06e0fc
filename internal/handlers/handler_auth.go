package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/dto"
	"github.com/SscSPs/cashflow_backend/internal/middleware"
	"github.com/SscSPs/cashflow_backend/internal/platform/config"
	"github.com/SscSPs/cashflow_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	resetService portssvc.PasswordResetSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *AuthHandler {
	return &AuthHandler{
		userService:  services.User,
		tokenService: services.TokenService,
		resetService: services.PasswordReset,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the routes for authentication.
// Login and reset requests share the per-IP rate limiter.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, limit gin.HandlerFunc) {
	h := NewAuthHandler(cfg, services)
	authenticated := middleware.AuthMiddleware(cfg.JWTSecret, services.TokenService)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", limit, h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", authenticated, h.Logout)
		auth.GET("/profile", authenticated, h.Profile)

		auth.POST("/reset-password", limit, h.RequestPasswordReset)
		auth.GET("/reset-password/:token", h.ValidateResetToken)
		auth.POST("/reset-password/:token", limit, h.ResetPassword)
	}
}

// Register godoc
// @Summary Register new user
// @Description Creates a user with the "user" role.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "Weak password or invalid input"
// @Failure 409 {object} ErrorResponse "Username or email already in use"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Login godoc
// @Summary User login
// @Description Authenticates a user, returns an access token and sets the refresh token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	access, ok := h.issueTokens(c, user)
	if !ok {
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: access.Token, ExpiresAt: access.ExpiresAt, User: dto.ToUserResponse(user)})
}

// Refresh godoc
// @Summary Refresh the access token
// @Description Reads the refresh token from the cookie (or the body), returns a new access token and rotates the refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest false "Refresh token for clients without cookies"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse "Missing, unknown or expired refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	raw, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || raw == "" {
		var req dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
		raw = req.RefreshToken
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), raw)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) || errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			h.clearRefreshCookie(c)
		}
		respondError(c, err, "Failed to refresh token")
		return
	}

	access, ok := h.issueTokens(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: access.Token, ExpiresAt: access.ExpiresAt})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the presented access token and clears the refresh token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	info, ok := middleware.GetAuthInfoFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	ctx := c.Request.Context()
	if err := h.tokenService.RevokeAccessToken(ctx, info.UserID, info.JTI, time.Unix(info.ExpiresAt, 0)); err != nil {
		respondError(c, err, "Failed to log out")
		return
	}
	if err := h.userService.ClearRefreshToken(ctx, info.UserID); err != nil {
		respondError(c, err, "Failed to log out")
		return
	}
	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// Profile godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// RequestPasswordReset godoc
// @Summary Request a password reset mail
// @Description Always answers 200 so the response does not reveal which emails are registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.resetService.RequestReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to process reset request")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "If the email is registered, a reset link has been sent"})
}

// ValidateResetToken godoc
// @Summary Check a password reset token
// @Tags auth
// @Produce json
// @Param token path string true "Reset token"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Unknown, used or expired token"
// @Router /auth/reset-password/{token} [get]
func (h *AuthHandler) ValidateResetToken(c *gin.Context) {
	if err := h.resetService.ValidateResetToken(c.Request.Context(), c.Param("token")); err != nil {
		respondError(c, err, "Failed to validate reset token")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Token is valid"})
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Weak password or unusable token"
// @Router /auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.resetService.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset"})
}

// issueTokens creates an access token and a fresh refresh token cookie for user.
func (h *AuthHandler) issueTokens(c *gin.Context, user *domain.User) (utils.IssuedToken, bool) {
	ctx := c.Request.Context()
	access, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return utils.IssuedToken{}, false
	}
	refresh, expiresAt, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return utils.IssuedToken{}, false
	}
	h.setRefreshCookie(c, refresh, time.Until(expiresAt))
	return access, true
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, ttl time.Duration) {
	// Cross-site frontends need SameSite=None, which browsers only accept on secure cookies.
	if h.cfg.IsProduction {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.cfg.RefreshTokenCookieName, value, int(ttl.Seconds()), h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	h.setRefreshCookie(c, "", -time.Second)
}
