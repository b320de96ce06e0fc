package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/dto"
	"github.com/SscSPs/cashflow_backend/internal/middleware"
	"github.com/SscSPs/cashflow_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// adminHandler serves user administration and maintenance endpoints.
type adminHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	resetService portssvc.PasswordResetSvcFacade
	auditService portssvc.AuditLogSvcFacade
	cfg          *config.Config
}

func registerAdminRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := &adminHandler{
		userService:  services.User,
		tokenService: services.TokenService,
		resetService: services.PasswordReset,
		auditService: services.AuditLog,
		cfg:          cfg,
	}

	staff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	rg.GET("/audit-logs", staff, h.listAuditLogs)

	admin := rg.Group("/admin")
	{
		admin.GET("/users", staff, h.listUsers)
		admin.PUT("/users/:username/role", adminOnly, h.setRole)
		admin.DELETE("/reset-tokens", adminOnly, h.cleanupTokens)
	}
}

// listUsers godoc
// @Summary List users
// @Tags admin
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 403 {object} ErrorResponse "Access denied"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *adminHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if !bindQuery(c, &params) {
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// setRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   username path string true "Username"
// @Param   role body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} ErrorResponse "Access denied"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{username}/role [put]
func (h *adminHandler) setRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.SetRole(c.Request.Context(), c.Param("username"), req.Role, userID)
	if err != nil {
		respondError(c, err, "Failed to change role")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Role changed",
		slog.String("target_user_id", user.UserID), slog.String("role", string(user.Role)))
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// cleanupTokens godoc
// @Summary Delete old reset tokens and expired token revocations
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.CleanupResponse
// @Failure 403 {object} ErrorResponse "Access denied"
// @Security BearerAuth
// @Router /admin/reset-tokens [delete]
func (h *adminHandler) cleanupTokens(c *gin.Context) {
	ctx := c.Request.Context()
	resets, err := h.resetService.DeleteOldResetTokens(ctx, h.cfg.ResetTokenRetention)
	if err != nil {
		respondError(c, err, "Failed to delete old reset tokens")
		return
	}
	revoked, err := h.tokenService.DeleteExpiredRevocations(ctx)
	if err != nil {
		respondError(c, err, "Failed to delete expired revocations")
		return
	}
	c.JSON(http.StatusOK, dto.CleanupResponse{ResetTokensDeleted: resets, RevokedTokensDeleted: revoked})
}

// listAuditLogs godoc
// @Summary List audit log entries, newest first
// @Tags audit
// @Produce  json
// @Param   entity_type query string false "Entity type"
// @Param   entity_id query string false "Entity ID"
// @Param   user_id query string false "Acting user"
// @Param   limit query int false "Page size" default(20)
// @Param   next_token query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 400 {object} ErrorResponse "Invalid next_token"
// @Failure 403 {object} ErrorResponse "Access denied"
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *adminHandler) listAuditLogs(c *gin.Context) {
	var params dto.ListAuditLogsParams
	if !bindQuery(c, &params) {
		return
	}
	logs, next, err := h.auditService.ListAuditLogs(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAuditLogsResponse(logs, next))
}
