package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/dto"
	"github.com/SscSPs/cashflow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// lifecycleHandler serves soft delete, restore and purge for one entity group.
type lifecycleHandler struct {
	svc    portssvc.LifecycleSvc
	entity domain.EntityType
}

// registerLifecycleRoutes adds the lifecycle endpoints to an entity group.
// Purge is limited to admins and managers.
func registerLifecycleRoutes(rg *gin.RouterGroup, svc portssvc.LifecycleSvc, entity domain.EntityType) {
	h := &lifecycleHandler{svc: svc, entity: entity}
	rg.DELETE("/:id", h.softDelete)
	rg.POST("/:id/restore", h.restore)
	rg.DELETE("/:id/purge", middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager), h.purge)
}

func (h *lifecycleHandler) softDelete(c *gin.Context) {
	h.run(c, "soft deleted", h.svc.SoftDelete)
}

func (h *lifecycleHandler) restore(c *gin.Context) {
	h.run(c, "restored", h.svc.Restore)
}

func (h *lifecycleHandler) purge(c *gin.Context) {
	h.run(c, "purged", h.svc.Purge)
}

func (h *lifecycleHandler) run(c *gin.Context, verb string, op func(ctx context.Context, id, userID string) error) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := op(c.Request.Context(), id, userID); err != nil {
		respondError(c, err, "Failed to change "+string(h.entity)+" state")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Record "+verb,
		slog.String("entity_type", string(h.entity)), slog.String("entity_id", id))
	c.JSON(http.StatusOK, dto.MessageResponse{Message: string(h.entity) + " " + verb})
}
