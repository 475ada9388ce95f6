package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/onlyfin/service-social/internal/application"
	"github.com/onlyfin/service-social/pkg/auth"
	"github.com/onlyfin/service-social/pkg/middleware"
	"github.com/onlyfin/service-social/pkg/response"
)

// AdminHandler handles admin HTTP requests for moderation.
type AdminHandler struct {
	accountService *application.AccountService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(accountService *application.AccountService) *AdminHandler {
	return &AdminHandler{accountService: accountService}
}

// RegisterRoutes registers admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/admin")
	admin.Use(authMW, adminRole)
	{
		admin.DELETE("/users/:username/reviews", h.PurgeAuthoredReviews)
	}
}

// PurgeAuthoredReviews handles DELETE /admin/users/:username/reviews.
func (h *AdminHandler) PurgeAuthoredReviews(c *gin.Context) {
	result, err := h.accountService.PurgeAuthoredReviews(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
