package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onlyfin/service-social/internal/application"
	"github.com/onlyfin/service-social/pkg/auth"
	"github.com/onlyfin/service-social/pkg/middleware"
	"github.com/onlyfin/service-social/pkg/response"
)

// targetQuery binds the username a request acts on.
type targetQuery struct {
	TargetUsername string `form:"targetUsername" binding:"required"`
}

// SubscriptionHandler handles HTTP requests for subscription operations.
type SubscriptionHandler struct {
	service *application.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(service *application.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// RegisterRoutes registers all subscription routes. limiters run on the
// write routes after authentication.
func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager, limiters ...gin.HandlerFunc) {
	authMW := middleware.AuthMiddleware(jwtManager)

	subs := r.Group("/subscriptions")
	subs.GET("/status", authMW, h.GetStatus)

	writes := subs.Group("", append([]gin.HandlerFunc{authMW}, limiters...)...)
	{
		writes.PUT("/add", h.Subscribe)
		writes.DELETE("/remove", h.Unsubscribe)
	}
}

// Subscribe handles PUT /subscriptions/add.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	h.mutate(c, h.service.Subscribe)
}

// Unsubscribe handles DELETE /subscriptions/remove.
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	h.mutate(c, h.service.Unsubscribe)
}

// mutate runs a subscription write. Both outcomes the client cares about are
// signalled by status alone: 200 on success, 404 for an unknown target.
func (h *SubscriptionHandler) mutate(c *gin.Context, op func(ctx context.Context, acting, target string) error) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var q targetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := op(c.Request.Context(), principal.Username, q.TargetUsername); err != nil {
		if errors.Is(err, application.ErrTargetNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		response.Error(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// GetStatus handles GET /subscriptions/status.
func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var q targetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetStatus(c.Request.Context(), principal.Username, q.TargetUsername)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
