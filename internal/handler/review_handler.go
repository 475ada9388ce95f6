package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onlyfin/service-social/internal/application"
	"github.com/onlyfin/service-social/pkg/auth"
	"github.com/onlyfin/service-social/pkg/middleware"
	"github.com/onlyfin/service-social/pkg/response"
)

// ReviewHandler handles HTTP requests for review operations.
type ReviewHandler struct {
	service *application.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// RegisterRoutes registers all review routes.
func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager, limiters ...gin.HandlerFunc) {
	authMW := middleware.AuthMiddleware(jwtManager)

	reviews := r.Group("/reviews")
	reviews.GET("", h.ListForTarget)

	writes := reviews.Group("", append([]gin.HandlerFunc{authMW}, limiters...)...)
	{
		writes.POST("", h.Create)
		writes.DELETE("", h.Withdraw)
	}
}

// Create handles POST /reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateReview(c.Request.Context(), principal.Username, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListForTarget handles GET /reviews.
func (h *ReviewHandler) ListForTarget(c *gin.Context) {
	var q targetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetReviewsForTarget(c.Request.Context(), q.TargetUsername)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Withdraw handles DELETE /reviews.
func (h *ReviewHandler) Withdraw(c *gin.Context) {
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

	result, err := h.service.WithdrawReviews(c.Request.Context(), principal.Username, q.TargetUsername)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
