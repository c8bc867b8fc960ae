package salarypolicy

import (
	"go-academy/internal/middleware"
	"go-academy/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	policies := r.Group("/salary-policies")
	policies.Use(middleware.AuthMiddleware())
	{
		policies.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary_policy", "read"),
			handler.GetAll,
		)
		policies.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary_policy", "read"),
			handler.GetById,
		)
		policies.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_policy", "create"),
			handler.Create,
		)
		policies.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_policy", "update"),
			handler.Update,
		)
		policies.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "salary_policy", "update"),
			handler.Deactivate,
		)
	}
}
