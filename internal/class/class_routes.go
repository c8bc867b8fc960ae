package class

import (
	"go-academy/internal/middleware"
	"go-academy/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	classes := r.Group("/classes")
	classes.Use(middleware.AuthMiddleware())
	classes.Use(middleware.ContextLogger(logger))
	{
		classes.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "class", "read"),
			handler.GetAll,
		)

		classes.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "class", "read"),
			handler.GetById,
		)

		classes.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "class", "create"),
			handler.Create,
		)

		classes.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "class", "update"),
			handler.Update,
		)

		classes.POST("/:id/complete",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "class", "update"),
			handler.Complete,
		)

		classes.POST("/:id/cancel",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "class", "update"),
			handler.Cancel,
		)

		classes.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "class", "delete"),
			handler.Delete,
		)
	}
}
