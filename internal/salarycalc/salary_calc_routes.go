package salarycalc

import (
	"go-academy/internal/middleware"
	"go-academy/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	calculations := r.Group("/salary-calculations")
	calculations.Use(middleware.AuthMiddleware())
	{
		calculations.GET("", middleware.RBACAuthorize(rbacService, "salary_calculation", "read"), handler.GetAll)
		calculations.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_calculation", "read"), handler.GetById)
		if redisClient != nil {
			calculations.POST(
				"/calculate",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "salary_calculation", "create"),
				handler.Calculate,
			)
		} else {
			calculations.POST("/calculate", middleware.RBACAuthorize(rbacService, "salary_calculation", "create"), handler.Calculate)
		}
		calculations.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "salary_calculation", "approve"), handler.Approve)
		calculations.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "salary_calculation", "pay"), handler.MarkAsPaid)
	}
}
