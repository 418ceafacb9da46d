package leave

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", rbac.Authorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", rbac.Authorize(rbacService, "leave", "read"), handler.GetById)
		leaves.GET("/balance/:employeeID", rbac.Authorize(rbacService, "leave", "read"), handler.Balance)
		leaves.POST("",
			rbac.Authorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Apply,
		)
		leaves.POST("/:id/approve", rbac.Authorize(rbacService, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", rbac.Authorize(rbacService, "leave", "approve"), handler.Reject)
		leaves.POST("/:id/cancel", rbac.Authorize(rbacService, "leave", "cancel"), handler.Cancel)
	}
}
