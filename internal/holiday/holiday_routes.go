package holiday

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", rbac.Authorize(rbacService, "holiday", "read"), handler.List)
		holidays.POST("", rbac.Authorize(rbacService, "holiday", "manage"), handler.Create)
	}
}
