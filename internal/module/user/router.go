package user

import (
	"campus-connect/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化用户模块的路由
func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	r.POST("/register", Register)
	r.POST("/login", Login)

	userGroup := r.Group("/users", middleware.Auth())
	userGroup.GET("/me", Me)
	userGroup.PUT("/password", ChangePassword)
}
