package club

import (
	"campus-connect/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化社团模块的路由
func (m *ModuleClub) InitRouter(r *gin.RouterGroup) {
	clubGroup := r.Group("/clubs")

	clubGroup.GET("", List)
	clubGroup.POST("", Create)
	clubGroup.GET("/recruiting", Recruiting)

	authGroup := clubGroup.Group("", middleware.Auth())
	authGroup.POST("/:id/join", Join)
	authGroup.POST("/:id/logo", UploadLogo)
	authGroup.GET("/:id/logo/presign", PresignLogo)
}
