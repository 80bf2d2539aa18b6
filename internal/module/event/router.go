package event

import (
	"campus-connect/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化活动模块的路由
func (m *ModuleEvent) InitRouter(r *gin.RouterGroup) {
	eventGroup := r.Group("/events")
	eventGroup.GET("", List)
	eventGroup.POST("", middleware.Auth(), Create)
	eventGroup.POST("/:id/register", middleware.Auth(), Register)

	// 当前用户所属社团的活动
	r.GET("/myclubs/events", middleware.Auth(), MyClubEvents)
}
