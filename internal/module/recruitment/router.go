package recruitment

import (
	"campus-connect/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化招新模块的路由
func (m *ModuleRecruitment) InitRouter(r *gin.RouterGroup) {
	recGroup := r.Group("/recruitments")

	recGroup.GET("", List)
	recGroup.POST("", middleware.Auth(), Create)

	// 申请允许匿名，令牌有效时记录申请人身份
	recGroup.POST("/:id/apply", middleware.OptionalAuth(), Apply)

	authGroup := recGroup.Group("", middleware.Auth())
	authGroup.PUT("/:id/close", Close)
	authGroup.GET("/:id/applicants", Applicants)
	authGroup.GET("/:id/applicants/export", Export)
	authGroup.POST("/:id/applicants/:applicant_id/review", Review)
}
