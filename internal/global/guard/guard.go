// Package guard 提供鉴权之后的用户加载与社团权限判断
package guard

import (
	"errors"

	"campus-connect/internal/global/database"
	"campus-connect/internal/global/jwt"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUser 从请求上下文取出登录用户并加载其社团列表
func CurrentUser(c *gin.Context) (*model.User, *response.Error) {
	payload, ok := jwt.GetUserPayload(c)
	if !ok {
		return nil, response.ErrUnauthorized
	}

	var user model.User
	if err := database.DB.Preload("Clubs").First(&user, payload.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ErrNotFound.WithTips("用户不存在")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &user, nil
}

// ResolveClub 确定一次操作的目标社团：
// 显式指定的 club_id 优先；未指定时只有恰好加入一个社团才能默认，
// 否则要求调用方明确指定，避免靠加入顺序猜测
func ResolveClub(user *model.User, explicit uint) (uint, *response.Error) {
	if explicit != 0 {
		return explicit, nil
	}
	switch len(user.Clubs) {
	case 0:
		return 0, response.ErrInvalidRequest.WithTips("未加入任何社团，无法确定目标社团")
	case 1:
		return user.Clubs[0].ID, nil
	default:
		return 0, response.ErrInvalidRequest.WithTips("加入了多个社团，请通过 club_id 指定目标社团")
	}
}

// RequireMember 要求用户是指定社团的成员
func RequireMember(user *model.User, clubID uint) *response.Error {
	if !user.IsMember(clubID) {
		return response.ErrForbidden.WithTips("不是该社团成员")
	}
	return nil
}

// RequireClubAdmin 要求用户对指定社团有管理权限
func RequireClubAdmin(user *model.User, clubID uint) *response.Error {
	if user.Role != model.RoleClubAdmin {
		return response.ErrForbidden.WithTips("仅社团管理员可操作")
	}
	if !user.IsMember(clubID) {
		return response.ErrForbidden.WithTips("不是该社团的管理员")
	}
	return nil
}
