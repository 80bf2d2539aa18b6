package club

import (
	"context"
	"encoding/json"
	"time"

	"campus-connect/internal/global/cache"
	"campus-connect/internal/global/database"
	"campus-connect/internal/global/guard"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"
	"campus-connect/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// List 返回全部社团
func List(c *gin.Context) {
	var clubs []model.Club
	if err := database.DB.Find(&clubs).Error; err != nil {
		log.Error("查询社团列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, clubs)
}

type createReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	AdminEmail  string `json:"admin_email"` // 可选，为社团引导一个管理员账号
}

// adminInfo 建团时管理员引导的结果说明
type adminInfo struct {
	Type   string `json:"type"` // attached_existing_user 或 created_new_user
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

// Create 创建社团
// 提供 admin_email 时：邮箱已注册则把该用户提为管理员并加入社团；
// 未注册则创建一个带随机密码的管理员账号（密码不返回，需走重置流程）
func Create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	club := model.Club{Name: req.Name, Description: req.Description}
	var info *adminInfo

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&club).Error; err != nil {
			return err
		}
		if req.AdminEmail == "" {
			return nil
		}

		var admin model.User
		err := tx.Where("email = ?", req.AdminEmail).First(&admin).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			admin = model.User{
				Email:    req.AdminEmail,
				Password: tools.PasswordEncrypt(tools.RandomPassword()),
				Role:     model.RoleClubAdmin,
			}
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
			info = &adminInfo{Type: "created_new_user", UserID: admin.ID, Email: admin.Email}
		case err != nil:
			return err
		default:
			if admin.Role != model.RoleClubAdmin {
				if err := tx.Model(&admin).Update("role", model.RoleClubAdmin).Error; err != nil {
					return err
				}
			}
			info = &adminInfo{Type: "attached_existing_user", UserID: admin.ID, Email: admin.Email}
		}

		return tx.Create(&model.UserClub{UserID: admin.ID, ClubID: club.ID}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn("社团名称已存在", "name", req.Name)
			response.Fail(c, response.ErrAlreadyExists.WithTips("社团名称已存在"))
			return
		}
		log.Error("创建社团失败", "error", err, "name", req.Name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("社团创建成功", "club_id", club.ID, "name", club.Name)
	result := map[string]interface{}{"club": club}
	if info != nil {
		result["admin_info"] = info
	}
	response.Success(c, result)
}

// Join 当前用户加入指定社团
func Join(c *gin.Context) {
	clubID, ok := tools.ParseUintParam(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("社团ID无效"))
		return
	}

	user, errResp := guard.CurrentUser(c)
	if errResp != nil {
		response.Fail(c, errResp)
		return
	}

	var club model.Club
	err := database.DB.First(&club, clubID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("社团不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 复合主键兜底并发下的重复加入
	if err := database.DB.Create(&model.UserClub{UserID: user.ID, ClubID: club.ID}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("已是该社团成员"))
			return
		}
		log.Error("加入社团失败", "error", err, "user_id", user.ID, "club_id", club.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("加入社团成功", "user_id", user.ID, "club_id", club.ID)
	response.Success(c, club)
}

const recruitingCacheKey = "clubs:recruiting"
const recruitingCacheTTL = time.Minute

// Recruiting 返回当前有开放招新的社团（去重）
func Recruiting(c *gin.Context) {
	if cache.Client != nil {
		if raw, err := cache.Client.Get(c.Request.Context(), recruitingCacheKey).Bytes(); err == nil {
			var clubs []model.Club
			if json.Unmarshal(raw, &clubs) == nil {
				response.Success(c, clubs)
				return
			}
		}
	}

	var clubs []model.Club
	sub := database.DB.Model(&model.Recruitment{}).
		Select("DISTINCT club_id").
		Where("open = ?", true)
	if err := database.DB.Where("id IN (?)", sub).Find(&clubs).Error; err != nil {
		log.Error("查询招新社团失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if cache.Client != nil {
		if raw, err := json.Marshal(clubs); err == nil {
			cache.Client.Set(c.Request.Context(), recruitingCacheKey, raw, recruitingCacheTTL)
		}
	}

	response.Success(c, clubs)
}

// InvalidateRecruitingCache 招新状态变化后清掉招新社团缓存
func InvalidateRecruitingCache(ctx context.Context) {
	cache.Delete(ctx, recruitingCacheKey)
}
