package user

import (
	"campus-connect/internal/global/database"
	"campus-connect/internal/global/guard"
	"campus-connect/internal/global/jwt"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"
	"campus-connect/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type registerReq struct {
	Name            string `json:"name"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	Role            string `json:"role"`             // student（默认）或 club_admin
	ClubName        string `json:"club_name"`        // club_admin 注册时必填
	ClubDescription string `json:"club_description"` // 随 club_name 一起用于建团
	JoinClubID      uint   `json:"join_club_id"`     // 注册同时加入的社团，不存在时忽略
}

// Register 处理用户注册请求
// club_admin 注册时按名称找到或创建社团并加入；
// join_club_id 指向的社团存在时一并加入
func Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定注册请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	role := model.RoleStudent
	if req.Role == model.RoleClubAdmin {
		role = model.RoleClubAdmin
		if req.ClubName == "" {
			response.Fail(c, response.ErrInvalidRequest.WithTips("社团管理员注册必须提供 club_name"))
			return
		}
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: tools.PasswordEncrypt(req.Password),
		Role:     role,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			// 唯一键冲突只可能来自邮箱，社团相关的冲突在下方单独归因
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return response.ErrAlreadyExists.WithTips("邮箱已被注册")
			}
			return err
		}

		if role == model.RoleClubAdmin {
			// 按名称复用已有社团，没有则新建
			var club model.Club
			err := tx.Where("name = ?", req.ClubName).First(&club).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				club = model.Club{Name: req.ClubName, Description: req.ClubDescription}
				if err := tx.Create(&club).Error; err != nil {
					// 并发建同名社团时改为复用对方刚建的那个
					if !errors.Is(err, gorm.ErrDuplicatedKey) {
						return err
					}
					if err := tx.Where("name = ?", req.ClubName).First(&club).Error; err != nil {
						return err
					}
				}
			case err != nil:
				return err
			}
			if err := tx.Create(&model.UserClub{UserID: user.ID, ClubID: club.ID}).Error; err != nil {
				return err
			}
		}

		if req.JoinClubID != 0 {
			var club model.Club
			err := tx.First(&club, req.JoinClubID).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				// 社团不存在时忽略，不影响注册
			case err != nil:
				return err
			default:
				if club.ID != 0 && !hasMembership(tx, user.ID, club.ID) {
					if err := tx.Create(&model.UserClub{UserID: user.ID, ClubID: club.ID}).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		var respErr *response.Error
		if errors.As(err, &respErr) {
			log.Warn("注册被拒绝", "email", req.Email, "reason", respErr.Message)
			response.Fail(c, respErr)
			return
		}
		log.Error("创建用户失败", "error", err, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if err := database.DB.Preload("Clubs").First(&user, user.ID).Error; err != nil {
		log.Error("查询用户失败", "error", err, "user_id", user.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户注册成功", "user_id", user.ID, "email", user.Email, "role", user.Role)
	response.Success(c, user)
}

func hasMembership(tx *gorm.DB, userID, clubID uint) bool {
	var count int64
	tx.Model(&model.UserClub{}).Where("user_id = ? AND club_id = ?", userID, clubID).Count(&count)
	return count > 0
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	ClubID   uint   `json:"club_id"` // 可选，要求登录者是该社团成员
}

// Login 处理用户登录请求
func Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定登录请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var user model.User
	err := database.DB.Preload("Clubs").Where("email = ?", req.Email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("用户不存在", "email", req.Email)
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("密码错误", "email", req.Email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	// 指定了社团的登录要求成员身份
	if req.ClubID != 0 && !user.IsMember(req.ClubID) {
		log.Warn("非社团成员登录被拒绝", "email", req.Email, "club_id", req.ClubID)
		response.Fail(c, response.ErrForbidden.WithTips("不是该社团成员"))
		return
	}

	log.Info("用户登录成功", "user_id", user.ID, "email", user.Email)
	response.Success(c, map[string]interface{}{
		"token": jwt.CreateToken(jwt.Payload{
			UserID: user.ID,
			Email:  user.Email,
		}),
		"user": user,
	})
}

// Me 返回当前登录用户及其社团
func Me(c *gin.Context) {
	user, errResp := guard.CurrentUser(c)
	if errResp != nil {
		response.Fail(c, errResp)
		return
	}
	response.Success(c, user)
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 修改当前用户密码
func ChangePassword(c *gin.Context) {
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	user, errResp := guard.CurrentUser(c)
	if errResp != nil {
		response.Fail(c, errResp)
		return
	}

	if !tools.PasswordCompare(req.OldPassword, user.Password) {
		log.Warn("旧密码错误", "user_id", user.ID)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	if err := database.DB.Model(user).
		Update("password", tools.PasswordEncrypt(req.NewPassword)).Error; err != nil {
		log.Error("更新密码失败", "error", err, "user_id", user.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("密码修改成功", "user_id", user.ID)
	response.Success(c)
}
