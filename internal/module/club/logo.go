package club

import (
	"campus-connect/internal/global/database"
	"campus-connect/internal/global/guard"
	"campus-connect/internal/global/logostore"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"
	"campus-connect/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// requireAdminClub 解析路径社团并校验管理员权限，失败时已写响应
func requireAdminClub(c *gin.Context) (*model.Club, bool) {
	clubID, ok := tools.ParseUintParam(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("社团ID无效"))
		return nil, false
	}

	user, errResp := guard.CurrentUser(c)
	if errResp != nil {
		response.Fail(c, errResp)
		return nil, false
	}

	var club model.Club
	err := database.DB.First(&club, clubID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("社团不存在"))
		return nil, false
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}

	if errResp := guard.RequireClubAdmin(user, club.ID); errResp != nil {
		response.Fail(c, errResp)
		return nil, false
	}
	return &club, true
}

// UploadLogo 上传社团 logo，保存后更新社团记录
func UploadLogo(c *gin.Context) {
	club, ok := requireAdminClub(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少 logo 文件"))
		return
	}

	url, err := logostore.Get().SaveLogo(c.Request.Context(), fileHeader)
	if err != nil {
		log.Error("保存 logo 失败", "error", err, "club_id", club.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if err := database.DB.Model(club).Update("logo_url", url).Error; err != nil {
		log.Error("更新社团 logo 失败", "error", err, "club_id", club.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("社团 logo 已更新", "club_id", club.ID, "url", url)
	response.Success(c, map[string]interface{}{"logo_url": url})
}

// PresignLogo 生成 logo 直传的预签名 URL，仅在配置了对象存储时可用
func PresignLogo(c *gin.Context) {
	club, ok := requireAdminClub(c)
	if !ok {
		return
	}

	if !logostore.S3Enabled() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("未配置对象存储，请使用直接上传"))
		return
	}

	filename := c.Query("filename")
	if filename == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少 filename 参数"))
		return
	}

	result, err := logostore.Get().GeneratePresignedUploadURL(c.Request.Context(), logostore.PresignedUploadRequest{
		Filename:    filename,
		ContentType: c.Query("content_type"),
	})
	if err != nil {
		log.Error("生成预签名 URL 失败", "error", err, "club_id", club.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, result)
}
