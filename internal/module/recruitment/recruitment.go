package recruitment

import (
	"campus-connect/internal/global/database"
	"campus-connect/internal/global/guard"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"
	"campus-connect/internal/module/club"
	"campus-connect/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type createReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Positions   uint   `json:"positions"`
	Open        *bool  `json:"open"`    // 缺省为开放
	ClubID      uint   `json:"club_id"` // 显式指定的所属社团，优先生效
}

// Create 发布招新
// 社团归属：显式 club_id 优先，未指定时按唯一社团默认；
// 发布者必须是目标社团的管理员
func Create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	user, errResp := guard.CurrentUser(c)
	if errResp != nil {
		response.Fail(c, errResp)
		return
	}

	clubID, errResp := guard.ResolveClub(user, req.ClubID)
	if errResp != nil {
		response.Fail(c, errResp)
		return
	}
	if errResp := guard.RequireClubAdmin(user, clubID); errResp != nil {
		response.Fail(c, errResp)
		return
	}

	positions := req.Positions
	if positions == 0 {
		positions = 1
	}
	open := true
	if req.Open != nil {
		open = *req.Open
	}

	rec := model.Recruitment{
		Title:       req.Title,
		Description: req.Description,
		ClubID:      clubID,
		Positions:   positions,
		Open:        open,
		CreatedBy:   user.ID,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		log.Error("发布招新失败", "error", err, "title", req.Title)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	database.DB.Preload("Club").First(&rec, rec.ID)

	club.InvalidateRecruitingCache(c.Request.Context())

	log.Info("招新发布成功", "recruitment_id", rec.ID, "club_id", rec.ClubID, "user_id", user.ID)
	response.Success(c, rec)
}

// List 返回招新列表，?open=true 只看开放中的，按发布时间倒序
func List(c *gin.Context) {
	query := database.DB.Preload("Club").Order("created_at DESC")
	if c.Query("open") == "true" {
		query = query.Where("open = ?", true)
	}

	var recs []model.Recruitment
	if err := query.Find(&recs).Error; err != nil {
		log.Error("查询招新列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, recs)
}

// loadRecruitment 按路径参数加载招新，失败时已写响应
func loadRecruitment(c *gin.Context) (*model.Recruitment, bool) {
	recID, ok := tools.ParseUintParam(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("招新ID无效"))
		return nil, false
	}

	var rec model.Recruitment
	err := database.DB.First(&rec, recID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("招新不存在"))
		return nil, false
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	return &rec, true
}

// Close 关闭招新，重复关闭不报错
func Close(c *gin.Context) {
	rec, ok := loadRecruitment(c)
	if !ok {
		return
	}

	user, errResp := guard.CurrentUser(c)
	if errResp != nil {
		response.Fail(c, errResp)
		return
	}
	if errResp := guard.RequireClubAdmin(user, rec.ClubID); errResp != nil {
		response.Fail(c, errResp)
		return
	}

	if rec.Open {
		if err := database.DB.Model(rec).Update("open", false).Error; err != nil {
			log.Error("关闭招新失败", "error", err, "recruitment_id", rec.ID)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		club.InvalidateRecruitingCache(c.Request.Context())
		log.Info("招新已关闭", "recruitment_id", rec.ID, "user_id", user.ID)
	}

	response.Success(c, rec)
}
