package recruitment

import (
	"campus-connect/internal/global/database"
	"campus-connect/internal/global/guard"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"
	"campus-connect/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Applicants 查看申请列表，社团成员即可
func Applicants(c *gin.Context) {
	rec, ok := loadRecruitment(c)
	if !ok {
		return
	}

	user, errResp := guard.CurrentUser(c)
	if errResp != nil {
		response.Fail(c, errResp)
		return
	}
	if errResp := guard.RequireMember(user, rec.ClubID); errResp != nil {
		response.Fail(c, errResp)
		return
	}

	var applicants []model.Applicant
	if err := database.DB.
		Where("recruitment_id = ?", rec.ID).
		Order("id ASC").
		Find(&applicants).Error; err != nil {
		log.Error("查询申请列表失败", "error", err, "recruitment_id", rec.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, applicants)
}

type reviewReq struct {
	Status string `json:"status" binding:"required"`
}

// Review 处理一条申请，只允许 pending 流转到 accepted / rejected
// 录取实名申请人时顺带将其加入社团
func Review(c *gin.Context) {
	rec, ok := loadRecruitment(c)
	if !ok {
		return
	}

	applicantID, ok := tools.ParseUintParam(c, "applicant_id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("申请ID无效"))
		return
	}

	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Status != model.ApplicantAccepted && req.Status != model.ApplicantRejected {
		response.Fail(c, response.ErrInvalidRequest.WithTips("status 只能为 accepted 或 rejected"))
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

	var applicant model.Applicant
	err := database.DB.
		Where("id = ? AND recruitment_id = ?", applicantID, rec.ID).
		First(&applicant).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrInvalidRequest.WithTips("该招新下不存在此申请"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 条件更新保证并发下同一申请只被处理一次
	result := database.DB.Model(&model.Applicant{}).
		Where("id = ? AND status = ?", applicant.ID, model.ApplicantPending).
		Update("status", req.Status)
	if result.Error != nil {
		log.Error("更新申请状态失败", "error", result.Error, "applicant_id", applicant.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Fail(c, response.ErrAlreadyExists.WithTips("该申请已处理"))
		return
	}
	applicant.Status = req.Status

	// 录取实名申请时自动入团，已是成员则跳过
	if req.Status == model.ApplicantAccepted && applicant.UserID != nil {
		err := database.DB.Create(&model.UserClub{UserID: *applicant.UserID, ClubID: rec.ClubID}).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Error("录取后入团失败", "error", err,
				"applicant_id", applicant.ID, "club_id", rec.ClubID)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
	}

	log.Info("申请已处理",
		"applicant_id", applicant.ID,
		"status", req.Status,
		"reviewer", user.ID)
	response.Success(c, applicant)
}
