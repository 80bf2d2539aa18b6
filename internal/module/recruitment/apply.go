package recruitment

import (
	"campus-connect/config"
	"campus-connect/internal/global/database"
	"campus-connect/internal/global/httpclient"
	"campus-connect/internal/global/jwt"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"

	"github.com/gin-gonic/gin"
)

type applyReq struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Statement string `json:"statement"`
}

// Apply 提交招新申请
// 匿名可申请；携带有效令牌时记录申请人账号，令牌无效按匿名处理
func Apply(c *gin.Context) {
	rec, ok := loadRecruitment(c)
	if !ok {
		return
	}
	if !rec.Open {
		response.Fail(c, response.ErrInvalidRequest.WithTips("招新已关闭"))
		return
	}

	var req applyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	applicant := model.Applicant{
		RecruitmentID: rec.ID,
		Name:          req.Name,
		Email:         req.Email,
		Statement:     req.Statement,
		Status:        model.ApplicantPending,
	}
	if payload, ok := jwt.GetUserPayload(c); ok {
		userID := payload.UserID
		applicant.UserID = &userID
	}

	if err := database.DB.Create(&applicant).Error; err != nil {
		log.Error("保存申请失败", "error", err, "recruitment_id", rec.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("收到招新申请",
		"recruitment_id", rec.ID,
		"applicant_id", applicant.ID,
		"anonymous", applicant.UserID == nil)
	notifyNewApplication(rec, &applicant)

	response.Success(c, applicant)
}

// notifyNewApplication 配置了 webhook 时异步推送新申请通知
// 推送失败只记日志，不影响申请结果
func notifyNewApplication(rec *model.Recruitment, applicant *model.Applicant) {
	url := config.Get().Webhook.URL
	if url == "" || httpclient.Client == nil {
		return
	}

	body := map[string]interface{}{
		"type":              "new_application",
		"recruitment_id":    rec.ID,
		"recruitment_title": rec.Title,
		"club_id":           rec.ClubID,
		"applicant_id":      applicant.ID,
		"name":              applicant.Name,
		"email":             applicant.Email,
	}
	go func() {
		resp, err := httpclient.Client.R().SetBody(body).Post(url)
		if err != nil {
			log.Warn("webhook 推送失败", "error", err, "applicant_id", applicant.ID)
			return
		}
		if resp.IsError() {
			log.Warn("webhook 返回错误", "status", resp.StatusCode(), "applicant_id", applicant.ID)
		}
	}()
}
