package recruitment

import (
	"fmt"
	"time"

	"campus-connect/internal/global/database"
	"campus-connect/internal/global/guard"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"
	"campus-connect/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// applicantRow 导出表格的一行
type applicantRow struct {
	ID        uint   `excel:"申请ID"`
	Name      string `excel:"姓名"`
	Email     string `excel:"邮箱"`
	Statement string `excel:"自述"`
	Status    string `excel:"状态"`
	Account   string `excel:"关联账号"`
	AppliedAt string `excel:"申请时间"`
}

// Export 导出申请列表为 xlsx，仅社团管理员可用
func Export(c *gin.Context) {
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

	var applicants []model.Applicant
	if err := database.DB.
		Where("recruitment_id = ?", rec.ID).
		Order("id ASC").
		Find(&applicants).Error; err != nil {
		log.Error("查询申请列表失败", "error", err, "recruitment_id", rec.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	rows := make([]applicantRow, 0, len(applicants))
	for _, a := range applicants {
		account := ""
		if a.UserID != nil {
			account = fmt.Sprintf("%d", *a.UserID)
		}
		rows = append(rows, applicantRow{
			ID:        a.ID,
			Name:      a.Name,
			Email:     a.Email,
			Statement: a.Statement,
			Status:    a.Status,
			Account:   account,
			AppliedAt: a.CreatedAt.Format(time.DateTime),
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "申请列表"
	if err := tools.ExportToExcel(f, sheet, rows); err != nil {
		log.Error("生成表格失败", "error", err, "recruitment_id", rec.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	// 删掉默认工作表，只保留数据表
	if sheet != "Sheet1" && len(rows) > 0 {
		f.DeleteSheet("Sheet1")
	}

	filename := fmt.Sprintf("招新申请_%d_%s.xlsx", rec.ID, time.Now().Format("20060102"))
	tools.SetDownloadHeaders(c, filename, tools.ExcelContentType)

	if err := f.Write(c.Writer); err != nil {
		log.Error("写出表格失败", "error", err, "recruitment_id", rec.ID)
	}
}
