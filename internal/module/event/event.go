package event

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

// List 返回全部活动，按时间升序
func List(c *gin.Context) {
	var events []model.Event
	if err := database.DB.Preload("Club").Order("date ASC").Find(&events).Error; err != nil {
		log.Error("查询活动列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, events)
}

type createReq struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Date         int64  `json:"date"` // 毫秒时间戳
	Location     string `json:"location"`
	MaxAttendees uint   `json:"max_attendees"`
	ClubID       uint   `json:"club_id"` // 显式指定的所属社团，优先生效
}

// Create 创建活动
// 社团归属：显式 club_id 优先；社团管理员未指定时按其唯一社团默认，
// 加入多个或未加入任何社团则要求显式指定
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

	// TODO: 普通用户显式指定他人社团时未做成员校验，待补
	var clubID *uint
	switch {
	case req.ClubID != 0:
		var target model.Club
		err := database.DB.First(&target, req.ClubID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Fail(c, response.ErrNotFound.WithTips("社团不存在"))
			return
		case err != nil:
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		clubID = &target.ID
	case user.Role == model.RoleClubAdmin:
		id, errResp := guard.ResolveClub(user, 0)
		if errResp != nil {
			response.Fail(c, errResp)
			return
		}
		clubID = &id
	}

	event := model.Event{
		Title:        req.Title,
		Description:  req.Description,
		ClubID:       clubID,
		Date:         req.Date,
		Location:     req.Location,
		MaxAttendees: req.MaxAttendees,
		CreatedBy:    user.ID,
	}
	if err := database.DB.Create(&event).Error; err != nil {
		log.Error("创建活动失败", "error", err, "title", req.Title)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if event.ClubID != nil {
		database.DB.Preload("Club").First(&event, event.ID)
	}

	log.Info("活动创建成功", "event_id", event.ID, "title", event.Title, "user_id", user.ID)
	response.Success(c, event)
}

// Register 当前用户报名活动
// 人数上限通过条件更新保证并发下不会超员
func Register(c *gin.Context) {
	eventID, ok := tools.ParseUintParam(c, "id")
	if !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips("活动ID无效"))
		return
	}

	user, errResp := guard.CurrentUser(c)
	if errResp != nil {
		response.Fail(c, errResp)
		return
	}

	var event model.Event
	err := database.DB.First(&event, eventID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	errEventFull := errors.New("event full")
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.EventAttendee{EventID: event.ID, UserID: user.ID}).Error; err != nil {
			return err
		}
		// 满员时条件不成立，RowsAffected 为 0
		result := tx.Model(&model.Event{}).
			Where("id = ? AND (max_attendees = 0 OR attendee_count < max_attendees)", event.ID).
			Update("attendee_count", gorm.Expr("attendee_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errEventFull
		}
		return nil
	})
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		response.Fail(c, response.ErrAlreadyExists.WithTips("已报名该活动"))
		return
	case errors.Is(err, errEventFull):
		response.Fail(c, response.ErrAlreadyExists.WithTips("活动人数已满"))
		return
	case err != nil:
		log.Error("报名活动失败", "error", err, "event_id", event.ID, "user_id", user.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("报名成功", "event_id", event.ID, "user_id", user.ID)
	response.Success(c)
}

// MyClubEvents 返回当前用户所属社团的活动，按时间升序
func MyClubEvents(c *gin.Context) {
	user, errResp := guard.CurrentUser(c)
	if errResp != nil {
		response.Fail(c, errResp)
		return
	}

	clubIDs := user.ClubIDs()
	if len(clubIDs) == 0 {
		response.Success(c, []model.Event{})
		return
	}

	var events []model.Event
	if err := database.DB.Preload("Club").
		Where("club_id IN ?", clubIDs).
		Order("date ASC").
		Find(&events).Error; err != nil {
		log.Error("查询社团活动失败", "error", err, "user_id", user.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, events)
}
