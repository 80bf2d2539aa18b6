package model

import "time"

type Event struct {
	Model
	Title         string `gorm:"type:varchar(100);not null" json:"title"`  // 活动标题
	Description   string `gorm:"type:varchar(255)" json:"description"`     // 活动描述
	ClubID        *uint  `gorm:"index" json:"club_id"`                     // 所属社团，可为空
	Club          *Club  `gorm:"foreignKey:ClubID" json:"club,omitempty"`  // 关联到社团
	Date          int64  `json:"date"`                                     // 活动时间（毫秒时间戳）
	Location      string `gorm:"type:varchar(255)" json:"location"`        // 活动地点
	MaxAttendees  uint   `gorm:"default:0;not null" json:"max_attendees"`  // 人数上限，0 表示不限制
	AttendeeCount uint   `gorm:"default:0;not null" json:"attendee_count"` // 当前报名人数，报名时条件更新
	Attendees     []User `gorm:"many2many:event_attendee" json:"-"`
	CreatedBy     uint   `gorm:"not null" json:"created_by"` // 创建者用户ID
}

// EventAttendee 报名关系表，复合主键保证同一活动不会重复报名
type EventAttendee struct {
	EventID   uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
