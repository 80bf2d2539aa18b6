package model

// 申请状态：pending 只能流转到 accepted 或 rejected，之后不再变化
const (
	ApplicantPending  = "pending"
	ApplicantAccepted = "accepted"
	ApplicantRejected = "rejected"
)

type Recruitment struct {
	Model
	Title       string      `gorm:"type:varchar(100);not null" json:"title"` // 招新标题
	Description string      `gorm:"type:varchar(255)" json:"description"`    // 招新描述
	ClubID      uint        `gorm:"not null;index" json:"club_id"`           // 所属社团，必填
	Club        *Club       `gorm:"foreignKey:ClubID" json:"club,omitempty"` // 关联到社团
	Positions   uint        `gorm:"default:1;not null" json:"positions"`     // 招新人数
	Open        bool        `gorm:"not null" json:"open"`                    // 是否开放申请，创建时显式赋值，不走列默认值
	CreatedBy   uint        `gorm:"not null" json:"created_by"`              // 创建者用户ID
	Applicants  []Applicant `gorm:"foreignKey:RecruitmentID" json:"applicants,omitempty"`
}

// Applicant 招新申请，主键即申请的稳定标识
type Applicant struct {
	Model
	RecruitmentID uint   `gorm:"not null;index" json:"recruitment_id"`
	UserID        *uint  `json:"user_id"` // 匿名申请时为空
	Name          string `gorm:"type:varchar(50);not null" json:"name"`
	Email         string `gorm:"type:varchar(100);not null" json:"email"`
	Statement     string `gorm:"type:varchar(1000)" json:"statement"` // 自述
	Status        string `gorm:"type:varchar(20);default:pending;not null" json:"status"`
}
