package model

import "time"

const (
	RoleStudent   = "student"
	RoleClubAdmin = "club_admin"
)

type User struct {
	Model
	Name     string `gorm:"type:varchar(50)" json:"name"`                        // 显示名，可为空
	Email    string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"` // 全局唯一
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Role     string `gorm:"type:varchar(20);default:student;not null" json:"role"`
	Clubs    []Club `gorm:"many2many:user_club" json:"clubs"` // 已加入的社团
}

// UserClub 成员关系表，复合主键保证同一社团不会重复加入
type UserClub struct {
	UserID    uint      `gorm:"primaryKey"`
	ClubID    uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// IsMember 判断用户是否为指定社团成员
// 所有成员/权限判断都走这里，ID 为唯一的比较基准
func (u *User) IsMember(clubID uint) bool {
	for _, club := range u.Clubs {
		if club.ID == clubID {
			return true
		}
	}
	return false
}

// IsClubAdmin 判断用户是否对指定社团有管理权限：成员 且 角色为 club_admin
func (u *User) IsClubAdmin(clubID uint) bool {
	return u.Role == RoleClubAdmin && u.IsMember(clubID)
}

// ClubIDs 返回用户加入的社团 ID 列表
func (u *User) ClubIDs() []uint {
	ids := make([]uint, 0, len(u.Clubs))
	for _, club := range u.Clubs {
		ids = append(ids, club.ID)
	}
	return ids
}
