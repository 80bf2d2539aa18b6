package model

type Club struct {
	Model
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 社团名称，全局唯一
	Description string `gorm:"type:varchar(255)" json:"description"`               // 社团简介
	LogoURL     string `gorm:"type:varchar(255)" json:"logo_url"`                  // 社团 logo 地址
}
