package test

import (
	"testing"

	"campus-connect/config"
	"campus-connect/internal/global/database"
	"campus-connect/internal/model"
	"campus-connect/tools"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Setup 初始化测试环境：配置 + 内存数据库
// 每次调用都会重建数据库，测试之间互不影响
func Setup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	config.Init()
	cfg := config.Get()
	cfg.Mode = config.ModeDebug
	if cfg.JWT.AccessSecret == "" {
		cfg.JWT.AccessSecret = "test-secret"
	}

	database.InitTest()
}

// NewUser 创建测试用户并加入指定社团
func NewUser(t *testing.T, email, role string, clubIDs ...uint) *model.User {
	user := &model.User{
		Name:     email,
		Email:    email,
		Password: tools.PasswordEncrypt("password-123"),
		Role:     role,
	}
	require.NoError(t, database.DB.Create(user).Error)
	for _, clubID := range clubIDs {
		require.NoError(t, database.DB.Create(&model.UserClub{UserID: user.ID, ClubID: clubID}).Error)
	}
	require.NoError(t, database.DB.Preload("Clubs").First(user, user.ID).Error)
	return user
}

// NewClub 创建测试社团
func NewClub(t *testing.T, name string) *model.Club {
	club := &model.Club{Name: name}
	require.NoError(t, database.DB.Create(club).Error)
	return club
}
