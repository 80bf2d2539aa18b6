package club

import (
	"net/http"
	"testing"

	"campus-connect/internal/global/database"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"
	"campus-connect/test"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	test.Setup(t)
	(&ModuleClub{}).Init()
}

func TestCreateClub(t *testing.T) {
	setup(t)

	resp := test.Do(t, Create, test.Request{Body: map[string]any{
		"name":        "摄影社",
		"description": "拍照的",
	}})
	test.NoError(t, resp)

	var data struct {
		Club model.Club `json:"club"`
	}
	test.DecodeData(t, resp, &data)
	require.Equal(t, "摄影社", data.Club.Name)
}

func TestCreateClubDuplicateName(t *testing.T) {
	setup(t)

	body := map[string]any{"name": "摄影社"}
	test.NoError(t, test.Do(t, Create, test.Request{Body: body}))

	resp := test.Do(t, Create, test.Request{Body: body})
	test.CodeEqual(t, response.ErrAlreadyExists, resp)
}

func TestCreateClubAttachExistingAdmin(t *testing.T) {
	setup(t)
	user := test.NewUser(t, "alice@example.com", model.RoleStudent)

	resp := test.Do(t, Create, test.Request{Body: map[string]any{
		"name":        "摄影社",
		"admin_email": user.Email,
	}})
	test.NoError(t, resp)

	var data struct {
		Club      model.Club `json:"club"`
		AdminInfo adminInfo  `json:"admin_info"`
	}
	test.DecodeData(t, resp, &data)
	require.Equal(t, "attached_existing_user", data.AdminInfo.Type)
	require.Equal(t, user.ID, data.AdminInfo.UserID)

	// 已有用户被提为管理员并加入社团
	var reloaded model.User
	require.NoError(t, database.DB.Preload("Clubs").First(&reloaded, user.ID).Error)
	require.Equal(t, model.RoleClubAdmin, reloaded.Role)
	require.True(t, reloaded.IsMember(data.Club.ID))
}

func TestCreateClubBootstrapNewAdmin(t *testing.T) {
	setup(t)

	resp := test.Do(t, Create, test.Request{Body: map[string]any{
		"name":        "摄影社",
		"admin_email": "new-admin@example.com",
	}})
	test.NoError(t, resp)

	var data struct {
		AdminInfo adminInfo `json:"admin_info"`
	}
	test.DecodeData(t, resp, &data)
	require.Equal(t, "created_new_user", data.AdminInfo.Type)

	// 随机密码不可用于登录，账号需走重置流程
	var admin model.User
	require.NoError(t, database.DB.Where("email = ?", "new-admin@example.com").First(&admin).Error)
	require.Equal(t, model.RoleClubAdmin, admin.Role)
	require.NotEmpty(t, admin.Password)
}

func TestJoinClub(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "摄影社")
	user := test.NewUser(t, "alice@example.com", model.RoleStudent)

	resp := test.Do(t, Join, test.Request{
		User:   user.ID,
		Params: test.Param("id", club.ID),
	})
	test.NoError(t, resp)

	resp = test.Do(t, Join, test.Request{
		User:   user.ID,
		Params: test.Param("id", club.ID),
	})
	test.CodeEqual(t, response.ErrAlreadyExists, resp)
}

func TestJoinMissingClub(t *testing.T) {
	setup(t)
	user := test.NewUser(t, "alice@example.com", model.RoleStudent)

	resp := test.Do(t, Join, test.Request{
		User:   user.ID,
		Params: test.Param("id", 9999),
	})
	test.CodeEqual(t, response.ErrNotFound, resp)
}

func TestRecruitingClubs(t *testing.T) {
	setup(t)
	open := test.NewClub(t, "开放社")
	closed := test.NewClub(t, "关闭社")

	// 同一社团两条开放招新只出现一次
	require.NoError(t, database.DB.Create(&model.Recruitment{
		Title: "春招", ClubID: open.ID, Positions: 1, Open: true, CreatedBy: 1,
	}).Error)
	require.NoError(t, database.DB.Create(&model.Recruitment{
		Title: "秋招", ClubID: open.ID, Positions: 1, Open: true, CreatedBy: 1,
	}).Error)
	require.NoError(t, database.DB.Create(&model.Recruitment{
		Title: "往期", ClubID: closed.ID, Positions: 1, Open: false, CreatedBy: 1,
	}).Error)

	resp := test.Do(t, Recruiting, test.Request{Method: http.MethodGet})
	test.NoError(t, resp)

	var clubs []model.Club
	test.DecodeData(t, resp, &clubs)
	require.Len(t, clubs, 1)
	require.Equal(t, open.ID, clubs[0].ID)
}
