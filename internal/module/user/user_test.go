package user

import (
	"net/http"
	"testing"

	"campus-connect/internal/global/database"
	"campus-connect/internal/global/jwt"
	"campus-connect/internal/global/response"
	"campus-connect/internal/model"
	"campus-connect/test"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	test.Setup(t)
	(&ModuleUser{}).Init()
}

func TestRegisterStudent(t *testing.T) {
	setup(t)

	resp := test.Do(t, Register, test.Request{Body: map[string]any{
		"name":     "张三",
		"email":    "zhangsan@example.com",
		"password": "password-123",
	}})
	test.NoError(t, resp)

	var user model.User
	test.DecodeData(t, resp, &user)
	require.Equal(t, model.RoleStudent, user.Role)
	require.Empty(t, user.Clubs)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setup(t)

	body := map[string]any{"email": "dup@example.com", "password": "password-123"}
	test.NoError(t, test.Do(t, Register, test.Request{Body: body}))

	resp := test.Do(t, Register, test.Request{Body: body})
	test.ErrorEqual(t, response.ErrAlreadyExists.WithTips("邮箱已被注册"), resp)

	// 管理员注册事务里还会写社团，冲突归因依然是邮箱
	resp = test.Do(t, Register, test.Request{Body: map[string]any{
		"email":     "dup@example.com",
		"password":  "password-123",
		"role":      model.RoleClubAdmin,
		"club_name": "新社团",
	}})
	test.ErrorEqual(t, response.ErrAlreadyExists.WithTips("邮箱已被注册"), resp)
}

func TestRegisterClubAdmin(t *testing.T) {
	setup(t)

	resp := test.Do(t, Register, test.Request{Body: map[string]any{
		"email":     "admin@example.com",
		"password":  "password-123",
		"role":      model.RoleClubAdmin,
		"club_name": "棋社",
	}})
	test.NoError(t, resp)

	var user model.User
	test.DecodeData(t, resp, &user)
	require.Equal(t, model.RoleClubAdmin, user.Role)
	require.Len(t, user.Clubs, 1)
	require.Equal(t, "棋社", user.Clubs[0].Name)

	// 同名社团复用，不会重复创建
	resp = test.Do(t, Register, test.Request{Body: map[string]any{
		"email":     "admin2@example.com",
		"password":  "password-123",
		"role":      model.RoleClubAdmin,
		"club_name": "棋社",
	}})
	test.NoError(t, resp)

	var count int64
	database.DB.Model(&model.Club{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestRegisterClubAdminMissingClubName(t *testing.T) {
	setup(t)

	resp := test.Do(t, Register, test.Request{Body: map[string]any{
		"email":    "admin@example.com",
		"password": "password-123",
		"role":     model.RoleClubAdmin,
	}})
	test.CodeEqual(t, response.ErrInvalidRequest, resp)
}

func TestRegisterJoinClub(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "羽毛球社")

	resp := test.Do(t, Register, test.Request{Body: map[string]any{
		"email":        "member@example.com",
		"password":     "password-123",
		"join_club_id": club.ID,
	}})
	test.NoError(t, resp)

	var user model.User
	test.DecodeData(t, resp, &user)
	require.Len(t, user.Clubs, 1)
	require.Equal(t, club.ID, user.Clubs[0].ID)

	// 指向不存在的社团时忽略，注册照常成功
	resp = test.Do(t, Register, test.Request{Body: map[string]any{
		"email":        "other@example.com",
		"password":     "password-123",
		"join_club_id": 9999,
	}})
	test.NoError(t, resp)
	test.DecodeData(t, resp, &user)
	require.Empty(t, user.Clubs)
}

func TestLogin(t *testing.T) {
	setup(t)
	user := test.NewUser(t, "alice@example.com", model.RoleStudent)

	resp := test.Do(t, Login, test.Request{Body: map[string]any{
		"email":    user.Email,
		"password": "password-123",
	}})
	test.NoError(t, resp)

	var data struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	test.DecodeData(t, resp, &data)
	require.Equal(t, user.ID, data.User.ID)

	claims, ok := jwt.ParseToken(data.Token)
	require.True(t, ok)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.Email, claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	setup(t)
	user := test.NewUser(t, "alice@example.com", model.RoleStudent)

	resp := test.Do(t, Login, test.Request{Body: map[string]any{
		"email":    user.Email,
		"password": "wrong",
	}})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)
}

func TestLoginUnknownEmail(t *testing.T) {
	setup(t)

	resp := test.Do(t, Login, test.Request{Body: map[string]any{
		"email":    "nobody@example.com",
		"password": "password-123",
	}})
	test.CodeEqual(t, response.ErrNotFound, resp)
}

func TestLoginWithClub(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	member := test.NewUser(t, "member@example.com", model.RoleStudent, club.ID)
	outsider := test.NewUser(t, "outsider@example.com", model.RoleStudent)

	resp := test.Do(t, Login, test.Request{Body: map[string]any{
		"email":    member.Email,
		"password": "password-123",
		"club_id":  club.ID,
	}})
	test.NoError(t, resp)

	resp = test.Do(t, Login, test.Request{Body: map[string]any{
		"email":    outsider.Email,
		"password": "password-123",
		"club_id":  club.ID,
	}})
	test.CodeEqual(t, response.ErrForbidden, resp)
}

func TestMe(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	user := test.NewUser(t, "alice@example.com", model.RoleStudent, club.ID)

	resp := test.Do(t, Me, test.Request{Method: http.MethodGet, User: user.ID})
	test.NoError(t, resp)

	var me model.User
	test.DecodeData(t, resp, &me)
	require.Equal(t, user.ID, me.ID)
	require.Len(t, me.Clubs, 1)
}

func TestChangePassword(t *testing.T) {
	setup(t)
	user := test.NewUser(t, "alice@example.com", model.RoleStudent)

	resp := test.Do(t, ChangePassword, test.Request{
		User: user.ID,
		Body: map[string]any{"old_password": "wrong", "new_password": "new-password-1"},
	})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)

	resp = test.Do(t, ChangePassword, test.Request{
		User: user.ID,
		Body: map[string]any{"old_password": "password-123", "new_password": "new-password-1"},
	})
	test.NoError(t, resp)

	resp = test.Do(t, Login, test.Request{Body: map[string]any{
		"email":    user.Email,
		"password": "new-password-1",
	}})
	test.NoError(t, resp)
}
