package recruitment

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
	(&ModuleRecruitment{}).Init()
}

func newRecruitment(t *testing.T, clubID uint, open bool) *model.Recruitment {
	rec := &model.Recruitment{
		Title: "招新", ClubID: clubID, Positions: 2, Open: open, CreatedBy: 1,
	}
	require.NoError(t, database.DB.Create(rec).Error)
	return rec
}

func TestCreateRecruitment(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	admin := test.NewUser(t, "admin@example.com", model.RoleClubAdmin, club.ID)

	resp := test.Do(t, Create, test.Request{
		User: admin.ID,
		Body: map[string]any{"title": "秋季招新", "description": "欢迎加入"},
	})
	test.NoError(t, resp)

	var rec model.Recruitment
	test.DecodeData(t, resp, &rec)
	require.Equal(t, club.ID, rec.ClubID)
	require.True(t, rec.Open)
	require.EqualValues(t, 1, rec.Positions)
}

func TestCreateRecruitmentClosed(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	admin := test.NewUser(t, "admin@example.com", model.RoleClubAdmin, club.ID)

	resp := test.Do(t, Create, test.Request{
		User: admin.ID,
		Body: map[string]any{"title": "预告招新", "open": false},
	})
	test.NoError(t, resp)

	var rec model.Recruitment
	test.DecodeData(t, resp, &rec)
	require.False(t, rec.Open)

	// 落库后依然是关闭状态
	var reloaded model.Recruitment
	require.NoError(t, database.DB.First(&reloaded, rec.ID).Error)
	require.False(t, reloaded.Open)

	// 关闭状态的招新不接受申请
	resp = test.Do(t, Apply, test.Request{
		Params: test.Param("id", rec.ID),
		Body:   map[string]any{"name": "路人", "email": "visitor@example.com"},
	})
	test.CodeEqual(t, response.ErrInvalidRequest, resp)
}

func TestCreateRecruitmentRequiresAdmin(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	member := test.NewUser(t, "member@example.com", model.RoleStudent, club.ID)

	resp := test.Do(t, Create, test.Request{
		User: member.ID,
		Body: map[string]any{"title": "秋季招新"},
	})
	test.CodeEqual(t, response.ErrForbidden, resp)
}

func TestCreateRecruitmentOutsideClub(t *testing.T) {
	setup(t)
	mine := test.NewClub(t, "棋社")
	other := test.NewClub(t, "书法社")
	admin := test.NewUser(t, "admin@example.com", model.RoleClubAdmin, mine.ID)

	// 显式指定了自己不在的社团
	resp := test.Do(t, Create, test.Request{
		User: admin.ID,
		Body: map[string]any{"title": "秋季招新", "club_id": other.ID},
	})
	test.CodeEqual(t, response.ErrForbidden, resp)
}

func TestListRecruitments(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	newRecruitment(t, club.ID, true)
	newRecruitment(t, club.ID, false)

	resp := test.Do(t, List, test.Request{Method: http.MethodGet})
	test.NoError(t, resp)
	var recs []model.Recruitment
	test.DecodeData(t, resp, &recs)
	require.Len(t, recs, 2)

	resp = test.Do(t, List, test.Request{Method: http.MethodGet, Query: "open=true"})
	test.NoError(t, resp)
	test.DecodeData(t, resp, &recs)
	require.Len(t, recs, 1)
	require.True(t, recs[0].Open)
}

func TestCloseRecruitment(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	admin := test.NewUser(t, "admin@example.com", model.RoleClubAdmin, club.ID)
	member := test.NewUser(t, "member@example.com", model.RoleStudent, club.ID)
	rec := newRecruitment(t, club.ID, true)

	resp := test.Do(t, Close, test.Request{
		Method: http.MethodPut,
		User:   member.ID,
		Params: test.Param("id", rec.ID),
	})
	test.CodeEqual(t, response.ErrForbidden, resp)

	resp = test.Do(t, Close, test.Request{
		Method: http.MethodPut,
		User:   admin.ID,
		Params: test.Param("id", rec.ID),
	})
	test.NoError(t, resp)

	var reloaded model.Recruitment
	require.NoError(t, database.DB.First(&reloaded, rec.ID).Error)
	require.False(t, reloaded.Open)

	// 重复关闭不报错
	resp = test.Do(t, Close, test.Request{
		Method: http.MethodPut,
		User:   admin.ID,
		Params: test.Param("id", rec.ID),
	})
	test.NoError(t, resp)
}

func TestApplyAnonymous(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	rec := newRecruitment(t, club.ID, true)

	resp := test.Do(t, Apply, test.Request{
		Params: test.Param("id", rec.ID),
		Body:   map[string]any{"name": "路人", "email": "visitor@example.com"},
	})
	test.NoError(t, resp)

	var applicant model.Applicant
	test.DecodeData(t, resp, &applicant)
	require.Equal(t, model.ApplicantPending, applicant.Status)
	require.Nil(t, applicant.UserID)
}

func TestApplyIdentified(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	user := test.NewUser(t, "alice@example.com", model.RoleStudent)
	rec := newRecruitment(t, club.ID, true)

	resp := test.Do(t, Apply, test.Request{
		User:   user.ID,
		Params: test.Param("id", rec.ID),
		Body:   map[string]any{"name": "Alice", "email": user.Email, "statement": "想加入"},
	})
	test.NoError(t, resp)

	var applicant model.Applicant
	test.DecodeData(t, resp, &applicant)
	require.NotNil(t, applicant.UserID)
	require.Equal(t, user.ID, *applicant.UserID)
}

func TestApplyClosedRecruitment(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	rec := newRecruitment(t, club.ID, false)

	resp := test.Do(t, Apply, test.Request{
		Params: test.Param("id", rec.ID),
		Body:   map[string]any{"name": "路人", "email": "visitor@example.com"},
	})
	test.CodeEqual(t, response.ErrInvalidRequest, resp)
}

func TestApplyMissingFields(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	rec := newRecruitment(t, club.ID, true)

	resp := test.Do(t, Apply, test.Request{
		Params: test.Param("id", rec.ID),
		Body:   map[string]any{"name": "路人"},
	})
	test.CodeEqual(t, response.ErrInvalidRequest, resp)
}

func TestApplyMissingRecruitment(t *testing.T) {
	setup(t)

	resp := test.Do(t, Apply, test.Request{
		Params: test.Param("id", 9999),
		Body:   map[string]any{"name": "路人", "email": "visitor@example.com"},
	})
	test.CodeEqual(t, response.ErrNotFound, resp)
}

func TestApplicantsMemberOnly(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	member := test.NewUser(t, "member@example.com", model.RoleStudent, club.ID)
	outsider := test.NewUser(t, "outsider@example.com", model.RoleStudent)
	rec := newRecruitment(t, club.ID, true)

	require.NoError(t, database.DB.Create(&model.Applicant{
		RecruitmentID: rec.ID, Name: "路人", Email: "v@example.com", Status: model.ApplicantPending,
	}).Error)

	// 普通成员可以查看
	resp := test.Do(t, Applicants, test.Request{
		Method: http.MethodGet,
		User:   member.ID,
		Params: test.Param("id", rec.ID),
	})
	test.NoError(t, resp)
	var applicants []model.Applicant
	test.DecodeData(t, resp, &applicants)
	require.Len(t, applicants, 1)

	resp = test.Do(t, Applicants, test.Request{
		Method: http.MethodGet,
		User:   outsider.ID,
		Params: test.Param("id", rec.ID),
	})
	test.CodeEqual(t, response.ErrForbidden, resp)
}

func TestReviewAcceptJoinsClub(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	admin := test.NewUser(t, "admin@example.com", model.RoleClubAdmin, club.ID)
	applicantUser := test.NewUser(t, "bob@example.com", model.RoleStudent)
	rec := newRecruitment(t, club.ID, true)

	userID := applicantUser.ID
	applicant := model.Applicant{
		RecruitmentID: rec.ID, UserID: &userID,
		Name: "Bob", Email: applicantUser.Email, Status: model.ApplicantPending,
	}
	require.NoError(t, database.DB.Create(&applicant).Error)

	resp := test.Do(t, Review, test.Request{
		User:   admin.ID,
		Params: test.Params2("id", rec.ID, "applicant_id", applicant.ID),
		Body:   map[string]any{"status": model.ApplicantAccepted},
	})
	test.NoError(t, resp)

	// 录取后自动入团
	var reloaded model.User
	require.NoError(t, database.DB.Preload("Clubs").First(&reloaded, applicantUser.ID).Error)
	require.True(t, reloaded.IsMember(club.ID))

	// 状态已终结，二次处理被拒绝
	resp = test.Do(t, Review, test.Request{
		User:   admin.ID,
		Params: test.Params2("id", rec.ID, "applicant_id", applicant.ID),
		Body:   map[string]any{"status": model.ApplicantRejected},
	})
	test.CodeEqual(t, response.ErrAlreadyExists, resp)

	var after model.Applicant
	require.NoError(t, database.DB.First(&after, applicant.ID).Error)
	require.Equal(t, model.ApplicantAccepted, after.Status)
}

func TestReviewAnonymousAcceptNoMembership(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	admin := test.NewUser(t, "admin@example.com", model.RoleClubAdmin, club.ID)
	rec := newRecruitment(t, club.ID, true)

	applicant := model.Applicant{
		RecruitmentID: rec.ID, Name: "路人", Email: "v@example.com", Status: model.ApplicantPending,
	}
	require.NoError(t, database.DB.Create(&applicant).Error)

	var before int64
	database.DB.Model(&model.UserClub{}).Count(&before)

	resp := test.Do(t, Review, test.Request{
		User:   admin.ID,
		Params: test.Params2("id", rec.ID, "applicant_id", applicant.ID),
		Body:   map[string]any{"status": model.ApplicantAccepted},
	})
	test.NoError(t, resp)

	// 匿名申请录取后不会产生任何成员关系
	var after int64
	database.DB.Model(&model.UserClub{}).Count(&after)
	require.Equal(t, before, after)
}

func TestReviewInvalidStatus(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	admin := test.NewUser(t, "admin@example.com", model.RoleClubAdmin, club.ID)
	rec := newRecruitment(t, club.ID, true)

	applicant := model.Applicant{
		RecruitmentID: rec.ID, Name: "路人", Email: "v@example.com", Status: model.ApplicantPending,
	}
	require.NoError(t, database.DB.Create(&applicant).Error)

	resp := test.Do(t, Review, test.Request{
		User:   admin.ID,
		Params: test.Params2("id", rec.ID, "applicant_id", applicant.ID),
		Body:   map[string]any{"status": "waitlisted"},
	})
	test.CodeEqual(t, response.ErrInvalidRequest, resp)
}

func TestReviewUnknownApplicant(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	admin := test.NewUser(t, "admin@example.com", model.RoleClubAdmin, club.ID)
	rec := newRecruitment(t, club.ID, true)
	otherRec := newRecruitment(t, club.ID, true)

	// 属于其它招新的申请对本招新无效
	applicant := model.Applicant{
		RecruitmentID: otherRec.ID, Name: "路人", Email: "v@example.com", Status: model.ApplicantPending,
	}
	require.NoError(t, database.DB.Create(&applicant).Error)

	resp := test.Do(t, Review, test.Request{
		User:   admin.ID,
		Params: test.Params2("id", rec.ID, "applicant_id", applicant.ID),
		Body:   map[string]any{"status": model.ApplicantAccepted},
	})
	test.CodeEqual(t, response.ErrInvalidRequest, resp)
}

func TestReviewRequiresAdmin(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	member := test.NewUser(t, "member@example.com", model.RoleStudent, club.ID)
	rec := newRecruitment(t, club.ID, true)

	applicant := model.Applicant{
		RecruitmentID: rec.ID, Name: "路人", Email: "v@example.com", Status: model.ApplicantPending,
	}
	require.NoError(t, database.DB.Create(&applicant).Error)

	resp := test.Do(t, Review, test.Request{
		User:   member.ID,
		Params: test.Params2("id", rec.ID, "applicant_id", applicant.ID),
		Body:   map[string]any{"status": model.ApplicantAccepted},
	})
	test.CodeEqual(t, response.ErrForbidden, resp)
}

func TestExportRequiresAdmin(t *testing.T) {
	setup(t)
	club := test.NewClub(t, "棋社")
	member := test.NewUser(t, "member@example.com", model.RoleStudent, club.ID)
	rec := newRecruitment(t, club.ID, true)

	resp := test.Do(t, Export, test.Request{
		Method: http.MethodGet,
		User:   member.ID,
		Params: test.Param("id", rec.ID),
	})
	test.CodeEqual(t, response.ErrForbidden, resp)
}
