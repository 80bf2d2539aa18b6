package guard

import (
	"testing"

	"campus-connect/internal/global/response"
	"campus-connect/internal/model"

	"github.com/stretchr/testify/require"
)

func userWithClubs(role string, clubIDs ...uint) *model.User {
	u := &model.User{Role: role}
	for _, id := range clubIDs {
		u.Clubs = append(u.Clubs, model.Club{Model: model.Model{ID: id}})
	}
	return u
}

func TestResolveClubExplicitWins(t *testing.T) {
	u := userWithClubs(model.RoleClubAdmin, 1, 2)
	clubID, err := ResolveClub(u, 5)
	require.Nil(t, err)
	require.EqualValues(t, 5, clubID)
}

func TestResolveClubSingleDefault(t *testing.T) {
	u := userWithClubs(model.RoleClubAdmin, 3)
	clubID, err := ResolveClub(u, 0)
	require.Nil(t, err)
	require.EqualValues(t, 3, clubID)
}

func TestResolveClubAmbiguous(t *testing.T) {
	u := userWithClubs(model.RoleClubAdmin, 1, 2)
	_, err := ResolveClub(u, 0)
	require.NotNil(t, err)
	require.Equal(t, response.ErrInvalidRequest.Code, err.Code)
}

func TestResolveClubNoClubs(t *testing.T) {
	u := userWithClubs(model.RoleClubAdmin)
	_, err := ResolveClub(u, 0)
	require.NotNil(t, err)
	require.Equal(t, response.ErrInvalidRequest.Code, err.Code)
}

func TestRequireClubAdmin(t *testing.T) {
	member := userWithClubs(model.RoleStudent, 1)
	require.NotNil(t, RequireClubAdmin(member, 1))

	adminElsewhere := userWithClubs(model.RoleClubAdmin, 2)
	require.NotNil(t, RequireClubAdmin(adminElsewhere, 1))

	admin := userWithClubs(model.RoleClubAdmin, 1)
	require.Nil(t, RequireClubAdmin(admin, 1))
}

func TestRequireMember(t *testing.T) {
	member := userWithClubs(model.RoleStudent, 1)
	require.Nil(t, RequireMember(member, 1))
	require.NotNil(t, RequireMember(member, 2))
}
