package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	crewdomain "github.com/fitcrew/rollcall/internal/crew/domain"
	"github.com/fitcrew/rollcall/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupCrewService(t *testing.T) (crewdomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&crewdomain.Crew{}, &crewdomain.Member{}))

	node, err := snowflake.NewNode(6)
	require.NoError(t, err)

	svc := NewService(ServiceParam{DB: conn, Log: zap.NewNop()})
	return svc, conn, node
}

func addMember(t *testing.T, conn *gorm.DB, node *snowflake.Node, crewID, userID snowflake.ID, name, role string, active bool) {
	t.Helper()
	m := &crewdomain.Member{
		ID:          node.Generate(),
		CrewID:      crewID,
		UserID:      userID,
		DisplayName: name,
		Role:        role,
		IsActive:    active,
	}
	require.NoError(t, conn.Create(m).Error)
	// Create replaces a zero-valued IsActive with the schema default (true),
	// so force the column to the requested value.
	require.NoError(t, conn.Model(m).Update("is_active", active).Error)
}

func TestGetByID(t *testing.T) {
	svc, conn, node := setupCrewService(t)
	ctx := context.Background()

	crewID := node.Generate()
	require.NoError(t, conn.Create(&crewdomain.Crew{ID: crewID, Name: "crew"}).Error)

	crew, err := svc.GetByID(ctx, crewID)
	require.NoError(t, err)
	assert.Equal(t, "crew", crew.Name)

	_, err = svc.GetByID(ctx, node.Generate())
	assert.ErrorIs(t, err, crewdomain.ErrCrewNotFound)

	_, err = svc.GetByID(ctx, 0)
	assert.ErrorIs(t, err, crewdomain.ErrInvalidCrew)
}

func TestActiveMembersOrderedAndFiltered(t *testing.T) {
	svc, conn, node := setupCrewService(t)
	ctx := context.Background()

	crewID := node.Generate()
	require.NoError(t, conn.Create(&crewdomain.Crew{ID: crewID, Name: "crew"}).Error)

	addMember(t, conn, node, crewID, node.Generate(), "Cid", crewdomain.RoleMember, true)
	addMember(t, conn, node, crewID, node.Generate(), "Ann", crewdomain.RoleOwner, true)
	addMember(t, conn, node, crewID, node.Generate(), "Bob", crewdomain.RoleMember, false)

	members, err := svc.ActiveMembers(ctx, crewID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Ann", members[0].DisplayName)
	assert.Equal(t, "Cid", members[1].DisplayName)
}

func TestMemberRoleAndAdminCheck(t *testing.T) {
	svc, conn, node := setupCrewService(t)
	ctx := context.Background()

	crewID := node.Generate()
	require.NoError(t, conn.Create(&crewdomain.Crew{ID: crewID, Name: "crew"}).Error)

	owner := node.Generate()
	plain := node.Generate()
	inactive := node.Generate()
	addMember(t, conn, node, crewID, owner, "Ann", crewdomain.RoleOwner, true)
	addMember(t, conn, node, crewID, plain, "Bob", crewdomain.RoleMember, true)
	addMember(t, conn, node, crewID, inactive, "Cid", crewdomain.RoleAdmin, false)

	role, err := svc.MemberRole(ctx, crewID, owner)
	require.NoError(t, err)
	assert.Equal(t, crewdomain.RoleOwner, role)

	isAdmin, err := svc.IsCrewAdmin(ctx, crewID, owner)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = svc.IsCrewAdmin(ctx, crewID, plain)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	// An inactive admin no longer counts as a member at all.
	_, err = svc.MemberRole(ctx, crewID, inactive)
	assert.ErrorIs(t, err, crewdomain.ErrMemberNotFound)

	_, err = svc.IsCrewAdmin(ctx, crewID, node.Generate())
	assert.ErrorIs(t, err, crewdomain.ErrMemberNotFound)
}

func TestMemberRoleZeroUser(t *testing.T) {
	svc, conn, node := setupCrewService(t)
	ctx := context.Background()

	crewID := node.Generate()
	require.NoError(t, conn.Create(&crewdomain.Crew{ID: crewID, Name: "crew"}).Error)
	addMember(t, conn, node, crewID, node.Generate(), "Ann", crewdomain.RoleOwner, true)

	// A zero userID must never fall through to a crew-wide lookup that
	// would hand back whichever member the database returns first.
	_, err := svc.MemberRole(ctx, crewID, 0)
	assert.ErrorIs(t, err, crewdomain.ErrMemberNotFound)

	isAdmin, err := svc.IsCrewAdmin(ctx, crewID, 0)
	assert.ErrorIs(t, err, crewdomain.ErrMemberNotFound)
	assert.False(t, isAdmin)
}
