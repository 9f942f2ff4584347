package services

import (
	"context"
	"testing"

	"github.com/huangang/boardmaster/internal/models"
	"github.com/huangang/boardmaster/internal/models/modelstest"
	"github.com/huangang/boardmaster/internal/services/access"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	t       *testing.T
	ctx     context.Context
	db      *gorm.DB
	owner   models.User
	project *models.Project
	loader  *access.Loader
}

// newFixture creates an owner and a project through ProjectService so the
// default boards and roles exist.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := modelstest.NewDB(t)
	f := &fixture{t: t, ctx: context.Background(), db: db, loader: access.NewLoader(db)}

	f.owner = f.user("owner@example.com")
	project, err := NewProjectService(db).Create(f.ctx, f.owner.ID, &CreateProjectRequest{Name: "Apollo"})
	require.NoError(t, err)
	f.project = project
	return f
}

func (f *fixture) user(email string) models.User {
	f.t.Helper()
	u := models.User{Email: email, FullName: email}
	require.NoError(f.t, f.db.Create(&u).Error)
	return u
}

func (f *fixture) member(userID, role string, roleID *string) models.ProjectMember {
	f.t.Helper()
	m := models.ProjectMember{ProjectID: f.project.ID, UserID: userID, Role: role, ProjectRoleID: roleID}
	require.NoError(f.t, f.db.Create(&m).Error)
	return m
}

func (f *fixture) role(name string, flags access.Flags) models.ProjectRole {
	f.t.Helper()
	r, err := NewRoleService(f.db).Create(f.ctx, f.project.ID, &CreateRoleRequest{
		Name:             name,
		PermissionLevel:  models.PermissionLevelEdit,
		CanManageMembers: flags.CanManageMembers,
		CanManageRoles:   flags.CanManageRoles,
		CanAssignTasks:   flags.CanAssignTasks,
		CanDeleteTasks:   flags.CanDeleteTasks,
		CanManageProject: flags.CanManageProject,
	})
	require.NoError(f.t, err)
	return *r
}

func (f *fixture) perms(userID string) *access.EffectivePermissions {
	f.t.Helper()
	p, err := f.loader.Load(f.ctx, userID, f.project.ID)
	require.NoError(f.t, err)
	return p
}

func (f *fixture) boards() []models.Board {
	f.t.Helper()
	boards, err := NewBoardService(f.db).List(f.ctx, f.project.ID)
	require.NoError(f.t, err)
	return boards
}
