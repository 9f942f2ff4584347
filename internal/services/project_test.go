package services

import (
	"testing"

	"github.com/huangang/boardmaster/internal/models"
	"github.com/huangang/boardmaster/internal/services/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateSeedsBoardsAndRoles(t *testing.T) {
	f := newFixture(t)

	boards := f.boards()
	require.Len(t, boards, 3)
	for i, name := range models.DefaultBoardNames {
		assert.Equal(t, name, boards[i].Name)
		assert.Equal(t, i, boards[i].Position)
	}

	var roleCount int64
	require.NoError(t, f.db.Model(&models.ProjectRole{}).Where("project_id = ?", f.project.ID).Count(&roleCount).Error)
	assert.EqualValues(t, len(models.DefaultProjectRoles()), roleCount)

	perms := f.perms(f.owner.ID)
	assert.True(t, perms.IsOwner())
}

func TestProjectService_CreateRequiresName(t *testing.T) {
	f := newFixture(t)

	_, err := NewProjectService(f.db).Create(f.ctx, f.owner.ID, &CreateProjectRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestProjectService_ListForUser(t *testing.T) {
	f := newFixture(t)
	svc := NewProjectService(f.db)
	u := f.user("dev@example.com")
	f.member(u.ID, models.MemberRoleViewer, nil)
	_, err := svc.Create(f.ctx, f.owner.ID, &CreateProjectRequest{Name: "Private"})
	require.NoError(t, err)

	mine, err := svc.ListForUser(f.ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := svc.ListForUser(f.ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, f.project.ID, theirs[0].ID)
	assert.EqualValues(t, 2, theirs[0].MemberCount, "owner plus one member")
	assert.Equal(t, "owner@example.com", theirs[0].OwnerEmail)

	none, err := svc.ListForUser(f.ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProjectService_GetShapesByPermissions(t *testing.T) {
	f := newFixture(t)
	u := f.user("dev@example.com")
	f.member(u.ID, models.MemberRoleViewer, nil)

	detail, err := NewProjectService(f.db).Get(f.ctx, f.perms(u.ID))
	require.NoError(t, err)

	assert.Equal(t, "Apollo", detail.Name)
	assert.Equal(t, access.RoleViewer, detail.Role)
	assert.Equal(t, []access.Capability{access.ViewProject}, detail.Capabilities)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, f.owner.ID, detail.Owner.ID)
}

func TestProjectService_Update(t *testing.T) {
	f := newFixture(t)
	svc := NewProjectService(f.db)

	_, err := svc.Update(f.ctx, f.project.ID, &UpdateProjectRequest{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	desc := "Moonshot"
	updated, err := svc.Update(f.ctx, f.project.ID, &UpdateProjectRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Apollo", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Moonshot", *updated.Description)

	name := "Artemis"
	_, err = svc.Update(f.ctx, "missing", &UpdateProjectRequest{Name: &name})
	assert.ErrorIs(t, err, access.ErrProjectNotFound)
}

func TestProjectService_DeleteHidesProject(t *testing.T) {
	f := newFixture(t)
	boards := f.boards()
	task, err := NewTaskService(f.db).Create(f.ctx, f.perms(f.owner.ID), &CreateTaskRequest{BoardID: boards[0].ID, Title: "Orphan"})
	require.NoError(t, err)

	require.NoError(t, NewProjectService(f.db).Delete(f.ctx, f.project.ID))

	_, err = f.loader.Load(f.ctx, f.owner.ID, f.project.ID)
	assert.ErrorIs(t, err, access.ErrProjectNotFound)

	_, err = f.loader.ResolveProject(f.ctx, access.TaskTarget(task.ID))
	assert.ErrorIs(t, err, access.ErrTaskNotFound)

	assert.ErrorIs(t, NewProjectService(f.db).Delete(f.ctx, f.project.ID), access.ErrProjectNotFound)
}
