package services

import (
	"testing"

	"github.com/huangang/boardmaster/internal/models"
	"github.com/huangang/boardmaster/internal/services/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardService_CreateAppends(t *testing.T) {
	f := newFixture(t)
	svc := NewBoardService(f.db)
	owner := f.perms(f.owner.ID)

	board, err := svc.Create(f.ctx, owner, &CreateBoardRequest{ProjectID: f.project.ID, Name: " Review "})
	require.NoError(t, err)
	assert.Equal(t, "Review", board.Name)
	assert.Equal(t, len(models.DefaultBoardNames), board.Position)

	pos := 0
	first, err := svc.Create(f.ctx, owner, &CreateBoardRequest{ProjectID: f.project.ID, Name: "Inbox", Position: &pos})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)

	_, err = svc.Create(f.ctx, owner, &CreateBoardRequest{ProjectID: f.project.ID, Name: ""})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestBoardService_DeleteRemovesTasks(t *testing.T) {
	f := newFixture(t)
	boards := f.boards()
	task, err := NewTaskService(f.db).Create(f.ctx, f.perms(f.owner.ID), &CreateTaskRequest{BoardID: boards[1].ID, Title: "Ship it"})
	require.NoError(t, err)

	svc := NewBoardService(f.db)
	require.NoError(t, svc.Delete(f.ctx, boards[1].ID))

	assert.Len(t, f.boards(), 2)
	_, err = f.loader.ResolveProject(f.ctx, access.BoardTarget(boards[1].ID))
	assert.ErrorIs(t, err, access.ErrBoardNotFound)
	_, err = f.loader.ResolveProject(f.ctx, access.TaskTarget(task.ID))
	assert.ErrorIs(t, err, access.ErrTaskNotFound)

	assert.ErrorIs(t, svc.Delete(f.ctx, boards[1].ID), ErrBoardNotFound)
}

func TestBoardService_CreateUsesAuthorizedProject(t *testing.T) {
	f := newFixture(t)
	other, err := NewProjectService(f.db).Create(f.ctx, f.owner.ID, &CreateProjectRequest{Name: "Other"})
	require.NoError(t, err)

	board, err := NewBoardService(f.db).Create(f.ctx, f.perms(f.owner.ID), &CreateBoardRequest{ProjectID: other.ID, Name: "Stray"})
	require.NoError(t, err)
	assert.Equal(t, f.project.ID, board.ProjectID, "request project id does not pick the target")
}
