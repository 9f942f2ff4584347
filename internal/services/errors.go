package services

import "github.com/huangang/boardmaster/pkg/response"

var (
	ErrNoFieldsToUpdate = response.NewBadRequest("no fields to update")
	ErrNameRequired     = response.NewBadRequest("name is required")
	ErrTitleRequired    = response.NewBadRequest("title is required")
	ErrBioTooLong       = response.NewBadRequest("bio must be at most 500 characters")
	ErrJobTitleTooLong  = response.NewBadRequest("job title must be at most 100 characters")

	ErrUserNotFound = response.NewNotFound("user not found")

	ErrRoleNotFound           = response.NewNotFound("role not found")
	ErrRoleNameTaken          = response.NewConflict("a role with this name already exists in this project")
	ErrRoleVersionMismatch    = response.NewConflict("role was modified concurrently")
	ErrRoleNotInProject       = response.NewBadRequest("project role does not belong to this project")
	ErrInvalidPermissionLevel = response.NewBadRequest("invalid permission level")

	ErrMemberNotFound      = response.NewNotFound("member not found")
	ErrMemberUserNotFound  = response.NewNotFound("user not found with this email")
	ErrAlreadyMember       = response.NewConflict("user is already a member of this project")
	ErrMemberIsOwner       = response.NewBadRequest("user is the project owner")
	ErrAdminGrantForbidden = response.NewForbidden("only admins can grant the admin role")
	ErrInvalidMemberRole   = response.NewBadRequest("invalid member role")

	ErrBoardNotFound        = response.NewNotFound("board not found")
	ErrTaskNotFound         = response.NewNotFound("task not found")
	ErrCrossProjectMove     = response.NewBadRequest("task cannot move to a board of another project")
	ErrBoardNotInProject    = response.NewForbidden("board does not belong to the authorized project")
	ErrAssigneeNotInProject = response.NewBadRequest("assignee is not a member of this project")
)
