package access

import "github.com/huangang/boardmaster/pkg/response"

var (
	ErrProjectUnresolved      = response.NewBadRequest("project id required")
	ErrProjectNotFound        = response.NewNotFound("project not found")
	ErrBoardNotFound          = response.NewNotFound("board not found")
	ErrTaskNotFound           = response.NewNotFound("task not found")
	ErrNoStanding             = response.NewForbidden("not a party to project")
	ErrInsufficientPermission = response.NewForbidden("insufficient permission")
	ErrOwnerOnly              = response.NewForbidden("only the project owner can perform this action")
	ErrUnauthenticated        = response.NewUnauthorized("authentication required")
)
