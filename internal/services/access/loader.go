package access

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Loader reads the rows a permission decision depends on. It never writes.
type Loader struct {
	db *gorm.DB
}

func NewLoader(db *gorm.DB) *Loader {
	return &Loader{db: db}
}

// Target names the resource a request addresses. Exactly one field needs to
// be set; the project is derived from it.
type Target struct {
	ProjectID string
	BoardID   string
	TaskID    string
}

func ProjectTarget(projectID string) Target { return Target{ProjectID: projectID} }
func BoardTarget(boardID string) Target     { return Target{BoardID: boardID} }
func TaskTarget(taskID string) Target       { return Target{TaskID: taskID} }

type accessRow struct {
	ProjectID        string
	OwnerID          string
	MemberRole       *string
	RoleID           *string
	RoleName         *string
	PermissionLevel  *string
	CanManageMembers *bool
	CanManageRoles   *bool
	CanAssignTasks   *bool
	CanDeleteTasks   *bool
	CanManageProject *bool
}

// Load returns the caller's effective permissions on a project.
//
// It fails with ErrProjectNotFound when the project does not exist and with
// ErrNoStanding when it exists but the caller neither owns it nor is a
// member. Store failures are returned wrapped.
func (l *Loader) Load(ctx context.Context, callerID, projectID string) (*EffectivePermissions, error) {
	var row accessRow
	res := l.db.WithContext(ctx).
		Table("projects AS p").
		Select(`p.id AS project_id, p.owner_id AS owner_id,
			pm.role AS member_role,
			pr.id AS role_id, pr.name AS role_name, pr.permission_level AS permission_level,
			pr.can_manage_members AS can_manage_members, pr.can_manage_roles AS can_manage_roles,
			pr.can_assign_tasks AS can_assign_tasks, pr.can_delete_tasks AS can_delete_tasks,
			pr.can_manage_project AS can_manage_project`).
		Joins("LEFT JOIN project_members pm ON pm.project_id = p.id AND pm.user_id = ?", callerID).
		Joins("LEFT JOIN project_roles pr ON pr.id = pm.project_role_id AND pr.project_id = p.id").
		Where("p.id = ? AND p.deleted_at IS NULL", projectID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("load access for project %s: %w", projectID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrProjectNotFound
	}

	perms := &EffectivePermissions{ProjectID: row.ProjectID, UserID: callerID}

	if row.OwnerID == callerID {
		perms.Role = RoleOwner
		return perms, nil
	}
	if row.MemberRole == nil {
		return nil, ErrNoStanding
	}

	perms.Role = Role(*row.MemberRole)
	if row.RoleID != nil {
		perms.ProjectRole = &BoundRole{
			ID:              *row.RoleID,
			Name:            deref(row.RoleName),
			PermissionLevel: deref(row.PermissionLevel),
			Flags: Flags{
				CanManageMembers: derefBool(row.CanManageMembers),
				CanManageRoles:   derefBool(row.CanManageRoles),
				CanAssignTasks:   derefBool(row.CanAssignTasks),
				CanDeleteTasks:   derefBool(row.CanDeleteTasks),
				CanManageProject: derefBool(row.CanManageProject),
			},
		}
	}
	return perms, nil
}

// ResolveProject returns the id of the project the target belongs to.
func (l *Loader) ResolveProject(ctx context.Context, target Target) (string, error) {
	switch {
	case target.ProjectID != "":
		return target.ProjectID, nil

	case target.BoardID != "":
		var projectIDs []string
		err := l.db.WithContext(ctx).
			Table("boards").
			Where("id = ? AND deleted_at IS NULL", target.BoardID).
			Limit(1).
			Pluck("project_id", &projectIDs).Error
		if err != nil {
			return "", fmt.Errorf("resolve board %s: %w", target.BoardID, err)
		}
		if len(projectIDs) == 0 {
			return "", ErrBoardNotFound
		}
		return projectIDs[0], nil

	case target.TaskID != "":
		var projectIDs []string
		err := l.db.WithContext(ctx).
			Table("tasks AS t").
			Joins("JOIN boards b ON b.id = t.board_id AND b.deleted_at IS NULL").
			Where("t.id = ? AND t.deleted_at IS NULL", target.TaskID).
			Limit(1).
			Pluck("b.project_id", &projectIDs).Error
		if err != nil {
			return "", fmt.Errorf("resolve task %s: %w", target.TaskID, err)
		}
		if len(projectIDs) == 0 {
			return "", ErrTaskNotFound
		}
		return projectIDs[0], nil
	}

	return "", ErrProjectUnresolved
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefBool(b *bool) bool {
	return b != nil && *b
}
