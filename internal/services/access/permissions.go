package access

import "fmt"

// Role is the coarse role a caller holds on a project. Owner is a role of
// its own rather than a flag on a membership.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// Capability is one discrete action checked before an operation.
type Capability int

const (
	ViewProject Capability = iota + 1
	EditContent
	ManageMembers
	ManageRoles
	AssignTasks
	DeleteTasks
	ManageProject
	IsOwnerOnly
)

// AllCapabilities lists every capability in declaration order.
var AllCapabilities = []Capability{
	ViewProject,
	EditContent,
	ManageMembers,
	ManageRoles,
	AssignTasks,
	DeleteTasks,
	ManageProject,
	IsOwnerOnly,
}

func (c Capability) String() string {
	switch c {
	case ViewProject:
		return "view_project"
	case EditContent:
		return "edit_content"
	case ManageMembers:
		return "manage_members"
	case ManageRoles:
		return "manage_roles"
	case AssignTasks:
		return "assign_tasks"
	case DeleteTasks:
		return "delete_tasks"
	case ManageProject:
		return "manage_project"
	case IsOwnerOnly:
		return "owner_only"
	}
	return fmt.Sprintf("capability(%d)", int(c))
}

func (c Capability) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCapability is the inverse of Capability.String.
func ParseCapability(s string) (Capability, error) {
	for _, c := range AllCapabilities {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown capability %q", s)
}

// Flags are the fine-grained grants carried by a ProjectRole.
type Flags struct {
	CanManageMembers bool `json:"can_manage_members"`
	CanManageRoles   bool `json:"can_manage_roles"`
	CanAssignTasks   bool `json:"can_assign_tasks"`
	CanDeleteTasks   bool `json:"can_delete_tasks"`
	CanManageProject bool `json:"can_manage_project"`
}

// Grants reports whether the flags grant c. Capabilities that no flag
// covers are never granted.
func (f Flags) Grants(c Capability) bool {
	switch c {
	case ManageMembers:
		return f.CanManageMembers
	case ManageRoles:
		return f.CanManageRoles
	case AssignTasks:
		return f.CanAssignTasks
	case DeleteTasks:
		return f.CanDeleteTasks
	case ManageProject:
		return f.CanManageProject
	case ViewProject, EditContent, IsOwnerOnly:
		return false
	}
	return false
}

// BoundRole is the ProjectRole attached to the caller's membership.
type BoundRole struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PermissionLevel string `json:"permission_level"`
	Flags
}

// EffectivePermissions is the per-request decision input for one caller on
// one project.
type EffectivePermissions struct {
	ProjectID   string     `json:"project_id"`
	UserID      string     `json:"user_id"`
	Role        Role       `json:"role"`
	ProjectRole *BoundRole `json:"project_role,omitempty"`
}

func (p *EffectivePermissions) IsOwner() bool {
	return p != nil && p.Role == RoleOwner
}

// Allows reports whether these permissions allow c.
func (p *EffectivePermissions) Allows(c Capability) bool {
	return Allows(p, c)
}

// Capabilities returns every capability these permissions allow.
func (p *EffectivePermissions) Capabilities() []Capability {
	out := make([]Capability, 0, len(AllCapabilities))
	for _, c := range AllCapabilities {
		if Allows(p, c) {
			out = append(out, c)
		}
	}
	return out
}
