package access

// Decision is the outcome of evaluating one capability.
type Decision struct {
	Allowed bool
	Reason  string
}

// Evaluate decides whether perms allow c. The first matching rule wins:
//
//  1. owner-only operations require ownership
//  2. the owner may do anything
//  3. admins may do anything else
//  4. any party may view the project
//  5. everyone but viewers may edit content
//  6. the remaining capabilities require a bound ProjectRole whose flag is set
func Evaluate(perms *EffectivePermissions, c Capability) Decision {
	if perms == nil {
		return Decision{Reason: "permissions not loaded"}
	}

	if c == IsOwnerOnly {
		if perms.Role == RoleOwner {
			return Decision{Allowed: true, Reason: "owner"}
		}
		return Decision{Reason: "only the project owner can perform this action"}
	}

	switch perms.Role {
	case RoleOwner:
		return Decision{Allowed: true, Reason: "owner"}
	case RoleAdmin:
		return Decision{Allowed: true, Reason: "admin"}
	case RoleMember, RoleViewer:
	default:
		return Decision{Reason: "unknown role " + string(perms.Role)}
	}

	switch c {
	case ViewProject:
		return Decision{Allowed: true, Reason: string(perms.Role)}
	case EditContent:
		if perms.Role == RoleViewer {
			return Decision{Reason: "viewers cannot edit"}
		}
		return Decision{Allowed: true, Reason: string(perms.Role)}
	}

	if perms.ProjectRole == nil {
		return Decision{Reason: "no project role bound"}
	}
	if perms.ProjectRole.Grants(c) {
		return Decision{Allowed: true, Reason: "project role " + perms.ProjectRole.Name}
	}
	return Decision{Reason: "project role " + perms.ProjectRole.Name + " does not grant " + c.String()}
}

// Allows reports whether perms allow c.
func Allows(perms *EffectivePermissions, c Capability) bool {
	return Evaluate(perms, c).Allowed
}
