package models

func strPtr(s string) *string { return &s }

// DefaultProjectRoles returns the role templates seeded into every new
// project. The returned values carry no ID or ProjectID.
func DefaultProjectRoles() []ProjectRole {
	return []ProjectRole{
		{
			Name:             "Scrum Master",
			Description:      strPtr("Facilitates Agile ceremonies and removes blockers for the team"),
			PermissionLevel:  PermissionLevelFull,
			CanManageMembers: true,
			CanManageRoles:   true,
			CanAssignTasks:   true,
			CanDeleteTasks:   true,
			CanManageProject: true,
		},
		{
			Name:             "Product Owner",
			Description:      strPtr("Defines product vision and prioritizes backlog items"),
			PermissionLevel:  PermissionLevelFull,
			CanAssignTasks:   true,
			CanManageProject: true,
		},
		{
			Name:            "Frontend Developer",
			Description:     strPtr("Develops user interfaces and client-side functionality"),
			PermissionLevel: PermissionLevelEdit,
		},
		{
			Name:            "Backend Developer",
			Description:     strPtr("Develops server-side logic and database architecture"),
			PermissionLevel: PermissionLevelEdit,
		},
		{
			Name:            "Full Stack Developer",
			Description:     strPtr("Works on both frontend and backend development"),
			PermissionLevel: PermissionLevelEdit,
		},
		{
			Name:            "QA Engineer",
			Description:     strPtr("Tests and ensures quality of deliverables"),
			PermissionLevel: PermissionLevelEdit,
		},
		{
			Name:            "DevOps Engineer",
			Description:     strPtr("Manages deployment, infrastructure, and CI/CD pipelines"),
			PermissionLevel: PermissionLevelEdit,
		},
		{
			Name:            "UI/UX Designer",
			Description:     strPtr("Designs user interfaces and user experiences"),
			PermissionLevel: PermissionLevelComment,
		},
	}
}
