package models

import "testing"

func TestIsValidMemberRole(t *testing.T) {
	for _, role := range []string{"admin", "member", "viewer"} {
		if !IsValidMemberRole(role) {
			t.Errorf("%q should be valid", role)
		}
	}
	for _, role := range []string{"owner", "", "Admin"} {
		if IsValidMemberRole(role) {
			t.Errorf("%q should be invalid", role)
		}
	}
}

func TestDefaultProjectRoles(t *testing.T) {
	roles := DefaultProjectRoles()
	if len(roles) != 8 {
		t.Fatalf("expected 8 default roles, got %d", len(roles))
	}

	seen := map[string]bool{}
	for _, r := range roles {
		if seen[r.Name] {
			t.Errorf("duplicate default role %q", r.Name)
		}
		seen[r.Name] = true
		if !IsValidPermissionLevel(r.PermissionLevel) {
			t.Errorf("%s has invalid permission level %q", r.Name, r.PermissionLevel)
		}
	}

	if !roles[0].CanManageRoles || roles[0].Name != "Scrum Master" {
		t.Error("Scrum Master should be first and able to manage roles")
	}
}
