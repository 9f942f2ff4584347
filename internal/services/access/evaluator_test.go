package access

import (
	"testing"
)

func member(role Role, flags *Flags) *EffectivePermissions {
	p := &EffectivePermissions{ProjectID: "p1", UserID: "u1", Role: role}
	if flags != nil {
		p.ProjectRole = &BoundRole{ID: "r1", Name: "Custom", PermissionLevel: "edit", Flags: *flags}
	}
	return p
}

func TestEvaluate_OwnerAllowsEverything(t *testing.T) {
	owner := member(RoleOwner, nil)
	for _, c := range AllCapabilities {
		if !Allows(owner, c) {
			t.Errorf("owner should be allowed %s", c)
		}
	}
}

func TestEvaluate_AdminAllowsAllButOwnerOnly(t *testing.T) {
	admin := member(RoleAdmin, nil)
	for _, c := range AllCapabilities {
		want := c != IsOwnerOnly
		if got := Allows(admin, c); got != want {
			t.Errorf("admin %s = %v, expected %v", c, got, want)
		}
	}
}

func TestEvaluate_ViewerWithoutRole(t *testing.T) {
	viewer := member(RoleViewer, nil)

	if !Allows(viewer, ViewProject) {
		t.Error("viewer should be able to view the project")
	}
	denied := []Capability{EditContent, ManageMembers, ManageRoles, AssignTasks, DeleteTasks, ManageProject, IsOwnerOnly}
	for _, c := range denied {
		if Allows(viewer, c) {
			t.Errorf("viewer without project role should be denied %s", c)
		}
	}
}

func TestEvaluate_MemberWithoutRole(t *testing.T) {
	m := member(RoleMember, nil)

	if !Allows(m, EditContent) {
		t.Error("member should be able to edit content")
	}
	for _, c := range []Capability{ManageMembers, ManageRoles, AssignTasks, DeleteTasks, ManageProject} {
		if Allows(m, c) {
			t.Errorf("member without project role should be denied %s", c)
		}
	}
}

func TestEvaluate_MemberWithAssignTasksFlag(t *testing.T) {
	m := member(RoleMember, &Flags{CanAssignTasks: true})

	if !Allows(m, AssignTasks) {
		t.Error("AssignTasks should be granted by the project role")
	}
	if Allows(m, ManageMembers) {
		t.Error("ManageMembers should be denied")
	}
	if !Allows(m, EditContent) {
		t.Error("EditContent should follow the member coarse role")
	}
}

func TestEvaluate_ViewerFlagsDoNotGrantEdit(t *testing.T) {
	v := member(RoleViewer, &Flags{CanManageMembers: true, CanManageRoles: true, CanAssignTasks: true, CanDeleteTasks: true, CanManageProject: true})

	if Allows(v, EditContent) {
		t.Error("a viewer stays unable to edit content whatever the flags")
	}
	for _, c := range []Capability{ManageMembers, ManageRoles, AssignTasks, DeleteTasks, ManageProject} {
		if !Allows(v, c) {
			t.Errorf("flag should grant %s to a viewer", c)
		}
	}
	if Allows(v, IsOwnerOnly) {
		t.Error("flags never grant owner-only operations")
	}
}

func TestEvaluate_ScrumMasterScenario(t *testing.T) {
	u := member(RoleMember, &Flags{CanManageRoles: true})

	if !Allows(u, ManageRoles) {
		t.Error("member with canManageRoles should manage roles")
	}
	d := Evaluate(u, IsOwnerOnly)
	if d.Allowed {
		t.Error("managing roles must not grant owner-only operations")
	}
	if d.Reason == "" {
		t.Error("denial should carry a reason")
	}
}

func TestEvaluate_EachFlagMapsToOneCapability(t *testing.T) {
	tests := []struct {
		flags Flags
		cap   Capability
	}{
		{Flags{CanManageMembers: true}, ManageMembers},
		{Flags{CanManageRoles: true}, ManageRoles},
		{Flags{CanAssignTasks: true}, AssignTasks},
		{Flags{CanDeleteTasks: true}, DeleteTasks},
		{Flags{CanManageProject: true}, ManageProject},
	}

	fine := []Capability{ManageMembers, ManageRoles, AssignTasks, DeleteTasks, ManageProject}
	for _, tt := range tests {
		perms := member(RoleMember, &tt.flags)
		for _, c := range fine {
			want := c == tt.cap
			if got := Allows(perms, c); got != want {
				t.Errorf("flags %+v: %s = %v, expected %v", tt.flags, c, got, want)
			}
		}
	}
}

func TestEvaluate_NilAndUnknownRoleDeny(t *testing.T) {
	if Allows(nil, ViewProject) {
		t.Error("nil permissions must deny")
	}
	weird := member(Role("superuser"), &Flags{CanManageRoles: true})
	for _, c := range AllCapabilities {
		if Allows(weird, c) {
			t.Errorf("unknown role should be denied %s", c)
		}
	}
}

func TestCapabilities_ListsAllowed(t *testing.T) {
	got := member(RoleMember, &Flags{CanDeleteTasks: true}).Capabilities()
	want := []Capability{ViewProject, EditContent, DeleteTasks}
	if len(got) != len(want) {
		t.Fatalf("Capabilities() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Capabilities()[%d] = %s, expected %s", i, got[i], want[i])
		}
	}
}

func TestParseCapability_RoundTrip(t *testing.T) {
	for _, c := range AllCapabilities {
		parsed, err := ParseCapability(c.String())
		if err != nil {
			t.Errorf("ParseCapability(%q) error = %v", c.String(), err)
		}
		if parsed != c {
			t.Errorf("ParseCapability(%q) = %s", c.String(), parsed)
		}
	}
	if _, err := ParseCapability("can_fly"); err == nil {
		t.Error("expected error for unknown capability")
	}
}

func TestRequire_ErrorKinds(t *testing.T) {
	m := member(RoleMember, nil)
	if err := Require(m, IsOwnerOnly); err != ErrOwnerOnly {
		t.Errorf("Require(IsOwnerOnly) = %v, expected ErrOwnerOnly", err)
	}
	if err := Require(m, ManageRoles); err != ErrInsufficientPermission {
		t.Errorf("Require(ManageRoles) = %v, expected ErrInsufficientPermission", err)
	}
	if err := Require(m, EditContent); err != nil {
		t.Errorf("Require(EditContent) = %v, expected nil", err)
	}
}
