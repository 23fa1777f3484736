package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected []Entry
	}{
		{name: "superadmin", role: RoleSuperAdmin, expected: superAdminEntries},
		{name: "admin", role: RoleAdmin, expected: adminEntries},
		{name: "hrd", role: RoleHRD, expected: hrdEntries},
		{name: "user", role: RoleUser, expected: userEntries},
		{name: "unrecognized role", role: Role("finance"), expected: userEntries},
		{name: "empty role", role: Role(""), expected: userEntries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ForRole(tt.role))
		})
	}
}

func TestForRole_ReturnsCopy(t *testing.T) {
	entries := ForRole(RoleAdmin)
	entries[0].Label = "changed"

	assert.Equal(t, "Dashboard", ForRole(RoleAdmin)[0].Label)
}

func TestForRole_EveryMenuEndsWithLogout(t *testing.T) {
	for _, role := range []Role{RoleSuperAdmin, RoleAdmin, RoleHRD, RoleUser} {
		entries := ForRole(role)
		assert.True(t, entries[len(entries)-1].IsLogout(), "role %s", role)
	}
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleSuperAdmin, ParseRole("superadmin"))
	assert.Equal(t, RoleAdmin, ParseRole("Admin"))
	assert.Equal(t, RoleHRD, ParseRole(" hrd "))
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleUser, ParseRole("manager"))
	assert.Equal(t, RoleUser, ParseRole(""))
}

func TestDashboardRoute(t *testing.T) {
	assert.Equal(t, "/superadmin/dashboard", DashboardRoute(RoleSuperAdmin))
	assert.Equal(t, "/admin/dashboard", DashboardRoute(RoleAdmin))
	assert.Equal(t, "/hrd/dashboard", DashboardRoute(RoleHRD))
	assert.Equal(t, "/user/dashboard", DashboardRoute(RoleUser))
	assert.Equal(t, "/user/dashboard", DashboardRoute(Role("other")))
}

func TestSignupDashboardRoute_OnlyAdminIsDistinguished(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", SignupDashboardRoute(RoleAdmin))
	assert.Equal(t, "/user/dashboard", SignupDashboardRoute(RoleSuperAdmin))
	assert.Equal(t, "/user/dashboard", SignupDashboardRoute(RoleHRD))
	assert.Equal(t, "/user/dashboard", SignupDashboardRoute(RoleUser))
}

func TestFind(t *testing.T) {
	entries := ForRole(RoleHRD)

	e, ok := Find(entries, "absensi")
	assert.True(t, ok)
	assert.Equal(t, "/hrd/attendance", e.Path)

	e, ok = Find(entries, "logout")
	assert.True(t, ok)
	assert.True(t, e.IsLogout())

	_, ok = Find(entries, "/admin/tasks")
	assert.False(t, ok)
}

func TestFind_ByLastPathSegment(t *testing.T) {
	entries := ForRole(RoleHRD)

	e, ok := Find(entries, "employees")
	assert.True(t, ok)
	assert.Equal(t, "/hrd/employees", e.Path)

	e, ok = Find(entries, "Leave-Requests")
	assert.True(t, ok)
	assert.Equal(t, "/hrd/leave-requests", e.Path)

	// A full path of another role never matches by its last segment
	_, ok = Find(ForRole(RoleUser), "/admin/tasks")
	assert.False(t, ok)

	_, ok = Find(entries, "  ")
	assert.False(t, ok)
}
