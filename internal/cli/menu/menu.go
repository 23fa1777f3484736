// Package menu holds the role-dependent navigation data: the fixed side menu
// lists and the dashboard each role lands on after authentication.
package menu

import (
	"path"
	"strings"
)

// Role is a user category controlling which menu and dashboard a user sees
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleHRD        Role = "hrd"
	RoleUser       Role = "user"
)

// LogoutPath is the sentinel menu path that logs the user out instead of navigating
const LogoutPath = "logout"

// LoginRoute is where logged-out users are sent
const LoginRoute = "/login"

// ParseRole maps a role string from the API to a Role.
// Unknown or empty strings fall back to RoleUser.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleSuperAdmin:
		return RoleSuperAdmin
	case RoleAdmin:
		return RoleAdmin
	case RoleHRD:
		return RoleHRD
	default:
		return RoleUser
	}
}

// Entry is one navigation item
type Entry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	// Icon is an opaque reference resolved by whatever renders the menu
	Icon string `json:"icon"`
}

// IsLogout reports whether clicking the entry should log the user out
func (e Entry) IsLogout() bool {
	return e.Path == LogoutPath
}

var logoutEntry = Entry{Label: "Logout", Path: LogoutPath, Icon: "LuLogOut"}

var superAdminEntries = []Entry{
	{Label: "Dashboard", Path: "/superadmin/dashboard", Icon: "LuLayoutDashboard"},
	{Label: "Kelola Admin", Path: "/superadmin/admins", Icon: "LuShieldCheck"},
	{Label: "Kelola Pengguna", Path: "/superadmin/users", Icon: "LuUsers"},
	{Label: "Pengaturan", Path: "/superadmin/settings", Icon: "LuSettings"},
	logoutEntry,
}

var adminEntries = []Entry{
	{Label: "Dashboard", Path: "/admin/dashboard", Icon: "LuLayoutDashboard"},
	{Label: "Kelola Tugas", Path: "/admin/tasks", Icon: "LuClipboardCheck"},
	{Label: "Buat Tugas", Path: "/admin/create-task", Icon: "LuSquarePlus"},
	{Label: "Anggota Tim", Path: "/admin/users", Icon: "LuUsers"},
	logoutEntry,
}

var hrdEntries = []Entry{
	{Label: "Dashboard", Path: "/hrd/dashboard", Icon: "LuLayoutDashboard"},
	{Label: "Data Karyawan", Path: "/hrd/employees", Icon: "LuUsers"},
	{Label: "Absensi", Path: "/hrd/attendance", Icon: "LuCalendarCheck"},
	{Label: "Pengajuan Cuti", Path: "/hrd/leave-requests", Icon: "LuFileText"},
	logoutEntry,
}

var userEntries = []Entry{
	{Label: "Dashboard", Path: "/user/dashboard", Icon: "LuLayoutDashboard"},
	{Label: "Tugas Saya", Path: "/user/tasks", Icon: "LuClipboardCheck"},
	{Label: "Absensi", Path: "/user/attendance", Icon: "LuCalendarCheck"},
	logoutEntry,
}

var entriesByRole = map[Role][]Entry{
	RoleSuperAdmin: superAdminEntries,
	RoleAdmin:      adminEntries,
	RoleHRD:        hrdEntries,
	RoleUser:       userEntries,
}

// ForRole returns the fixed menu for a role. Any role outside the known set
// gets the user menu. The returned slice is a copy.
func ForRole(role Role) []Entry {
	entries, ok := entriesByRole[role]
	if !ok {
		entries = userEntries
	}
	return append([]Entry(nil), entries...)
}

var dashboardByRole = map[Role]string{
	RoleSuperAdmin: "/superadmin/dashboard",
	RoleAdmin:      "/admin/dashboard",
	RoleHRD:        "/hrd/dashboard",
	RoleUser:       "/user/dashboard",
}

// DashboardRoute is where a user with the given role lands after login
func DashboardRoute(role Role) string {
	if route, ok := dashboardByRole[role]; ok {
		return route
	}
	return dashboardByRole[RoleUser]
}

// SignupDashboardRoute is where a freshly registered user lands.
// Registration only distinguishes admins; every other role gets the user dashboard.
func SignupDashboardRoute(role Role) string {
	if role == RoleAdmin {
		return dashboardByRole[RoleAdmin]
	}
	return dashboardByRole[RoleUser]
}

// Find looks an entry up by path, by label (case-insensitive) or by the
// last segment of its path, so "employees" finds "/hrd/employees".
func Find(entries []Entry, labelOrPath string) (Entry, bool) {
	query := strings.TrimSpace(labelOrPath)
	if query == "" {
		return Entry{}, false
	}
	for _, e := range entries {
		if e.Path == query || strings.EqualFold(e.Label, query) {
			return e, true
		}
	}
	for _, e := range entries {
		if strings.EqualFold(path.Base(e.Path), strings.Trim(query, "/")) {
			return e, true
		}
	}
	return Entry{}, false
}
