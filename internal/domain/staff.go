package domain

// StaffRole names an onboarded role. The directory stores free-form role
// names; the constants below are the ones the notification rules care about.
type StaffRole string

const (
	RoleWarRoomUser  StaffRole = "war room user"
	RoleS2Admin      StaffRole = "s2 admin"
	RoleRailwayAdmin StaffRole = "railway admin"
)

// StaffUser models an onboarded staff member as read from the directory.
// Depot is a free-text field and may name several depots; matching against
// it is substring containment, not equality.
type StaffUser struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	Depot        string
	Role         StaffRole
	PasswordHash string
}

// IsAdmin reports whether the role grants unrestricted complaint access.
func (u StaffUser) IsAdmin() bool {
	return u.Role == RoleS2Admin || u.Role == RoleRailwayAdmin
}
