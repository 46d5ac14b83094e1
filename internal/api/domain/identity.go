package domain

// User roles
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Identity is the authenticated caller. It is resolved once per request and
// passed explicitly to every service call that acts on owned records.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the caller may perform catalog administration
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
