package entity

// User type constants
const (
	UserTypeEmployee = "Employee"
	UserTypeAdmin    = "Admin"
)

// Session is the identity of the connected user, supplied by the host
type Session struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// IsAdmin returns true if the session belongs to an administrator
func (s Session) IsAdmin() bool {
	return s.Type == UserTypeAdmin
}
