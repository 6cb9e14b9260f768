package model

// Roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is a directory entry. Password holds the bcrypt hash of the
// credential and is stripped before the record is exposed as a session.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// Stripped returns a copy of the user without the credential field.
func (u User) Stripped() User {
	u.Password = ""
	return u
}
