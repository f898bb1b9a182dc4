package models

// Caller is the identity attempting an operation. The zero value is an
// anonymous caller.
type Caller struct {
	UserID uint
	Role   Role
}

// Authenticated reports whether the caller carries a verified identity.
func (c Caller) Authenticated() bool {
	return c.UserID != 0 && c.Role.Valid()
}

func (c Caller) Is(role Role) bool {
	return c.Authenticated() && c.Role == role
}
