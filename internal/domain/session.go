package domain

// Session identifies the authenticated caller of a service operation. It is
// built from validated token claims and never from request input.
type Session struct {
	UserID   int32
	Username string
	Role     Role
}

func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
