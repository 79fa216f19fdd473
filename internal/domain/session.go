package domain

import "time"

// Session is the authenticated user of one request. It is passed explicitly to
// anything that needs an authorization decision or the backend bearer token.
type Session struct {
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Permissions []string  `json:"permissions"`
	Token       string    `json:"-"`
	TokenID     string    `json:"-"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Can reports whether the session holds perm. "*" grants everything.
func (s *Session) Can(perm string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.Permissions {
		if p == perm || p == "*" {
			return true
		}
	}
	return false
}

// Require returns ErrForbidden unless the session holds perm.
func (s *Session) Require(perm string) error {
	if s == nil {
		return ErrUnauthorized
	}
	if !s.Can(perm) {
		return ErrForbidden
	}
	return nil
}
