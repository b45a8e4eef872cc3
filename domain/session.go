package domain

import "time"

// AdminUser is the authenticated identity projected into local storage.
type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
}

// Session is the locally persisted proof of authentication. ExpiresAt is
// nil when the server never issued an expiry; such sessions do not expire.
type Session struct {
	Token     string     `json:"token"`
	User      *AdminUser `json:"user"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// IsExpired reports whether the session has an expiry in the past.
// Sessions without a recorded expiry never expire.
func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil || s.ExpiresAt == nil {
		return false
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return reference.After(*s.ExpiresAt)
}

// IsValid reports whether the session can authenticate a request: a token,
// a user record, and an expiry that has not passed.
func (s *Session) IsValid(reference time.Time) bool {
	return s != nil && s.Token != "" && s.User != nil && !s.IsExpired(reference)
}
